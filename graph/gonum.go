package graph

import (
	"gonum.org/v1/gonum/graph/coloring"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/ScottSallinen/colourstab/utils"
)

// Gonum view of the structure (colours are not carried over).
func (g *Graph) ToGonum() *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	for vidx := range g.Vertices {
		ug.AddNode(simple.Node(vidx))
	}
	for key := range g.edges {
		ug.SetEdge(ug.NewEdge(simple.Node(int64(key>>32)), simple.Node(int64(uint32(key)))))
	}
	return ug
}

// Builds a Graph from a gonum undirected graph whose node ids are exactly 0..n-1.
func FromGonum(ug *simple.UndirectedGraph) (*Graph, error) {
	g := New(ug.Nodes().Len())
	// Gonum iterates edges in map order; sort so adjacency order is reproducible for a given seed.
	var pairs []utils.Pair[uint32, uint32]
	edges := ug.Edges()
	for edges.Next() {
		e := edges.Edge()
		u, v := uint32(e.From().ID()), uint32(e.To().ID())
		if u > v {
			u, v = v, u
		}
		pairs = append(pairs, utils.Pair[uint32, uint32]{First: u, Second: v})
	}
	sortPairs(pairs)
	for _, p := range pairs {
		if _, err := g.AddEdge(p.First, p.Second); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Graph) IsConnected() bool {
	if len(g.Vertices) == 0 {
		return true
	}
	return len(topo.ConnectedComponents(g.ToGonum())) == 1
}

// Lower-bound style colour estimate from a largest-first greedy colouring. Reporting only; never used for control flow.
func (g *Graph) EstimateColours() int {
	if len(g.Vertices) == 0 {
		return 0
	}
	k, _, _ := coloring.WelshPowell(g.ToGonum(), nil)
	return k
}

// Current colouring keyed by vertex id, in the form gonum's coloring package expects.
func (g *Graph) Colouring() map[int64]int {
	colours := make(map[int64]int, len(g.Vertices))
	for vidx := range g.Vertices {
		colours[int64(vidx)] = int(g.Vertices[vidx].Colour)
	}
	return colours
}

// True when every vertex is coloured and no edge joins two vertices of the same colour.
func (g *Graph) IsProperlyColoured() bool {
	for vidx := range g.Vertices {
		if g.Vertices[vidx].Colour == EMPTY_COLOUR {
			return false
		}
	}
	return coloring.IsValid(g.ToGonum(), g.Colouring())
}
