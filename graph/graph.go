package graph

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/colourstab/utils"
)

// Colour held by a vertex before any palette colour is assigned.
const EMPTY_COLOUR = ^uint32(0)

type Edge struct {
	Didx uint32 // Destination (internal id).
}

// Vertex state. The colour is an id into the trial's palette; the conflict flag is
// written by detection and consumed (reset) by resolution.
type Vertex struct {
	Id         uint32
	Colour     uint32
	Conflicted bool
	OutEdges   []Edge
}

// Undirected simple graph. Vertices are an arena indexed by a dense internal id (0..n-1);
// every undirected edge is present in both endpoints' OutEdges.
type Graph struct {
	Vertices []Vertex
	edges    map[uint64]struct{}
}

// Unordered pair key.
func edgeKey(u, v uint32) uint64 {
	if u > v {
		u, v = v, u
	}
	return uint64(u)<<32 | uint64(v)
}

// New graph of n isolated, uncoloured vertices.
func New(n int) *Graph {
	g := &Graph{Vertices: make([]Vertex, n), edges: make(map[uint64]struct{})}
	for i := range g.Vertices {
		g.Vertices[i].Id = uint32(i)
		g.Vertices[i].Colour = EMPTY_COLOUR
	}
	return g
}

func (g *Graph) VertexCount() int {
	return len(g.Vertices)
}

func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

func (g *Graph) checkRange(u uint32) error {
	if int(u) >= len(g.Vertices) {
		return errors.Wrapf(ErrVertexRange, "vertex %d of %d", u, len(g.Vertices))
	}
	return nil
}

// AddEdge inserts the undirected edge {u, v}. Returns false (and no error) if it already exists.
func (g *Graph) AddEdge(u, v uint32) (added bool, err error) {
	if err = g.checkRange(u); err != nil {
		return false, err
	}
	if err = g.checkRange(v); err != nil {
		return false, err
	}
	if u == v {
		return false, errors.Wrapf(ErrSelfLoop, "vertex %d", u)
	}
	key := edgeKey(u, v)
	if _, ok := g.edges[key]; ok {
		return false, nil
	}
	g.edges[key] = struct{}{}
	g.Vertices[u].OutEdges = append(g.Vertices[u].OutEdges, Edge{Didx: v})
	g.Vertices[v].OutEdges = append(g.Vertices[v].OutEdges, Edge{Didx: u})
	return true, nil
}

func (g *Graph) HasEdge(u, v uint32) bool {
	_, ok := g.edges[edgeKey(u, v)]
	return ok
}

func (g *Graph) Degree(u uint32) int {
	return len(g.Vertices[u].OutEdges)
}

func (g *Graph) MaxDegree() (max int) {
	for vidx := range g.Vertices {
		max = utils.Max(max, len(g.Vertices[vidx].OutEdges))
	}
	return max
}

// True when no further edge can be added.
func (g *Graph) IsComplete() bool {
	n := len(g.Vertices)
	return len(g.edges) >= n*(n-1)/2
}

// Edges in ascending (u, v) order with u < v.
func (g *Graph) Edges() []utils.Pair[uint32, uint32] {
	out := make([]utils.Pair[uint32, uint32], 0, len(g.edges))
	for key := range g.edges {
		out = append(out, utils.Pair[uint32, uint32]{First: uint32(key >> 32), Second: uint32(key)})
	}
	sortPairs(out)
	return out
}

// Pairs {u, v}, u < v, that are not yet adjacent.
func (g *Graph) NonEdges() []utils.Pair[uint32, uint32] {
	n := uint32(len(g.Vertices))
	var out []utils.Pair[uint32, uint32]
	for u := uint32(0); u < n; u++ {
		for v := u + 1; v < n; v++ {
			if !g.HasEdge(u, v) {
				out = append(out, utils.Pair[uint32, uint32]{First: u, Second: v})
			}
		}
	}
	return out
}

// Deep copy; the clone shares no state with the original.
func (g *Graph) Clone() *Graph {
	c := &Graph{Vertices: make([]Vertex, len(g.Vertices)), edges: make(map[uint64]struct{}, len(g.edges))}
	for vidx := range g.Vertices {
		c.Vertices[vidx] = g.Vertices[vidx]
		c.Vertices[vidx].OutEdges = append([]Edge(nil), g.Vertices[vidx].OutEdges...)
	}
	for key := range g.edges {
		c.edges[key] = struct{}{}
	}
	return c
}

// Copy of the per-vertex colours, indexed by internal id.
func (g *Graph) Colours() []uint32 {
	out := make([]uint32, len(g.Vertices))
	g.ColoursInto(out)
	return out
}

// Copies colours into dst (len(dst) must be the vertex count); lets a caller reuse one snapshot buffer.
func (g *Graph) ColoursInto(dst []uint32) {
	for vidx := range g.Vertices {
		dst[vidx] = g.Vertices[vidx].Colour
	}
}

func (g *Graph) SetColours(colours []uint32) {
	for vidx := range g.Vertices {
		g.Vertices[vidx].Colour = colours[vidx]
	}
}

// Logs vertex and edge counts, and degree statistics.
func (g *Graph) ComputeGraphStats() (maxDegree int, avgDegree float64) {
	degrees := make([]int, len(g.Vertices))
	for vidx := range g.Vertices {
		degrees[vidx] = len(g.Vertices[vidx].OutEdges)
	}
	if len(degrees) > 0 {
		maxDegree = utils.MaxSlice(degrees)
		avgDegree = utils.Mean(degrees)
	}
	log.Debug().Msg("Vertices: " + utils.V(len(g.Vertices)) + " Edges: " + utils.V(len(g.edges)) +
		" MaxDegree: " + utils.V(maxDegree) + " AvgDegree: " + utils.F("%.3f", avgDegree))
	return maxDegree, avgDegree
}

func sortPairs(pairs []utils.Pair[uint32, uint32]) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].First != pairs[j].First {
			return pairs[i].First < pairs[j].First
		}
		return pairs[i].Second < pairs[j].Second
	})
}
