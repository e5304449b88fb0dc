package graph

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/ScottSallinen/colourstab/utils"
)

// Default small-world parameters: each vertex joined to its k nearest ring neighbours, each edge rewired with probability p.
const (
	SMALL_WORLD_K     = 4
	SMALL_WORLD_P     = 0.1
	SMALL_WORLD_TRIES = 100
)

// Watts-Strogatz small world on a gonum graph. May be disconnected; see SmallWorld.
func wattsStrogatz(n, k int, p float64, rng utils.Rand) *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	for u := 0; u < n; u++ {
		ug.AddNode(simple.Node(u))
	}
	if k >= n-1 { // Every ring neighbour is every other vertex.
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				ug.SetEdge(ug.NewEdge(simple.Node(u), simple.Node(v)))
			}
		}
		return ug
	}

	// Ring lattice.
	for j := 1; j <= k/2; j++ {
		for u := 0; u < n; u++ {
			ug.SetEdge(ug.NewEdge(simple.Node(u), simple.Node((u+j)%n)))
		}
	}

	// Rewire each lattice edge (u, u+j) to (u, w) with probability p; w is uniform over non-neighbours of u.
	for j := 1; j <= k/2; j++ {
		for u := 0; u < n; u++ {
			if rng.Float64() >= p {
				continue
			}
			v := (u + j) % n
			w := rng.Intn(n)
			rewire := true
			for w == u || ug.HasEdgeBetween(int64(u), int64(w)) {
				if ug.From(int64(u)).Len() >= n-1 {
					rewire = false
					break
				}
				w = rng.Intn(n)
			}
			if rewire && ug.HasEdgeBetween(int64(u), int64(v)) {
				ug.RemoveEdge(int64(u), int64(v))
				ug.SetEdge(ug.NewEdge(simple.Node(u), simple.Node(w)))
			}
		}
	}
	return ug
}

// SmallWorld builds a connected small-world graph on n vertices, retrying the random construction up to tries times.
// Requires 2 <= k < n and 0 <= p <= 1.
func SmallWorld(n, k int, p float64, tries int, rng utils.Rand) (*Graph, error) {
	if k < 2 || k >= n {
		return nil, errors.Wrapf(ErrInvalidParameter, "small world needs 2 <= k < n (k=%d, n=%d)", k, n)
	}
	if p < 0 || p > 1 {
		return nil, errors.Wrapf(ErrInvalidParameter, "rewire probability %v not in [0,1]", p)
	}
	if tries < 1 {
		tries = 1
	}
	for t := 0; t < tries; t++ {
		ug := wattsStrogatz(n, k, p, rng)
		if len(topo.ConnectedComponents(ug)) == 1 {
			return FromGonum(ug)
		}
	}
	return nil, errors.Wrapf(ErrConstructFailed, "after %d tries (n=%d, k=%d, p=%v)", tries, n, k, p)
}
