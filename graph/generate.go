package graph

import (
	"github.com/pkg/errors"

	"github.com/ScottSallinen/colourstab/utils"
)

type GenerateOptions struct {
	Nodes  int     // Number of vertices.
	Edges  int     // Optional edge count target; random edges are added until met. 0 leaves the small world as is.
	K      int     // Small-world nearest neighbour count. 0 means SMALL_WORLD_K.
	Rewire float64 // Small-world rewiring probability. Negative means SMALL_WORLD_P.
	Tries  int     // Attempts at a connected small world. 0 means SMALL_WORLD_TRIES.
}

func DefaultGenerateOptions(nodes int) GenerateOptions {
	return GenerateOptions{Nodes: nodes, K: SMALL_WORLD_K, Rewire: SMALL_WORLD_P, Tries: SMALL_WORLD_TRIES}
}

func (o *GenerateOptions) fill() {
	if o.K == 0 {
		o.K = SMALL_WORLD_K
	}
	if o.Rewire < 0 {
		o.Rewire = SMALL_WORLD_P
	}
	if o.Tries == 0 {
		o.Tries = SMALL_WORLD_TRIES
	}
}

// Generate produces a connected graph: a small world, padded with random edges up to opts.Edges,
// with every vertex coloured uniformly at random (with replacement) from initial.
// Invalid options fail with ErrInvalidParameter before anything is built.
func Generate(opts GenerateOptions, initial []uint32, rng utils.Rand) (*Graph, error) {
	opts.fill()
	if opts.Nodes < opts.K+1 {
		return nil, errors.Wrapf(ErrInvalidParameter, "need at least k+1=%d nodes, got %d", opts.K+1, opts.Nodes)
	}
	if len(initial) == 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "initial palette is empty")
	}
	if maxEdges := opts.Nodes * (opts.Nodes - 1) / 2; opts.Edges > maxEdges {
		return nil, errors.Wrapf(ErrInvalidParameter, "edge target %d exceeds %d possible edges", opts.Edges, maxEdges)
	}

	g, err := SmallWorld(opts.Nodes, opts.K, opts.Rewire, opts.Tries, rng)
	if err != nil {
		return nil, err
	}

	// Pad with random edges; additions never disconnect.
	for g.EdgeCount() < opts.Edges {
		u := uint32(rng.Intn(opts.Nodes))
		v := uint32(rng.Intn(opts.Nodes))
		if u == v {
			continue
		}
		if _, err := g.AddEdge(u, v); err != nil {
			return nil, err
		}
	}

	for vidx := range g.Vertices {
		g.Vertices[vidx].Colour = initial[rng.Intn(len(initial))]
	}
	return g, nil
}
