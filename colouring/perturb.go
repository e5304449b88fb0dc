package colouring

import (
	"github.com/pkg/errors"

	"github.com/ScottSallinen/colourstab/graph"
	"github.com/ScottSallinen/colourstab/utils"
)

// Random pair draws before falling back to enumerating the remaining non-edges.
const PERTURB_SAMPLE_ATTEMPTS = 1024

// Perturb adds count edges, each between two distinct random vertices that are not yet adjacent.
// Edges are only ever added, so a connected graph stays connected. Colours and flags are untouched;
// re-run Converge (with the same palette) to re-stabilise.
// If the graph becomes complete the remaining additions are skipped and ErrPerturbationSaturated
// is returned along with the number actually added.
func Perturb(g *graph.Graph, count int, rng utils.Rand) (added int, err error) {
	n := g.VertexCount()
	for added < count {
		if g.IsComplete() {
			return added, errors.Wrapf(ErrPerturbationSaturated, "added %d of %d edges", added, count)
		}
		if !addRandomEdge(g, n, rng) {
			nonEdges := g.NonEdges()
			pick := nonEdges[rng.Intn(len(nonEdges))]
			if _, err = g.AddEdge(pick.First, pick.Second); err != nil {
				return added, err
			}
		}
		added++
	}
	return added, nil
}

// Rejection sampling; false if every attempt hit an existing edge or a self pair.
func addRandomEdge(g *graph.Graph, n int, rng utils.Rand) bool {
	for attempt := 0; attempt < PERTURB_SAMPLE_ATTEMPTS; attempt++ {
		u := uint32(rng.Intn(n))
		v := uint32(rng.Intn(n))
		if u == v {
			continue
		}
		if ok, _ := g.AddEdge(u, v); ok {
			return true
		}
	}
	return false
}
