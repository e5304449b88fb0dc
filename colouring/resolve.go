package colouring

import (
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/colourstab/graph"
	"github.com/ScottSallinen/colourstab/utils"
)

// Chances for the two stochastic decisions of a conflicted vertex.
type Chances struct {
	Intro  float64 // Probability of introducing a reserve colour when no used colour is free of neighbours.
	Change float64 // Probability of recolouring otherwise.
}

// What happened to the flagged vertices of one round.
type RoundStats struct {
	Flagged          int // Vertices flagged at round start.
	Introduced       int // Took a newly introduced reserve colour.
	Recoloured       int // Took a used colour no neighbour holds.
	Shuffled         int // Took a neighbour's colour (no free colour existed).
	Unchanged        int // Kept their colour.
	ReserveExhausted int // Introduction chosen but the reserve was empty.
}

// Resolver runs synchronous resolution rounds. It keeps its buffers between rounds; the zero value is ready to use.
// Not safe for concurrent use: one Resolver per trial.
type Resolver struct {
	snapshot  []uint32
	used      []uint32
	nbrs      []uint32
	available []uint32
	marked    utils.Bitmap
}

// Resolve is a single round with a fresh Resolver.
func Resolve(g *graph.Graph, p *Palette, rng utils.Rand, chances Chances) RoundStats {
	var r Resolver
	return r.Resolve(g, p, rng, chances)
}

// Resolve recolours every flagged vertex once. All decisions read neighbour colours from a snapshot
// taken before the first write, so the order vertices are visited in does not matter: every vertex acts
// on the previous round's state. For a flagged vertex:
//   - no used colour is free of its neighbours, and the intro draw succeeds: introduce a reserve colour and take it
//     (an empty reserve is counted and falls through to the next case);
//   - else, if the change draw succeeds: take a random free colour, or, when none is free, the colour of a random
//     neighbour, which leaves the vertex in conflict;
//   - else the colour is kept.
//
// The flag is cleared in every case; the next Detect recomputes it.
// Random draws are made in that order, and only when reached, so a scripted source reproduces exact scenarios.
func (r *Resolver) Resolve(g *graph.Graph, p *Palette, rng utils.Rand, chances Chances) (stats RoundStats) {
	n := g.VertexCount()
	if cap(r.snapshot) < n {
		r.snapshot = make([]uint32, n)
	}
	r.snapshot = r.snapshot[:n]
	g.ColoursInto(r.snapshot)

	r.used = p.UsedInto(r.used)
	total := uint32(p.Total())
	r.marked.Grow(total)

	for vidx := range g.Vertices {
		vertex := &g.Vertices[vidx]
		if !vertex.Conflicted {
			continue
		}
		stats.Flagged++
		vertex.Conflicted = false

		r.nbrs = r.nbrs[:0]
		r.marked.Zeroes()
		for _, e := range vertex.OutEdges {
			c := r.snapshot[e.Didx]
			r.nbrs = append(r.nbrs, c)
			if c < total { // Anything else is not a palette colour, so cannot be in used.
				r.marked.QuickSet(c)
			}
		}
		if len(r.nbrs) == 0 {
			stats.Unchanged++ // Flag set without any neighbour; nothing to resolve against.
			continue
		}

		r.available = r.available[:0]
		for _, c := range r.used {
			if !r.marked.IsSet(c) {
				r.available = append(r.available, c)
			}
		}

		if len(r.available) == 0 && rng.Float64() < chances.Intro {
			c, err := p.Introduce()
			if err == nil {
				r.used = append(r.used, c)
				vertex.Colour = c
				stats.Introduced++
				continue
			}
			stats.ReserveExhausted++
			log.Debug().Msg("Reserve exhausted at vertex " + utils.V(vidx) + "; falling back to recolouring.")
		}

		if rng.Float64() < chances.Change {
			if len(r.available) > 0 {
				vertex.Colour = r.available[rng.Intn(len(r.available))]
				stats.Recoloured++
			} else {
				vertex.Colour = r.nbrs[rng.Intn(len(r.nbrs))]
				stats.Shuffled++
			}
		} else {
			stats.Unchanged++
		}
	}
	return stats
}
