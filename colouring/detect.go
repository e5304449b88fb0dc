package colouring

import (
	"github.com/ScottSallinen/colourstab/graph"
)

// Detect flags every vertex whose colour matches at least one neighbour's colour, and clears the flag on all others.
// Returns the number of flagged vertices (each counted once, however many neighbours collide).
// Workers only read colours and each writes the flags of its own vertex range, so the scan parallelises freely.
func Detect(g *graph.Graph, threads int) (conflicts int) {
	return g.NodeParallelFor(threads, func(start, end uint32) (count int) {
		for vidx := start; vidx < end; vidx++ {
			vertex := &g.Vertices[vidx]
			vertex.Conflicted = false
			for _, e := range vertex.OutEdges {
				if g.Vertices[e.Didx].Colour == vertex.Colour {
					vertex.Conflicted = true
					count++
					break
				}
			}
		}
		return count
	})
}
