package colouring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ScottSallinen/colourstab/graph"
	"github.com/ScottSallinen/colourstab/utils"
)

func conflictedSet(g *graph.Graph) (out []bool) {
	for vidx := range g.Vertices {
		out = append(out, g.Vertices[vidx].Conflicted)
	}
	return out
}

func TestDetectCycle(t *testing.T) {
	g := cycle4(t, []uint32{A, B, A, B})
	assert.Equal(t, 0, Detect(g, 1))
	assert.Equal(t, []bool{false, false, false, false}, conflictedSet(g))

	// 0-1 and 2-3 collide; every vertex touches one colliding edge.
	g.SetColours([]uint32{A, A, B, B})
	assert.Equal(t, 4, Detect(g, 1))
	assert.Equal(t, []bool{true, true, true, true}, conflictedSet(g))
}

func TestDetectCountsVertexOnce(t *testing.T) {
	// Star: centre shares its colour with all three leaves.
	g := buildGraph(t, []uint32{A, A, A, A}, [][2]uint32{{0, 1}, {0, 2}, {0, 3}})
	assert.Equal(t, 4, Detect(g, 1))

	g.SetColours([]uint32{A, A, B, B})
	assert.Equal(t, 2, Detect(g, 1))
	assert.Equal(t, []bool{true, true, false, false}, conflictedSet(g))
}

func TestDetectClearsStaleFlags(t *testing.T) {
	g := cycle4(t, []uint32{A, B, A, B})
	flag(g, 0, 1, 2, 3)
	assert.Equal(t, 0, Detect(g, 1))
	assert.Equal(t, []bool{false, false, false, false}, conflictedSet(g))
}

func TestDetectParallelMatchesSerial(t *testing.T) {
	prev := graph.MIN_CHUNK
	graph.MIN_CHUNK = 8
	defer func() { graph.MIN_CHUNK = prev }()

	opts := graph.DefaultGenerateOptions(500)
	opts.Edges = 1500
	g, err := graph.Generate(opts, []uint32{A, B, 2}, utils.NewRand(3))
	require.NoError(t, err)

	serial := Detect(g, 1)
	serialFlags := conflictedSet(g)
	for _, threads := range []int{2, 4, 7} {
		assert.Equal(t, serial, Detect(g, threads))
		assert.Equal(t, serialFlags, conflictedSet(g))
	}
}

func Benchmark_Detect(b *testing.B) {
	opts := graph.DefaultGenerateOptions(10000)
	opts.Edges = 40000
	g, err := graph.Generate(opts, []uint32{A, B}, utils.NewRand(1))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Detect(g, 4)
	}
}
