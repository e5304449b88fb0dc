package colouring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ScottSallinen/colourstab/graph"
)

const (
	A = uint32(0)
	B = uint32(1)
)

var testReserve = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf"}

// Palette with colours A and B in use, and the given reserve.
func testPalette(t *testing.T, reserve ...string) *Palette {
	t.Helper()
	p, err := NewPalette([]string{"A", "B"}, reserve)
	require.NoError(t, err)
	return p
}

func buildGraph(t *testing.T, colours []uint32, edges [][2]uint32) *graph.Graph {
	t.Helper()
	g := graph.New(len(colours))
	for _, e := range edges {
		_, err := g.AddEdge(e[0], e[1])
		require.NoError(t, err)
	}
	g.SetColours(colours)
	return g
}

func cycle4(t *testing.T, colours []uint32) *graph.Graph {
	return buildGraph(t, colours, [][2]uint32{{0, 1}, {1, 2}, {2, 3}, {3, 0}})
}

func flag(g *graph.Graph, vertices ...uint32) {
	for _, v := range vertices {
		g.Vertices[v].Conflicted = true
	}
}

// Replays fixed draws; any draw beyond the script fails the test.
type scriptedRand struct {
	t      *testing.T
	floats []float64
	ints   []int
}

func (s *scriptedRand) Float64() float64 {
	require.NotEmpty(s.t, s.floats, "unexpected Float64 draw")
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scriptedRand) Intn(n int) int {
	require.NotEmpty(s.t, s.ints, "unexpected Intn draw")
	i := s.ints[0]
	s.ints = s.ints[1:]
	require.Less(s.t, i, n, "scripted Intn out of range")
	return i
}

func (s *scriptedRand) assertDrained() {
	require.Empty(s.t, s.floats, "unused Float64 draws")
	require.Empty(s.t, s.ints, "unused Intn draws")
}
