package graph

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ScottSallinen/colourstab/utils"
)

// Builds a graph from an edge list.
func fromEdges(t *testing.T, n int, edges [][2]uint32) *Graph {
	t.Helper()
	g := New(n)
	for _, e := range edges {
		_, err := g.AddEdge(e[0], e[1])
		require.NoError(t, err)
	}
	return g
}

func cycle(t *testing.T, n int) *Graph {
	edges := make([][2]uint32, n)
	for i := 0; i < n; i++ {
		edges[i] = [2]uint32{uint32(i), uint32((i + 1) % n)}
	}
	return fromEdges(t, n, edges)
}

func TestAddEdge(t *testing.T) {
	g := New(3)

	added, err := g.AddEdge(0, 1)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = g.AddEdge(1, 0)
	require.NoError(t, err)
	assert.False(t, added, "duplicate in reverse orientation")

	_, err = g.AddEdge(2, 2)
	assert.True(t, errors.Is(err, ErrSelfLoop))

	_, err = g.AddEdge(0, 3)
	assert.True(t, errors.Is(err, ErrVertexRange))

	assert.Equal(t, 1, g.EdgeCount())
	assert.True(t, g.HasEdge(1, 0))
	assert.Equal(t, []Edge{{Didx: 1}}, g.Vertices[0].OutEdges)
	assert.Equal(t, []Edge{{Didx: 0}}, g.Vertices[1].OutEdges)
	assert.Equal(t, EMPTY_COLOUR, g.Vertices[2].Colour)
}

func TestCloneIsIndependent(t *testing.T) {
	g := cycle(t, 4)
	g.SetColours([]uint32{0, 1, 0, 1})
	c := g.Clone()

	_, err := c.AddEdge(0, 2)
	require.NoError(t, err)
	c.Vertices[1].Colour = 7
	c.Vertices[1].Conflicted = true

	assert.Equal(t, 4, g.EdgeCount())
	assert.Equal(t, 5, c.EdgeCount())
	assert.False(t, g.HasEdge(0, 2))
	assert.Len(t, g.Vertices[0].OutEdges, 2)
	assert.Equal(t, []uint32{0, 1, 0, 1}, g.Colours())
	assert.False(t, g.Vertices[1].Conflicted)
}

func TestEdgesAndNonEdges(t *testing.T) {
	g := fromEdges(t, 4, [][2]uint32{{2, 1}, {0, 3}, {0, 1}})
	assert.Equal(t, []utils.Pair[uint32, uint32]{{First: 0, Second: 1}, {First: 0, Second: 3}, {First: 1, Second: 2}}, g.Edges())
	assert.Equal(t, []utils.Pair[uint32, uint32]{{First: 0, Second: 2}, {First: 1, Second: 3}, {First: 2, Second: 3}}, g.NonEdges())
	assert.False(t, g.IsComplete())

	for _, p := range g.NonEdges() {
		_, err := g.AddEdge(p.First, p.Second)
		require.NoError(t, err)
	}
	assert.True(t, g.IsComplete())
	assert.Empty(t, g.NonEdges())
	assert.Equal(t, 3, g.MaxDegree())
}

func TestNodeParallelFor(t *testing.T) {
	prev := MIN_CHUNK
	MIN_CHUNK = 1
	defer func() { MIN_CHUNK = prev }()

	g := New(1000)
	for _, threads := range []int{1, 2, 3, 7, 16} {
		seen := make([]int32, g.VertexCount())
		total := g.NodeParallelFor(threads, func(start, end uint32) int {
			for i := start; i < end; i++ {
				seen[i]++
			}
			return int(end - start)
		})
		assert.Equal(t, g.VertexCount(), total, "threads %d", threads)
		for i := range seen {
			require.Equal(t, int32(1), seen[i], "vertex %d visited once with %d threads", i, threads)
		}
	}
}

func TestEstimateColours(t *testing.T) {
	assert.Equal(t, 2, cycle(t, 4).EstimateColours())
	assert.Equal(t, 3, cycle(t, 5).EstimateColours())
	k4 := fromEdges(t, 4, [][2]uint32{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}})
	assert.Equal(t, 4, k4.EstimateColours())
}

func TestIsProperlyColoured(t *testing.T) {
	g := cycle(t, 4)
	assert.False(t, g.IsProperlyColoured(), "uncoloured")
	g.SetColours([]uint32{0, 1, 0, 1})
	assert.True(t, g.IsProperlyColoured())
	g.SetColours([]uint32{0, 0, 1, 1})
	assert.False(t, g.IsProperlyColoured())
}

func TestGonumRoundTrip(t *testing.T) {
	g := cycle(t, 6)
	back, err := FromGonum(g.ToGonum())
	require.NoError(t, err)
	assert.Equal(t, g.Edges(), back.Edges())
	assert.True(t, back.IsConnected())

	split := fromEdges(t, 4, [][2]uint32{{0, 1}, {2, 3}})
	assert.False(t, split.IsConnected())
}
