package colouring

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ScottSallinen/colourstab/graph"
	"github.com/ScottSallinen/colourstab/utils"
)

func generated(t testing.TB, nodes, edges int, seed int64) *graph.Graph {
	opts := graph.DefaultGenerateOptions(nodes)
	opts.Edges = edges
	g, err := graph.Generate(opts, []uint32{A, B}, utils.NewRand(seed))
	require.NoError(t, err)
	return g
}

func TestConvergeProducesProperColouring(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g := generated(t, 100, 300, seed)
		p := testPalette(t, testReserve...)

		lastLen := p.Len()
		observed := 0
		opts := ConvergeOptions{
			Chances:       Chances{Intro: 0.05, Change: 0.6},
			MaxIterations: 100000,
			Threads:       2,
			Observer: func(g *graph.Graph, iteration int, conflicts int) {
				observed++
				assert.Equal(t, observed, iteration)
				assert.GreaterOrEqual(t, p.Len(), lastLen, "used palette never shrinks")
				assert.Equal(t, p.Total(), p.Len()+p.ReserveLen())
				lastLen = p.Len()
			},
		}
		res, err := Converge(context.Background(), g, p, utils.NewRand(seed), opts)
		require.NoError(t, err)

		assert.True(t, res.Converged)
		assert.Equal(t, observed, res.Iterations)
		assert.Equal(t, p.Len(), res.Colours)
		assert.Equal(t, res.Colours-2, res.Introduced)
		assert.True(t, g.IsProperlyColoured())
		assert.Equal(t, 0, Detect(g, 1), "converged state is a fixed point")
	}
}

func TestConvergeAlreadyProper(t *testing.T) {
	g := cycle4(t, []uint32{A, B, A, B})
	res, err := Converge(context.Background(), g, testPalette(t), &scriptedRand{t: t}, ConvergeOptions{Chances: Chances{Intro: 1, Change: 1}})
	require.NoError(t, err)
	assert.Equal(t, Result{Iterations: 1, Colours: 2, Converged: true, Elapsed: res.Elapsed}, res)
}

func TestConvergeIterationCap(t *testing.T) {
	// Zero chances never change anything.
	g := cycle4(t, []uint32{A, A, B, B})
	var conflicts []int
	opts := ConvergeOptions{
		MaxIterations: 5,
		Observer:      func(_ *graph.Graph, _ int, c int) { conflicts = append(conflicts, c) },
	}
	res, err := Converge(context.Background(), g, testPalette(t), utils.NewRand(1), opts)
	assert.True(t, errors.Is(err, ErrDidNotConverge))
	assert.False(t, res.Converged)
	assert.Equal(t, 5, res.Iterations)
	assert.Equal(t, []int{4, 4, 4, 4, 4}, conflicts)
}

func TestConvergeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := cycle4(t, []uint32{A, A, B, B})
	res, err := Converge(ctx, g, testPalette(t), utils.NewRand(1), ConvergeOptions{})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, res.Converged)
	assert.Equal(t, []uint32{A, A, B, B}, g.Colours())
}

func TestConvergeDeterministic(t *testing.T) {
	run := func() (Result, []uint32, []string) {
		g := generated(t, 80, 240, 9)
		p := testPalette(t, testReserve...)
		res, err := Converge(context.Background(), g, p, utils.NewRand(42), ConvergeOptions{Chances: Chances{Intro: 0.01, Change: 0.6}, Threads: 4})
		require.NoError(t, err)
		res.Elapsed = 0
		return res, g.Colours(), p.Names()
	}
	r1, c1, n1 := run()
	r2, c2, n2 := run()
	assert.Equal(t, r1, r2)
	assert.Equal(t, c1, c2)
	assert.Equal(t, n1, n2)
}

func Benchmark_Converge(b *testing.B) {
	g := generated(b, 200, 600, 1)
	colours := g.Colours()
	opts := ConvergeOptions{Chances: Chances{Intro: 0.0005, Change: 0.6}}
	for i := 0; i < b.N; i++ {
		g.SetColours(colours)
		p, _ := NewPalette([]string{"A", "B"}, testReserve)
		if _, err := Converge(context.Background(), g, p, utils.NewRand(int64(i)), opts); err != nil {
			b.Fatal(err)
		}
	}
}
