package experiment

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ScottSallinen/colourstab/colouring"
	"github.com/ScottSallinen/colourstab/graph"
	"github.com/ScottSallinen/colourstab/utils"
)

// Seed stream for graph generation; trial streams use 1+cell.
const GRAPH_STREAM = uint64(0)

// Trial is one graph converged under one grid point, and optionally perturbed and re-converged.
type Trial struct {
	Cell     int
	Graph    int
	Estimate int // Greedy (largest first) colour count of the graph before perturbation.

	Converged  bool // Both phases finished within MaxIterations.
	Colours    int
	Iterations int
	Fitness    float64

	Perturbed           bool
	PerturbAdded        int
	PerturbedColours    int
	PerturbedIterations int // Cumulative: the counter carries on from the first phase.

	ReserveExhausted int
	Elapsed          time.Duration
}

// Harness runs trials over a shared set of pre-generated graphs. Each trial clones its graph and
// owns its palette and random stream, so trials are independent and run concurrently.
type Harness struct {
	cfg       Config
	graphs    []*graph.Graph
	estimates []int
}

func NewHarness(cfg Config) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Harness{cfg: cfg}, nil
}

func (h *Harness) Config() Config {
	return h.cfg
}

// Generate builds the graphs once. Called implicitly by Sweep and Study.
func (h *Harness) Generate(ctx context.Context) error {
	if h.graphs != nil {
		return nil
	}
	p, err := colouring.NewPalette(h.cfg.InitialColours, h.cfg.ReserveColours)
	if err != nil {
		return err
	}
	initial := p.Initial()

	graphs := make([]*graph.Graph, h.cfg.Graphs)
	estimates := make([]int, h.cfg.Graphs)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(h.cfg.Threads)
	for gi := range graphs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := utils.NewRand(utils.DeriveSeed(h.cfg.Seed, GRAPH_STREAM, uint64(gi)))
			g, err := graph.Generate(h.cfg.generateOptions(), initial, rng)
			if err != nil {
				return errors.Wrapf(err, "graph %d", gi)
			}
			graphs[gi] = g
			estimates[gi] = g.EstimateColours()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for gi, g := range graphs {
		maxDegree, avgDegree := g.ComputeGraphStats()
		log.Debug().Msg("Graph " + utils.V(gi) + ": Edges " + utils.V(g.EdgeCount()) + " MaxDegree " + utils.V(maxDegree) +
			" AvgDegree " + utils.F("%.2f", avgDegree) + " Estimate " + utils.V(estimates[gi]))
	}
	h.graphs, h.estimates = graphs, estimates
	return nil
}

func (h *Harness) convergeOptions(chances colouring.Chances) colouring.ConvergeOptions {
	opts := colouring.ConvergeOptions{Chances: chances, MaxIterations: h.cfg.MaxIterations, Threads: 1}
	if log.Logger.GetLevel() <= zerolog.TraceLevel {
		opts.Observer = colouring.LogObserver
	}
	return opts
}

// Runs one trial. Non-convergence is recorded in the trial, not returned.
func (h *Harness) runTrial(ctx context.Context, cell int, gi int, chances colouring.Chances) (t Trial, err error) {
	t = Trial{Cell: cell, Graph: gi, Estimate: h.estimates[gi]}
	g := h.graphs[gi].Clone()
	p, err := colouring.NewPalette(h.cfg.InitialColours, h.cfg.ReserveColours)
	if err != nil {
		return t, err
	}
	rng := utils.NewRand(utils.DeriveSeed(h.cfg.Seed, 1+uint64(cell), uint64(gi)))
	opts := h.convergeOptions(chances)

	res, err := colouring.Converge(ctx, g, p, rng, opts)
	t.Colours, t.Iterations, t.ReserveExhausted, t.Elapsed = res.Colours, res.Iterations, res.ReserveExhausted, res.Elapsed
	t.Fitness = float64(t.Colours) + h.cfg.Weight*float64(t.Iterations)
	if errors.Is(err, colouring.ErrDidNotConverge) {
		log.Debug().Msg("Cell " + utils.V(cell) + " graph " + utils.V(gi) + ": " + err.Error())
		return t, nil
	} else if err != nil {
		return t, err
	}

	if h.cfg.PerturbEdges > 0 {
		t.Perturbed = true
		t.PerturbAdded, err = colouring.Perturb(g, h.cfg.PerturbEdges, rng)
		if errors.Is(err, colouring.ErrPerturbationSaturated) {
			log.Debug().Msg("Cell " + utils.V(cell) + " graph " + utils.V(gi) + ": " + err.Error())
		} else if err != nil {
			return t, err
		}
		res, err = colouring.Converge(ctx, g, p, rng, opts)
		t.PerturbedColours = res.Colours
		t.PerturbedIterations = t.Iterations + res.Iterations - 1
		t.ReserveExhausted += res.ReserveExhausted
		t.Elapsed += res.Elapsed
		if errors.Is(err, colouring.ErrDidNotConverge) {
			log.Debug().Msg("Cell " + utils.V(cell) + " graph " + utils.V(gi) + " after perturbation: " + err.Error())
			return t, nil
		} else if err != nil {
			return t, err
		}
	}
	t.Converged = true
	return t, nil
}

// Runs the given (cell, chances) pairs against every graph, logging progress as trials finish.
// Results are ordered by cell, then graph.
func (h *Harness) runTrials(ctx context.Context, cells []colouring.Chances) ([]Trial, error) {
	if err := h.Generate(ctx); err != nil {
		return nil, err
	}
	total := len(cells) * len(h.graphs)
	trials := make([]Trial, total)
	var done atomic.Int64

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(h.cfg.Threads)
	for cell, chances := range cells {
		for gi := range h.graphs {
			eg.Go(func() error {
				t, err := h.runTrial(ctx, cell, gi, chances)
				if err != nil {
					return errors.Wrapf(err, "cell %d graph %d", cell, gi)
				}
				trials[cell*len(h.graphs)+gi] = t
				n := done.Add(1)
				if t.Converged {
					log.Info().Msg("Run " + utils.V(n) + "/" + utils.V(total) + " Fitness " + utils.F("%.2f", t.Fitness))
				} else {
					log.Info().Msg("Run " + utils.V(n) + "/" + utils.V(total) + " Failed after " + utils.V(t.Iterations) + " iterations")
				}
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return trials, nil
}

// Sweep runs every graph under every (intro, change) grid point and aggregates per point.
func (h *Harness) Sweep(ctx context.Context) (*Matrix, error) {
	var watch utils.Watch
	watch.Start()

	m := NewMatrix(h.cfg.IntroChances, h.cfg.ChangeChances)
	cells := make([]colouring.Chances, 0, len(m.Cells))
	for i := range m.Cells {
		cells = append(cells, colouring.Chances{Intro: m.Cells[i].Intro, Change: m.Cells[i].Change})
	}
	trials, err := h.runTrials(ctx, cells)
	if err != nil {
		return nil, err
	}
	for i := range m.Cells {
		m.Cells[i].aggregate(trials[i*len(h.graphs) : (i+1)*len(h.graphs)])
	}

	log.Info().Msg("Sweep of " + utils.V(len(trials)) + " trials took " + utils.V(watch.Elapsed().Milliseconds()) + " ms")
	return m, nil
}
