package colouring

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/colourstab/graph"
	"github.com/ScottSallinen/colourstab/utils"
)

// Observer sees the graph at the start of every iteration, after detection (so flags are current),
// and once more at the converged state. It must not mutate the graph. Time spent in it is excluded from Result.Elapsed.
type Observer func(g *graph.Graph, iteration int, conflicts int)

// Traces conflict counts per iteration.
func LogObserver(g *graph.Graph, iteration int, conflicts int) {
	log.Trace().Msg("Iteration " + utils.V(iteration) + ": Number of conflicts: " + utils.V(conflicts))
}

type ConvergeOptions struct {
	Chances
	MaxIterations int      // If non-zero, give up with ErrDidNotConverge once the iteration count reaches this.
	Threads       int      // Workers for the detection scan.
	Observer      Observer // Optional.
}

type Result struct {
	Iterations       int // Iteration counter at termination; starts at 1, one more per resolution round.
	Colours          int // Used palette size at termination.
	Converged        bool
	Introduced       int
	ReserveExhausted int
	Elapsed          time.Duration
}

// Converge alternates detection and resolution until no vertex is in conflict.
// The palette is shared with the caller and may grow. On ErrDidNotConverge or a context error the
// partial Result is still returned.
func Converge(ctx context.Context, g *graph.Graph, p *Palette, rng utils.Rand, opts ConvergeOptions) (res Result, err error) {
	var watch utils.Watch
	var resolver Resolver
	watch.Start()

	res.Iterations = 1
	for {
		if err = ctx.Err(); err != nil {
			err = errors.Wrapf(err, "stopped at iteration %d", res.Iterations)
			break
		}
		conflicts := Detect(g, opts.Threads)
		if opts.Observer != nil {
			watch.Pause()
			opts.Observer(g, res.Iterations, conflicts)
			watch.UnPause()
		}
		if conflicts == 0 {
			res.Converged = true
			break
		}
		if opts.MaxIterations > 0 && res.Iterations >= opts.MaxIterations {
			err = errors.Wrapf(ErrDidNotConverge, "%d conflicts left after %d iterations", conflicts, res.Iterations)
			break
		}
		stats := resolver.Resolve(g, p, rng, opts.Chances)
		res.Introduced += stats.Introduced
		res.ReserveExhausted += stats.ReserveExhausted
		res.Iterations++
	}

	res.Colours = p.Len()
	res.Elapsed = watch.Elapsed()
	return res, err
}
