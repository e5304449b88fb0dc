package experiment

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/colourstab/colouring"
	"github.com/ScottSallinen/colourstab/utils"
)

// StudyResult is every graph run at a single grid point, before and after perturbation.
type StudyResult struct {
	Chances colouring.Chances
	Trials  []Trial
	Summary Cell
}

// Study runs every graph at the first intro and change chance of the config, recording the colour estimate,
// colours used and iterations both before and after perturbation.
func (h *Harness) Study(ctx context.Context) (*StudyResult, error) {
	chances := colouring.Chances{Intro: h.cfg.IntroChances[0], Change: h.cfg.ChangeChances[0]}
	trials, err := h.runTrials(ctx, []colouring.Chances{chances})
	if err != nil {
		return nil, err
	}
	r := &StudyResult{Chances: chances, Trials: trials, Summary: Cell{Intro: chances.Intro, Change: chances.Change}}
	r.Summary.aggregate(trials)
	return r, nil
}

func (r *StudyResult) column(f func(t *Trial) int) []int {
	out := make([]int, len(r.Trials))
	for i := range r.Trials {
		out[i] = f(&r.Trials[i])
	}
	return out
}

func (r *StudyResult) Log() {
	log.Info().Msg("Estimates:   " + utils.V(r.column(func(t *Trial) int { return t.Estimate })))
	log.Info().Msg("Used Colours: " + utils.V(r.column(func(t *Trial) int { return t.Colours })))
	log.Info().Msg("Iterations:  " + utils.V(r.column(func(t *Trial) int { return t.Iterations })))
	log.Info().Msg("After Perturbation:")
	log.Info().Msg("Used Colours: " + utils.V(r.column(func(t *Trial) int { return t.PerturbedColours })))
	log.Info().Msg("Iterations:  " + utils.V(r.column(func(t *Trial) int { return t.PerturbedIterations })))

	s := &r.Summary
	log.Info().Msg("Average Minimum Colours:     " + utils.F("%.3f", s.Estimate))
	log.Info().Msg("Average Number Used Colours: " + utils.F("%.3f", s.Colours))
	log.Info().Msg("Average Iterations:          " + utils.F("%.3f", s.Iterations))
	log.Info().Msg("Introduction Chance:         " + utils.V(r.Chances.Intro))
	log.Info().Msg("Change Chance:               " + utils.V(r.Chances.Change))
	log.Info().Msg("After Perturbation:")
	log.Info().Msg("Average Number Used Colours: " + utils.F("%.3f", s.PerturbedColours))
	log.Info().Msg("Average Iterations:          " + utils.F("%.3f", s.PerturbedIterations))
	if s.Failed > 0 {
		log.Warn().Msg(utils.V(s.Failed) + " of " + utils.V(s.Trials) + " trials did not converge within the iteration limit.")
	}
}
