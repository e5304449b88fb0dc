package experiment

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/colourstab/utils"
)

// Metrics a Matrix can export.
var METRICS = []string{"fitness", "colours", "iterations", "perturbed-colours", "perturbed-iterations", "failed"}

// Averages over the converged trials of one grid point. NaN when none converged.
type Cell struct {
	Intro  float64
	Change float64

	Fitness             float64
	Colours             float64
	Iterations          float64
	PerturbedColours    float64
	PerturbedIterations float64
	Estimate            float64 // Over all trials.

	Failed           int
	ReserveExhausted int
	Trials           int
}

func (c *Cell) aggregate(trials []Trial) {
	var fitness, colours, iterations, pColours, pIterations, estimates []float64
	for _, t := range trials {
		c.Trials++
		c.ReserveExhausted += t.ReserveExhausted
		estimates = append(estimates, float64(t.Estimate))
		if !t.Converged {
			c.Failed++
			continue
		}
		fitness = append(fitness, t.Fitness)
		colours = append(colours, float64(t.Colours))
		iterations = append(iterations, float64(t.Iterations))
		if t.Perturbed {
			pColours = append(pColours, float64(t.PerturbedColours))
			pIterations = append(pIterations, float64(t.PerturbedIterations))
		}
	}
	c.Fitness = utils.Mean(fitness)
	c.Colours = utils.Mean(colours)
	c.Iterations = utils.Mean(iterations)
	c.PerturbedColours = utils.Mean(pColours)
	c.PerturbedIterations = utils.Mean(pIterations)
	c.Estimate = utils.Mean(estimates)
}

func (c *Cell) Metric(metric string) (float64, error) {
	switch metric {
	case "fitness":
		return c.Fitness, nil
	case "colours":
		return c.Colours, nil
	case "iterations":
		return c.Iterations, nil
	case "perturbed-colours":
		return c.PerturbedColours, nil
	case "perturbed-iterations":
		return c.PerturbedIterations, nil
	case "failed":
		return float64(c.Failed), nil
	}
	return 0, errors.Wrapf(ErrUnknownMetric, "%q, want one of %s", metric, strings.Join(METRICS, ", "))
}

// Matrix is the sweep result, one cell per (intro, change) pair.
// Cells are stored intro-major: Cells[i*len(Change)+j] is (Intro[i], Change[j]).
type Matrix struct {
	Intro  []float64
	Change []float64
	Cells  []Cell
}

// NewMatrix lays out empty cells; every metric reads NaN until trials are aggregated.
func NewMatrix(intro, change []float64) *Matrix {
	m := &Matrix{Intro: intro, Change: change, Cells: make([]Cell, 0, len(intro)*len(change))}
	for _, i := range intro {
		for _, c := range change {
			m.Cells = append(m.Cells, Cell{
				Intro: i, Change: c,
				Fitness: math.NaN(), Colours: math.NaN(), Iterations: math.NaN(),
				PerturbedColours: math.NaN(), PerturbedIterations: math.NaN(), Estimate: math.NaN(),
			})
		}
	}
	return m
}

func (m *Matrix) At(intro, change int) *Cell {
	return &m.Cells[intro*len(m.Change)+change]
}

// Best is the cell with the lowest average fitness; false if no cell has a converged trial.
func (m *Matrix) Best() (best Cell, ok bool) {
	for _, c := range m.Cells {
		if math.IsNaN(c.Fitness) {
			continue
		}
		if !ok || c.Fitness < best.Fitness {
			best, ok = c, true
		}
	}
	return best, ok
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes one metric as a grid: the header row holds the intro chances (after a blank corner),
// each following row starts with a change chance. Cells without a value are written as N/A.
func (m *Matrix) WriteCSV(w io.Writer, metric string) error {
	if _, err := (&Cell{}).Metric(metric); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	header := []string{" "}
	for _, i := range m.Intro {
		header = append(header, formatValue(i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for j, c := range m.Change {
		row := []string{formatValue(c)}
		for i := range m.Intro {
			v, _ := m.At(i, j).Metric(metric)
			row = append(row, formatValue(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Log prints the grid of one metric, rows by change chance.
func (m *Matrix) Log(metric string) {
	header := "Change\\Intro"
	for _, i := range m.Intro {
		header += " " + formatValue(i)
	}
	log.Info().Msg(metric + ": " + header)
	for j, c := range m.Change {
		row := utils.V(c) + ":"
		for i := range m.Intro {
			v, err := m.At(i, j).Metric(metric)
			if err != nil {
				log.Warn().Err(err).Msg("")
				return
			}
			row += " " + utils.F("%.3f", v)
		}
		log.Info().Msg(row)
	}
	if best, ok := m.Best(); ok {
		log.Info().Msg("Best: Intro " + utils.V(best.Intro) + " Change " + utils.V(best.Change) + " Fitness " + utils.F("%.3f", best.Fitness))
	} else {
		log.Warn().Msg("No grid point converged.")
	}
}
