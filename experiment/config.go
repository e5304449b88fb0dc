package experiment

import (
	"runtime"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/colourstab/colouring"
	"github.com/ScottSallinen/colourstab/graph"
	"github.com/ScottSallinen/colourstab/utils"
)

var INITIAL_COLOURS = []string{"#fc5185", "#36486b"}

// Introduced from the end of the list first.
var RESERVE_COLOURS = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	"#1a1a1a", "#ff0000", "#800000", "#ffff00", "#808000",
	"#00ff00", "#008000", "#00ffff", "#008080", "#0000ff",
	"#000080", "#ff00ff", "#800080", "#ff5733", "#ffc300",
	"#c70039", "#900c3f", "#581845", "#ff6f61", "#ffa07a",
	"#ffcc5c", "#ffeead", "#dcedc1", "#5e2ca5", "#a7e9af",
	"#fff200", "#00b2ff", "#4a4e4d", "#8a89a6", "#997c6c",
	"#3d4b52", "#5bc0eb", "#fde74c", "#9bc53d", "#c3423f",
	"#f7f4a3", "#36486b", "#3fc1c9",
}

// Config describes a set of experiments: the graphs to generate, the palette, the probability grid and the
// perturbation applied after convergence. Every attribute is optional in a config file; absent ones keep their
// DefaultConfig value.
type Config struct {
	Nodes      int     `hcl:"nodes,optional"`
	Graphs     int     `hcl:"graphs,optional"`     // Graphs generated once and shared (as copies) by every grid point.
	Edges      int     `hcl:"edges,optional"`      // Pad the small world with random edges up to this count. 0 disables.
	Neighbours int     `hcl:"neighbours,optional"` // Small-world k.
	Rewire     float64 `hcl:"rewire,optional"`     // Small-world rewiring probability.

	InitialColours []string `hcl:"initial_colours,optional"`
	ReserveColours []string `hcl:"reserve_colours,optional"`

	IntroChances  []float64 `hcl:"intro_chances,optional"`
	ChangeChances []float64 `hcl:"change_chances,optional"`

	PerturbEdges  int     `hcl:"perturb_edges,optional"`  // Edges added after convergence; 0 skips the perturbation phase.
	Weight        float64 `hcl:"weight,optional"`         // Fitness = colours + Weight * iterations.
	MaxIterations int     `hcl:"max_iterations,optional"` // Per convergence phase. 0 is unbounded.
	Seed          int64   `hcl:"seed,optional"`
	Threads       int     `hcl:"threads,optional"` // Concurrent trials.
}

func DefaultConfig() Config {
	return Config{
		Nodes:          200,
		Graphs:         5,
		Neighbours:     graph.SMALL_WORLD_K,
		Rewire:         graph.SMALL_WORLD_P,
		InitialColours: append([]string(nil), INITIAL_COLOURS...),
		ReserveColours: append([]string(nil), RESERVE_COLOURS...),
		IntroChances:   []float64{0.00001, 0.0001, 0.0005},
		ChangeChances:  []float64{0.5, 0.6, 0.7},
		PerturbEdges:   100,
		Weight:         0.01,
		MaxIterations:  1000000,
		Seed:           1,
		Threads:        runtime.NumCPU(),
	}
}

// LoadConfig decodes an HCL file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return cfg, errors.Wrapf(ErrInvalidConfig, "failed to parse %s: %s", path, diags.Error())
	}
	if diags = gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return cfg, errors.Wrapf(ErrInvalidConfig, "failed to decode %s: %s", path, diags.Error())
	}
	log.Debug().Msg("Loaded config " + path)
	return cfg, cfg.Validate()
}

func checkChances(name string, chances []float64) error {
	if len(chances) == 0 {
		return errors.Wrapf(ErrInvalidConfig, "%s is empty", name)
	}
	for _, c := range chances {
		if c < 0 || c > 1 {
			return errors.Wrapf(ErrInvalidConfig, "%s value %v outside [0,1]", name, c)
		}
	}
	return nil
}

func (cfg *Config) Validate() error {
	switch {
	case cfg.Neighbours < 2:
		return errors.Wrapf(ErrInvalidConfig, "neighbours %d, need at least 2", cfg.Neighbours)
	case cfg.Nodes < cfg.Neighbours+1:
		return errors.Wrapf(ErrInvalidConfig, "nodes %d, need at least neighbours+1=%d", cfg.Nodes, cfg.Neighbours+1)
	case cfg.Graphs < 1:
		return errors.Wrapf(ErrInvalidConfig, "graphs %d, need at least 1", cfg.Graphs)
	case cfg.Edges < 0 || cfg.Edges > cfg.Nodes*(cfg.Nodes-1)/2:
		return errors.Wrapf(ErrInvalidConfig, "edges %d outside [0,%d]", cfg.Edges, cfg.Nodes*(cfg.Nodes-1)/2)
	case cfg.Rewire < 0 || cfg.Rewire > 1:
		return errors.Wrapf(ErrInvalidConfig, "rewire %v outside [0,1]", cfg.Rewire)
	case len(cfg.InitialColours) < 2:
		return errors.Wrapf(ErrInvalidConfig, "initial_colours has %d entries, need at least 2", len(cfg.InitialColours))
	case cfg.PerturbEdges < 0:
		return errors.Wrapf(ErrInvalidConfig, "perturb_edges %d is negative", cfg.PerturbEdges)
	case cfg.Weight < 0:
		return errors.Wrapf(ErrInvalidConfig, "weight %v is negative", cfg.Weight)
	case cfg.MaxIterations < 0:
		return errors.Wrapf(ErrInvalidConfig, "max_iterations %d is negative", cfg.MaxIterations)
	case cfg.Threads < 1:
		return errors.Wrapf(ErrInvalidConfig, "threads %d, need at least 1", cfg.Threads)
	}
	if err := checkChances("intro_chances", cfg.IntroChances); err != nil {
		return err
	}
	if err := checkChances("change_chances", cfg.ChangeChances); err != nil {
		return err
	}
	if _, err := colouring.NewPalette(cfg.InitialColours, cfg.ReserveColours); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}

func (cfg *Config) generateOptions() graph.GenerateOptions {
	return graph.GenerateOptions{Nodes: cfg.Nodes, Edges: cfg.Edges, K: cfg.Neighbours, Rewire: cfg.Rewire}
}

func (cfg *Config) trials() int {
	return len(cfg.IntroChances) * len(cfg.ChangeChances) * cfg.Graphs
}

func (cfg *Config) String() string {
	return "Nodes: " + utils.V(cfg.Nodes) + " Graphs: " + utils.V(cfg.Graphs) + " Edges: " + utils.V(cfg.Edges) +
		" Intro: " + utils.V(cfg.IntroChances) + " Change: " + utils.V(cfg.ChangeChances) +
		" PerturbEdges: " + utils.V(cfg.PerturbEdges) + " Seed: " + utils.V(cfg.Seed) + " Threads: " + utils.V(cfg.Threads)
}
