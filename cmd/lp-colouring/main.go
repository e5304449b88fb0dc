package main

import (
	"context"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"runtime"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/colourstab/experiment"
	"github.com/ScottSallinen/colourstab/utils"
)

type options struct {
	mode   string
	metric string
	output string
}

// Flags override values from the config file only when given explicitly.
func flagsToConfig() (cfg experiment.Config, opts options) {
	configPtr := flag.String("config", "", "HCL experiment config. Attributes not in the file keep their defaults.")
	modePtr := flag.String("mode", "sweep", "sweep: every graph under every (intro, change) grid point. study: every graph at the first grid point, before and after perturbation.")
	nodesPtr := flag.Int("n", 200, "Vertices per graph.")
	graphsPtr := flag.Int("graphs", 5, "Graphs generated (once) per run.")
	edgesPtr := flag.Int("e", 0, "Pad each small world with random edges up to this count. 0 disables.")
	threadPtr := flag.Int("t", runtime.NumCPU(), "Concurrent trials.")
	seedPtr := flag.Int64("seed", 1, "Seed for graph generation and every trial.")
	maxIterPtr := flag.Int("maxiter", 1000000, "Iteration limit per convergence phase; a trial reaching it is recorded as failed. 0 is unbounded.")
	perturbPtr := flag.Int("p", 100, "Edges added after convergence. 0 skips the perturbation phase.")
	weightPtr := flag.Float64("weight", 0.01, "Fitness weight of the iteration count.")
	metricPtr := flag.String("metric", "fitness", "Metric for the sweep output: fitness, colours, iterations, perturbed-colours, perturbed-iterations or failed.")
	outputPtr := flag.String("o", "results/grid_search_results.csv", "Sweep CSV output. Empty skips writing.")
	pprofPtr := flag.String("pprof", "", "If set, will serve pprof on the given address:port. E.g.\"0.0.0.0:6060\".")
	debugPtr := flag.Int("debug", 0, "Level 0 for info, 1 for debug (per trial events), 2 adds per iteration conflict counts.")
	colourPtr := flag.Bool("nc", false, "Removes the colouring from the log output.")
	flag.Parse()

	utils.SetLoggerConsole(os.Stdout, *colourPtr)
	utils.SetLevel(*debugPtr)

	if *pprofPtr != "" {
		go func() {
			log.Warn().Err(http.ListenAndServe(*pprofPtr, nil)).Msg("pprof server stopped.")
		}()
	}

	cfg = experiment.DefaultConfig()
	if *configPtr != "" {
		var err error
		if cfg, err = experiment.LoadConfig(*configPtr); err != nil {
			log.Fatal().Err(err).Msg("Failed to load config.")
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.Nodes = *nodesPtr
		case "graphs":
			cfg.Graphs = *graphsPtr
		case "e":
			cfg.Edges = *edgesPtr
		case "t":
			cfg.Threads = *threadPtr
		case "seed":
			cfg.Seed = *seedPtr
		case "maxiter":
			cfg.MaxIterations = *maxIterPtr
		case "p":
			cfg.PerturbEdges = *perturbPtr
		case "weight":
			cfg.Weight = *weightPtr
		}
	})

	if *modePtr != "sweep" && *modePtr != "study" {
		log.Error().Msg("Unknown mode: " + *modePtr)
		flag.Usage()
		os.Exit(1)
	}
	return cfg, options{mode: *modePtr, metric: *metricPtr, output: *outputPtr}
}

func main() {
	cfg, opts := flagsToConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	h, err := experiment.NewHarness(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration.")
	}
	log.Info().Msg(cfg.String())

	switch opts.mode {
	case "study":
		r, err := h.Study(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Study failed.")
		}
		r.Log()
	case "sweep":
		m, err := h.Sweep(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Sweep failed.")
		}
		m.Log(opts.metric)
		if opts.output == "" {
			return
		}
		file := utils.CreateFile(opts.output)
		defer file.Close()
		if err := m.WriteCSV(file, opts.metric); err != nil {
			log.Fatal().Err(err).Msg("Failed to write " + opts.output)
		}
		log.Info().Msg("Wrote " + opts.metric + " grid to " + opts.output)
	}
}
