package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"galab/internal/config"
	"galab/internal/experiment"
	"galab/internal/storage"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file (built-in defaults when empty)")
	generations := flag.Int("generations", -1, "override the number of generations")
	only := flag.String("experiment", "", "run only the named experiment")
	seed := flag.Int64("seed", 0, "override the random seed")
	flag.Parse()

	// Load config
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	for i := range cfg.Experiments {
		if *generations >= 0 {
			cfg.Experiments[i].Generations = *generations
		}
		if *seed != 0 {
			cfg.Experiments[i].Seed = *seed
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	experiments := cfg.Experiments
	if *only != "" {
		exp, ok := cfg.Experiment(*only)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown experiment %q\n", *only)
			os.Exit(1)
		}
		experiments = []config.ExperimentConfig{exp}
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.SetLevel(level)

	ctx := context.Background()
	store, err := storage.NewStore(cfg.Storage.Kind, cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating store: %v\n", err)
		os.Exit(1)
	}
	if err := store.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing store: %v\n", err)
		os.Exit(1)
	}
	defer storage.CloseIfSupported(store)

	runner := &experiment.Runner{
		Config:  cfg,
		Store:   store,
		Log:     log,
		Console: os.Stdout,
	}

	fmt.Printf("GA experiments - function: %s, dimension: %d\n", cfg.GA.Function, cfg.GA.Dimension)
	fmt.Printf("Population: %d, Lambda: %d, CXPB: %.2f, MUTPB: %.2f\n",
		cfg.GA.Population, cfg.Lambda(), cfg.GA.CrossoverRate, cfg.GA.MutationRate)
	fmt.Println("---")

	for _, exp := range experiments {
		result, err := runner.Run(ctx, exp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running %s: %v\n", exp.Name, err)
			storage.CloseIfSupported(store)
			os.Exit(1)
		}
		if result.PlotPath != "" {
			fmt.Printf("Convergence plot: %s\n", result.PlotPath)
		}
		fmt.Println("---")
	}
}
