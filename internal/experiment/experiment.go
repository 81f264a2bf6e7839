// Package experiment wires a configured run: it builds the toolbox for one
// experiment variant, drives the generations, and writes the log, the hall
// of fame, the convergence plot and the stored run summary.
package experiment

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"galab/internal/config"
	"galab/internal/eval"
	"galab/internal/ga"
	"galab/internal/logging"
	"galab/internal/stats"
	"galab/internal/storage"
)

// Build creates the algorithm for one experiment variant
func Build(cfg *config.Config, exp config.ExperimentConfig) (*ga.Algorithm, *eval.Evaluator, error) {
	fn, err := eval.Lookup(exp.Function)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	evaluator := eval.NewEvaluator(fn)

	toolbox := ga.Toolbox{
		Evaluate: evaluator,
		Select:   ga.TournamentSelector{Size: cfg.GA.TournamentK},
	}

	switch exp.Init {
	case "wide":
		toolbox.Init = ga.WideInit()
	case "narrow":
		toolbox.Init = ga.NarrowInit()
	default:
		return nil, nil, fmt.Errorf("%w: unknown init %q", config.ErrInvalidConfig, exp.Init)
	}

	switch exp.Mutation {
	case "elementwise":
		toolbox.Mutate = ga.NewElementwiseMutator()
	case "single":
		toolbox.Mutate = ga.NewSingleIndexMutator()
	case "gaussian":
		toolbox.Mutate = ga.NewGaussianMutator()
	default:
		return nil, nil, fmt.Errorf("%w: unknown mutation %q", config.ErrInvalidConfig, exp.Mutation)
	}

	switch cfg.GA.Crossover {
	case "onepoint":
		toolbox.Mate = ga.OnePointCrossover{}
	case "uniform":
		toolbox.Mate = ga.UniformCrossover{Rate: 0.5}
	default:
		return nil, nil, fmt.Errorf("%w: unknown crossover %q", config.ErrInvalidConfig, cfg.GA.Crossover)
	}

	params := ga.Params{
		Dimension:      cfg.GA.Dimension,
		Mu:             cfg.GA.Population,
		Lambda:         cfg.Lambda(),
		CXPB:           cfg.GA.CrossoverRate,
		MUTPB:          cfg.GA.MutationRate,
		Generations:    exp.Generations,
		HallOfFameSize: cfg.GA.HallOfFame,
		Weight:         cfg.Weight(),
	}

	rng := rand.New(rand.NewSource(exp.Seed))
	alg, err := ga.NewAlgorithm(rng, toolbox, params)
	if err != nil {
		return nil, nil, err
	}
	return alg, evaluator, nil
}

// Result is what a finished run leaves behind
type Result struct {
	RunID     string
	Log       []stats.Record
	Champions []storage.Champion
	PlotPath  string
}

// Best returns the top hall-of-fame entry, if any
func (r Result) Best() (storage.Champion, bool) {
	if len(r.Champions) == 0 {
		return storage.Champion{}, false
	}
	return r.Champions[0], true
}

// Runner executes experiments against shared outputs
type Runner struct {
	Config  *config.Config
	Store   storage.Store
	Log     *logrus.Logger
	Console io.Writer
}

// Run executes one experiment to completion. Any error aborts the run.
func (r *Runner) Run(ctx context.Context, exp config.ExperimentConfig) (Result, error) {
	alg, evaluator, err := Build(r.Config, exp)
	if err != nil {
		return Result{}, err
	}

	runID := uuid.NewString()
	entry := r.logger().WithFields(logrus.Fields{
		"run":        runID,
		"experiment": exp.Name,
	})

	dir := r.Config.Logging.Dir
	progress := r.Console
	if r.Config.Logging.Quiet {
		progress = nil
	}
	logger, err := logging.NewLogger(
		filepath.Join(dir, exp.Name+".csv"),
		filepath.Join(dir, exp.Name+".jsonl"),
		progress,
		entry,
	)
	if err != nil {
		return Result{}, fmt.Errorf("create logger: %w", err)
	}
	if err := logger.Init(); err != nil {
		return Result{}, fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	entry.WithFields(logrus.Fields{
		"label":       exp.Label,
		"function":    exp.Function,
		"dimension":   r.Config.GA.Dimension,
		"population":  r.Config.GA.Population,
		"lambda":      r.Config.Lambda(),
		"generations": exp.Generations,
		"seed":        exp.Seed,
	}).Info("run started")

	startedAt := time.Now()
	result := Result{RunID: runID}
	for rec, err := range alg.Generations() {
		if err != nil {
			entry.WithError(err).Error("run aborted")
			return result, err
		}
		if err := logger.LogGeneration(rec); err != nil {
			return result, fmt.Errorf("log generation %d: %w", rec.Generation, err)
		}
		if rec.Generation%10 == 0 {
			logger.LogTopK(alg.HallOfFame(), r.Config.Logging.TopNDebug)
		}
		result.Log = append(result.Log, rec)
	}
	finishedAt := time.Now()

	result.Champions = logging.Champions(alg.HallOfFame())
	if best, ok := result.Best(); ok && r.Console != nil {
		fmt.Fprintf(r.Console, "Best = %v\n", best.Genome)
		fmt.Fprintf(r.Console, "Best fit = %v\n", best.Fitness)
	}

	artifact := logging.HallOfFameArtifact{
		RunID:      runID,
		Label:      exp.Label,
		Generation: len(result.Log),
		Champions:  result.Champions,
	}
	if err := logging.SaveHallOfFame(filepath.Join(dir, exp.Name+"_hof.json"), artifact); err != nil {
		entry.WithError(err).Warn("failed to save hall of fame")
	}

	if len(result.Log) > 0 && r.Config.Logging.Plot != "none" {
		result.PlotPath = filepath.Join(dir, exp.Name+"."+r.Config.Logging.Plot)
		if err := stats.Plot(result.Log, exp.Label, result.PlotPath); err != nil {
			entry.WithError(err).Warn("failed to render convergence plot")
			result.PlotPath = ""
		}
	}

	if err := r.persist(ctx, exp, result, startedAt, finishedAt); err != nil {
		return result, fmt.Errorf("persist run: %w", err)
	}

	if r.Console != nil {
		logging.WriteReport(r.Console, exp.Label, result.Log, result.Champions)
	}

	entry.WithFields(logrus.Fields{
		"evaluations": evaluator.Count(),
		"elapsed":     finishedAt.Sub(startedAt).String(),
	}).Info("run finished")
	return result, nil
}

func (r *Runner) persist(ctx context.Context, exp config.ExperimentConfig, result Result, startedAt, finishedAt time.Time) error {
	if r.Store == nil {
		return nil
	}
	summary := storage.RunSummary{
		ID:          result.RunID,
		Experiment:  exp.Name,
		Label:       exp.Label,
		Function:    exp.Function,
		Dimension:   r.Config.GA.Dimension,
		Seed:        exp.Seed,
		Generations: len(result.Log),
		StartedAt:   startedAt,
		FinishedAt:  finishedAt,
	}
	if best, ok := result.Best(); ok {
		summary.BestFitness = best.Fitness
	}
	if err := r.Store.SaveRun(ctx, summary); err != nil {
		return err
	}
	if err := r.Store.SaveGenerations(ctx, result.RunID, result.Log); err != nil {
		return err
	}
	return r.Store.SaveHallOfFame(ctx, result.RunID, result.Champions)
}

func (r *Runner) logger() *logrus.Logger {
	if r.Log != nil {
		return r.Log
	}
	return logrus.StandardLogger()
}
