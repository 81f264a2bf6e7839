package storage

import (
	"context"
	"time"

	"galab/internal/stats"
)

// RunSummary describes one finished experiment run
type RunSummary struct {
	ID          string    `json:"id"`
	Experiment  string    `json:"experiment"`
	Label       string    `json:"label"`
	Function    string    `json:"function"`
	Dimension   int       `json:"dimension"`
	Seed        int64     `json:"seed"`
	Generations int       `json:"generations"`
	BestFitness float64   `json:"best_fitness"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// Champion is one hall-of-fame entry, rank 1 being the best
type Champion struct {
	Rank    int       `json:"rank"`
	Fitness float64   `json:"fitness"`
	Genome  []float64 `json:"genome"`
}

// Store persists run results. Populations are never stored.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run RunSummary) error
	GetRun(ctx context.Context, id string) (RunSummary, bool, error)
	SaveGenerations(ctx context.Context, runID string, log []stats.Record) error
	GetGenerations(ctx context.Context, runID string) ([]stats.Record, bool, error)
	SaveHallOfFame(ctx context.Context, runID string, champions []Champion) error
	GetHallOfFame(ctx context.Context, runID string) ([]Champion, bool, error)
}
