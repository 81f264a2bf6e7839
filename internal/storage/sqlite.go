package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"galab/internal/stats"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run RunSummary) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, experiment, label, function, dimension, seed, generations, best_fitness, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			experiment = excluded.experiment,
			label = excluded.label,
			function = excluded.function,
			dimension = excluded.dimension,
			seed = excluded.seed,
			generations = excluded.generations,
			best_fitness = excluded.best_fitness,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at
	`, run.ID, run.Experiment, run.Label, run.Function, run.Dimension, run.Seed, run.Generations,
		run.BestFitness, run.StartedAt.UTC().Format(time.RFC3339Nano), run.FinishedAt.UTC().Format(time.RFC3339Nano))
	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (RunSummary, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return RunSummary{}, false, err
	}

	var (
		run               RunSummary
		started, finished string
	)
	err = db.QueryRowContext(ctx, `
		SELECT id, experiment, label, function, dimension, seed, generations, best_fitness, started_at, finished_at
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.Experiment, &run.Label, &run.Function, &run.Dimension, &run.Seed,
		&run.Generations, &run.BestFitness, &started, &finished)
	if errors.Is(err, sql.ErrNoRows) {
		return RunSummary{}, false, nil
	}
	if err != nil {
		return RunSummary{}, false, err
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return RunSummary{}, false, err
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return RunSummary{}, false, err
	}
	return run, true, nil
}

func (s *SQLiteStore) SaveGenerations(ctx context.Context, runID string, log []stats.Record) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM generations WHERE run_id = ?`, runID); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO generations (run_id, generation, nevals, avg, std, min, max)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range log {
		if _, err := stmt.ExecContext(ctx, runID, rec.Generation, rec.Evaluations, rec.Mean, rec.Std, rec.Min, rec.Max); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetGenerations(ctx context.Context, runID string) ([]stats.Record, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT generation, nevals, avg, std, min, max
		FROM generations WHERE run_id = ? ORDER BY generation
	`, runID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var log []stats.Record
	for rows.Next() {
		var rec stats.Record
		if err := rows.Scan(&rec.Generation, &rec.Evaluations, &rec.Mean, &rec.Std, &rec.Min, &rec.Max); err != nil {
			return nil, false, err
		}
		log = append(log, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	if len(log) == 0 {
		// a run saved with an empty log is still known
		var n int
		if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&n); err != nil {
			return nil, false, err
		}
		if n == 0 {
			return nil, false, nil
		}
		return []stats.Record{}, true, nil
	}
	return log, true, nil
}

func (s *SQLiteStore) SaveHallOfFame(ctx context.Context, runID string, champions []Champion) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(champions)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO hall_of_fame (run_id, payload)
		VALUES (?, ?)
		ON CONFLICT(run_id) DO UPDATE SET payload = excluded.payload
	`, runID, payload)
	return err
}

func (s *SQLiteStore) GetHallOfFame(ctx context.Context, runID string) ([]Champion, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM hall_of_fame WHERE run_id = ?`, runID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var champions []Champion
	if err := json.Unmarshal(payload, &champions); err != nil {
		return nil, false, err
	}
	return champions, true, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errNotInitialized
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			experiment TEXT NOT NULL,
			label TEXT NOT NULL,
			function TEXT NOT NULL,
			dimension INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			generations INTEGER NOT NULL,
			best_fitness REAL NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS generations (
			run_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			nevals INTEGER NOT NULL,
			avg REAL NOT NULL,
			std REAL NOT NULL,
			min REAL NOT NULL,
			max REAL NOT NULL,
			PRIMARY KEY (run_id, generation)
		);
		CREATE TABLE IF NOT EXISTS hall_of_fame (
			run_id TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		);
	`)
	return err
}
