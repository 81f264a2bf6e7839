package storage

import (
	"context"
	"errors"
	"slices"
	"sync"

	"galab/internal/stats"
)

var errNotInitialized = errors.New("store is not initialized")

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]RunSummary
	generations map[string][]stats.Record
	champions   map[string][]Champion
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]RunSummary)
	s.generations = make(map[string][]stats.Record)
	s.champions = make(map[string][]Champion)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run RunSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (RunSummary, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) SaveGenerations(_ context.Context, runID string, log []stats.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	s.generations[runID] = slices.Clone(log)
	return nil
}

func (s *MemoryStore) GetGenerations(_ context.Context, runID string) ([]stats.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.generations[runID]
	if len(log) == 0 {
		if _, known := s.runs[runID]; !known {
			return nil, false, nil
		}
		return []stats.Record{}, true, nil
	}
	return slices.Clone(log), true, nil
}

func (s *MemoryStore) SaveHallOfFame(_ context.Context, runID string, champions []Champion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	s.champions[runID] = cloneChampions(champions)
	return nil
}

func (s *MemoryStore) GetHallOfFame(_ context.Context, runID string) ([]Champion, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	champions, ok := s.champions[runID]
	if !ok {
		return nil, false, nil
	}
	return cloneChampions(champions), true, nil
}

func cloneChampions(in []Champion) []Champion {
	out := make([]Champion, len(in))
	for i, c := range in {
		c.Genome = slices.Clone(c.Genome)
		out[i] = c
	}
	return out
}
