package store

import (
	"sync"

	"energy_scheduler/internal/model"
)

// Store keeps completed optimization runs in memory, in completion order.
type Store struct {
	mu     sync.RWMutex
	runs   []model.OptimizationRun
	nextID int
}

func New() *Store {
	return &Store{nextID: 1}
}

// Add records a run, assigns its ID and returns the stored copy.
func (s *Store) Add(run model.OptimizationRun) model.OptimizationRun {
	s.mu.Lock()
	defer s.mu.Unlock()

	run.ID = s.nextID
	s.nextID++
	s.runs = append(s.runs, run)
	return run
}

// Runs returns a copy of all recorded runs, oldest first.
func (s *Store) Runs() []model.OptimizationRun {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.OptimizationRun, len(s.runs))
	copy(out, s.runs)
	return out
}

// Latest returns the most recently recorded run.
func (s *Store) Latest() (model.OptimizationRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.runs) == 0 {
		return model.OptimizationRun{}, false
	}
	return s.runs[len(s.runs)-1], true
}

// Len returns the number of recorded runs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
