// Package store persists completed learn runs for the HTTP API.
//
// A [Run] records everything needed to reproduce and inspect a learning
// result: the learn parameters, the score, and the serialized network
// document. Two backends exist: [MemoryStore] for single-process serve mode
// and [MongoStore] for deployments that need runs to survive restarts.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrRunNotFound is returned by Get when no run has the given ID.
var ErrRunNotFound = errors.New("run not found")

// Run is one completed structure-learning run.
type Run struct {
	ID          string    `json:"id" bson:"_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	DatasetHash string    `json:"dataset_hash" bson:"dataset_hash"`
	Ordering    string    `json:"ordering" bson:"ordering"`
	Seed        uint64    `json:"seed" bson:"seed"`
	MaxParents  int       `json:"max_parents,omitempty" bson:"max_parents,omitempty"`
	Score       float64   `json:"score" bson:"score"`
	Variables   int       `json:"variables" bson:"variables"`
	Edges       int       `json:"edges" bson:"edges"`
	Network     []byte    `json:"network" bson:"network"` // JSON network document
}

// RunStore persists and retrieves runs.
// Implementations must be safe for concurrent use.
type RunStore interface {
	Put(ctx context.Context, run Run) error
	Get(ctx context.Context, id string) (Run, error)
	List(ctx context.Context, limit int) ([]Run, error)
	Close(ctx context.Context) error
}

// MemoryStore keeps runs in process memory. Runs are lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]Run
}

// NewMemoryStore creates an empty in-memory run store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]Run)}
}

// Put stores or replaces a run.
func (s *MemoryStore) Put(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// Get returns the run with the given ID or ErrRunNotFound.
func (s *MemoryStore) Get(ctx context.Context, id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return Run{}, ErrRunNotFound
	}
	return run, nil
}

// List returns up to limit runs, newest first. A non-positive limit returns
// all runs.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].CreatedAt.After(runs[j].CreatedAt) })
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements RunStore.
var _ RunStore = (*MemoryStore)(nil)
