package activity

import (
	"context"
	"sync"

	"github.com/carboloom/carboloom/internal/habits"
)

type memoryRepository struct {
	mu    sync.RWMutex
	store map[string]map[string]habits.LogEntry // userID -> date -> entry
}

// NewMemoryRepository returns an in-memory repository intended for local development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		store: make(map[string]map[string]habits.LogEntry),
	}
}

func (r *memoryRepository) List(_ context.Context, userID string) ([]habits.LogEntry, error) {
	r.mu.RLock()
	snapshot := make([]habits.LogEntry, 0, len(r.store[userID]))
	for _, entry := range r.store[userID] {
		snapshot = append(snapshot, habits.LogEntry{Date: entry.Date, Habits: entry.Habits.Clone()})
	}
	r.mu.RUnlock()

	habits.SortByDate(snapshot)
	return snapshot, nil
}

func (r *memoryRepository) Get(_ context.Context, userID, date string) (habits.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.store[userID][date]
	if !ok {
		return habits.LogEntry{}, ErrNotFound
	}
	return habits.LogEntry{Date: entry.Date, Habits: entry.Habits.Clone()}, nil
}

func (r *memoryRepository) Upsert(_ context.Context, userID string, entry habits.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	userStore, ok := r.store[userID]
	if !ok {
		userStore = make(map[string]habits.LogEntry)
		r.store[userID] = userStore
	}
	userStore[entry.Date] = habits.LogEntry{Date: entry.Date, Habits: entry.Habits.Clone()}
	return nil
}
