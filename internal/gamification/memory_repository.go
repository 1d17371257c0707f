package gamification

import (
	"context"
	"sync"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Data                // userID -> record
	customs map[string]map[string]Challenge // userID -> challengeID -> challenge
}

// NewMemoryRepository returns an in-memory store for local development and tests.
// It serves both gamification records and custom challenges.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[string]*Data),
		customs: make(map[string]map[string]Challenge),
	}
}

func (r *MemoryRepository) Get(_ context.Context, userID string) (*Data, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.records[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return data.clone(), nil
}

func (r *MemoryRepository) Put(_ context.Context, userID string, data *Data) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[userID] = data.clone()
	return nil
}

// Customs exposes the custom challenge half of the store.
func (r *MemoryRepository) Customs() CustomChallengeRepository {
	return memoryCustoms{r}
}

type memoryCustoms struct {
	r *MemoryRepository
}

func (m memoryCustoms) List(_ context.Context, userID string) ([]Challenge, error) {
	m.r.mu.RLock()
	defer m.r.mu.RUnlock()

	out := make([]Challenge, 0, len(m.r.customs[userID]))
	for _, ch := range m.r.customs[userID] {
		out = append(out, ch)
	}
	return out, nil
}

func (m memoryCustoms) Get(_ context.Context, userID, challengeID string) (Challenge, error) {
	m.r.mu.RLock()
	defer m.r.mu.RUnlock()

	ch, ok := m.r.customs[userID][challengeID]
	if !ok {
		return Challenge{}, ErrNotFound
	}
	return ch, nil
}

func (m memoryCustoms) Put(_ context.Context, userID string, challenge Challenge) error {
	m.r.mu.Lock()
	defer m.r.mu.Unlock()

	userStore, ok := m.r.customs[userID]
	if !ok {
		userStore = make(map[string]Challenge)
		m.r.customs[userID] = userStore
	}
	userStore[challenge.ID] = challenge
	return nil
}

func (m memoryCustoms) Delete(_ context.Context, userID, challengeID string) error {
	m.r.mu.Lock()
	defer m.r.mu.Unlock()

	if _, ok := m.r.customs[userID][challengeID]; !ok {
		return ErrNotFound
	}
	delete(m.r.customs[userID], challengeID)
	return nil
}
