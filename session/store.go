package session

import (
	"context"
	"sync"
	"time"
)

// Store persists sessions. Get returns nil, nil for an unknown id.
type Store interface {
	Save(ctx context.Context, s *State, ttl time.Duration) error
	Get(ctx context.Context, id string) (*State, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes sessions that are no longer valid at now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time, maxAge time.Duration) (int, error)
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]State)}
}

func (m *MemoryStore) Save(_ context.Context, s *State, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) DeleteExpired(_ context.Context, now time.Time, maxAge time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if !s.IsValid(now, maxAge) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}
