package session

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoSession = errors.New("session: not found")
	ErrExpired   = errors.New("session: expired")
)

// Reason is the client facing explanation for a failed check.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrNoSession):
		return "No session found"
	case errors.Is(err, ErrExpired):
		return "Session expired"
	default:
		return "Invalid session data"
	}
}

// Manager creates and checks sessions against a Store.
type Manager struct {
	store  Store
	maxAge time.Duration
	now    func() time.Time
}

func NewManager(store Store, maxAge time.Duration) *Manager {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Manager{store: store, maxAge: maxAge, now: time.Now}
}

// MaxAge is the session lifetime.
func (m *Manager) MaxAge() time.Duration { return m.maxAge }

// Create starts a session for userID.
func (m *Manager) Create(ctx context.Context, userID string) (*State, error) {
	now := m.now().UTC()
	s := &State{
		ID:         uuid.NewString(),
		UserID:     userID,
		IssuedAt:   now,
		LastSeenAt: now,
	}
	if err := m.store.Save(ctx, s, m.maxAge); err != nil {
		return nil, err
	}
	return s, nil
}

// Check returns the session if it is still valid and records activity on it.
// An expired session is removed.
func (m *Manager) Check(ctx context.Context, id string) (*State, error) {
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNoSession
	}
	now := m.now().UTC()
	if !s.IsValid(now, m.maxAge) {
		if err := m.store.Delete(ctx, id); err != nil {
			log.Printf("session: failed to delete expired session %s: %v", id, err)
		}
		return nil, ErrExpired
	}
	s.Touch(now)
	if err := m.store.Save(ctx, s, s.ExpiresAt(m.maxAge).Sub(now)); err != nil {
		return nil, err
	}
	return s, nil
}

// Touch records client activity on a valid session.
func (m *Manager) Touch(ctx context.Context, id string) (*State, error) {
	return m.Check(ctx, id)
}

// Clear ends a session. Clearing an unknown session succeeds.
func (m *Manager) Clear(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

// Sweep removes every expired session.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	return m.store.DeleteExpired(ctx, m.now().UTC(), m.maxAge)
}

// Run sweeps expired sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := m.Sweep(ctx)
			if err != nil {
				log.Printf("session: sweep failed: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("session: removed %d expired sessions", removed)
			}
		}
	}
}
