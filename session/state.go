// Package session keeps the login sessions of roster users. A session lives for
// a fixed time after login; activity is recorded but does not extend it.
package session

import "time"

// DefaultMaxAge is the absolute lifetime of a session.
const DefaultMaxAge = 24 * time.Hour

// State is one login session.
type State struct {
	ID         string    `json:"sessionId"`
	UserID     string    `json:"userId"`
	IssuedAt   time.Time `json:"loginTime"`
	LastSeenAt time.Time `json:"lastActivity"`
}

// IsValid reports whether the session is still within maxAge of its login time.
func (s *State) IsValid(now time.Time, maxAge time.Duration) bool {
	if s == nil || s.IssuedAt.IsZero() {
		return false
	}
	return now.Sub(s.IssuedAt) <= maxAge
}

// ExpiresAt is the instant the session stops being valid.
func (s *State) ExpiresAt(maxAge time.Duration) time.Time {
	return s.IssuedAt.Add(maxAge)
}

// Touch records activity at now.
func (s *State) Touch(now time.Time) {
	if now.After(s.LastSeenAt) {
		s.LastSeenAt = now
	}
}
