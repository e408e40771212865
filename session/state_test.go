package session

import (
	"testing"
	"time"
)

func TestState_IsValid(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := &State{ID: "s1", UserID: "u1", IssuedAt: issued, LastSeenAt: issued}

	testCases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"just issued", issued, true},
		{"one hour later", issued.Add(time.Hour), true},
		{"exactly max age", issued.Add(DefaultMaxAge), true},
		{"past max age", issued.Add(DefaultMaxAge + time.Second), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.IsValid(tc.now, DefaultMaxAge); got != tc.want {
				t.Errorf("IsValid = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestState_IsValid_ZeroAndNil(t *testing.T) {
	var nilState *State
	if nilState.IsValid(time.Now(), DefaultMaxAge) {
		t.Error("nil state should not be valid")
	}
	if (&State{ID: "s1"}).IsValid(time.Now(), DefaultMaxAge) {
		t.Error("state without login time should not be valid")
	}
}

func TestState_TouchDoesNotExtendLifetime(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := &State{ID: "s1", IssuedAt: issued, LastSeenAt: issued}

	later := issued.Add(23 * time.Hour)
	s.Touch(later)
	if !s.LastSeenAt.Equal(later) {
		t.Errorf("LastSeenAt = %v, want %v", s.LastSeenAt, later)
	}
	if s.IsValid(issued.Add(DefaultMaxAge+time.Minute), DefaultMaxAge) {
		t.Error("activity must not extend the session past its max age")
	}

	s.Touch(issued)
	if !s.LastSeenAt.Equal(later) {
		t.Error("Touch with an earlier time should not move LastSeenAt back")
	}
}
