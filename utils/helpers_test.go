package utils

import (
	"context"
	"net/http/httptest"
	"testing"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/golang-jwt/jwt/v5"
)

func TestQueryBool(t *testing.T) {
	testCases := []struct {
		query string
		want  bool
	}{
		{"", false},
		{"?includeInactive=true", true},
		{"?includeInactive=1", true},
		{"?includeInactive=TRUE", true},
		{"?includeInactive=false", false},
		{"?includeInactive=False", false},
		{"?includeInactive=0", false},
		{"?includeInactive=", false},
		{"?includeInactive=yes", true},
		{"?includeInactive=on", true},
		{"?other=true", false},
	}
	for _, tc := range testCases {
		r := httptest.NewRequest("GET", "/api/questions/by-set/x"+tc.query, nil)
		if got := QueryBool(r, "includeInactive"); got != tc.want {
			t.Errorf("QueryBool(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestGetSessionClaims(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if _, _, ok := GetSessionClaims(r); ok {
		t.Error("request without claims should not be ok")
	}

	claims := &jwt.RegisteredClaims{ID: "sess-1", Subject: "user-1"}
	r = r.WithContext(context.WithValue(r.Context(), jwtmiddleware.ContextKey{}, claims))
	sessionID, userID, ok := GetSessionClaims(r)
	if !ok || sessionID != "sess-1" || userID != "user-1" {
		t.Errorf("GetSessionClaims = %q, %q, %v", sessionID, userID, ok)
	}
}
