package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andrewpaige1/quizset-api/auth"
	"github.com/andrewpaige1/quizset-api/session"
	"github.com/andrewpaige1/quizset-api/utils"
)

func setup(t *testing.T) (*auth.Issuer, *session.Manager, http.Handler) {
	t.Helper()
	issuer, err := auth.NewIssuer("test-secret", "quiz-api", "quiz-client")
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	sessions := session.NewManager(session.NewMemoryStore(), time.Hour)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, userID, _ := utils.GetSessionClaims(r)
		w.Header().Set("X-User", userID)
		w.WriteHeader(http.StatusNoContent)
	})
	return issuer, sessions, EnsureValidToken(issuer)(RequireSession(sessions, ok))
}

func serve(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/sets", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequireSession(t *testing.T) {
	issuer, sessions, h := setup(t)
	ctx := context.Background()

	s, err := sessions.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	token, err := issuer.CreateToken(s.ID, s.UserID, s.IssuedAt, s.ExpiresAt(sessions.MaxAge()))
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	rec := serve(h, token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("valid token: status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-User"); got != "user-1" {
		t.Errorf("user from claims = %q, want user-1", got)
	}

	if rec := serve(h, ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}
	if rec := serve(h, "garbage"); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", rec.Code)
	}

	if err := sessions.Clear(ctx, s.ID); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if rec := serve(h, token); rec.Code != http.StatusUnauthorized {
		t.Errorf("cleared session: status = %d, want 401", rec.Code)
	}
}

func TestRequestLogger_RecordsStatus(t *testing.T) {
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}
