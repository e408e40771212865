package handlers

import (
	"net/http"
	"testing"

	"github.com/andrewpaige1/quizset-api/middleware"
)

type sessionResponse struct {
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason"`
	Token   string `json:"token"`
	Session struct {
		ID     string `json:"sessionId"`
		UserID string `json:"userId"`
	} `json:"session"`
}

func createUser(t *testing.T, srv http.Handler) userBody {
	t.Helper()
	rec := doRequest(t, srv, http.MethodPost, "/api/users", `{"name":"A","email":"a@x.com"}`)
	expectStatus(t, rec, http.StatusCreated)
	return decode[[]userBody](t, rec)[0]
}

func TestSessionLifecycle(t *testing.T) {
	_, srv := newTestServer(t)
	user := createUser(t, srv)

	rec := doRequest(t, srv, http.MethodPost, "/api/sessions", `{"userId":"`+user.ID+`"}`)
	expectStatus(t, rec, http.StatusCreated)
	created := decode[sessionResponse](t, rec)
	if created.Session.ID == "" || created.Session.UserID != user.ID {
		t.Fatalf("created session = %+v", created.Session)
	}
	if created.Token == "" {
		t.Error("token should be issued when an issuer is configured")
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/sessions/"+created.Session.ID, "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[sessionResponse](t, rec); !got.Valid {
		t.Errorf("session check = %+v, want valid", got)
	}

	rec = doRequest(t, srv, http.MethodPut, "/api/sessions/"+created.Session.ID+"/activity", "")
	expectStatus(t, rec, http.StatusOK)

	rec = doRequest(t, srv, http.MethodDelete, "/api/sessions/"+created.Session.ID, "")
	expectStatus(t, rec, http.StatusOK)
	expectMessage(t, rec, "Session cleared")

	rec = doRequest(t, srv, http.MethodGet, "/api/sessions/"+created.Session.ID, "")
	expectStatus(t, rec, http.StatusUnauthorized)
	if got := decode[sessionResponse](t, rec); got.Valid || got.Reason != "No session found" {
		t.Errorf("cleared session check = %+v", got)
	}
}

func TestCreateSession_Errors(t *testing.T) {
	_, srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/sessions", `{}`)
	expectStatus(t, rec, http.StatusBadRequest)
	expectMessage(t, rec, "userId is required")

	rec = doRequest(t, srv, http.MethodPost, "/api/sessions", `{"userId":"ffffffffffffffffffffffff"}`)
	expectStatus(t, rec, http.StatusNotFound)
	expectMessage(t, rec, "User not found")
}

func TestGuardedRoutes(t *testing.T) {
	h := newTestHandler(t)
	guard := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireSession(h.Sessions, next)
	}
	srv := middleware.EnsureValidToken(h.Tokens)(NewRouter(h, guard))
	user := createUser(t, srv)

	// Reads stay open.
	expectStatus(t, doRequest(t, srv, http.MethodGet, "/api/sets", ""), http.StatusOK)

	rec := doRequest(t, srv, http.MethodPost, "/api/sets", `{"name":"Math"}`)
	expectStatus(t, rec, http.StatusUnauthorized)

	rec = doRequest(t, srv, http.MethodPost, "/api/sets", `{"name":"Math"}`, "Authorization", "Bearer not-a-token")
	expectStatus(t, rec, http.StatusUnauthorized)
	expectMessage(t, rec, "Invalid token")

	rec = doRequest(t, srv, http.MethodPost, "/api/sessions", `{"userId":"`+user.ID+`"}`)
	expectStatus(t, rec, http.StatusCreated)
	created := decode[sessionResponse](t, rec)
	bearer := "Bearer " + created.Token

	rec = doRequest(t, srv, http.MethodPost, "/api/sets", `{"name":"Math"}`, "Authorization", bearer)
	expectStatus(t, rec, http.StatusCreated)

	expectStatus(t, doRequest(t, srv, http.MethodDelete, "/api/sessions/"+created.Session.ID, ""), http.StatusOK)
	rec = doRequest(t, srv, http.MethodPost, "/api/sets", `{"name":"History"}`, "Authorization", bearer)
	expectStatus(t, rec, http.StatusUnauthorized)
	expectMessage(t, rec, "No session found")
}

func TestHealth(t *testing.T) {
	_, srv := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/healthz", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[map[string]string](t, rec)["status"]; got != "ok" {
		t.Errorf("status = %q, want ok", got)
	}
}
