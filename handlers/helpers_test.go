package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/andrewpaige1/quizset-api/auth"
	"github.com/andrewpaige1/quizset-api/config"
	"github.com/andrewpaige1/quizset-api/session"
)

func newTestHandler(t *testing.T) *DBHandler {
	t.Helper()
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, t.Name())
	db, err := config.Connect(&config.Config{
		DBDriver: config.DriverSQLite,
		DBURL:    "file:handlers_" + name + "?mode=memory&cache=shared",
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	tokens, err := auth.NewIssuer("test-secret", "quiz-api", "quiz-client")
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	return NewDBHandler(db, session.NewManager(session.NewMemoryStore(), time.Hour), tokens)
}

func newTestServer(t *testing.T) (*DBHandler, http.Handler) {
	t.Helper()
	h := newTestHandler(t)
	return h, NewRouter(h, nil)
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

func expectMessage(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	got := decode[map[string]interface{}](t, rec)["message"]
	if got != want {
		t.Errorf("message = %v, want %q", got, want)
	}
}

type setBody struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

type questionBody struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Set           *setBody `json:"set"`
}

func createSet(t *testing.T, handler http.Handler, name string) setBody {
	t.Helper()
	rec := doRequest(t, handler, http.MethodPost, "/api/sets", `{"name":"`+name+`"}`)
	expectStatus(t, rec, http.StatusCreated)
	sets := decode[[]setBody](t, rec)
	if len(sets) != 1 {
		t.Fatalf("create set returned %d sets", len(sets))
	}
	return sets[0]
}

func createQuestion(t *testing.T, handler http.Handler, set string) questionBody {
	t.Helper()
	body := `{"question":"2 + 2?","options":["3","4"],"correctAnswer":"4","set":"` + set + `"}`
	rec := doRequest(t, handler, http.MethodPost, "/api/questions", body)
	expectStatus(t, rec, http.StatusCreated)
	return decode[struct {
		Question questionBody `json:"question"`
	}](t, rec).Question
}
