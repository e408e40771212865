package handlers

import "net/http"

// Guard wraps a mutating handler, for example to require a live session.
type Guard func(http.HandlerFunc) http.HandlerFunc

// NewRouter registers every API route on a new mux. guard may be nil.
func NewRouter(h *DBHandler, guard Guard) *http.ServeMux {
	if guard == nil {
		guard = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}
	mux := http.NewServeMux()

	// Users
	mux.HandleFunc("GET /api/users", h.GetUsers)
	mux.HandleFunc("POST /api/users", h.CreateUsers)
	mux.HandleFunc("DELETE /api/users/{userID}", h.DeleteUserByID)

	// Sets
	mux.HandleFunc("GET /api/sets", h.GetSets)
	mux.HandleFunc("GET /api/sets/active", h.GetActiveSet)
	mux.HandleFunc("POST /api/sets", guard(h.CreateSets))
	mux.HandleFunc("PUT /api/sets/deactivate", guard(h.DeactivateSets))
	mux.HandleFunc("PUT /api/sets/{setID}", guard(h.UpdateSetByID))
	mux.HandleFunc("PUT /api/sets/{setID}/activate", guard(h.ActivateSetByID))
	mux.HandleFunc("DELETE /api/sets/{setID}", guard(h.DeleteSetByID))

	// Questions
	mux.HandleFunc("GET /api/questions", h.GetQuestions)
	mux.HandleFunc("GET /api/questions/by-set/{setID}", h.GetQuestionsBySet)
	mux.HandleFunc("POST /api/questions", guard(h.CreateQuestions))
	mux.HandleFunc("PUT /api/questions/{questionID}", guard(h.UpdateQuestionByID))
	mux.HandleFunc("PUT /api/questions/{questionID}/toggle-set-status", guard(h.ToggleQuestionSetStatus))
	mux.HandleFunc("DELETE /api/questions/{questionID}", guard(h.DeleteQuestionByID))
	mux.HandleFunc("DELETE /api/questions/by-set/{setID}", guard(h.DeleteQuestionsBySet))

	// Sessions
	mux.HandleFunc("POST /api/sessions", h.CreateSession)
	mux.HandleFunc("GET /api/sessions/{sessionID}", h.GetSession)
	mux.HandleFunc("PUT /api/sessions/{sessionID}/activity", h.TouchSession)
	mux.HandleFunc("DELETE /api/sessions/{sessionID}", h.DeleteSession)

	mux.HandleFunc("GET /healthz", h.Health)

	return mux
}
