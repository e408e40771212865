package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/andrewpaige1/quizset-api/session"
)

type createSessionRequest struct {
	UserID string `json:"userId"`
}

// POST /api/sessions logs a roster user in.
func (db *DBHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		invalidBody(w, "CreateSession", err)
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	user, err := db.Users.Get(r.Context(), req.UserID)
	if err != nil {
		writeServiceError(w, "CreateSession", err, "Error creating session")
		return
	}

	s, err := db.Sessions.Create(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, "CreateSession", err, "Error creating session")
		return
	}
	response := map[string]interface{}{
		"session":   s,
		"expiresAt": s.ExpiresAt(db.Sessions.MaxAge()),
	}
	if db.Tokens != nil {
		token, err := db.Tokens.CreateToken(s.ID, user.ID, s.IssuedAt, s.ExpiresAt(db.Sessions.MaxAge()))
		if err != nil {
			writeServiceError(w, "CreateSession", err, "Error creating session")
			return
		}
		response["token"] = token
	}
	log.Printf("CreateSession: session %s started for userID=%s", s.ID, user.ID)
	writeJSON(w, http.StatusCreated, response)
}

// GET /api/sessions/{sessionID} checks a session and records activity on it.
func (db *DBHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	db.checkSession(w, r, "GetSession")
}

// PUT /api/sessions/{sessionID}/activity records client activity.
func (db *DBHandler) TouchSession(w http.ResponseWriter, r *http.Request) {
	db.checkSession(w, r, "TouchSession")
}

// DELETE /api/sessions/{sessionID} logs out.
func (db *DBHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := db.Sessions.Clear(r.Context(), r.PathValue("sessionID")); err != nil {
		writeServiceError(w, "DeleteSession", err, "Error clearing session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Session cleared"})
}

func (db *DBHandler) checkSession(w http.ResponseWriter, r *http.Request, op string) {
	s, err := db.Sessions.Touch(r.Context(), r.PathValue("sessionID"))
	if errors.Is(err, session.ErrNoSession) || errors.Is(err, session.ErrExpired) {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"valid":  false,
			"reason": session.Reason(err),
		})
		return
	}
	if err != nil {
		writeServiceError(w, op, err, "Error checking session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid":     true,
		"session":   s,
		"expiresAt": s.ExpiresAt(db.Sessions.MaxAge()),
	})
}
