package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/andrewpaige1/quizset-api/auth"
	"github.com/andrewpaige1/quizset-api/services"
	"github.com/andrewpaige1/quizset-api/session"
)

const maxBodyBytes = 1 << 20

// DBHandler serves the HTTP API on top of the store and the session manager.
type DBHandler struct {
	*gorm.DB
	Sets      *services.SetService
	Questions *services.QuestionService
	Users     *services.UserService
	Sessions  *session.Manager
	// Tokens signs session tokens; nil disables token issuing.
	Tokens *auth.Issuer
}

func NewDBHandler(db *gorm.DB, sessions *session.Manager, tokens *auth.Issuer) *DBHandler {
	sets := services.NewSetService(db)
	return &DBHandler{
		DB:        db,
		Sets:      sets,
		Questions: services.NewQuestionService(db, sets),
		Users:     services.NewUserService(db),
		Sessions:  sessions,
		Tokens:    tokens,
	}
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// writeServiceError maps a service error to its status code. Unclassified
// errors are store failures and become a 500 with fallback as the message.
func writeServiceError(w http.ResponseWriter, op string, err error, fallback string) {
	var se *services.Error
	if errors.As(err, &se) {
		switch {
		case errors.Is(err, services.ErrValidation):
			writeError(w, http.StatusBadRequest, se.Message)
		case errors.Is(err, services.ErrNotFound):
			writeError(w, http.StatusNotFound, se.Message)
		case errors.Is(err, services.ErrConflict):
			writeError(w, http.StatusConflict, se.Message)
		default:
			writeError(w, http.StatusBadRequest, se.Message)
		}
		return
	}
	log.Printf("%s: %v", op, err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Message: fallback, Error: err.Error()})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return bytes.TrimSpace(body), nil
}

// decodeOneOrMany accepts either a single JSON object or an array of them.
// batch reports whether the body was an array.
func decodeOneOrMany[T any](body []byte) (items []T, batch bool, err error) {
	if len(body) == 0 {
		return nil, false, errors.New("empty request body")
	}
	if body[0] == '[' {
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, true, err
		}
		return items, true, nil
	}
	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, false, err
	}
	return []T{item}, false, nil
}

func invalidBody(w http.ResponseWriter, op string, err error) {
	log.Printf("%s: Invalid request body: %v", op, err)
	writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
}
