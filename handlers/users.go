package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/andrewpaige1/quizset-api/services"
)

// GET /api/users
func (db *DBHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := db.Users.List(r.Context())
	if err != nil {
		writeServiceError(w, "GetUsers", err, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// POST /api/users accepts a single user, an array, or {"data": [...]}.
func (db *DBHandler) CreateUsers(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		invalidBody(w, "CreateUsers", err)
		return
	}
	inputs, err := decodeUsers(body)
	if err != nil {
		invalidBody(w, "CreateUsers", err)
		return
	}

	saved, err := db.Users.Create(r.Context(), inputs)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			log.Printf("CreateUsers: %d user(s) saved before conflict", len(saved))
		}
		writeServiceError(w, "CreateUsers", err, "Error creating user")
		return
	}
	log.Printf("CreateUsers: created %d user(s)", len(saved))
	writeJSON(w, http.StatusCreated, saved)
}

// DELETE /api/users/{userID}
func (db *DBHandler) DeleteUserByID(w http.ResponseWriter, r *http.Request) {
	user, err := db.Users.Delete(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeServiceError(w, "DeleteUserByID", err, "Error deleting user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User deleted",
		"user":    user,
	})
}

func decodeUsers(body []byte) ([]services.UserInput, error) {
	if len(body) > 0 && body[0] == '{' {
		var wrapped struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &wrapped); err == nil && len(wrapped.Data) > 0 && wrapped.Data[0] == '[' {
			var inputs []services.UserInput
			if err := json.Unmarshal(wrapped.Data, &inputs); err != nil {
				return nil, err
			}
			return inputs, nil
		}
	}
	inputs, _, err := decodeOneOrMany[services.UserInput](body)
	return inputs, err
}
