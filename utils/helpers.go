package utils

import (
	"net/http"
	"strings"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GetSessionClaims returns the session id (jti) and user id (sub) of the
// validated bearer token on the request.
func GetSessionClaims(r *http.Request) (sessionID, userID string, ok bool) {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*jwt.RegisteredClaims)
	if !ok || claims == nil || claims.ID == "" {
		return "", "", false
	}
	return claims.ID, claims.Subject, true
}

// QueryBool reads a flag query parameter. A missing or empty value, "false"
// and "0" are false; any other value turns the flag on.
func QueryBool(r *http.Request, key string) bool {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	return v != "" && !strings.EqualFold(v, "false") && v != "0"
}
