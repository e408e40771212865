package middleware

import (
	"encoding/json"
	"log"
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"

	"github.com/andrewpaige1/quizset-api/auth"
	"github.com/andrewpaige1/quizset-api/session"
	"github.com/andrewpaige1/quizset-api/utils"
)

// EnsureValidToken validates a bearer token when one is present and stores its
// claims on the request context. Requests without a token pass through;
// RequireSession decides whether a route needs one.
func EnsureValidToken(issuer *auth.Issuer) func(http.Handler) http.Handler {
	m := jwtmiddleware.New(
		issuer.ValidateToken,
		jwtmiddleware.WithCredentialsOptional(true),
		jwtmiddleware.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			log.Printf("EnsureValidToken: rejected token for %s %s: %v", r.Method, r.URL.Path, err)
			writeUnauthorized(w, "Invalid token")
		}),
	)
	return m.CheckJWT
}

// RequireSession rejects requests whose token does not belong to a live
// session, and records activity on the session otherwise.
func RequireSession(sessions *session.Manager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, _, ok := utils.GetSessionClaims(r)
		if !ok {
			writeUnauthorized(w, "Unauthorized")
			return
		}
		if _, err := sessions.Check(r.Context(), sessionID); err != nil {
			log.Printf("RequireSession: session %s rejected: %v", sessionID, err)
			writeUnauthorized(w, session.Reason(err))
			return
		}
		next.ServeHTTP(w, r)
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
