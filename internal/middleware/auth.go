package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Vitinho0102/LoginDoGameRate/internal/models"
)

// unauthorizedBody is the fixed 401 response. Every failure path sends the
// same bytes so a caller can't tell which step rejected it.
const unauthorizedBody = `{"error":"please authenticate"}`

type ctxKey int

const userKey ctxKey = 0

// TokenVerifier checks a bearer token and returns the embedded user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserSource resolves a user id to a full user record.
type UserSource interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// RequireAuth is middleware that validates the Authorization header and
// injects the resolved user into the request context.
func RequireAuth(tokens TokenVerifier, users UserSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil || user == nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the user attached by RequireAuth, or nil when the
// request never passed through it.
func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(unauthorizedBody))
}
