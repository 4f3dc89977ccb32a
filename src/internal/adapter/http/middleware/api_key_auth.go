package middleware

import (
	"context"
	"net/http"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
	"github.com/api-sage/fd-account-processor/src/internal/logger"
)

type contextKey string

const userContextKey contextKey = "authenticated-user"

// Authenticator resolves an operator from a username and API key.
type Authenticator interface {
	Authenticate(ctx context.Context, username, apiKey string) (domain.User, error)
}

// OperatorAuth guards batch trigger endpoints. Operators identify with
// X-API-Username and X-API-Key headers and must hold a role permitted
// to start batch runs.
func OperatorAuth(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := r.Header.Get("X-API-Username")
			apiKey := r.Header.Get("X-API-Key")
			if username == "" || apiKey == "" {
				logger.Info("operator auth middleware missing credentials", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				http.Error(w, "operator credentials required", http.StatusUnauthorized)
				return
			}

			user, err := authenticator.Authenticate(r.Context(), username, apiKey)
			if err != nil {
				logger.Info("operator auth middleware rejected request", logger.Fields{
					"method":   r.Method,
					"path":     r.URL.Path,
					"username": username,
				})
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.Role.CanTriggerBatch() {
				logger.Info("operator auth middleware insufficient role", logger.Fields{
					"method":   r.Method,
					"path":     r.URL.Path,
					"username": username,
					"role":     string(user.Role),
				})
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the operator attached by OperatorAuth.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(domain.User)
	return user, ok
}
