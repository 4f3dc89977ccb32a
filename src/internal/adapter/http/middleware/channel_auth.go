package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/api-sage/fd-account-processor/src/internal/logger"
)

// authRealm is advertised on challenge responses so operator tooling
// can tell the deposit API apart from other gateways on the same host.
const authRealm = "fd-account-processor"

// ChannelAuth gates API routes behind the shared credentials issued to
// the calling channel. Batch routes layer OperatorAuth on top of this.
func ChannelAuth(channelID, channelKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if channelID == "" || channelKey == "" {
				logger.Error("channel auth missing server configuration", nil, logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				http.Error(w, "channel auth configuration is missing", http.StatusInternalServerError)
				return
			}

			id, key, ok := r.BasicAuth()
			if !ok || !secureEqual(id, channelID) || !secureEqual(key, channelKey) {
				logger.Info("channel auth rejected request", logger.Fields{
					"method":    r.Method,
					"path":      r.URL.Path,
					"channelId": presentedChannelID(id, ok),
				})
				w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", authRealm))
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// presentedChannelID is safe to log: the channel id is an identifier,
// not a secret, but an absent header should read as such.
func presentedChannelID(id string, ok bool) string {
	if !ok {
		return "missing"
	}
	return id
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
