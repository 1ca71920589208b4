package mw

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/logger"
)

// RequireBearer demands "Authorization: Bearer <token>". An empty token
// disables the check.
func RequireBearer(token string, log logger.Logger) func(http.Handler) http.Handler {
	if token == "" {
		return func(next http.Handler) http.Handler { return next }
	}
	want := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				log.Debug("rejected bearer", logger.String("path", r.URL.Path))
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("WWW-Authenticate", "Bearer")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
