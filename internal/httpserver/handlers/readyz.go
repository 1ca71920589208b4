package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/httpserver/deps"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/logger"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Readyz is ready when tool calls can authenticate: a static token is
// configured, or the token store holds a valid access token. A Redis state
// backend must also answer.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p, ok := d.States.(pinger); ok {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			err := p.Ping(ctx)
			cancel()
			if err != nil {
				d.Logger.Warn("readiness: state backend unavailable", logger.Error(err))
				writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "state backend unavailable"})
				return
			}
		}

		if !d.StaticToken {
			if d.Tokens == nil {
				writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "no credentials configured"})
				return
			}
			if _, ok := d.Tokens.AccessTokenIfValid(); !ok {
				writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "not authorized, visit /auth/raindrop/login"})
				return
			}
		}

		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
