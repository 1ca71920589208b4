package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/auth"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/httpserver/deps"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/logger"
)

const (
	StateCookie = "raindrop_oauth_state"
	LoginPath   = "/auth/raindrop/login"
)

type authResponse struct {
	Message   string `json:"message"`
	ExpiresIn int64  `json:"expires_in,omitempty"`
	TokenType string `json:"token_type,omitempty"`
}

// oauthReady writes a 500 and returns false when the OAuth client is not configured.
func oauthReady(d deps.Deps, w http.ResponseWriter) bool {
	if d.OAuth == nil {
		writeError(w, http.StatusInternalServerError, (&domain.ConfigurationError{Key: "RAINDROP_CLIENT_ID"}).Error())
		return false
	}
	if err := d.OAuth.Check(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return false
	}
	return true
}

// Login starts the authorization-code flow: it stores a fresh CSRF state,
// binds it to the browser with a cookie and redirects to the provider.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !oauthReady(d, w) {
			return
		}

		state := auth.NewState()
		if err := d.States.Save(r.Context(), state, d.StateTTL); err != nil {
			d.Logger.Error("failed to save oauth state", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to start authorization")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     StateCookie,
			Value:    state,
			Path:     "/auth/raindrop",
			MaxAge:   int(d.StateTTL.Seconds()),
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, d.OAuth.AuthCodeURL(state), http.StatusFound)
	}
}

// Callback validates the returned state and exchanges the code for tokens.
// Tokens are stored, never echoed.
func Callback(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !oauthReady(d, w) {
			return
		}
		q := r.URL.Query()

		state := q.Get("state")
		cookie, err := r.Cookie(StateCookie)
		if state == "" || err != nil || cookie.Value != state {
			d.Logger.Warn("oauth callback state mismatch")
			writeError(w, http.StatusForbidden, "Invalid state parameter")
			return
		}
		pending, err := d.States.Consume(r.Context(), state)
		if err != nil {
			d.Logger.Error("failed to consume oauth state", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to validate state")
			return
		}
		http.SetCookie(w, &http.Cookie{Name: StateCookie, Value: "", Path: "/auth/raindrop", MaxAge: -1, HttpOnly: true})
		if !pending {
			writeError(w, http.StatusForbidden, "Invalid state parameter")
			return
		}

		if e := q.Get("error"); e != "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":             e,
				"error_description": q.Get("error_description"),
			})
			return
		}
		code := q.Get("code")
		if code == "" {
			writeError(w, http.StatusBadRequest, "Missing authorization code")
			return
		}

		tokens, err := d.OAuth.Exchange(r.Context(), code)
		if err != nil {
			d.Logger.Error("oauth code exchange failed", logger.Error(err))
			if status, body, ok := auth.ProviderError(err); ok {
				writeJSON(w, status, errorResponse{Error: "Failed to exchange authorization code", Details: body})
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to exchange authorization code")
			return
		}

		d.Logger.Info("oauth authorization complete", logger.Int64("expires_in", tokens.ExpiresIn))
		writeJSON(w, http.StatusOK, authResponse{
			Message:   "Authentication successful",
			ExpiresIn: tokens.ExpiresIn,
			TokenType: tokens.TokenType,
		})
	}
}

// RefreshToken exchanges the stored refresh token for a new access token.
// A 400 or 401 from the provider clears the store and is passed through.
func RefreshToken(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !oauthReady(d, w) {
			return
		}

		tokens, err := d.OAuth.Refresh(r.Context())
		switch {
		case err == nil:
			d.Logger.Info("oauth token refreshed", logger.Int64("expires_in", tokens.ExpiresIn))
			writeJSON(w, http.StatusOK, authResponse{
				Message:   "Token refreshed successfully",
				ExpiresIn: tokens.ExpiresIn,
				TokenType: tokens.TokenType,
			})
		case errors.Is(err, auth.ErrNoRefreshToken):
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "No refresh token available", RedirectTo: LoginPath})
		default:
			d.Logger.Warn("oauth refresh failed", logger.Error(err))
			if status, body, ok := auth.ProviderError(err); ok && (status == http.StatusBadRequest || status == http.StatusUnauthorized) {
				writeJSON(w, status, errorResponse{Error: "Refresh token is invalid or revoked", Details: body, RedirectTo: LoginPath})
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to refresh token")
		}
	}
}

func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Tokens != nil {
			d.Tokens.Clear()
		}
		d.Logger.Info("oauth tokens cleared")
		writeJSON(w, http.StatusOK, authResponse{Message: "Logged out"})
	}
}

// Collections lists collections with the OAuth access token, as a quick
// check that authorization worked.
func Collections(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Tokens == nil || d.Collections == nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Not authenticated", RedirectTo: LoginPath})
			return
		}
		if _, ok := d.Tokens.AccessTokenIfValid(); !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Not authenticated or token expired", RedirectTo: LoginPath})
			return
		}

		res, err := d.Collections.ListCollections(r.Context())
		if err != nil {
			var re *domain.RemoteError
			if errors.As(err, &re) {
				writeJSON(w, re.StatusCode, errorResponse{Error: re.Error(), Details: re.Body})
				return
			}
			d.Logger.Error("failed to list collections", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to fetch collections")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
