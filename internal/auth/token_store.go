package auth

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
)

// Tokens is the token set returned by the provider.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"` // seconds; 0 never expires
	TokenType    string `json:"token_type,omitempty"`
	ObtainedAt   int64  `json:"obtained_at"` // unix seconds, set by Store
}

// expired reports whether the access token is past obtained_at + expires_in.
func (t Tokens) expired(now time.Time) bool {
	if t.ExpiresIn <= 0 {
		return false
	}
	return t.ObtainedAt+t.ExpiresIn <= now.Unix()
}

// TokenStore holds at most one token set in memory.
type TokenStore struct {
	mu     sync.RWMutex
	tokens *Tokens
	now    func() time.Time
}

func NewTokenStore() *TokenStore {
	return &TokenStore{now: time.Now}
}

// NewTokenStoreWithClock is NewTokenStore with an injectable clock.
func NewTokenStoreWithClock(now func() time.Time) *TokenStore {
	return &TokenStore{now: now}
}

// Store replaces the held set and stamps ObtainedAt.
func (s *TokenStore) Store(t Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ObtainedAt = s.now().Unix()
	s.tokens = &t
}

// Read returns the held set whether or not it has expired.
func (s *TokenStore) Read() (Tokens, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tokens == nil {
		return Tokens{}, false
	}
	return *s.tokens, true
}

// AccessTokenIfValid returns the access token only while it has not expired.
// An expired set stays in the store.
func (s *TokenStore) AccessTokenIfValid() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tokens == nil || s.tokens.AccessToken == "" || s.tokens.expired(s.now()) {
		return "", false
	}
	return s.tokens.AccessToken, true
}

// RefreshToken returns the held refresh token, regardless of access-token expiry.
func (s *TokenStore) RefreshToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tokens == nil || s.tokens.RefreshToken == "" {
		return "", false
	}
	return s.tokens.RefreshToken, true
}

func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = nil
}

// Token lets the store act as the REST client's credential source.
func (s *TokenStore) Token(context.Context) (string, error) {
	if tok, ok := s.AccessTokenIfValid(); ok {
		return tok, nil
	}
	return "", &domain.ConfigurationError{
		Key:    "RAINDROP_TOKEN",
		Reason: "no valid OAuth access token; authorize via /auth/raindrop/login",
	}
}
