// Package auth holds the OAuth token store and the Raindrop authorization-code flow.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
)

const (
	DefaultAuthURL  = "https://raindrop.io/oauth/authorize"
	DefaultTokenURL = "https://raindrop.io/oauth/access_token"
)

var ErrNoRefreshToken = errors.New("no refresh token available")

type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
}

// OAuth runs the authorization-code and refresh grants and writes the
// results to a TokenStore.
type OAuth struct {
	cfg    oauth2.Config
	tokens *TokenStore
	http   *http.Client
}

func NewOAuth(c OAuthConfig, tokens *TokenStore, httpClient *http.Client) *OAuth {
	if c.AuthURL == "" {
		c.AuthURL = DefaultAuthURL
	}
	if c.TokenURL == "" {
		c.TokenURL = DefaultTokenURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &OAuth{
		cfg: oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:   c.AuthURL,
				TokenURL:  c.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		tokens: tokens,
		http:   httpClient,
	}
}

// Check returns a ConfigurationError naming the first missing client setting.
func (o *OAuth) Check() error {
	switch {
	case o.cfg.ClientID == "":
		return &domain.ConfigurationError{Key: "RAINDROP_CLIENT_ID"}
	case o.cfg.ClientSecret == "":
		return &domain.ConfigurationError{Key: "RAINDROP_CLIENT_SECRET"}
	case o.cfg.RedirectURL == "":
		return &domain.ConfigurationError{Key: "RAINDROP_REDIRECT_URI"}
	}
	return nil
}

func (o *OAuth) Tokens() *TokenStore { return o.tokens }

// AuthCodeURL is the provider authorize URL carrying client_id,
// redirect_uri, response_type=code and state.
func (o *OAuth) AuthCodeURL(state string) string {
	return o.cfg.AuthCodeURL(state)
}

// Exchange trades an authorization code for tokens and stores them.
func (o *OAuth) Exchange(ctx context.Context, code string) (Tokens, error) {
	if err := o.Check(); err != nil {
		return Tokens{}, err
	}
	tok, err := o.cfg.Exchange(o.clientContext(ctx), code)
	if err != nil {
		return Tokens{}, fmt.Errorf("exchange authorization code: %w", err)
	}
	t := fromOAuth2(tok, "")
	o.tokens.Store(t)
	t, _ = o.tokens.Read()
	return t, nil
}

// Refresh uses the stored refresh token to obtain a new access token. A
// refusal from the provider (400 or 401) is permanent: the store is cleared.
func (o *OAuth) Refresh(ctx context.Context) (Tokens, error) {
	if err := o.Check(); err != nil {
		return Tokens{}, err
	}
	rt, ok := o.tokens.RefreshToken()
	if !ok {
		return Tokens{}, ErrNoRefreshToken
	}

	tok, err := o.cfg.TokenSource(o.clientContext(ctx), &oauth2.Token{RefreshToken: rt}).Token()
	if err != nil {
		if status, _, ok := ProviderError(err); ok && (status == http.StatusBadRequest || status == http.StatusUnauthorized) {
			o.tokens.Clear()
		}
		return Tokens{}, fmt.Errorf("refresh access token: %w", err)
	}

	t := fromOAuth2(tok, rt)
	o.tokens.Store(t)
	t, _ = o.tokens.Read()
	return t, nil
}

func (o *OAuth) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, o.http)
}

// ProviderError extracts the token endpoint's HTTP status and payload from
// an error returned by Exchange or Refresh.
func ProviderError(err error) (int, json.RawMessage, bool) {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) || re.Response == nil {
		return 0, nil, false
	}
	var body json.RawMessage
	if json.Valid(re.Body) {
		body = json.RawMessage(re.Body)
	}
	return re.Response.StatusCode, body, true
}

func fromOAuth2(tok *oauth2.Token, previousRefresh string) Tokens {
	t := Tokens{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		ExpiresIn:    expiresIn(tok),
	}
	if t.RefreshToken == "" {
		t.RefreshToken = previousRefresh
	}
	return t
}

func expiresIn(tok *oauth2.Token) int64 {
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return int64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	if tok.ExpiresIn > 0 {
		return tok.ExpiresIn
	}
	if !tok.Expiry.IsZero() {
		if d := time.Until(tok.Expiry); d > 0 {
			return int64(d.Round(time.Second) / time.Second)
		}
	}
	return 0
}
