package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestTokenStoreExpiry(t *testing.T) {
	clock := newClock()
	s := NewTokenStoreWithClock(clock.Now)

	s.Store(Tokens{AccessToken: "t", ExpiresIn: 3600})
	if tok, ok := s.AccessTokenIfValid(); !ok || tok != "t" {
		t.Fatalf("AccessTokenIfValid() = %q, %v; want t, true", tok, ok)
	}

	clock.Advance(3601 * time.Second)
	if tok, ok := s.AccessTokenIfValid(); ok {
		t.Fatalf("AccessTokenIfValid() after expiry = %q, want absent", tok)
	}

	got, ok := s.Read()
	if !ok {
		t.Fatal("Read() after expiry reported absent")
	}
	if got.AccessToken != "t" || got.ExpiresIn != 3600 || got.ObtainedAt != clock.now.Add(-3601*time.Second).Unix() {
		t.Errorf("Read() = %+v, want the full stored record", got)
	}
}

func TestTokenStoreNoExpiryNeverExpires(t *testing.T) {
	clock := newClock()
	s := NewTokenStoreWithClock(clock.Now)

	s.Store(Tokens{AccessToken: "forever"})
	clock.Advance(365 * 24 * time.Hour)
	if tok, ok := s.AccessTokenIfValid(); !ok || tok != "forever" {
		t.Errorf("AccessTokenIfValid() = %q, %v; want forever, true", tok, ok)
	}
}

func TestTokenStoreRefreshAndClear(t *testing.T) {
	clock := newClock()
	s := NewTokenStoreWithClock(clock.Now)

	if _, ok := s.RefreshToken(); ok {
		t.Fatal("empty store returned a refresh token")
	}

	s.Store(Tokens{AccessToken: "a", RefreshToken: "r", ExpiresIn: 10})
	clock.Advance(time.Minute)
	if rt, ok := s.RefreshToken(); !ok || rt != "r" {
		t.Errorf("RefreshToken() = %q, %v; want r, true regardless of expiry", rt, ok)
	}

	s.Clear()
	if _, ok := s.Read(); ok {
		t.Error("Read() after Clear() reported present")
	}
}

func TestTokenStoreAsTokenSource(t *testing.T) {
	s := NewTokenStore()

	_, err := s.Token(context.Background())
	var ce *domain.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("Token() on empty store error = %v, want ConfigurationError", err)
	}

	s.Store(Tokens{AccessToken: "abc"})
	tok, err := s.Token(context.Background())
	if err != nil || tok != "abc" {
		t.Errorf("Token() = %q, %v", tok, err)
	}
}

func TestTokenStoreConcurrentAccess(t *testing.T) {
	s := NewTokenStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Store(Tokens{AccessToken: "x", ExpiresIn: 60})
		}()
		go func() {
			defer wg.Done()
			s.AccessTokenIfValid()
			s.Read()
		}()
	}
	wg.Wait()
	if tok, ok := s.AccessTokenIfValid(); !ok || tok != "x" {
		t.Errorf("AccessTokenIfValid() = %q, %v", tok, ok)
	}
}

type tokenEndpoint struct {
	status int
	body   string
	forms  []url.Values
}

func (e *tokenEndpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	form, _ := url.ParseQuery(string(raw))
	e.forms = append(e.forms, form)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.status)
	_, _ = io.WriteString(w, e.body)
}

func newOAuth(t *testing.T, e *tokenEndpoint) (*OAuth, *TokenStore) {
	t.Helper()
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	store := NewTokenStore()
	o := NewOAuth(OAuthConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:3000/auth/raindrop/callback",
		TokenURL:     srv.URL + "/oauth/access_token",
	}, store, srv.Client())
	return o, store
}

func TestAuthCodeURL(t *testing.T) {
	o := NewOAuth(OAuthConfig{ClientID: "client", ClientSecret: "s", RedirectURL: "http://localhost/cb"}, NewTokenStore(), nil)

	u, err := url.Parse(o.AuthCodeURL("state-123"))
	if err != nil {
		t.Fatal(err)
	}
	if u.Scheme+"://"+u.Host+u.Path != DefaultAuthURL {
		t.Errorf("authorize URL = %s", u)
	}
	q := u.Query()
	for k, want := range map[string]string{
		"client_id":     "client",
		"redirect_uri":  "http://localhost/cb",
		"response_type": "code",
		"state":         "state-123",
	} {
		if q.Get(k) != want {
			t.Errorf("%s = %q, want %q", k, q.Get(k), want)
		}
	}
}

func TestOAuthCheck(t *testing.T) {
	o := NewOAuth(OAuthConfig{ClientID: "id"}, NewTokenStore(), nil)
	var ce *domain.ConfigurationError
	if err := o.Check(); !errors.As(err, &ce) || ce.Key != "RAINDROP_CLIENT_SECRET" {
		t.Errorf("Check() = %v, want missing RAINDROP_CLIENT_SECRET", err)
	}
}

func TestExchangeStoresTokens(t *testing.T) {
	e := &tokenEndpoint{status: http.StatusOK, body: `{"access_token":"at","refresh_token":"rt","expires_in":1209599,"token_type":"Bearer"}`}
	o, store := newOAuth(t, e)

	got, err := o.Exchange(context.Background(), "the-code")
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}
	if got.AccessToken != "at" || got.RefreshToken != "rt" || got.ExpiresIn != 1209599 || got.ObtainedAt == 0 {
		t.Errorf("Exchange() = %+v", got)
	}
	if tok, ok := store.AccessTokenIfValid(); !ok || tok != "at" {
		t.Errorf("store access token = %q, %v", tok, ok)
	}

	form := e.forms[0]
	if form.Get("grant_type") != "authorization_code" || form.Get("code") != "the-code" || form.Get("client_id") != "client" {
		t.Errorf("token request form = %v", form)
	}
}

func TestExchangeProviderError(t *testing.T) {
	e := &tokenEndpoint{status: http.StatusBadRequest, body: `{"error":"invalid_grant"}`}
	o, store := newOAuth(t, e)

	_, err := o.Exchange(context.Background(), "bad")
	status, body, ok := ProviderError(err)
	if !ok || status != http.StatusBadRequest || string(body) != `{"error":"invalid_grant"}` {
		t.Errorf("ProviderError() = %d, %s, %v", status, body, ok)
	}
	if _, ok := store.Read(); ok {
		t.Error("failed exchange stored tokens")
	}
}

func TestRefresh(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantCleared bool
		wantRefresh string
	}{
		{name: "success keeps old refresh token", status: http.StatusOK, body: `{"access_token":"new","expires_in":60}`, wantRefresh: "old-rt"},
		{name: "success with rotated refresh token", status: http.StatusOK, body: `{"access_token":"new","refresh_token":"rt2"}`, wantRefresh: "rt2"},
		{name: "invalid grant clears", status: http.StatusBadRequest, body: `{"error":"invalid_grant"}`, wantErr: true, wantCleared: true},
		{name: "revoked clears", status: http.StatusUnauthorized, body: `{"error":"unauthorized"}`, wantErr: true, wantCleared: true},
		{name: "server error keeps tokens", status: http.StatusInternalServerError, body: `{}`, wantErr: true, wantRefresh: "old-rt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &tokenEndpoint{status: tt.status, body: tt.body}
			o, store := newOAuth(t, e)
			store.Store(Tokens{AccessToken: "old", RefreshToken: "old-rt", ExpiresIn: 1})

			_, err := o.Refresh(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Refresh() error = %v, wantErr %v", err, tt.wantErr)
			}
			_, present := store.Read()
			if present == tt.wantCleared {
				t.Errorf("store present = %v, wantCleared %v", present, tt.wantCleared)
			}
			if rt, _ := store.RefreshToken(); !tt.wantCleared && rt != tt.wantRefresh {
				t.Errorf("refresh token = %q, want %q", rt, tt.wantRefresh)
			}
			if e.forms[0].Get("refresh_token") != "old-rt" || e.forms[0].Get("grant_type") != "refresh_token" {
				t.Errorf("refresh form = %v", e.forms[0])
			}
		})
	}
}

func TestRefreshWithoutRefreshToken(t *testing.T) {
	o, _ := newOAuth(t, &tokenEndpoint{status: http.StatusOK})
	if _, err := o.Refresh(context.Background()); !errors.Is(err, ErrNoRefreshToken) {
		t.Errorf("Refresh() error = %v, want ErrNoRefreshToken", err)
	}
}

func TestMemoryStateStore(t *testing.T) {
	clock := newClock()
	m := NewMemoryStateStore()
	m.now = clock.Now
	ctx := context.Background()

	if err := m.Save(ctx, "s1", time.Minute); err != nil {
		t.Fatal(err)
	}
	if ok, _ := m.Consume(ctx, "s1"); !ok {
		t.Error("first Consume() = false, want true")
	}
	if ok, _ := m.Consume(ctx, "s1"); ok {
		t.Error("second Consume() = true, state must be single use")
	}

	_ = m.Save(ctx, "s2", time.Minute)
	clock.Advance(2 * time.Minute)
	if ok, _ := m.Consume(ctx, "s2"); ok {
		t.Error("Consume() of expired state = true")
	}
	if ok, _ := m.Consume(ctx, "unknown"); ok {
		t.Error("Consume() of unknown state = true")
	}
}

func TestNewStateIsUnique(t *testing.T) {
	if a, b := NewState(), NewState(); a == b || a == "" {
		t.Errorf("NewState() = %q, %q", a, b)
	}
}
