// Package raindrop is a thin client for the Raindrop.io REST API.
// Every method performs exactly one HTTPS request; retries belong to callers.
package raindrop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/utils"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/version"
)

// DefaultBaseURL is the public REST endpoint.
const DefaultBaseURL = "https://api.raindrop.io/rest/v1"

const maxResponseBytes = 8 << 20

// TokenSource yields the bearer token for the next request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed personal/test token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", &domain.ConfigurationError{Key: "RAINDROP_TOKEN"}
	}
	return string(t), nil
}

// Client talks to the Raindrop REST API.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// New returns a client. A nil httpClient gets a 30s timeout.
func New(baseURL string, tokens TokenSource, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    httpClient,
	}
}

// Do performs one request. A nil body sends no body at all, and a nil out
// discards the response. Non-2xx answers become *domain.RemoteError.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer utils.Close(resp.Body)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newRemoteError(method, path, resp, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func newRemoteError(method, path string, resp *http.Response, data []byte) *domain.RemoteError {
	re := &domain.RemoteError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Status:     statusText(resp),
	}
	if json.Valid(data) {
		re.Body = json.RawMessage(data)
		var payload struct {
			ErrorMessage string `json:"errorMessage"`
			Error        any    `json:"error"`
		}
		if err := json.Unmarshal(data, &payload); err == nil {
			re.Message = payload.ErrorMessage
			if s, ok := payload.Error.(string); ok && re.Message == "" {
				re.Message = s
			}
		}
	}
	return re
}

// statusText strips the numeric code from resp.Status ("404 Not Found" -> "Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

func setInt(q url.Values, key string, v *int) {
	if v != nil {
		q.Set(key, strconv.Itoa(*v))
	}
}
