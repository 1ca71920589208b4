package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
)

const (
	StateBackendMemory = "memory"
	StateBackendRedis  = "redis"
)

type Config struct {
	// Raindrop credentials: either a static token or an OAuth client.
	Token        string
	ClientID     string
	ClientSecret string
	RedirectURI  string

	APIBaseURL     string        // ex: https://api.raindrop.io/rest/v1
	AuthURL        string        // OAuth authorize endpoint
	TokenURL       string        // OAuth token endpoint
	RequestTimeout time.Duration // per REST call, default 30s

	ListenPort      string        // ex: ":3000"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)
	Location  *time.Location

	MCPToken      string   // optional bearer for /mcp/*
	AllowedCIDRS  []string // optional, restrict /mcp/* and /readyz to these networks
	TrustProxy    bool     // true => trust X-Forwarded-For headers
	OAuthStateTTL time.Duration
	StateBackend  string // "memory" | "redis"

	// Redis, only with StateBackend == "redis"
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration
	RedisRetryInterval  time.Duration
	RedisMaxWait        time.Duration
	RedisPingTimeout    time.Duration
}

// Load reads the configuration from the environment. When RAINDROP_CONFIG_FILE
// names a YAML file, its values are used as defaults for unset variables.
func Load() (*Config, error) {
	e := env{}
	if path := os.Getenv("RAINDROP_CONFIG_FILE"); path != "" {
		file, err := readFile(path)
		if err != nil {
			return nil, err
		}
		e.file = file
	}

	cfg := &Config{
		Token:        e.getenv("RAINDROP_TOKEN", ""),
		ClientID:     e.getenv("RAINDROP_CLIENT_ID", ""),
		ClientSecret: e.getenv("RAINDROP_CLIENT_SECRET", ""),
		RedirectURI:  e.getenv("RAINDROP_REDIRECT_URI", ""),

		APIBaseURL:     strings.TrimRight(e.getenv("RAINDROP_API_BASE_URL", "https://api.raindrop.io/rest/v1"), "/"),
		AuthURL:        e.getenv("RAINDROP_AUTH_URL", "https://raindrop.io/oauth/authorize"),
		TokenURL:       e.getenv("RAINDROP_TOKEN_URL", "https://raindrop.io/oauth/access_token"),
		RequestTimeout: e.mustDuration("RAINDROP_REQUEST_TIMEOUT", 30*time.Second),

		ListenPort:      e.getenv("RAINDROP_LISTEN_PORT", ":3000"),
		ShutdownTimeout: e.mustDuration("RAINDROP_SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  e.getenv("RAINDROP_LOG_LEVEL", "info"),
		PrettyLog: e.mustBool("RAINDROP_PRETTY_LOG", false),

		MCPToken:      e.getenv("MCP_TOKEN", ""),
		AllowedCIDRS:  splitAndTrim(e.getenv("RAINDROP_ALLOWED_CIDRS", "")),
		TrustProxy:    e.mustBool("RAINDROP_TRUST_PROXY", false),
		OAuthStateTTL: e.mustDuration("RAINDROP_OAUTH_STATE_TTL", 10*time.Minute),
		StateBackend:  strings.ToLower(e.getenv("RAINDROP_STATE_BACKEND", StateBackendMemory)),

		RedisAddr:           e.getenv("RAINDROP_REDIS_ADDR", "localhost:6379"),
		RedisUser:           e.getenv("RAINDROP_REDIS_USERNAME", ""),
		RedisPassword:       e.getenv("RAINDROP_REDIS_PASSWORD", ""),
		RedisDB:             e.getenvInt("RAINDROP_REDIS_DB", 0),
		RedisDT:             e.mustDuration("RAINDROP_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             e.mustDuration("RAINDROP_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             e.mustDuration("RAINDROP_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       e.getenvInt("RAINDROP_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: e.mustDuration("RAINDROP_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  e.mustDuration("RAINDROP_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        e.mustDuration("RAINDROP_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    e.mustDuration("RAINDROP_REDIS_PING_TIMEOUT", 5*time.Second),
	}

	tz := e.getenv("RAINDROP_TIMEZONE", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, &domain.ConfigurationError{Key: "RAINDROP_TIMEZONE", Reason: err.Error()}
	}
	cfg.Location = loc

	return cfg, nil
}

// HasStaticToken reports whether RAINDROP_TOKEN is set.
func (c *Config) HasStaticToken() bool { return c.Token != "" }

// HasOAuth reports whether the full OAuth client triple is set.
func (c *Config) HasOAuth() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RedirectURI != ""
}

// Validate fails when no credential source is configured or a setting is unusable.
func (c *Config) Validate() error {
	if !c.HasStaticToken() && !c.HasOAuth() {
		return &domain.ConfigurationError{
			Key:    "RAINDROP_TOKEN",
			Reason: "set RAINDROP_TOKEN, or RAINDROP_CLIENT_ID, RAINDROP_CLIENT_SECRET and RAINDROP_REDIRECT_URI",
		}
	}
	switch c.StateBackend {
	case StateBackendMemory:
	case StateBackendRedis:
		if c.RedisAddr == "" {
			return &domain.ConfigurationError{Key: "RAINDROP_REDIS_ADDR"}
		}
	default:
		return &domain.ConfigurationError{
			Key:    "RAINDROP_STATE_BACKEND",
			Reason: fmt.Sprintf("unknown backend %q (want memory or redis)", c.StateBackend),
		}
	}
	if c.RequestTimeout <= 0 {
		return &domain.ConfigurationError{Key: "RAINDROP_REQUEST_TIMEOUT", Reason: "must be > 0"}
	}
	return nil
}

// Redacted returns a copy safe to log.
func (c *Config) Redacted() Config {
	cp := *c
	for _, s := range []*string{&cp.Token, &cp.ClientSecret, &cp.MCPToken, &cp.RedisPassword} {
		if *s != "" {
			*s = "***REDACTED***"
		}
	}
	return cp
}

// env resolves a key from the process environment first, then from the
// optional config file.
type env struct {
	file map[string]string
}

func (e env) lookup(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return e.file[fileKey(key)]
}

// helpers
func (e env) getenv(key, def string) string {
	if v := e.lookup(key); v != "" {
		return v
	}
	return def
}

func (e env) getenvInt(key string, def int) int {
	if v := e.lookup(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func (e env) mustBool(key string, def bool) bool {
	if v := e.lookup(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func (e env) mustDuration(key string, def time.Duration) time.Duration {
	if v := e.lookup(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// fileKey maps an environment name to its config file key:
// RAINDROP_LOG_LEVEL -> log_level, MCP_TOKEN -> mcp_token.
func fileKey(envKey string) string {
	return strings.ToLower(strings.TrimPrefix(envKey, "RAINDROP_"))
}

// readFile loads a flat YAML mapping. Lists are joined with commas so they
// read like their environment counterparts.
func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigurationError{Key: "RAINDROP_CONFIG_FILE", Reason: err.Error()}
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &domain.ConfigurationError{Key: "RAINDROP_CONFIG_FILE", Reason: fmt.Sprintf("parse %s: %v", path, err)}
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
		case []any:
			parts := make([]string, 0, len(val))
			for _, item := range val {
				parts = append(parts, fmt.Sprint(item))
			}
			out[strings.ToLower(k)] = strings.Join(parts, ",")
		default:
			out[strings.ToLower(k)] = fmt.Sprint(val)
		}
	}
	return out, nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
