package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/auth"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/config"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/format"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/httpserver"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/httpserver/deps"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/logger"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/mcpserver"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/raindrop"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/redis"
	redisstore "github.com/MrSnakeDoc/raindrop-mcp/internal/store/redis"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/tools"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/utils"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	tokens      *auth.TokenStore
	httpClient  *http.Client
	dispatcher  *tools.Dispatcher
	redisClient *goredis.Client
}

// New loads and validates the configuration and builds the tool dispatcher.
// Network resources (Redis, listeners) are only opened by the Run methods.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, logger.New(cfg.LogLevel, cfg.PrettyLog)), nil
}

func NewWithConfig(cfg *config.Config, loggerClient logger.Logger) *App {
	tokens := auth.NewTokenStore()
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}

	var source raindrop.TokenSource = tokens
	if cfg.HasStaticToken() {
		source = raindrop.StaticToken(cfg.Token)
		loggerClient.Info("using static raindrop token")
	} else {
		loggerClient.Info("using oauth tokens, authorize via /auth/raindrop/login")
	}

	client := raindrop.New(cfg.APIBaseURL, source, httpClient)
	dispatcher := tools.NewDispatcher(tools.NewCatalog(), client, format.New(cfg.Location), loggerClient)

	return &App{
		cfg:        cfg,
		logger:     loggerClient,
		tokens:     tokens,
		httpClient: httpClient,
		dispatcher: dispatcher,
	}
}

// RunStdio serves MCP over stdin/stdout. Without a static token the HTTP
// surface is started alongside it so the OAuth flow can be completed.
func (a *App) RunStdio(ctx context.Context) error {
	a.logger.Info(version.String())

	var server *httpserver.Server
	if !a.cfg.HasStaticToken() {
		var err error
		server, err = a.buildHTTP(ctx)
		if err != nil {
			return err
		}
		go func() {
			if err := server.Start(); err != nil {
				a.logger.Error("http server error", logger.Error(err))
			}
		}()
		a.logger.Info("oauth endpoints listening", logger.String("addr", a.cfg.ListenPort))
	}

	err := mcpserver.New(a.dispatcher, version.Version, a.logger).Run(ctx)

	if server != nil {
		_ = a.stopHTTP(server)
	}
	a.close()
	return err
}

// RunHTTP serves the HTTP surface until ctx is cancelled, then shuts down gracefully.
func (a *App) RunHTTP(ctx context.Context) error {
	a.logger.Infof("🚀 Starting raindrop-mcp v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	server, err := a.buildHTTP(ctx)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.close()
		return err
	}

	if err := a.stopHTTP(server); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	a.close()
	a.logger.Info("✅ raindrop-mcp stopped cleanly")
	return nil
}

func (a *App) buildHTTP(ctx context.Context) (*httpserver.Server, error) {
	states, err := a.stateStore(ctx)
	if err != nil {
		return nil, err
	}

	d := deps.Deps{
		Logger:       a.logger,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		AllowedCIDRS: a.cfg.AllowedCIDRS,
		TrustProxy:   a.cfg.TrustProxy,
		MCPToken:     a.cfg.MCPToken,
		Dispatcher:   a.dispatcher,
		StaticToken:  a.cfg.HasStaticToken(),
		Tokens:       a.tokens,
		States:       states,
		StateTTL:     a.cfg.OAuthStateTTL,
		Collections:  raindrop.New(a.cfg.APIBaseURL, a.tokens, a.httpClient),
	}
	if a.cfg.HasOAuth() {
		d.OAuth = auth.NewOAuth(auth.OAuthConfig{
			ClientID:     a.cfg.ClientID,
			ClientSecret: a.cfg.ClientSecret,
			RedirectURL:  a.cfg.RedirectURI,
			AuthURL:      a.cfg.AuthURL,
			TokenURL:     a.cfg.TokenURL,
		}, a.tokens, a.httpClient)
	}

	return httpserver.New(a.cfg, a.logger, d), nil
}

// stateStore picks the OAuth state backend; Redis fails fast when unreachable.
func (a *App) stateStore(ctx context.Context) (auth.StateStore, error) {
	if a.cfg.StateBackend != config.StateBackendRedis {
		return auth.NewMemoryStateStore(), nil
	}

	client, err := redis.Connect(ctx, redis.ConnectOptions{
		Addr:           a.cfg.RedisAddr,
		User:           a.cfg.RedisUser,
		Password:       a.cfg.RedisPassword,
		DB:             a.cfg.RedisDB,
		DialTimeout:    a.cfg.RedisDT,
		ReadTimeout:    a.cfg.RedisRT,
		WriteTimeout:   a.cfg.RedisWT,
		PoolSize:       a.cfg.RedisPoolSize,
		ConnectTimeout: a.cfg.RedisConnectTimeout,
		RetryInterval:  a.cfg.RedisRetryInterval,
		MaxWait:        a.cfg.RedisMaxWait,
		PingTimeout:    a.cfg.RedisPingTimeout,
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	a.redisClient = client
	a.logger.Info("Redis initialized successfully")
	return redisstore.NewStateStore(client), nil
}

func (a *App) stopHTTP(server *httpserver.Server) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		a.logger.Warn("http shutdown", logger.Error(err))
		return err
	}
	return nil
}

func (a *App) close() {
	if a.redisClient != nil {
		utils.CloseLogged(a.redisClient, a.logger, "redis")
		a.redisClient = nil
	}
	_ = a.logger.Sync()
}
