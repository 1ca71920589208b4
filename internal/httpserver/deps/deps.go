package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/auth"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/logger"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/tools"
)

// CollectionLister is the Raindrop call behind GET /auth/raindrop/collections.
type CollectionLister interface {
	ListCollections(ctx context.Context) (*domain.ItemsResponse[domain.Collection], error)
}

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	AllowedCIDRS []string // networks allowed on /mcp/* and /readyz
	TrustProxy   bool     // true if running behind a trusted reverse proxy
	MCPToken     string   // bearer required on /mcp/* when set

	Dispatcher  *tools.Dispatcher
	StaticToken bool // RAINDROP_TOKEN configured; OAuth tokens are not needed

	OAuth       *auth.OAuth     // authorization-code flow, writes to Tokens
	Tokens      *auth.TokenStore
	States      auth.StateStore // pending CSRF states
	StateTTL    time.Duration
	Collections CollectionLister // Raindrop client bound to Tokens
}
