package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/httpserver/deps"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/httpserver/mw"
)

func init() { Register(registerMCP) }

func registerMCP(r chi.Router, d deps.Deps) {
	r.Route("/mcp", func(r chi.Router) {
		r.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
		r.Use(mw.RequireBearer(d.MCPToken, d.Logger))
		r.Get("/tools", handlers.ListTools(d))
		r.Post("/call", handlers.CallTool(d))
	})
}
