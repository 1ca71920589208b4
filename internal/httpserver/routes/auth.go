package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/httpserver/deps"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/httpserver/handlers"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	r.Route("/auth/raindrop", func(r chi.Router) {
		r.Get("/login", handlers.Login(d))
		r.Get("/callback", handlers.Callback(d))
		r.Post("/refresh-token", handlers.RefreshToken(d))
		r.Post("/logout", handlers.Logout(d))
		r.Get("/collections", handlers.Collections(d))
	})
}
