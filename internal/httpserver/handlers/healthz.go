package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/httpserver/deps"
)

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Version       string  `json:"version,omitempty"`
	Commit        string  `json:"commit,omitempty"`
	BuildDate     string  `json:"build_date,omitempty"`
	GoVersion     string  `json:"go_version,omitempty"`
	Tools         int     `json:"tools"`
}

// Healthz reports liveness. It never calls Raindrop.
func Healthz(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	toolCount := len(d.Dispatcher.Catalog().Tools())
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:        "ok",
			Version:       d.Version,
			Commit:        d.Commit,
			BuildDate:     d.BuildDate,
			GoVersion:     d.GoVersion,
			UptimeSeconds: time.Since(start).Seconds(),
			Tools:         toolCount,
		})
	}
}
