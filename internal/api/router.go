// Package api exposes the operational HTTP surface of the game server:
// health checks and registry statistics. Game traffic itself travels
// over the framed TCP protocol, not HTTP.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MiracleBell/java-go-game/internal/middleware"
	"github.com/MiracleBell/java-go-game/internal/session"
)

// RouterConfig holds configuration for the ops router
type RouterConfig struct {
	Logger   *slog.Logger
	Registry *session.Registry
}

// NewRouter creates the ops router
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	r.HandleFunc("/healthz", handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/stats", handleStats(cfg.Registry)).Methods(http.MethodGet)

	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// StatsResponse reports registry counters
type StatsResponse struct {
	Sessions int `json:"sessions"`
}

func handleStats(registry *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, StatsResponse{Sessions: registry.Count()})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
