package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jkothapalli/netpong/internal/api/handler"
	"github.com/jkothapalli/netpong/internal/dependencies/clock"
	"github.com/jkothapalli/netpong/internal/middleware"
	"github.com/jkothapalli/netpong/internal/services/leaderboard"
	"github.com/jkothapalli/netpong/internal/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	LeaderboardService *leaderboard.Service
	Engine             *session.Engine
	Registry           *session.Registry
	Clock              clock.Clock
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)
	matchHandler := handler.NewMatchHandler(cfg.Engine, cfg.Registry, cfg.Clock)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/match", matchHandler.Get).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
