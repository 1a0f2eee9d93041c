package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jkothapalli/netpong/internal/middleware"
	"github.com/jkothapalli/netpong/internal/services/leaderboard"
	"github.com/jkothapalli/netpong/internal/session"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger             *slog.Logger
	LeaderboardService *leaderboard.Service
	Engine             *session.Engine
	Registry           *session.Registry
	// GamePort is shown on the home page so players know where to point
	// their game client
	GamePort int
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))
	r.Use(middleware.Logging(cfg.Logger))

	h := &pagesHandler{
		leaderboardService: cfg.LeaderboardService,
		engine:             cfg.Engine,
		registry:           cfg.Registry,
		gamePort:           cfg.GamePort,
		logger:             cfg.Logger,
	}

	r.HandleFunc("/", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard", h.Leaderboard).Methods(http.MethodGet)

	return r
}
