package handler

import (
	"net/http"

	"github.com/jkothapalli/netpong/internal/api/response"
	"github.com/jkothapalli/netpong/internal/dependencies/clock"
	"github.com/jkothapalli/netpong/internal/session"
)

// MatchHandler exposes a read-only view of the live match
type MatchHandler struct {
	engine   *session.Engine
	registry *session.Registry
	clock    clock.Clock
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(engine *session.Engine, registry *session.Registry, clock clock.Clock) *MatchHandler {
	return &MatchHandler{
		engine:   engine,
		registry: registry,
		clock:    clock,
	}
}

// Get handles GET /api/v1/match
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	status := response.MatchStatus{
		Phase:     h.engine.Phase().String(),
		Players:   h.registry.PlayerCount(),
		Observers: h.registry.ObserverCount(),
		Snapshot:  response.MatchSnapshotFromModel(h.engine.Latest()),
		AsOf:      h.clock.Now().UTC(),
	}
	response.JSON(w, http.StatusOK, status)
}
