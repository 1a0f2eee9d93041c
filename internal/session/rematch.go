package session

import (
	"log/slog"

	"github.com/jkothapalli/netpong/internal/model"
)

// Rematch coordination: after a game ends, both players must signal
// "ready" before the match restarts. Flags are cleared on entering
// GAME_OVER and whenever a slot empties, so a leaver can never leave the
// coordinator waiting on a ghost.

// SignalReady records a player's rematch signal. When both players are
// ready the match state resets and play resumes; a lone signal leaves the
// phase at AWAITING_REMATCH.
func (e *Engine) SignalReady(role model.Role) {
	if !role.IsPlayer() {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != model.PhaseAwaitingRematch && e.phase != model.PhaseGameOver {
		return
	}

	switch role {
	case model.RoleLeft:
		e.leftReady = true
	case model.RoleRight:
		e.rightReady = true
	}
	e.logger.Info("rematch signal",
		slog.String("slot", role.Wire()),
		slog.Bool("left_ready", e.leftReady),
		slog.Bool("right_ready", e.rightReady),
	)

	if e.leftReady && e.rightReady && len(e.seats) == 2 {
		e.resetMatchLocked()
		e.phase = model.PhaseInProgress
		e.logger.Info("rematch started")
	}
}

// clearReadyLocked drops a leaving player's ready flag; callers hold e.mu
func (e *Engine) clearReadyLocked(role model.Role) {
	switch role {
	case model.RoleLeft:
		e.leftReady = false
	case model.RoleRight:
		e.rightReady = false
	}
}
