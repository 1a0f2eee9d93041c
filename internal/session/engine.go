package session

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jkothapalli/netpong/internal/game"
	"github.com/jkothapalli/netpong/internal/model"
	"github.com/jkothapalli/netpong/internal/services/leaderboard"
)

// DefaultTickInterval is the authoritative simulation rate (60 Hz)
const DefaultTickInterval = time.Second / 60

// Engine owns the authoritative match state and advances it on a fixed
// schedule, independent of any connection's pace. Handlers feed it inputs
// through per-slot most-recent-value cells and read the latest snapshot
// through an atomic pointer; neither path touches the tick's lock.
type Engine struct {
	tuning       game.Tuning
	registry     *Registry
	leaderboard  *leaderboard.Service
	tickInterval time.Duration
	logger       *slog.Logger

	// mu guards state, phase and seating; held only for the span of one
	// tick or one transition
	mu         sync.Mutex
	state      game.State
	phase      model.Phase
	winner     model.Role
	seats      map[model.Role]string // authenticated usernames by slot
	leftReady  bool
	rightReady bool
	winLogged  bool

	leftIntent  atomic.Int32
	rightIntent atomic.Int32
	snapshot    atomic.Pointer[model.Snapshot]

	done     chan struct{}
	stopOnce sync.Once
}

// NewEngine creates a stopped engine in the AWAITING_PLAYERS phase
func NewEngine(
	tuning game.Tuning,
	registry *Registry,
	leaderboard *leaderboard.Service,
	tickInterval time.Duration,
	logger *slog.Logger,
) *Engine {
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}
	e := &Engine{
		tuning:       tuning,
		registry:     registry,
		leaderboard:  leaderboard,
		tickInterval: tickInterval,
		logger:       logger.With(slog.String("component", "engine")),
		state:        game.NewState(tuning),
		phase:        model.PhaseAwaitingPlayers,
		seats:        make(map[model.Role]string),
		done:         make(chan struct{}),
	}
	snap := e.buildSnapshotLocked()
	e.snapshot.Store(&snap)
	return e
}

// Run drives the tick loop until Stop. It is the only goroutine that
// mutates match state.
func (e *Engine) Run() {
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	e.logger.Info("tick loop started", slog.Duration("interval", e.tickInterval))
	for {
		select {
		case <-e.done:
			e.logger.Info("tick loop stopped")
			return
		case <-ticker.C:
			e.Tick()
		}
	}
}

// Stop halts the tick loop. Safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.done) })
}

// Tick advances the match by one step and broadcasts the resulting
// snapshot. Exposed so tests can drive the engine deterministically
// without the wall-clock ticker.
func (e *Engine) Tick() {
	e.mu.Lock()

	switch e.phase {
	case model.PhaseInProgress:
		left := game.Intent(e.leftIntent.Swap(int32(game.IntentNone)))
		right := game.Intent(e.rightIntent.Swap(int32(game.IntentNone)))

		prevLeft, prevRight := e.state.LeftScore, e.state.RightScore
		game.Step(&e.state, e.tuning, left, right)
		if e.state.LeftScore < prevLeft || e.state.RightScore < prevRight {
			// Simulation fault: scores regressed. Fatal to the session.
			e.logger.Error("simulation fault: score regressed",
				slog.Int("left", e.state.LeftScore),
				slog.Int("right", e.state.RightScore),
			)
			e.mu.Unlock()
			e.Stop()
			return
		}

		if leftWon, rightWon := game.Winner(&e.state, e.tuning); leftWon || rightWon {
			if leftWon {
				e.winner = model.RoleLeft
			} else {
				e.winner = model.RoleRight
			}
			e.enterGameOverLocked()
		}

	case model.PhaseGameOver:
		// One tick in GAME_OVER carries the final snapshot, then the
		// match waits on rematch signals
		e.phase = model.PhaseAwaitingRematch
	}

	snap := e.buildSnapshotLocked()
	e.mu.Unlock()

	e.snapshot.Store(&snap)
	e.registry.Broadcast(snap.WireLine())
}

// Latest returns the most recently committed snapshot
func (e *Engine) Latest() model.Snapshot {
	return *e.snapshot.Load()
}

// Phase returns the current match phase
func (e *Engine) Phase() model.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// SetIntent records a player's most recent input. Overwrite semantics:
// only the latest value before the next tick is sampled.
func (e *Engine) SetIntent(role model.Role, intent game.Intent) {
	switch role {
	case model.RoleLeft:
		e.leftIntent.Store(int32(intent))
	case model.RoleRight:
		e.rightIntent.Store(int32(intent))
	}
}

// SeatPlayer marks a paddle slot as occupied by an authenticated player.
// When both slots are seated from AWAITING_PLAYERS the match begins.
func (e *Engine) SeatPlayer(role model.Role, username string) {
	if !role.IsPlayer() {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.seats[role] = username
	if e.phase == model.PhaseAwaitingPlayers && len(e.seats) == 2 {
		e.state.Reset(e.tuning)
		e.phase = model.PhaseInProgress
		e.winLogged = false
		e.logger.Info("match started",
			slog.String("left", e.seats[model.RoleLeft]),
			slog.String("right", e.seats[model.RoleRight]),
		)
	}
}

// PlayerLeft handles a paddle slot emptying. Mid-game the remaining
// player wins by forfeit; with the court empty the match resets to
// AWAITING_PLAYERS.
func (e *Engine) PlayerLeft(role model.Role) {
	if !role.IsPlayer() {
		return
	}

	e.mu.Lock()
	delete(e.seats, role)
	e.clearReadyLocked(role)

	if e.phase == model.PhaseInProgress {
		e.winner = role.Opponent()
		e.logger.Info("player disconnected mid-game, opponent wins by forfeit",
			slog.String("slot", role.Wire()),
			slog.String("winner", e.winner.Wire()),
		)
		e.enterGameOverLocked()
		snap := e.buildSnapshotLocked()
		e.mu.Unlock()
		e.snapshot.Store(&snap)
		e.registry.Broadcast(snap.WireLine())
		return
	}

	if len(e.seats) == 0 && e.phase != model.PhaseAwaitingPlayers {
		e.logger.Info("court empty, awaiting players")
		e.resetMatchLocked()
		e.phase = model.PhaseAwaitingPlayers
	}
	e.mu.Unlock()
}

// enterGameOverLocked freezes the match and records the winner's victory.
// Callers hold e.mu. The leaderboard write runs off the tick goroutine so
// a slow store can never stall ticking.
func (e *Engine) enterGameOverLocked() {
	e.phase = model.PhaseGameOver
	e.leftReady = false
	e.rightReady = false

	winner := e.seats[e.winner]
	if winner != "" && !e.winLogged {
		e.winLogged = true
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := e.leaderboard.RecordWin(ctx, winner); err != nil {
				e.logger.Error("failed to record win",
					slog.String("username", winner),
					slog.String("error", err.Error()),
				)
			}
		}()
	}

	e.logger.Info("game over",
		slog.String("winner", e.winner.Wire()),
		slog.Int("left_score", e.state.LeftScore),
		slog.Int("right_score", e.state.RightScore),
	)
}

// resetMatchLocked restores the starting layout; callers hold e.mu
func (e *Engine) resetMatchLocked() {
	e.state.Reset(e.tuning)
	e.winner = model.RoleObserver
	e.leftReady = false
	e.rightReady = false
	e.winLogged = false
	e.leftIntent.Store(int32(game.IntentNone))
	e.rightIntent.Store(int32(game.IntentNone))
}

// buildSnapshotLocked projects the current state; callers hold e.mu
func (e *Engine) buildSnapshotLocked() model.Snapshot {
	snap := model.Snapshot{
		LeftY:      e.state.LeftY,
		RightY:     e.state.RightY,
		BallX:      e.state.BallX,
		BallY:      e.state.BallY,
		LeftScore:  e.state.LeftScore,
		RightScore: e.state.RightScore,
	}
	if e.phase == model.PhaseGameOver || e.phase == model.PhaseAwaitingRematch {
		snap.GameOver = true
		snap.Winner = e.winner
	}
	return snap
}
