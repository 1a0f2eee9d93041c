package model

// Phase is the lifecycle state of the single authoritative match.
// It only ever moves forward through the cycle
// AwaitingPlayers -> InProgress -> GameOver -> AwaitingRematch -> InProgress.
type Phase int

const (
	// PhaseAwaitingPlayers means one or both paddle slots are empty
	PhaseAwaitingPlayers Phase = iota
	// PhaseInProgress means the tick loop is advancing the ball
	PhaseInProgress
	// PhaseGameOver means a side just reached the win score; motion is frozen
	PhaseGameOver
	// PhaseAwaitingRematch means the match is over and waiting on both ready signals
	PhaseAwaitingRematch
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingPlayers:
		return "awaiting_players"
	case PhaseInProgress:
		return "in_progress"
	case PhaseGameOver:
		return "game_over"
	case PhaseAwaitingRematch:
		return "awaiting_rematch"
	default:
		return "unknown"
	}
}
