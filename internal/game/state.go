package game

// Intent is one player's sampled movement input for a tick
type Intent int

const (
	// IntentNone means no movement this tick
	IntentNone Intent = iota
	// IntentUp moves the paddle toward the top of the court
	IntentUp
	// IntentDown moves the paddle toward the bottom of the court
	IntentDown
)

// ParseIntent maps a wire input payload to an Intent.
// Valid payloads are "up", "down" and the empty string.
func ParseIntent(payload string) (Intent, bool) {
	switch payload {
	case "up":
		return IntentUp, true
	case "down":
		return IntentDown, true
	case "":
		return IntentNone, true
	default:
		return IntentNone, false
	}
}

// State is the authoritative match state: two paddles, the ball and the
// scores. It is owned by the session engine and mutated only inside Step.
type State struct {
	LeftY  int
	RightY int

	BallX  int
	BallY  int
	BallVX int
	BallVY int

	LeftScore  int
	RightScore int
}

// NewState returns the starting state: paddles centered, ball serving
// toward the left (the original court's opening serve).
func NewState(t Tuning) State {
	s := State{
		LeftY:  t.PaddleStartY(),
		RightY: t.PaddleStartY(),
	}
	resetBall(&s, t, dirLeft)
	return s
}

// Reset restores the starting layout while keeping the State value alive.
// Used for rematches.
func (s *State) Reset(t Tuning) {
	*s = NewState(t)
}

type direction int

const (
	dirLeft direction = iota
	dirRight
)

// resetBall centers the ball heading horizontally toward the given side
func resetBall(s *State, t Tuning, dir direction) {
	s.BallX = t.CourtWidth / 2
	s.BallY = t.CourtHeight / 2
	s.BallVY = 0
	if dir == dirLeft {
		s.BallVX = -t.BallSpeed
	} else {
		s.BallVX = t.BallSpeed
	}
}
