package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Snapshot is one tick's complete projection of match state.
// A snapshot is immutable once built and is superseded wholesale by the
// next tick; no history is retained.
type Snapshot struct {
	LeftY      int
	RightY     int
	BallX      int
	BallY      int
	LeftScore  int
	RightScore int

	// GameOver marks a finished match; Winner is only meaningful when set
	GameOver bool
	Winner   Role
}

// WireLine renders the snapshot as the single-line wire form:
//
//	"<leftY> <rightY> <ballX> <ballY> <leftScore> <rightScore>"
//
// extended with " gameover <left|right>" once the match has been won.
func (s Snapshot) WireLine() string {
	line := fmt.Sprintf("%d %d %d %d %d %d",
		s.LeftY, s.RightY, s.BallX, s.BallY, s.LeftScore, s.RightScore)
	if s.GameOver {
		line += " gameover " + s.Winner.Wire()
	}
	return line
}

// ParseSnapshot parses a wire state line back into a Snapshot.
// Used by the CLI client and by tests.
func ParseSnapshot(line string) (Snapshot, error) {
	parts := strings.Fields(line)
	if len(parts) != 6 && len(parts) != 8 {
		return Snapshot{}, ErrMalformedLine
	}

	vals := make([]int, 6)
	for i := 0; i < 6; i++ {
		v, err := strconv.Atoi(parts[i])
		if err != nil {
			return Snapshot{}, ErrMalformedLine
		}
		vals[i] = v
	}

	snap := Snapshot{
		LeftY:      vals[0],
		RightY:     vals[1],
		BallX:      vals[2],
		BallY:      vals[3],
		LeftScore:  vals[4],
		RightScore: vals[5],
	}

	if len(parts) == 8 {
		if parts[6] != "gameover" {
			return Snapshot{}, ErrMalformedLine
		}
		snap.GameOver = true
		switch parts[7] {
		case RoleLeft.Wire():
			snap.Winner = RoleLeft
		case RoleRight.Wire():
			snap.Winner = RoleRight
		default:
			return Snapshot{}, ErrMalformedLine
		}
	}

	return snap, nil
}
