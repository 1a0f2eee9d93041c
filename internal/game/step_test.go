package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntent(t *testing.T) {
	cases := []struct {
		payload string
		intent  Intent
		ok      bool
	}{
		{"up", IntentUp, true},
		{"down", IntentDown, true},
		{"", IntentNone, true},
		{"left", IntentNone, false},
		{"UP", IntentNone, false},
		{"ready", IntentNone, false},
	}

	for _, tc := range cases {
		intent, ok := ParseIntent(tc.payload)
		assert.Equal(t, tc.ok, ok, "payload %q", tc.payload)
		assert.Equal(t, tc.intent, intent, "payload %q", tc.payload)
	}
}

func TestNewStateCentersEverything(t *testing.T) {
	tuning := DefaultTuning()
	s := NewState(tuning)

	assert.Equal(t, tuning.PaddleStartY(), s.LeftY)
	assert.Equal(t, tuning.PaddleStartY(), s.RightY)
	assert.Equal(t, tuning.CourtWidth/2, s.BallX)
	assert.Equal(t, tuning.CourtHeight/2, s.BallY)
	assert.Equal(t, -tuning.BallSpeed, s.BallVX, "opening serve goes left")
	assert.Zero(t, s.BallVY)
	assert.Zero(t, s.LeftScore)
	assert.Zero(t, s.RightScore)
}

func TestStepIsDeterministic(t *testing.T) {
	tuning := DefaultTuning()

	// A fixed but non-trivial input trace
	trace := make([][2]Intent, 0, 3000)
	for i := 0; i < 3000; i++ {
		left := IntentNone
		right := IntentNone
		switch i % 7 {
		case 0, 1:
			left = IntentUp
		case 2:
			left = IntentDown
		}
		switch i % 5 {
		case 0:
			right = IntentDown
		case 3:
			right = IntentUp
		}
		trace = append(trace, [2]Intent{left, right})
	}

	run := func() []State {
		s := NewState(tuning)
		seq := make([]State, 0, len(trace))
		for _, in := range trace {
			Step(&s, tuning, in[0], in[1])
			seq = append(seq, s)
		}
		return seq
	}

	first := run()
	second := run()
	require.Equal(t, first, second)
}

func TestPaddleStaysInBounds(t *testing.T) {
	tuning := DefaultTuning()
	s := NewState(tuning)

	for i := 0; i < 500; i++ {
		Step(&s, tuning, IntentUp, IntentDown)
		assert.GreaterOrEqual(t, s.LeftY, tuning.PaddleMinY())
		assert.LessOrEqual(t, s.LeftY, tuning.PaddleMaxY())
		assert.GreaterOrEqual(t, s.RightY, tuning.PaddleMinY())
		assert.LessOrEqual(t, s.RightY, tuning.PaddleMaxY())
	}

	assert.Equal(t, tuning.PaddleMinY(), s.LeftY)
	assert.Equal(t, tuning.PaddleMaxY(), s.RightY)
}

func TestBallBouncesOffWalls(t *testing.T) {
	tuning := DefaultTuning()
	s := NewState(tuning)
	s.BallX = tuning.CourtWidth / 2
	s.BallY = tuning.WallInset + 2
	s.BallVX = 0
	s.BallVY = -4

	Step(&s, tuning, IntentNone, IntentNone)

	assert.Equal(t, tuning.WallInset, s.BallY, "ball clamped to wall")
	assert.Equal(t, 4, s.BallVY, "vertical velocity inverted")
}

func TestBallBouncesOffBottomWall(t *testing.T) {
	tuning := DefaultTuning()
	s := NewState(tuning)
	s.BallY = tuning.CourtHeight - tuning.WallInset - tuning.BallSize - 2
	s.BallVX = 0
	s.BallVY = 4

	Step(&s, tuning, IntentNone, IntentNone)

	assert.Equal(t, tuning.CourtHeight-tuning.WallInset-tuning.BallSize, s.BallY)
	assert.Equal(t, -4, s.BallVY)
}

func TestPaddleHitReflectsBall(t *testing.T) {
	tuning := DefaultTuning()
	s := NewState(tuning)

	// Place the ball just right of the left paddle, heading into it,
	// striking below the paddle center
	s.LeftY = 200
	s.BallX = tuning.LeftPaddleX() + tuning.PaddleWidth + 3
	s.BallY = 240
	s.BallVX = -tuning.BallSpeed
	s.BallVY = 0

	Step(&s, tuning, IntentNone, IntentNone)

	assert.Equal(t, tuning.BallSpeed, s.BallVX, "horizontal velocity inverted")
	assert.Positive(t, s.BallVY, "hit below center deflects downward")
}

func TestPaddleHitAtCenterKeepsBallFlat(t *testing.T) {
	tuning := DefaultTuning()
	s := NewState(tuning)

	s.RightY = 240
	s.BallY = 240 + tuning.PaddleHeight/2 - tuning.BallSize/2
	s.BallX = tuning.RightPaddleX() - 3
	s.BallVX = tuning.BallSpeed
	s.BallVY = 0

	Step(&s, tuning, IntentNone, IntentNone)

	assert.Equal(t, -tuning.BallSpeed, s.BallVX)
	assert.Zero(t, s.BallVY)
}

func TestBallPastRightEdgeScoresLeft(t *testing.T) {
	tuning := DefaultTuning()
	s := NewState(tuning)
	s.BallX = tuning.CourtWidth - 2
	s.BallVX = tuning.BallSpeed
	s.BallVY = 0

	Step(&s, tuning, IntentNone, IntentNone)

	assert.Equal(t, 1, s.LeftScore)
	assert.Zero(t, s.RightScore)
	assert.Equal(t, tuning.CourtWidth/2, s.BallX, "ball reset to center")
	assert.Equal(t, -tuning.BallSpeed, s.BallVX, "serve goes toward the conceding side")
}

func TestBallPastLeftEdgeScoresRight(t *testing.T) {
	tuning := DefaultTuning()
	s := NewState(tuning)
	s.BallX = 2
	s.BallVX = -tuning.BallSpeed
	s.BallVY = 0

	Step(&s, tuning, IntentNone, IntentNone)

	assert.Equal(t, 1, s.RightScore)
	assert.Zero(t, s.LeftScore)
	assert.Equal(t, tuning.BallSpeed, s.BallVX)
}

func TestScoresOnlyIncrease(t *testing.T) {
	tuning := DefaultTuning()
	s := NewState(tuning)

	// Both paddles hug the top wall so the ball keeps scoring
	prevLeft, prevRight := 0, 0
	for i := 0; i < 5000; i++ {
		Step(&s, tuning, IntentUp, IntentUp)
		require.GreaterOrEqual(t, s.LeftScore, prevLeft)
		require.GreaterOrEqual(t, s.RightScore, prevRight)
		prevLeft, prevRight = s.LeftScore, s.RightScore
	}
}

func TestWinner(t *testing.T) {
	tuning := DefaultTuning()
	s := NewState(tuning)

	left, right := Winner(&s, tuning)
	assert.False(t, left)
	assert.False(t, right)

	s.LeftScore = tuning.WinScore
	left, right = Winner(&s, tuning)
	assert.True(t, left)
	assert.False(t, right)
}

func TestResetRestoresStartingLayout(t *testing.T) {
	tuning := DefaultTuning()
	s := NewState(tuning)
	s.LeftScore = 3
	s.RightScore = 5
	s.LeftY = tuning.PaddleMinY()
	s.BallX = 17

	s.Reset(tuning)

	assert.Equal(t, NewState(tuning), s)
}
