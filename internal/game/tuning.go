package game

// Tuning holds the fixed parameters of the court and physics.
// All values are integer pixels per tick; the whole simulation is
// integer-valued so replays are exactly reproducible.
type Tuning struct {
	CourtWidth  int
	CourtHeight int

	PaddleWidth  int
	PaddleHeight int
	PaddleSpeed  int

	BallSize  int
	BallSpeed int

	// WallInset is the thickness of the top/bottom walls
	WallInset int

	// WinScore ends the game when either side reaches it
	WinScore int
}

// DefaultTuning returns the standard 640x480 court
func DefaultTuning() Tuning {
	return Tuning{
		CourtWidth:   640,
		CourtHeight:  480,
		PaddleWidth:  10,
		PaddleHeight: 50,
		PaddleSpeed:  5,
		BallSize:     5,
		BallSpeed:    5,
		WinScore:     5,
		WallInset:    10,
	}
}

// LeftPaddleX is the fixed X of the left paddle's left edge
func (t Tuning) LeftPaddleX() int {
	return t.WallInset
}

// RightPaddleX is the fixed X of the right paddle's left edge
func (t Tuning) RightPaddleX() int {
	return t.CourtWidth - 2*t.PaddleWidth
}

// PaddleMinY and PaddleMaxY bound paddle motion between the walls
func (t Tuning) PaddleMinY() int {
	return t.WallInset
}

func (t Tuning) PaddleMaxY() int {
	return t.CourtHeight - t.WallInset - t.PaddleHeight
}

// PaddleStartY centers a paddle vertically
func (t Tuning) PaddleStartY() int {
	return t.CourtHeight/2 - t.PaddleHeight/2
}
