package game

// Step advances the match by one tick. It is pure over (state, tuning,
// inputs): identical input sequences from identical states produce
// identical state sequences.
//
// Tick order is fixed: paddles move, the ball advances, side edges score,
// paddle hits reflect, wall hits reflect.
func Step(s *State, t Tuning, left, right Intent) {
	s.LeftY = movePaddle(s.LeftY, left, t)
	s.RightY = movePaddle(s.RightY, right, t)

	s.BallX += s.BallVX
	s.BallY += s.BallVY

	// Past a side edge: the opposite side scores and the ball serves
	// toward the side that just conceded
	if s.BallX > t.CourtWidth {
		s.LeftScore++
		resetBall(s, t, dirLeft)
		return
	}
	if s.BallX < 0 {
		s.RightScore++
		resetBall(s, t, dirRight)
		return
	}

	// Paddle reflection: invert horizontal velocity and deflect
	// vertically by the hit offset from the paddle center
	if intersects(s.BallX, s.BallY, t.BallSize, t.LeftPaddleX(), s.LeftY, t.PaddleWidth, t.PaddleHeight) {
		s.BallVX = -s.BallVX
		s.BallVY = deflection(s.BallY, s.LeftY, t)
	} else if intersects(s.BallX, s.BallY, t.BallSize, t.RightPaddleX(), s.RightY, t.PaddleWidth, t.PaddleHeight) {
		s.BallVX = -s.BallVX
		s.BallVY = deflection(s.BallY, s.RightY, t)
	}

	// Wall reflection: clamp back inside and invert vertical velocity
	if s.BallY < t.WallInset {
		s.BallY = t.WallInset
		s.BallVY = -s.BallVY
	} else if s.BallY+t.BallSize > t.CourtHeight-t.WallInset {
		s.BallY = t.CourtHeight - t.WallInset - t.BallSize
		s.BallVY = -s.BallVY
	}
}

// movePaddle applies one tick of movement, clamped between the walls
func movePaddle(y int, intent Intent, t Tuning) int {
	switch intent {
	case IntentUp:
		y -= t.PaddleSpeed
	case IntentDown:
		y += t.PaddleSpeed
	}
	if y < t.PaddleMinY() {
		y = t.PaddleMinY()
	}
	if y > t.PaddleMaxY() {
		y = t.PaddleMaxY()
	}
	return y
}

// deflection is the vertical velocity imparted by a paddle hit:
// proportional to how far from the paddle center the ball struck
func deflection(ballY, paddleY int, t Tuning) int {
	ballCenter := ballY + t.BallSize/2
	paddleCenter := paddleY + t.PaddleHeight/2
	return (ballCenter - paddleCenter) / 4
}

// intersects reports whether two axis-aligned rectangles overlap.
// The ball is square with side size.
func intersects(bx, by, size, rx, ry, rw, rh int) bool {
	return bx < rx+rw && bx+size > rx && by < ry+rh && by+size > ry
}

// Winner reports which side, if any, has reached the win score
func Winner(s *State, t Tuning) (left, right bool) {
	return s.LeftScore >= t.WinScore, s.RightScore >= t.WinScore
}
