package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")

	// Session errors
	ErrSlotOccupied  = errors.New("player slot is already occupied")
	ErrSlotEmpty     = errors.New("player slot is empty")
	ErrNotAPlayer    = errors.New("connection is not a player")
	ErrSessionClosed = errors.New("session has been closed")

	// Protocol errors
	ErrMalformedLine = errors.New("malformed protocol line")

	// Simulation errors
	ErrSimulationFault = errors.New("simulation invariant violated")
)
