package model

// Role identifies what a connection controls in a match
type Role int

const (
	// RoleObserver is a read-only participant with no paddle
	RoleObserver Role = iota
	// RoleLeft controls the left paddle
	RoleLeft
	// RoleRight controls the right paddle
	RoleRight
)

// IsPlayer reports whether the role controls a paddle
func (r Role) IsPlayer() bool {
	return r == RoleLeft || r == RoleRight
}

// Opponent returns the opposing player role.
// Calling it on RoleObserver returns RoleObserver.
func (r Role) Opponent() Role {
	switch r {
	case RoleLeft:
		return RoleRight
	case RoleRight:
		return RoleLeft
	default:
		return RoleObserver
	}
}

// Wire returns the role string sent in the handshake line
func (r Role) Wire() string {
	switch r {
	case RoleLeft:
		return "left"
	case RoleRight:
		return "right"
	default:
		return "spectator"
	}
}

func (r Role) String() string {
	return r.Wire()
}
