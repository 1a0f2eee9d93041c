package storage

import (
	"context"

	"github.com/jkothapalli/netpong/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// CreateUser stores a new user record. It is atomic: when two callers
	// race on the same username, exactly one succeeds and the other gets
	// model.ErrUsernameTaken. The implementation assigns Seq in
	// registration order.
	CreateUser(ctx context.Context, user *model.UserRecord) error

	// GetUser returns the record for a username, or model.ErrUserNotFound
	GetUser(ctx context.Context, username string) (*model.UserRecord, error)

	// IncrementWins adds one win to a user's record and persists it before
	// returning. Returns the new win count, or model.ErrUserNotFound.
	IncrementWins(ctx context.Context, username string) (int, error)

	// TopPlayers returns up to n users ordered by win count descending,
	// ties broken by registration order (lowest Seq first).
	TopPlayers(ctx context.Context, n int) ([]*model.UserRecord, error)
}
