package model

import "time"

// UserRecord is a registered account with its leaderboard standing.
// Seq is the registration order and breaks leaderboard ties
// (first registered wins the tie). Records are never deleted.
type UserRecord struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"` // bcrypt digest, never the raw password
	Wins         int       `json:"wins"`
	Seq          int64     `json:"seq"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
