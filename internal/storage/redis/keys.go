package redis

import "fmt"

// Key prefix for all pong-related data
const keyPrefix = "netpong"

// userKey returns the Redis key for a user record hash
func userKey(username string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, username)
}

// leaderboardKey returns the Redis key for the win-count sorted set
func leaderboardKey() string {
	return fmt.Sprintf("%s:leaderboard", keyPrefix)
}

// userSeqKey returns the Redis key for the registration sequence counter
func userSeqKey() string {
	return fmt.Sprintf("%s:seq:user", keyPrefix)
}
