package response

import (
	"time"

	"github.com/jkothapalli/netpong/internal/model"
)

// LeaderboardEntry represents one ranked player in API responses
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Wins     int    `json:"wins"`
}

// Leaderboard is the response for the leaderboard endpoint
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromRecords converts ranked user records, assigning 1-based
// ranks in the order the store returned them
func LeaderboardFromRecords(records []*model.UserRecord) Leaderboard {
	entries := make([]LeaderboardEntry, len(records))
	for i, r := range records {
		entries[i] = LeaderboardEntry{
			Rank:     i + 1,
			Username: r.Username,
			Wins:     r.Wins,
		}
	}
	return Leaderboard{Entries: entries}
}

// Ball represents the ball position in a match snapshot
type Ball struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MatchSnapshot represents one tick of match state
type MatchSnapshot struct {
	LeftY      int     `json:"left_y"`
	RightY     int     `json:"right_y"`
	Ball       Ball    `json:"ball"`
	LeftScore  int     `json:"left_score"`
	RightScore int     `json:"right_score"`
	GameOver   bool    `json:"game_over"`
	Winner     *string `json:"winner,omitempty"`
}

// MatchSnapshotFromModel converts a model.Snapshot
func MatchSnapshotFromModel(s model.Snapshot) MatchSnapshot {
	snap := MatchSnapshot{
		LeftY:      s.LeftY,
		RightY:     s.RightY,
		Ball:       Ball{X: s.BallX, Y: s.BallY},
		LeftScore:  s.LeftScore,
		RightScore: s.RightScore,
		GameOver:   s.GameOver,
	}
	if s.GameOver {
		w := s.Winner.Wire()
		snap.Winner = &w
	}
	return snap
}

// MatchStatus is the response for the match status endpoint
type MatchStatus struct {
	Phase     string        `json:"phase"`
	Players   int           `json:"players"`
	Observers int           `json:"observers"`
	Snapshot  MatchSnapshot `json:"snapshot"`
	AsOf      time.Time     `json:"as_of"`
}
