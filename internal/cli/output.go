package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Leaderboard:
		o.printLeaderboard(v)
	case MatchStatus:
		o.printMatchStatus(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// LeaderboardEntry response type (matches API)
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Wins     int    `json:"wins"`
}

// Leaderboard response type
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// Ball response type
type Ball struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MatchSnapshot response type
type MatchSnapshot struct {
	LeftY      int     `json:"left_y"`
	RightY     int     `json:"right_y"`
	Ball       Ball    `json:"ball"`
	LeftScore  int     `json:"left_score"`
	RightScore int     `json:"right_score"`
	GameOver   bool    `json:"game_over"`
	Winner     *string `json:"winner,omitempty"`
}

// MatchStatus response type
type MatchStatus struct {
	Phase     string        `json:"phase"`
	Players   int           `json:"players"`
	Observers int           `json:"observers"`
	Snapshot  MatchSnapshot `json:"snapshot"`
	AsOf      time.Time     `json:"as_of"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Entries) == 0 {
		fmt.Println("No games played yet")
		return
	}
	for _, e := range l.Entries {
		fmt.Printf("%3d. %-20s %d\n", e.Rank, e.Username, e.Wins)
	}
}

func (o *Output) printMatchStatus(m MatchStatus) {
	fmt.Printf("Phase: %s\n", m.Phase)
	fmt.Printf("Score: %d : %d\n", m.Snapshot.LeftScore, m.Snapshot.RightScore)
	fmt.Printf("Ball: (%d, %d)\n", m.Snapshot.Ball.X, m.Snapshot.Ball.Y)
	fmt.Printf("Connected: %d player(s), %d observer(s)\n", m.Players, m.Observers)
	if m.Snapshot.Winner != nil {
		fmt.Printf("Winner: %s\n", *m.Snapshot.Winner)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
