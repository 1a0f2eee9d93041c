package web

import (
	"log/slog"
	"net/http"

	"github.com/jkothapalli/netpong/internal/services/leaderboard"
	"github.com/jkothapalli/netpong/internal/session"
)

// pagesHandler renders the read-only HTML views over the live match and
// the leaderboard
type pagesHandler struct {
	leaderboardService *leaderboard.Service
	engine             *session.Engine
	registry           *session.Registry
	gamePort           int
	logger             *slog.Logger
}

type homeData struct {
	Title      string
	Phase      string
	LeftScore  int
	RightScore int
	Players    int
	Observers  int
	Winner     string
	GamePort   int
}

// Home renders the live match overview
func (h *pagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.Latest()

	data := homeData{
		Title:      "Live match",
		Phase:      h.engine.Phase().String(),
		LeftScore:  snap.LeftScore,
		RightScore: snap.RightScore,
		Players:    h.registry.PlayerCount(),
		Observers:  h.registry.ObserverCount(),
		GamePort:   h.gamePort,
	}
	if snap.GameOver {
		data.Winner = snap.Winner.Wire()
	}

	h.renderPage(w, homePage, data)
}

type leaderboardRow struct {
	Rank     int
	Username string
	Wins     int
}

type leaderboardData struct {
	Title   string
	Entries []leaderboardRow
}

// Leaderboard renders the win ranking
func (h *pagesHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	records, err := h.leaderboardService.TopN(r.Context(), leaderboard.DefaultTopN)
	if err != nil {
		h.logger.Error("failed to load leaderboard", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := leaderboardData{Title: "Leaderboard"}
	for i, rec := range records {
		data.Entries = append(data.Entries, leaderboardRow{
			Rank:     i + 1,
			Username: rec.Username,
			Wins:     rec.Wins,
		})
	}

	h.renderPage(w, leaderboardPage, data)
}

func (h *pagesHandler) renderPage(w http.ResponseWriter, page pageSet, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.render(w, data); err != nil {
		h.logger.Error("failed to render page", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
