package handler

import (
	"net/http"
	"strconv"

	"github.com/jkothapalli/netpong/internal/api/apierr"
	"github.com/jkothapalli/netpong/internal/api/response"
	"github.com/jkothapalli/netpong/internal/services/leaderboard"
)

// LeaderboardHandler handles ranking endpoints
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// Get handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			apierr.WriteError(w, apierr.NewInvalidRequestError("n must be a positive integer"))
			return
		}
		n = parsed
	}

	records, err := h.leaderboardService.TopN(r.Context(), n)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromRecords(records))
}
