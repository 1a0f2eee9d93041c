package leaderboard

import (
	"context"
	"log/slog"

	"github.com/jkothapalli/netpong/internal/model"
	"github.com/jkothapalli/netpong/internal/storage"
)

// DefaultTopN is the ranking size served when the caller does not ask for
// a specific size.
const DefaultTopN = 10

// Service records completed-game wins and answers ranked queries
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new leaderboard service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// RecordWin adds one win to a username's record. The write is persisted
// before RecordWin returns. Each call counts as one win; the session layer
// calls it exactly once per completed game.
func (s *Service) RecordWin(ctx context.Context, username string) error {
	wins, err := s.storage.IncrementWins(ctx, username)
	if err != nil {
		s.logger.Error("failed to record win",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.Info("win recorded",
		slog.String("username", username),
		slog.Int("wins", wins),
	)
	return nil
}

// TopN returns up to n users ranked by win count descending; ties go to
// the first-registered user. n <= 0 falls back to DefaultTopN.
func (s *Service) TopN(ctx context.Context, n int) ([]*model.UserRecord, error) {
	if n <= 0 {
		n = DefaultTopN
	}
	return s.storage.TopPlayers(ctx, n)
}
