package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jkothapalli/netpong/internal/dependencies/clock"
	"github.com/jkothapalli/netpong/internal/dependencies/hasher"
	"github.com/jkothapalli/netpong/internal/model"
	"github.com/jkothapalli/netpong/internal/storage"
)

// Errors
var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUnknownUser        = errors.New("unknown user")
	ErrBadPassword        = errors.New("bad password")
	ErrInvalidCredentials = errors.New("username and password must be non-empty")
)

// Service is the credential store: it registers accounts and verifies
// logins. Raw passwords never reach storage; only digests do.
type Service struct {
	storage storage.Storage
	hasher  hasher.Hasher
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new credential store service
func New(storage storage.Storage, hasher hasher.Hasher, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		hasher:  hasher,
		clock:   clock,
		logger:  logger,
	}
}

// Register creates a new account. When two callers race on the same
// username, exactly one succeeds; the other gets ErrUsernameTaken.
func (s *Service) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrInvalidCredentials
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	user := &model.UserRecord{
		Username:     username,
		PasswordHash: digest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			return ErrUsernameTaken
		}
		return err
	}

	s.logger.Info("user registered", slog.String("username", username))
	return nil
}

// Verify checks a username/password pair against the stored digest
func (s *Service) Verify(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrInvalidCredentials
	}

	user, err := s.storage.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return ErrUnknownUser
		}
		return err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return ErrBadPassword
	}
	return nil
}
