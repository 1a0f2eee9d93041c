package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jkothapalli/netpong/internal/model"
	"github.com/jkothapalli/netpong/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users   map[string]*model.UserRecord
	nextSeq int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users: make(map[string]*model.UserRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateUser(ctx context.Context, user *model.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return model.ErrUsernameTaken
	}

	stored := *user
	stored.Seq = s.nextSeq
	s.nextSeq++
	s.users[user.Username] = &stored
	user.Seq = stored.Seq
	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) IncrementWins(ctx context.Context, username string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return 0, model.ErrUserNotFound
	}
	user.Wins++
	return user.Wins, nil
}

func (s *Storage) TopPlayers(ctx context.Context, n int) ([]*model.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ranked := make([]*model.UserRecord, 0, len(s.users))
	for _, user := range s.users {
		copied := *user
		ranked = append(ranked, &copied)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Wins != ranked[j].Wins {
			return ranked[i].Wins > ranked[j].Wins
		}
		return ranked[i].Seq < ranked[j].Seq
	})

	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked, nil
}
