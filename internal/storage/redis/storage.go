package redis

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jkothapalli/netpong/internal/model"
	"github.com/jkothapalli/netpong/internal/storage"
)

// Hash fields of a user record
const (
	fieldUsername     = "username"
	fieldPasswordHash = "password_hash"
	fieldWins         = "wins"
	fieldSeq          = "seq"
	fieldCreatedAt    = "created_at"
	fieldUpdatedAt    = "updated_at"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateUser(ctx context.Context, user *model.UserRecord) error {
	key := userKey(user.Username)

	// HSETNX on the username field is the claim: first writer wins
	claimed, err := s.client.HSetNX(ctx, key, fieldUsername, user.Username).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrUsernameTaken
	}

	seq, err := s.client.Incr(ctx, userSeqKey()).Result()
	if err != nil {
		return err
	}
	user.Seq = seq

	pipe := s.client.Pipeline()
	pipe.HSet(ctx, key,
		fieldPasswordHash, user.PasswordHash,
		fieldWins, user.Wins,
		fieldSeq, seq,
		fieldCreatedAt, user.CreatedAt.Format(time.RFC3339Nano),
		fieldUpdatedAt, user.UpdatedAt.Format(time.RFC3339Nano),
	)
	pipe.ZAdd(ctx, leaderboardKey(), redis.Z{
		Score:  float64(user.Wins),
		Member: user.Username,
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.UserRecord, error) {
	fields, err := s.client.HGetAll(ctx, userKey(username)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrUserNotFound
	}
	return userFromFields(fields)
}

func (s *Storage) IncrementWins(ctx context.Context, username string) (int, error) {
	key := userKey(username)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, model.ErrUserNotFound
	}

	pipe := s.client.Pipeline()
	incr := pipe.HIncrBy(ctx, key, fieldWins, 1)
	pipe.HSet(ctx, key, fieldUpdatedAt, time.Now().UTC().Format(time.RFC3339Nano))
	pipe.ZIncrBy(ctx, leaderboardKey(), 1, username)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return int(incr.Val()), nil
}

func (s *Storage) TopPlayers(ctx context.Context, n int) ([]*model.UserRecord, error) {
	// The sorted set orders equal scores lexically, not by registration
	// order, so hydrate every member and rank client-side. Leaderboards
	// here are small.
	usernames, err := s.client.ZRevRange(ctx, leaderboardKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	ranked := make([]*model.UserRecord, 0, len(usernames))
	for _, username := range usernames {
		user, err := s.GetUser(ctx, username)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, user)
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

// userFromFields rebuilds a UserRecord from its Redis hash fields
func userFromFields(fields map[string]string) (*model.UserRecord, error) {
	wins, err := strconv.Atoi(fields[fieldWins])
	if err != nil {
		return nil, err
	}
	seq, err := strconv.ParseInt(fields[fieldSeq], 10, 64)
	if err != nil {
		return nil, err
	}

	user := &model.UserRecord{
		Username:     fields[fieldUsername],
		PasswordHash: fields[fieldPasswordHash],
		Wins:         wins,
		Seq:          seq,
	}

	if raw := fields[fieldCreatedAt]; raw != "" {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			user.CreatedAt = t
		}
	}
	if raw := fields[fieldUpdatedAt]; raw != "" {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			user.UpdatedAt = t
		}
	}

	return user, nil
}
