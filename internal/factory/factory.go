package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/jkothapalli/netpong/internal/dependencies/clock"
	"github.com/jkothapalli/netpong/internal/dependencies/hasher"
	"github.com/jkothapalli/netpong/internal/dependencies/random"
	"github.com/jkothapalli/netpong/internal/game"
	"github.com/jkothapalli/netpong/internal/secure"
	"github.com/jkothapalli/netpong/internal/services/auth"
	"github.com/jkothapalli/netpong/internal/services/leaderboard"
	"github.com/jkothapalli/netpong/internal/session"
	"github.com/jkothapalli/netpong/internal/storage"
	"github.com/jkothapalli/netpong/internal/storage/memory"
	redisstorage "github.com/jkothapalli/netpong/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Hasher hasher.Hasher

	// Gameplay crypto channel shared by server and clients
	Cipher *secure.Channel

	// Services
	AuthService        *auth.Service
	LeaderboardService *leaderboard.Service

	// Match runtime
	Tuning   game.Tuning
	Registry *session.Registry
	Engine   *session.Engine
	Handler  *session.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// KeyFile is the path to the symmetric gameplay key. Loaded at
	// startup; a fresh key is generated if the file does not exist.
	KeyFile string
	// Tuning holds court and physics parameters (optional)
	// If zero value, defaults to game.DefaultTuning()
	Tuning game.Tuning
	// TickInterval is the simulation step period (optional)
	// If zero, defaults to session.DefaultTickInterval
	TickInterval time.Duration
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	if cfg.KeyFile == "" {
		return nil, errors.New("KeyFile is required")
	}
	key, err := secure.LoadOrCreateKey(cfg.KeyFile)
	if err != nil {
		return nil, err
	}

	tuning := cfg.Tuning
	if tuning.CourtWidth == 0 {
		tuning = game.DefaultTuning()
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()
	hsh := hasher.New()

	return newWithDependencies(store, clk, rnd, hsh, key, tuning, cfg.TickInterval, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	hsh hasher.Hasher,
	key [secure.KeySize]byte,
	tuning game.Tuning,
	tickInterval time.Duration,
	logger *slog.Logger,
) *App {
	cipher := secure.NewChannel(key)

	authService := auth.New(store, hsh, clk, logger)
	leaderboardService := leaderboard.New(store, logger)

	registry := session.NewRegistry(rnd, logger)
	engine := session.NewEngine(tuning, registry, leaderboardService, tickInterval, logger)
	handler := session.NewHandler(registry, engine, authService, cipher, tuning, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		Hasher:             hsh,
		Cipher:             cipher,
		AuthService:        authService,
		LeaderboardService: leaderboardService,
		Tuning:             tuning,
		Registry:           registry,
		Engine:             engine,
		Handler:            handler,
	}
}
