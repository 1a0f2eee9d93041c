package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jkothapalli/netpong/internal/api"
	"github.com/jkothapalli/netpong/internal/factory"
	"github.com/jkothapalli/netpong/internal/session"
	redisstorage "github.com/jkothapalli/netpong/internal/storage/redis"
	"github.com/jkothapalli/netpong/internal/web"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		KeyFile:     envOrDefault("PONG_KEY_FILE", "pong.key"),
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Game server configuration
	gameConfig := session.DefaultServerConfig()
	if port := os.Getenv("PONG_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PONG_PORT", slog.String("value", port))
			os.Exit(1)
		}
		gameConfig.Port = p
	}
	gameConfig.Host = os.Getenv("PONG_HOST")

	gameServer := session.NewServer(gameConfig, app.Handler, app.Engine, logger)

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		LeaderboardService: app.LeaderboardService,
		Engine:             app.Engine,
		Registry:           app.Registry,
		Clock:              app.Clock,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:             logger,
		LeaderboardService: app.LeaderboardService,
		Engine:             app.Engine,
		Registry:           app.Registry,
		GamePort:           gameConfig.Port,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create HTTP server
	httpConfig := api.DefaultServerConfig()
	if port := os.Getenv("HTTP_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid HTTP_PORT", slog.String("value", port))
			os.Exit(1)
		}
		httpConfig.Port = p
	}
	httpServer := api.NewServer(mux, httpConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start both servers
	errCh := make(chan error, 2)
	go func() {
		errCh <- gameServer.Start(ctx)
	}()
	go func() {
		errCh <- httpServer.Start()
	}()

	logger.Info("server started",
		slog.Int("game_port", gameConfig.Port),
		slog.String("http_addr", httpServer.Addr()),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	if err := httpServer.Shutdown(context.Background()); err != nil {
		logger.Error("http shutdown error", slog.String("error", err.Error()))
	}
	gameServer.Shutdown()

	logger.Info("server stopped")
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
