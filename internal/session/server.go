package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
)

// ServerConfig holds configuration for the TCP game listener
type ServerConfig struct {
	Host string
	Port int
}

// DefaultServerConfig returns sensible defaults for the game listener
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host: "",
		Port: 6000,
	}
}

// Server accepts gameplay connections and hands each one to the
// connection handler. It keeps accepting new sessions until Shutdown.
type Server struct {
	cfg     ServerConfig
	handler *Handler
	engine  *Engine
	logger  *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	closed   bool
	wg       sync.WaitGroup
}

// NewServer creates a game server
func NewServer(cfg ServerConfig, handler *Handler, engine *Engine, logger *slog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		handler: handler,
		engine:  engine,
		logger:  logger.With(slog.String("component", "game_server")),
	}
}

// Start listens for TCP connections and blocks until Shutdown or a fatal
// listener error. The engine's tick loop is started alongside the accept
// loop.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("game listener: %w", err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = listener.Close()
		return nil
	}
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("game server listening", slog.String("addr", listener.Addr().String()))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.engine.Run()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.isClosed() {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handler.Handle(ctx, NewLineConn(conn))
		}()
	}
}

// Addr returns the server's listen address, or empty before Start
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops accepting, tears down open connections and halts the
// tick loop
func (s *Server) Shutdown() {
	s.mu.Lock()
	s.closed = true
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		_ = listener.Close()
	}
	s.engine.Stop()
	s.handler.registry.CloseAll()
	s.wg.Wait()
	s.logger.Info("game server stopped")
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
