package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jkothapalli/netpong/internal/game"
	"github.com/jkothapalli/netpong/internal/secure"
	"github.com/jkothapalli/netpong/internal/services/auth"
)

// Handler drives one network peer through the connection protocol:
// handshake, authentication (players only), then the gameplay loop where
// inputs flow to the engine and snapshots flow back out. Player gameplay
// traffic travels in secure envelopes; observer traffic is plaintext.
type Handler struct {
	registry *Registry
	engine   *Engine
	auth     *auth.Service
	cipher   secure.Cipher
	tuning   game.Tuning
	logger   *slog.Logger
}

// NewHandler creates a connection handler
func NewHandler(
	registry *Registry,
	engine *Engine,
	auth *auth.Service,
	cipher secure.Cipher,
	tuning game.Tuning,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		registry: registry,
		engine:   engine,
		auth:     auth,
		cipher:   cipher,
		tuning:   tuning,
		logger:   logger.With(slog.String("component", "handler")),
	}
}

// Handle owns one connection from accept to close. Any socket error,
// malformed line or decode failure drops this peer; the engine and other
// peers are never affected beyond slot release.
func (h *Handler) Handle(ctx context.Context, conn LineConn) {
	client := h.registry.Join()
	logger := h.logger.With(
		slog.String("client_id", client.ID),
		slog.String("role", client.Role.Wire()),
	)

	defer func() {
		h.registry.Release(client)
		h.engine.PlayerLeft(client.Role)
		_ = conn.Close()
	}()

	// Handshake: court dimensions and assigned role, plaintext
	handshake := fmt.Sprintf("%d %d %s", h.tuning.CourtWidth, h.tuning.CourtHeight, client.Role.Wire())
	if err := conn.WriteLine(handshake); err != nil {
		logger.Info("handshake failed", slog.String("error", err.Error()))
		return
	}

	username := ""
	if client.Role.IsPlayer() {
		u, err := h.authenticate(ctx, conn)
		if err != nil {
			logger.Info("connection lost during auth", slog.String("error", err.Error()))
			return
		}
		username = u
		logger = logger.With(slog.String("username", username))
		logger.Info("player authenticated")
	}

	h.registry.Activate(client, username)
	h.engine.SeatPlayer(client.Role, username)

	readerDone := make(chan struct{})
	go h.readLoop(conn, client, logger, readerDone)

	// Write loop: drain the snapshot channel, encoding per role. Exits
	// when the reader drops the peer or the registry closes the channel.
	for {
		select {
		case line, ok := <-client.Lines():
			if !ok {
				return
			}
			out := line
			if client.Role.IsPlayer() {
				encoded, err := h.cipher.Encode(line)
				if err != nil {
					logger.Error("failed to seal snapshot", slog.String("error", err.Error()))
					return
				}
				out = encoded
			}
			if err := conn.WriteLine(out); err != nil {
				logger.Info("peer write failed", slog.String("error", err.Error()))
				return
			}
		case <-readerDone:
			return
		}
	}
}

// readLoop consumes inbound lines until the peer errors or misbehaves.
// Players send envelopes carrying "up"/"down"/"" or "ready"; observers
// send nothing meaningful and are read only to notice the close.
func (h *Handler) readLoop(conn LineConn, client *Client, logger *slog.Logger, done chan struct{}) {
	defer close(done)

	for {
		line, err := conn.ReadLine()
		if err != nil {
			logger.Info("peer disconnected", slog.String("error", err.Error()))
			return
		}

		if !client.Role.IsPlayer() {
			continue
		}

		payload, err := h.cipher.Decode(line)
		if err != nil {
			// Corrupt or wrong-key traffic is treated as a lost peer
			logger.Warn("dropping peer after undecodable line")
			return
		}

		if payload == "ready" {
			h.engine.SignalReady(client.Role)
			continue
		}

		intent, ok := game.ParseIntent(payload)
		if !ok {
			logger.Warn("dropping peer after malformed input", slog.String("payload", payload))
			return
		}
		h.engine.SetIntent(client.Role, intent)
	}
}

// authenticate runs the register/login exchange until one succeeds.
// Responses are "OK registered", "OK logged-in" or "ERR <reason>"; the
// peer may retry indefinitely (rate limiting is an upstream concern).
func (h *Handler) authenticate(ctx context.Context, conn LineConn) (string, error) {
	for {
		line, err := conn.ReadLine()
		if err != nil {
			return "", err
		}

		verb, username, password, ok := parseAuthLine(line)
		if !ok {
			if err := conn.WriteLine("ERR malformed request"); err != nil {
				return "", err
			}
			continue
		}

		var authErr error
		var okReply string
		switch verb {
		case "register":
			authErr = h.auth.Register(ctx, username, password)
			okReply = "OK registered"
		case "login":
			authErr = h.auth.Verify(ctx, username, password)
			okReply = "OK logged-in"
		}

		if authErr != nil {
			if err := conn.WriteLine("ERR " + authReason(authErr)); err != nil {
				return "", err
			}
			continue
		}

		if err := conn.WriteLine(okReply); err != nil {
			return "", err
		}
		return strings.TrimSpace(username), nil
	}
}

// parseAuthLine splits "register|login <username> <password>"
func parseAuthLine(line string) (verb, username, password string, ok bool) {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return "", "", "", false
	}
	if parts[0] != "register" && parts[0] != "login" {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// authReason maps credential store errors to wire reasons
func authReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrUsernameTaken):
		return "username taken"
	case errors.Is(err, auth.ErrUnknownUser):
		return "unknown user"
	case errors.Is(err, auth.ErrBadPassword):
		return "bad password"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "invalid credentials"
	default:
		return "internal error"
	}
}
