package session

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jkothapalli/netpong/internal/dependencies/mocks"
	"github.com/jkothapalli/netpong/internal/game"
	"github.com/jkothapalli/netpong/internal/model"
	"github.com/jkothapalli/netpong/internal/secure"
	"github.com/jkothapalli/netpong/internal/services/auth"
	"github.com/jkothapalli/netpong/internal/services/leaderboard"
	"github.com/jkothapalli/netpong/internal/storage/memory"
	"github.com/jkothapalli/netpong/internal/testutil"
)

// fakeConn is an in-memory LineConn for driving the handler from tests
type fakeConn struct {
	in     chan string
	out    chan string
	closed chan struct{}
	once   sync.Once
}

var _ LineConn = (*fakeConn)(nil)

func newFakeConn() *fakeConn {
	return &fakeConn{
		in:     make(chan string, 64),
		out:    make(chan string, 256),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) ReadLine() (string, error) {
	select {
	case line := <-c.in:
		return line, nil
	case <-c.closed:
		return "", io.EOF
	}
}

func (c *fakeConn) WriteLine(line string) error {
	select {
	case c.out <- line:
		return nil
	case <-c.closed:
		return io.ErrClosedPipe
	}
}

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

// send queues a line as if the peer had written it
func (c *fakeConn) send(t *testing.T, line string) {
	t.Helper()
	select {
	case c.in <- line:
	case <-time.After(time.Second):
		t.Fatal("timed out queueing line")
	}
}

// recv waits for the next server-written line
func (c *fakeConn) recv(t *testing.T) string {
	t.Helper()
	select {
	case line := <-c.out:
		return line
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for server line")
		return ""
	}
}

// waitClosed waits for the handler to tear the connection down
func (c *fakeConn) waitClosed(t *testing.T) {
	t.Helper()
	select {
	case <-c.closed:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for connection close")
	}
}

type HandlerSuite struct {
	suite.Suite
	registry *Registry
	engine   *Engine
	handler  *Handler
	cipher   *secure.Channel
	storage  *memory.Storage
	tuning   game.Tuning
	conns    []*fakeConn
	wg       sync.WaitGroup
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.tuning = game.DefaultTuning()
	s.storage = memory.New()
	logger := testutil.NopLogger()

	var key [secure.KeySize]byte
	key[0] = 7
	s.cipher = secure.NewChannel(key)

	clock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	authService := auth.New(s.storage, mocks.NewPlainHasher(), clock, logger)
	board := leaderboard.New(s.storage, logger)

	s.registry = NewRegistry(mocks.NewMockRandom(), logger)
	s.engine = NewEngine(s.tuning, s.registry, board, DefaultTickInterval, logger)
	s.handler = NewHandler(s.registry, s.engine, authService, s.cipher, s.tuning, logger)
	s.conns = nil
}

func (s *HandlerSuite) TearDownTest() {
	for _, conn := range s.conns {
		_ = conn.Close()
	}
	s.wg.Wait()
	s.registry.CloseAll()
}

// connect starts a handler for a fresh fake connection
func (s *HandlerSuite) connect() *fakeConn {
	conn := newFakeConn()
	s.conns = append(s.conns, conn)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.handler.Handle(context.Background(), conn)
	}()
	return conn
}

// authenticate drives a player through registration
func (s *HandlerSuite) authenticate(conn *fakeConn, username string) {
	conn.send(s.T(), "register "+username+" secret")
	s.Require().Equal("OK registered", conn.recv(s.T()))
}

// sealed wraps a payload for sending as a player
func (s *HandlerSuite) sealed(payload string) string {
	envelope, err := s.cipher.Encode(payload)
	s.Require().NoError(err)
	return envelope
}

// unseal opens a player-bound envelope
func (s *HandlerSuite) unseal(envelope string) string {
	payload, err := s.cipher.Decode(envelope)
	s.Require().NoError(err)
	return payload
}

func (s *HandlerSuite) TestHandshakeAssignsRolesInOrder() {
	first := s.connect()
	s.Equal("640 480 left", first.recv(s.T()))

	second := s.connect()
	s.Equal("640 480 right", second.recv(s.T()))

	third := s.connect()
	s.Equal("640 480 spectator", third.recv(s.T()))
}

func (s *HandlerSuite) TestRegisterThenPlay() {
	conn := s.connect()
	_ = conn.recv(s.T()) // handshake

	s.authenticate(conn, "alice")

	require.Eventually(s.T(), func() bool {
		return s.engine.seatedPlayers() == 1
	}, time.Second, 5*time.Millisecond)
}

func (s *HandlerSuite) TestLoginFlow() {
	conn := s.connect()
	_ = conn.recv(s.T())
	s.authenticate(conn, "alice")
	conn.Close()
	conn.waitClosed(s.T())

	again := s.connect()
	_ = again.recv(s.T())

	again.send(s.T(), "login alice wrongpass")
	s.Equal("ERR bad password", again.recv(s.T()))

	again.send(s.T(), "login alice secret")
	s.Equal("OK logged-in", again.recv(s.T()))
}

func (s *HandlerSuite) TestAuthErrorsRePrompt() {
	conn := s.connect()
	_ = conn.recv(s.T())

	conn.send(s.T(), "login ghost secret")
	s.Equal("ERR unknown user", conn.recv(s.T()))

	conn.send(s.T(), "register alice")
	s.Equal("ERR malformed request", conn.recv(s.T()))

	conn.send(s.T(), "frobnicate alice secret")
	s.Equal("ERR malformed request", conn.recv(s.T()))

	conn.send(s.T(), "register alice secret")
	s.Equal("OK registered", conn.recv(s.T()))
}

func (s *HandlerSuite) TestDuplicateRegistrationRejected() {
	first := s.connect()
	_ = first.recv(s.T())
	s.authenticate(first, "alice")

	second := s.connect()
	_ = second.recv(s.T())
	second.send(s.T(), "register alice other")
	s.Equal("ERR username taken", second.recv(s.T()))
}

func (s *HandlerSuite) TestPlayerSnapshotsAreSealed() {
	left := s.connect()
	_ = left.recv(s.T())
	s.authenticate(left, "alice")

	right := s.connect()
	_ = right.recv(s.T())
	s.authenticate(right, "bob")

	require.Eventually(s.T(), func() bool {
		return s.engine.seatedPlayers() == 2
	}, time.Second, 5*time.Millisecond)
	s.engine.Tick()

	snapLine := s.unseal(left.recv(s.T()))
	snap, err := model.ParseSnapshot(snapLine)
	s.Require().NoError(err)
	s.False(snap.GameOver)

	s.Equal(snapLine, s.unseal(right.recv(s.T())), "both players see the same tick")
}

func (s *HandlerSuite) TestObserverReceivesPlaintextImmediately() {
	left := s.connect()
	_ = left.recv(s.T())
	s.authenticate(left, "alice")

	right := s.connect()
	_ = right.recv(s.T())
	s.authenticate(right, "bob")

	observer := s.connect()
	s.Equal("640 480 spectator", observer.recv(s.T()))

	require.Eventually(s.T(), func() bool {
		return s.registry.ObserverCount() == 1 && s.engine.seatedPlayers() == 2
	}, time.Second, 5*time.Millisecond)
	s.engine.Tick()

	line := observer.recv(s.T())
	_, err := model.ParseSnapshot(line)
	s.Require().NoError(err, "observer line must be plaintext, got %q", line)
}

func (s *HandlerSuite) TestPlayerInputMovesPaddle() {
	left := s.connect()
	_ = left.recv(s.T())
	s.authenticate(left, "alice")

	right := s.connect()
	_ = right.recv(s.T())
	s.authenticate(right, "bob")

	require.Eventually(s.T(), func() bool {
		return s.engine.Phase() == model.PhaseInProgress
	}, time.Second, 5*time.Millisecond)

	s.engine.Tick()
	start, err := model.ParseSnapshot(s.unseal(left.recv(s.T())))
	s.Require().NoError(err)
	_ = right.recv(s.T())

	// The reader goroutine delivers the intent asynchronously; keep
	// ticking until the sampled input shows up in a snapshot
	left.send(s.T(), s.sealed("up"))
	moved := false
	for i := 0; i < 200 && !moved; i++ {
		s.engine.Tick()
		snap, err := model.ParseSnapshot(s.unseal(left.recv(s.T())))
		s.Require().NoError(err)
		_ = right.recv(s.T())
		moved = snap.LeftY < start.LeftY
		time.Sleep(time.Millisecond)
	}
	s.True(moved, "input should move the left paddle up")
}

func (s *HandlerSuite) TestUndecodableInputDropsPlayer() {
	left := s.connect()
	_ = left.recv(s.T())
	s.authenticate(left, "alice")

	left.send(s.T(), "this is not an envelope")
	left.waitClosed(s.T())

	require.Eventually(s.T(), func() bool {
		return s.registry.PlayerCount() == 0
	}, time.Second, 5*time.Millisecond)
}

func (s *HandlerSuite) TestMalformedPayloadDropsPlayer() {
	left := s.connect()
	_ = left.recv(s.T())
	s.authenticate(left, "alice")

	left.send(s.T(), s.sealed("sideways"))
	left.waitClosed(s.T())
}

func (s *HandlerSuite) TestMidGameDisconnectForfeits() {
	left := s.connect()
	_ = left.recv(s.T())
	s.authenticate(left, "alice")

	right := s.connect()
	_ = right.recv(s.T())
	s.authenticate(right, "bob")

	require.Eventually(s.T(), func() bool {
		return s.engine.Phase() == model.PhaseInProgress
	}, time.Second, 5*time.Millisecond)

	left.Close()

	// The forfeit snapshot credits the survivor
	deadline := time.After(time.Second)
	for credited := false; !credited; {
		select {
		case line := <-right.out:
			snap, err := model.ParseSnapshot(s.unseal(line))
			s.Require().NoError(err)
			credited = snap.GameOver && snap.Winner == model.RoleRight
		case <-deadline:
			s.FailNow("no forfeit snapshot reached the survivor")
		}
	}

	// The freed slot is assignable again
	require.Eventually(s.T(), func() bool {
		return s.registry.PlayerCount() == 1
	}, time.Second, 5*time.Millisecond)
	replacement := s.connect()
	s.Equal("640 480 left", replacement.recv(s.T()))
}

func (s *HandlerSuite) TestRematchRoundTrip() {
	left := s.connect()
	_ = left.recv(s.T())
	s.authenticate(left, "alice")

	right := s.connect()
	_ = right.recv(s.T())
	s.authenticate(right, "bob")

	require.Eventually(s.T(), func() bool {
		return s.engine.Phase() == model.PhaseInProgress
	}, time.Second, 5*time.Millisecond)

	// Both paddles hug the top wall until someone wins
	for i := 0; i < 20000 && s.engine.Phase() != model.PhaseAwaitingRematch; i++ {
		left.send(s.T(), s.sealed("up"))
		right.send(s.T(), s.sealed("up"))
		s.engine.Tick()
		drain(left.out)
		drain(right.out)
	}
	s.Require().Equal(model.PhaseAwaitingRematch, s.engine.Phase())

	left.send(s.T(), s.sealed("ready"))
	time.Sleep(50 * time.Millisecond)
	s.Equal(model.PhaseAwaitingRematch, s.engine.Phase(), "one ready must not restart")

	right.send(s.T(), s.sealed("ready"))
	require.Eventually(s.T(), func() bool {
		return s.engine.Phase() == model.PhaseInProgress
	}, time.Second, time.Millisecond)

	// Skip any game-over snapshots still in flight from before the restart
	s.engine.Tick()
	deadline := time.After(time.Second)
	for {
		select {
		case line := <-left.out:
			snap, err := model.ParseSnapshot(s.unseal(line))
			s.Require().NoError(err)
			if !snap.GameOver {
				s.Zero(snap.LeftScore)
				s.Zero(snap.RightScore)
				return
			}
		case <-deadline:
			s.FailNow("no fresh snapshot after rematch restart")
		}
	}
}

// seatedPlayers reports how many paddle slots have authenticated players
func (e *Engine) seatedPlayers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.seats)
}

// drain empties a buffered channel without blocking
func drain(ch chan string) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
