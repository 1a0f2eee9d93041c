package session

import (
	"log/slog"
	"sync"

	"github.com/jkothapalli/netpong/internal/dependencies/random"
	"github.com/jkothapalli/netpong/internal/model"
)

// sendBufferSize bounds the per-peer outgoing snapshot buffer. A peer that
// falls further behind than this has snapshots dropped rather than ever
// delaying the tick loop or other peers.
const sendBufferSize = 64

const clientIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Client is one registered connection's entry in the registry. Snapshots
// are delivered through the buffered send channel; the connection handler
// drains it and owns the actual socket write.
type Client struct {
	ID       string
	Role     model.Role
	Username string

	send      chan string
	active    bool
	closeOnce sync.Once
}

// Lines returns the channel the handler drains for outgoing lines.
// The registry closes it when the client is released.
func (c *Client) Lines() <-chan string {
	return c.send
}

// Registry tracks the two paddle slots and the observer set. Role
// assignment and release are mutually exclusive single operations, so two
// racing connects can never claim the same paddle.
type Registry struct {
	mu        sync.Mutex
	left      *Client
	right     *Client
	observers map[string]*Client

	random random.Random
	logger *slog.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(random random.Random, logger *slog.Logger) *Registry {
	return &Registry{
		observers: make(map[string]*Client),
		random:    random,
		logger:    logger.With(slog.String("component", "registry")),
	}
}

// Join assigns a role to a new connection and reserves its slot: the
// first vacant paddle in LEFT, RIGHT order, otherwise OBSERVER. The
// returned client is inactive (receives no snapshots) until Activate.
func (r *Registry) Join() *Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	client := &Client{
		ID:   "c_" + r.random.String(8, clientIDAlphabet),
		send: make(chan string, sendBufferSize),
	}

	switch {
	case r.left == nil:
		client.Role = model.RoleLeft
		r.left = client
	case r.right == nil:
		client.Role = model.RoleRight
		r.right = client
	default:
		client.Role = model.RoleObserver
		r.observers[client.ID] = client
	}

	r.logger.Info("connection joined",
		slog.String("client_id", client.ID),
		slog.String("role", client.Role.Wire()),
	)
	return client
}

// Activate marks a client as ready to receive snapshots. Players are
// activated after authentication; observers immediately.
func (r *Registry) Activate(client *Client, username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	client.Username = username
	client.active = true
}

// Release frees a client's slot and closes its snapshot channel. Safe to
// call more than once. A freed paddle slot is reusable by the next Join.
func (r *Registry) Release(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case r.left == client:
		r.left = nil
	case r.right == client:
		r.right = nil
	default:
		delete(r.observers, client.ID)
	}

	client.closeOnce.Do(func() {
		client.active = false
		close(client.send)
	})

	r.logger.Info("connection released",
		slog.String("client_id", client.ID),
		slog.String("role", client.Role.Wire()),
	)
}

// Broadcast delivers a wire line to every active client. Delivery never
// blocks: a peer whose buffer is full has this line dropped.
func (r *Registry) Broadcast(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for _, client := range r.activeLocked() {
		select {
		case client.send <- line:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		r.logger.Warn("snapshot dropped for slow peers", slog.Int("dropped", dropped))
	}
}

// PlayerCount returns how many paddle slots are occupied
func (r *Registry) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	if r.left != nil {
		count++
	}
	if r.right != nil {
		count++
	}
	return count
}

// ObserverCount returns the number of registered observers
func (r *Registry) ObserverCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.observers)
}

// CloseAll releases every client. Used on server shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	var clients []*Client
	if r.left != nil {
		clients = append(clients, r.left)
	}
	if r.right != nil {
		clients = append(clients, r.right)
	}
	for _, client := range r.observers {
		clients = append(clients, client)
	}
	r.left = nil
	r.right = nil
	r.observers = make(map[string]*Client)
	r.mu.Unlock()

	for _, client := range clients {
		client.closeOnce.Do(func() {
			client.active = false
			close(client.send)
		})
	}
}

// activeLocked snapshots the active client set; callers hold r.mu
func (r *Registry) activeLocked() []*Client {
	clients := make([]*Client, 0, 2+len(r.observers))
	if r.left != nil && r.left.active {
		clients = append(clients, r.left)
	}
	if r.right != nil && r.right.active {
		clients = append(clients, r.right)
	}
	for _, client := range r.observers {
		if client.active {
			clients = append(clients, client)
		}
	}
	return clients
}
