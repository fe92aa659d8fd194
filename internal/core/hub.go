package core

import (
	"context"

	"github.com/rs/zerolog"
)

// Hub owns all chat state. A single Run loop consumes registrations,
// disconnects, command lines, and broadcasts, so no two state mutations ever
// interleave and the registry and directory need no locking. Socket I/O
// happens in per-connection goroutines outside the hub.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	requests   chan request
	notices    chan notice
	done       chan struct{}

	// clients is the watched set: every attached connection, registered
	// or still pending the naming handshake.
	clients  map[*Client]struct{}
	registry *Registry
	rooms    *Directory
	log      *zerolog.Logger
}

// request is one raw command line from a client.
type request struct {
	client *Client
	line   string
}

// notice is an out-of-band broadcast: empty selector means every registered
// session, otherwise the union of the named rooms' members.
type notice struct {
	selector []string
	text     string
}

// NewHub constructs a hub with empty registry and directory.
func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		requests:   make(chan request, 32),
		notices:    make(chan notice, 8),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
		registry:   NewRegistry(logger),
		rooms:      NewDirectory(logger),
		log:        logger,
	}
}

// Run drives the hub until the context is cancelled. It must be running for
// any of the producer methods to make progress.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.log.Debug().Str("client_id", c.ID).Int("connections", len(h.clients)).Msg("connection attached")
		case c := <-h.unregister:
			h.registry.Unregister(c, h.rooms)
			delete(h.clients, c)
			h.log.Debug().Str("client_id", c.ID).Int("connections", len(h.clients)).Msg("connection detached")
		case req := <-h.requests:
			h.dispatch(req.client, req.line)
		case n := <-h.notices:
			h.broadcast(n.selector, n.text)
		}
	}
}

// RegisterClient attaches a pending connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// UnregisterClient detaches a connection, tearing down its session and room
// memberships. Safe to call for connections that never registered a name.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Submit hands one raw command line to the hub loop.
func (h *Hub) Submit(c *Client, line string) {
	select {
	case h.requests <- request{client: c, line: line}:
	case <-h.done:
	}
}

// Broadcast queues a broadcast. An empty selector reaches every registered
// session; a non-empty one reaches the union of the named rooms' members.
func (h *Hub) Broadcast(selector []string, text string) {
	select {
	case h.notices <- notice{selector: selector, text: text}:
	case <-h.done:
	}
}

func (h *Hub) broadcast(selector []string, text string) {
	if len(selector) == 0 {
		for _, sess := range h.registry.All() {
			sess.Client.deliver(text)
		}
		return
	}
	h.rooms.BroadcastRooms(selector, text)
}
