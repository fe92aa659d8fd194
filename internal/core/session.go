package core

import (
	"github.com/rs/zerolog"

	"github.com/nmarkin/roomcast/internal/proto"
)

// Session is the live identity bound to one registered client.
type Session struct {
	Client *Client
	Name   string

	// rooms holds joined room names in join order.
	rooms []string
}

// Rooms returns a copy of the joined room names.
func (s *Session) Rooms() []string {
	out := make([]string, len(s.rooms))
	copy(out, s.rooms)
	return out
}

func (s *Session) inRoom(name string) bool {
	for _, r := range s.rooms {
		if r == name {
			return true
		}
	}
	return false
}

func (s *Session) addRoom(name string) {
	s.rooms = append(s.rooms, name)
}

func (s *Session) removeRoom(name string) {
	for i, r := range s.rooms {
		if r == name {
			s.rooms = append(s.rooms[:i], s.rooms[i+1:]...)
			return
		}
	}
}

// Registry maps clients to sessions and enforces the identity invariants:
// at most one session per connection and a globally unique display name.
type Registry struct {
	sessions map[*Client]*Session
	log      *zerolog.Logger
}

// NewRegistry constructs an empty session registry.
func NewRegistry(logger *zerolog.Logger) *Registry {
	return &Registry{
		sessions: make(map[*Client]*Session),
		log:      logger,
	}
}

// Register creates a session for the client under the given display name.
func (r *Registry) Register(c *Client, name string) (*Session, *Error) {
	if _, exists := r.sessions[c]; exists {
		return nil, domainError(ErrCodeAlreadyRegistered, proto.RespAlreadyRegistered)
	}
	if !proto.ValidName(name) {
		return nil, domainError(ErrCodeInvalidName, proto.RespInvalidName)
	}
	for _, sess := range r.sessions {
		if sess.Name == name {
			return nil, domainError(ErrCodeNameTaken, proto.RespNameTaken)
		}
	}

	sess := &Session{Client: c, Name: name}
	r.sessions[c] = sess
	return sess, nil
}

// Lookup returns the session for a client. Absence means the connection has
// not completed the naming handshake; callers use this as the auth gate.
func (r *Registry) Lookup(c *Client) (*Session, bool) {
	sess, ok := r.sessions[c]
	return sess, ok
}

// Unregister removes the client's session, detaching it from every joined
// room first. Cleanup is best-effort: anomalies are logged, never returned,
// so a disconnect always completes.
func (r *Registry) Unregister(c *Client, rooms *Directory) {
	sess, ok := r.sessions[c]
	if !ok {
		return
	}

	for _, room := range sess.Rooms() {
		if !rooms.forget(sess, room) {
			r.log.Warn().Str("user", sess.Name).Str("room", room).
				Msg("stale membership on disconnect")
		}
	}
	delete(r.sessions, c)
	r.log.Debug().Str("user", sess.Name).Msg("session unregistered")
}

// All returns every live session.
func (r *Registry) All() []*Session {
	out := make([]*Session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		out = append(out, sess)
	}
	return out
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	return len(r.sessions)
}
