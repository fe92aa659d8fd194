package core

import (
	"strings"

	"github.com/nmarkin/roomcast/internal/proto"
)

// handlerFunc executes one parsed command for a client.
type handlerFunc func(h *Hub, c *Client, arg string)

// handlers is the fixed command table. EXIT never reaches it: transports
// check it before submitting a line.
var handlers = map[string]handlerFunc{
	proto.VerbUser:        (*Hub).handleUser,
	proto.VerbListRooms:   (*Hub).handleListRooms,
	proto.VerbListMembers: (*Hub).handleListMembers,
	proto.VerbCreateRoom:  (*Hub).handleCreateRoom,
	proto.VerbJoin:        (*Hub).handleJoin,
	proto.VerbLeave:       (*Hub).handleLeave,
	proto.VerbSend:        (*Hub).handleSend,
	proto.VerbHelp:        (*Hub).handleHelp,
}

// dispatch parses a raw line and routes it to the owning handler. Parse and
// table misses answer with a text response; they never fail the connection.
func (h *Hub) dispatch(c *Client, raw string) {
	cmd, ok := proto.Parse(raw)
	if !ok {
		c.deliver(proto.RespInputTooShort)
		return
	}

	fn, ok := handlers[cmd.Verb]
	if !ok {
		c.deliver(proto.RespUnknownCommand)
		return
	}
	fn(h, c, cmd.Arg)
}

// authenticated is the gate every handler except USER passes through.
func (h *Hub) authenticated(c *Client) (*Session, bool) {
	sess, ok := h.registry.Lookup(c)
	if !ok {
		c.deliver(proto.RespNotAuthenticated)
	}
	return sess, ok
}

func (h *Hub) handleUser(c *Client, arg string) {
	sess, err := h.registry.Register(c, arg)
	if err != nil {
		c.deliver(err.Text)
		return
	}

	h.log.Info().Str("client_id", c.ID).Str("user", sess.Name).Msg("user registered")
	c.deliver(proto.RespWelcome + "\n" + proto.HelpText)
}

func (h *Hub) handleListRooms(c *Client, _ string) {
	if _, ok := h.authenticated(c); !ok {
		return
	}

	names := h.rooms.ListRooms()
	if len(names) == 0 {
		c.deliver(proto.RespNoRooms)
		return
	}
	c.deliver(proto.RespRoomsTitle + "\n" + strings.Join(names, "\n"))
}

func (h *Hub) handleListMembers(c *Client, arg string) {
	if _, ok := h.authenticated(c); !ok {
		return
	}

	members, err := h.rooms.Members(arg)
	if err != nil {
		c.deliver(err.Text)
		return
	}
	c.deliver(proto.RespMembersTitle + "\n" + strings.Join(members, "\n"))
}

func (h *Hub) handleCreateRoom(c *Client, arg string) {
	if _, ok := h.authenticated(c); !ok {
		return
	}

	if err := h.rooms.Create(arg); err != nil {
		c.deliver(err.Text)
		return
	}
	c.deliver(proto.RespRoomCreated)
}

func (h *Hub) handleJoin(c *Client, arg string) {
	sess, ok := h.authenticated(c)
	if !ok {
		return
	}

	if err := h.rooms.Join(sess, arg); err != nil {
		c.deliver(err.Text)
		return
	}
	h.log.Debug().Str("user", sess.Name).Str("room", arg).Msg("joined room")
	c.deliver(proto.RespJoined)
}

func (h *Hub) handleLeave(c *Client, arg string) {
	sess, ok := h.authenticated(c)
	if !ok {
		return
	}

	if err := h.rooms.Leave(sess, arg); err != nil {
		c.deliver(err.Text)
		return
	}
	h.log.Debug().Str("user", sess.Name).Str("room", arg).Msg("left room")
	c.deliver(proto.RespLeft)
}

func (h *Hub) handleSend(c *Client, arg string) {
	sess, ok := h.authenticated(c)
	if !ok {
		return
	}

	room, text, ok := proto.SplitSend(arg)
	if !ok {
		c.deliver(proto.RespInvalidMessageFormat)
		return
	}

	if err := h.rooms.Send(sess, room, text); err != nil {
		c.deliver(err.Text)
	}
}

func (h *Hub) handleHelp(c *Client, _ string) {
	if _, ok := h.authenticated(c); !ok {
		return
	}
	c.deliver(proto.HelpText)
}
