package core

import (
	"github.com/rs/zerolog"

	"github.com/nmarkin/roomcast/internal/proto"
)

// Room is a named broadcast group. Membership is a weak list of sessions in
// join order; the room does not own them.
type Room struct {
	Name    string
	members []*Session
}

func (r *Room) contains(sess *Session) bool {
	for _, m := range r.members {
		if m == sess {
			return true
		}
	}
	return false
}

func (r *Room) add(sess *Session) {
	r.members = append(r.members, sess)
}

func (r *Room) remove(sess *Session) bool {
	for i, m := range r.members {
		if m == sess {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return true
		}
	}
	return false
}

// MemberNames returns display names of current members in join order.
func (r *Room) MemberNames() []string {
	out := make([]string, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m.Name)
	}
	return out
}

// broadcast fans a text line out to every current member.
func (r *Room) broadcast(text string) {
	for _, m := range r.members {
		m.Client.deliver(text)
	}
}

// Directory owns every room, keeping creation order for listings. Rooms are
// never implicitly destroyed: a room whose last member leaves stays behind
// with an empty member list.
type Directory struct {
	rooms map[string]*Room
	order []string
	log   *zerolog.Logger
}

// NewDirectory constructs an empty room directory.
func NewDirectory(logger *zerolog.Logger) *Directory {
	return &Directory{
		rooms: make(map[string]*Room),
		log:   logger,
	}
}

// ListRooms returns all room names in creation order.
func (d *Directory) ListRooms() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Create inserts a new empty room.
func (d *Directory) Create(name string) *Error {
	if !proto.ValidName(name) {
		return domainError(ErrCodeInvalidName, proto.RespInvalidName)
	}
	if _, exists := d.rooms[name]; exists {
		return domainError(ErrCodeRoomExists, proto.RespRoomExists)
	}

	d.rooms[name] = &Room{Name: name}
	d.order = append(d.order, name)
	d.log.Info().Str("room", name).Msg("room created")
	return nil
}

// Members returns the display names of a room's current members.
func (d *Directory) Members(name string) ([]string, *Error) {
	if !proto.ValidName(name) {
		return nil, domainError(ErrCodeInvalidName, proto.RespInvalidName)
	}
	room, ok := d.rooms[name]
	if !ok {
		return nil, domainError(ErrCodeRoomNotFound, proto.RespRoomNotFound)
	}
	return room.MemberNames(), nil
}

// Join adds the session to a room. Existing members are notified before the
// joiner is added, so the notice reaches only those already present.
func (d *Directory) Join(sess *Session, name string) *Error {
	if !proto.ValidName(name) {
		return domainError(ErrCodeInvalidName, proto.RespInvalidName)
	}
	room, ok := d.rooms[name]
	if !ok {
		return domainError(ErrCodeRoomNotFound, proto.RespRoomNotFound)
	}
	if room.contains(sess) {
		return domainError(ErrCodeAlreadyMember, proto.RespAlreadyMember)
	}

	room.broadcast(proto.NoticeJoined(sess.Name, name))
	room.add(sess)
	sess.addRoom(name)
	return nil
}

// Leave removes the session from a room and notifies the remaining members.
func (d *Directory) Leave(sess *Session, name string) *Error {
	if !proto.ValidName(name) {
		return domainError(ErrCodeInvalidName, proto.RespInvalidName)
	}
	room, ok := d.rooms[name]
	if !ok {
		return domainError(ErrCodeRoomNotFound, proto.RespRoomNotFound)
	}
	if !room.remove(sess) {
		return domainError(ErrCodeNotMember, proto.RespNotMember)
	}

	sess.removeRoom(name)
	room.broadcast(proto.NoticeLeft(sess.Name, name))
	return nil
}

// Send delivers a chat message to a room: every member except the sender
// receives the sender-prefixed copy, the sender gets the self-prefixed echo.
func (d *Directory) Send(sess *Session, name, text string) *Error {
	room, ok := d.rooms[name]
	if !ok {
		return domainError(ErrCodeRoomNotFound, proto.RespRoomNotFound)
	}
	if !room.contains(sess) {
		return domainError(ErrCodeNotMember, proto.RespNotMember)
	}

	for _, m := range room.members {
		if m == sess {
			continue
		}
		m.Client.deliver(proto.FormatMessage(sess.Name, name, text))
	}
	sess.Client.deliver(proto.FormatSelfMessage(name, text))
	return nil
}

// BroadcastRooms sends a text line to every member of every named room.
// Missing names in the selector are skipped.
func (d *Directory) BroadcastRooms(selector []string, text string) {
	seen := make(map[*Session]struct{})
	for _, name := range selector {
		room, ok := d.rooms[name]
		if !ok {
			continue
		}
		for _, m := range room.members {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			m.Client.deliver(text)
		}
	}
}

// forget drops a session from a room without notices, used by disconnect
// cleanup. Returns false when room or membership is missing.
func (d *Directory) forget(sess *Session, name string) bool {
	room, ok := d.rooms[name]
	if !ok {
		return false
	}
	return room.remove(sess)
}
