package proto

import "fmt"

// Response texts sent back to clients. Every validation failure maps to one
// of these; transports append the line terminator.
const (
	RespWelcome              = "Welcome! You are now registered."
	RespAlreadyRegistered    = "You are already registered on this connection."
	RespNameTaken            = "That name is already taken, pick another."
	RespInvalidName          = "Invalid name: use a single non-empty word without spaces."
	RespNotAuthenticated     = "Not registered. Introduce yourself first: USER <name>."
	RespRoomCreated          = "Room created."
	RespRoomExists           = "A room with that name already exists."
	RespRoomNotFound         = "No such room."
	RespAlreadyMember        = "You are already a member of that room."
	RespNotMember            = "You are not a member of that room."
	RespJoined               = "You joined the room."
	RespLeft                 = "You left the room."
	RespInvalidMessageFormat = "Invalid message format. Usage: SEND <room> <message>."
	RespInputTooShort        = "Input too short to be a command."
	RespUnknownCommand       = "Unknown command. Send HELP for the command list."
	RespNoRooms              = "There are no rooms yet. Create one: ROOM <name>."
	RespRoomsTitle           = "Available rooms:"
	RespMembersTitle         = "Room members:"
	RespServerStopping       = "Server is shutting down. Goodbye."
)

// WelcomePrefix is what the interactive client checks to decide the naming
// handshake succeeded.
const WelcomePrefix = "We"

// HelpText summarizes every command. It is appended to the welcome response
// and returned for HELP.
const HelpText = "Commands:\n" +
	"  USER <name>           register your display name\n" +
	"  LIRO                  list rooms\n" +
	"  LIME <room>           list room members\n" +
	"  ROOM <room>           create a room\n" +
	"  JOIN <room>           join a room\n" +
	"  LEVE <room>           leave a room\n" +
	"  SEND <room> <message> send a message to a room\n" +
	"  HELP                  show this list\n" +
	"  EXIT                  disconnect"

// NoticeJoined is broadcast to a room's existing members when someone joins.
func NoticeJoined(name, room string) string {
	return fmt.Sprintf("%s joined %s.", name, room)
}

// NoticeLeft is broadcast to a room's remaining members when someone leaves.
func NoticeLeft(name, room string) string {
	return fmt.Sprintf("%s left %s.", name, room)
}

// FormatMessage is the copy every member other than the sender receives.
func FormatMessage(sender, room, text string) string {
	return fmt.Sprintf("%s@%s: %s", sender, room, text)
}

// FormatSelfMessage is the echo the sender receives for their own message.
func FormatSelfMessage(room, text string) string {
	return fmt.Sprintf("You@%s: %s", room, text)
}
