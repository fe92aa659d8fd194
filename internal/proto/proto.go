// Package proto implements the line-oriented chat wire protocol: fixed
// four-character verbs, a single-space separator, and the response texts the
// server hands back to clients.
package proto

import "strings"

// MinCommandSize is the shortest command line accepted after trimming.
const MinCommandSize = 4

const (
	verbEnd  = 4
	argStart = 5
)

// Verbs understood by the dispatcher. VerbExit is special: transports check
// it before any dispatch and close the connection.
const (
	VerbUser        = "USER"
	VerbListRooms   = "LIRO"
	VerbListMembers = "LIME"
	VerbCreateRoom  = "ROOM"
	VerbJoin        = "JOIN"
	VerbLeave       = "LEVE"
	VerbSend        = "SEND"
	VerbHelp        = "HELP"
	VerbExit        = "EXIT"
)

// Command is a parsed protocol line.
type Command struct {
	Verb string
	Arg  string
}

// Parse splits a raw line into verb and argument. The verb is the first four
// characters uppercased; the argument starts at the sixth character, the
// fifth being the separator, which is dropped without inspection. A verb
// glued to its argument therefore parses with a shifted argument rather than
// failing. Returns false when the trimmed line is shorter than
// MinCommandSize.
func Parse(raw string) (Command, bool) {
	line := strings.TrimSpace(raw)
	if len(line) < MinCommandSize {
		return Command{}, false
	}

	cmd := Command{Verb: strings.ToUpper(line[:verbEnd])}
	if len(line) > argStart {
		cmd.Arg = line[argStart:]
	}
	return cmd, true
}

// SplitSend breaks a SEND argument into room name and message text on the
// first space. Both halves must be non-empty.
func SplitSend(arg string) (room, text string, ok bool) {
	parts := strings.SplitN(arg, " ", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// ValidName reports whether a room or display name is acceptable: non-empty
// and containing no space character.
func ValidName(name string) bool {
	return name != "" && !strings.Contains(name, " ")
}

// IsExit reports whether a raw line is the connection-terminating command.
func IsExit(raw string) bool {
	line := strings.TrimSpace(raw)
	return len(line) >= verbEnd && strings.ToUpper(line[:verbEnd]) == VerbExit
}
