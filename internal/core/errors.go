package core

// Error codes for domain errors.
const (
	ErrCodeNotAuthenticated     = "not_authenticated"
	ErrCodeNameTaken            = "name_taken"
	ErrCodeAlreadyRegistered    = "already_registered"
	ErrCodeInvalidName          = "invalid_name"
	ErrCodeRoomNotFound         = "room_not_found"
	ErrCodeRoomExists           = "room_exists"
	ErrCodeAlreadyMember        = "already_member"
	ErrCodeNotMember            = "not_member"
	ErrCodeInvalidMessageFormat = "invalid_message_format"
	ErrCodeInputTooShort        = "input_too_short"
	ErrCodeUnknownCommand       = "unknown_command"
)

// Error is a recoverable validation failure. It carries the text response
// sent to the offending connection and never mutates shared state or tears
// the connection down. Transport failures are not Errors: a failed read or
// write is a disconnect signal handled by the transport layer.
type Error struct {
	Code string
	Text string
}

func (e *Error) Error() string {
	return e.Text
}

func domainError(code, text string) *Error {
	return &Error{Code: code, Text: text}
}
