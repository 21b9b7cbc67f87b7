package markup

import "fmt"

// Error reports malformed markup.
type Error struct {
	Pos     int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("markup: %v at %v", e.Message, e.Pos)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(pos int, format string, args ...interface{}) *Error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func wrapError(pos int, message string, err error) *Error {
	return &Error{Pos: pos, Message: message, Err: err}
}
