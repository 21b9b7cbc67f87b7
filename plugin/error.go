package plugin

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPlugin is returned when a profile references an unregistered plugin.
var ErrUnknownPlugin = errors.New("plugin: unknown plugin")

// Error is a structured module failure carrying an error code and optional
// message parameters. Params is nil when the module reported none.
type Error struct {
	Plugin string
	Code   string
	Params []string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("plugin")
	if e.Plugin != "" {
		b.WriteString(" " + e.Plugin)
	}
	if e.Code != "" {
		b.WriteString(": " + e.Code)
	}
	if len(e.Params) > 0 {
		b.WriteString(fmt.Sprintf(" %v", e.Params))
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// NewError creates a coded module error.
func NewError(code string, params []string, err error) *Error {
	return &Error{Code: code, Params: params, Err: err}
}

// AsError returns err as *Error attributed to plugin id, wrapping it if needed.
func AsError(id string, err error) *Error {
	var ret *Error
	if errors.As(err, &ret) {
		if ret.Plugin == "" {
			ret.Plugin = id
		}
		return ret
	}
	return &Error{Plugin: id, Err: err}
}
