package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidModel is returned when a diagram cannot be turned into a model.
	ErrInvalidModel = errors.New("model: invalid model")

	// ErrModelNotFound is returned when no model is registered for a version.
	ErrModelNotFound = errors.New("model: version not found")

	// ErrTaskNotFound is returned when a (task, version) pair is unknown.
	ErrTaskNotFound = errors.New("model: task not found")

	// ErrEventNotFound is returned when a (task, event, version) triple is unknown.
	ErrEventNotFound = errors.New("model: event not found")

	// ErrFollowUpCycle is returned when a follow-up chain revisits an event.
	ErrFollowUpCycle = errors.New("model: follow-up cycle")
)

// Error describes a model failure together with the lookup coordinates.
type Error struct {
	Op      string
	Version string
	TaskID  int
	EventID int
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Version != "" || e.TaskID != 0 || e.EventID != 0 {
		b.WriteString(fmt.Sprintf(" [%v.%v@%v]", e.TaskID, e.EventID, e.Version))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// NewInvalidModelError returns an ErrInvalidModel error with a message.
func NewInvalidModelError(format string, args ...interface{}) *Error {
	return &Error{Op: "parse", Message: fmt.Sprintf(format, args...), Err: ErrInvalidModel}
}

// NewEventNotFoundError returns an ErrEventNotFound error for the given triple.
func NewEventNotFoundError(taskID, eventID int, version string) *Error {
	return &Error{Op: "lookup", TaskID: taskID, EventID: eventID, Version: version, Err: ErrEventNotFound}
}

// NewTaskNotFoundError returns an ErrTaskNotFound error for the given pair.
func NewTaskNotFoundError(taskID int, version string) *Error {
	return &Error{Op: "lookup", TaskID: taskID, Version: version, Err: ErrTaskNotFound}
}

// NewFollowUpCycleError returns an ErrFollowUpCycle error for the event that
// closed or exceeded a follow-up chain.
func NewFollowUpCycleError(taskID, eventID int, version, message string) *Error {
	return &Error{Op: "apply", TaskID: taskID, EventID: eventID, Version: version, Message: message, Err: ErrFollowUpCycle}
}

// NewModelNotFoundError returns an ErrModelNotFound error for version.
func NewModelNotFoundError(version string) *Error {
	return &Error{Op: "lookup", Version: version, Err: ErrModelNotFound}
}
