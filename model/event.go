package model

import "github.com/viant/bpmflow/model/item"

// Event represents a transition attached to a task.
type Event struct {
	*item.Collection
}

// Key identifies an event within the model arena.
type Key struct {
	TaskID  int
	EventID int
	Version string
}

// Key returns the composite event key.
func (e *Event) Key() Key {
	return Key{TaskID: e.TaskID(), EventID: e.ID(), Version: e.Version()}
}

// ID returns event id.
func (e *Event) ID() int { return e.Int(EventIDAttr) }

// TaskID returns the owning task id.
func (e *Event) TaskID() int { return e.Int(TaskIDAttr) }

// Name returns event display name.
func (e *Event) Name() string { return e.String(NameAttr) }

// Version returns model version.
func (e *Event) Version() string { return e.String(ModelVersionAttr) }

// NextTaskID returns the target task id.
func (e *Event) NextTaskID() int { return e.Int(NextTaskIDAttr) }

// SetNextTaskID sets the target task id.
func (e *Event) SetNextTaskID(id int) { e.Set(NextTaskIDAttr, id) }

// FollowUp returns true when the event chains into another event of the same task.
func (e *Event) FollowUp() bool {
	return e.String(FollowUpAttr) == followUpEnabledMarker || e.Bool(FollowUpAttr)
}

// NextEventID returns the chained event id.
func (e *Event) NextEventID() int { return e.Int(NextEventIDAttr) }

// SetFollowUp marks the event as chaining into eventID.
func (e *Event) SetFollowUp(eventID int) {
	e.Set(FollowUpAttr, followUpEnabledMarker)
	e.Set(NextEventIDAttr, eventID)
}

// ClearFollowUp removes chaining.
func (e *Event) ClearFollowUp() {
	e.Remove(FollowUpAttr)
	e.Remove(NextEventIDAttr)
}

// BusinessRule returns the rule script.
func (e *Event) BusinessRule() string { return e.String(BusinessRuleAttr) }

// Result returns result markup.
func (e *Event) Result() string { return e.String(ResultAttr) }

// Clone returns an independent copy.
func (e *Event) Clone() *Event {
	return &Event{Collection: e.Collection.Clone()}
}

// NewEvent creates an event owned by taskID.
func NewEvent(taskID, eventID int, version string) *Event {
	ret := &Event{Collection: item.New()}
	ret.Set(TaskIDAttr, taskID)
	ret.Set(EventIDAttr, eventID)
	ret.Set(ModelVersionAttr, version)
	return ret
}
