package model

import (
	"sort"

	"github.com/viant/bpmflow/model/item"
)

// Finder resolves tasks, events and plugin lists by model version.
type Finder interface {
	Task(taskID int, version string) *Task
	Event(taskID, eventID int, version string) *Event
	Events(taskID int, version string) []*Event
	Plugins(version string) []string
}

// Model is the immutable task/event graph of one model version. Events are
// kept in an arena keyed by (task, event, version) with a separate per-task
// adjacency index in diagram order. Task, Event and Events return shared
// instances that must not be mutated.
type Model struct {
	version   string
	profile   *item.Collection
	groups    []string
	taskOrder []int
	tasks     map[int]*Task
	events    map[Key]*Event
	adjacency map[int][]int
}

var _ Finder = (*Model)(nil)

// Version returns declared model version.
func (m *Model) Version() string { return m.version }

// Profile returns a copy of the model profile.
func (m *Model) Profile() *item.Collection { return m.profile.Clone() }

// Plugins returns the ordered plugin identifiers declared by the profile.
func (m *Model) Plugins(version string) []string {
	if version != m.version {
		return nil
	}
	return m.profile.Strings(ProfilePluginsAttr)
}

// Groups returns workflow group names in diagram order.
func (m *Model) Groups() []string {
	ret := make([]string, len(m.groups))
	copy(ret, m.groups)
	return ret
}

// Task returns a shared task or nil.
func (m *Model) Task(taskID int, version string) *Task {
	if version != m.version {
		return nil
	}
	return m.tasks[taskID]
}

// Tasks returns all tasks in diagram order.
func (m *Model) Tasks(version string) []*Task {
	if version != m.version {
		return nil
	}
	ret := make([]*Task, 0, len(m.taskOrder))
	for _, id := range m.taskOrder {
		ret = append(ret, m.tasks[id])
	}
	return ret
}

// Event returns a shared event or nil.
func (m *Model) Event(taskID, eventID int, version string) *Event {
	return m.events[Key{TaskID: taskID, EventID: eventID, Version: version}]
}

// Events returns the events of a task in diagram order; an unknown task
// yields nil, a task without events an empty slice.
func (m *Model) Events(taskID int, version string) []*Event {
	if m.Task(taskID, version) == nil {
		return nil
	}
	ids := m.adjacency[taskID]
	ret := make([]*Event, 0, len(ids))
	for _, eventID := range ids {
		ret = append(ret, m.events[Key{TaskID: taskID, EventID: eventID, Version: version}])
	}
	return ret
}

// Builder assembles a Model; it is not safe for concurrent use and must not be
// reused after Build.
type Builder struct {
	model *Model
}

// AddGroup registers a workflow group once.
func (b *Builder) AddGroup(name string) {
	if name == "" {
		return
	}
	for _, candidate := range b.model.groups {
		if candidate == name {
			return
		}
	}
	b.model.groups = append(b.model.groups, name)
}

// AddTask adds a task; duplicated ids are rejected.
func (b *Builder) AddTask(task *Task) error {
	id := task.ID()
	if _, ok := b.model.tasks[id]; ok {
		return NewInvalidModelError("duplicate task %v", id)
	}
	task.Set(ModelVersionAttr, b.model.version)
	b.model.tasks[id] = task
	b.model.taskOrder = append(b.model.taskOrder, id)
	b.model.adjacency[id] = []int{}
	return nil
}

// HasEvent returns true if the task already owns eventID.
func (b *Builder) HasEvent(taskID, eventID int) bool {
	_, ok := b.model.events[Key{TaskID: taskID, EventID: eventID, Version: b.model.version}]
	return ok
}

// AddEvent appends an event to its owning task adjacency.
func (b *Builder) AddEvent(event *Event) error {
	event.Set(ModelVersionAttr, b.model.version)
	key := event.Key()
	if _, ok := b.model.tasks[key.TaskID]; !ok {
		return NewInvalidModelError("event %v references unknown task %v", key.EventID, key.TaskID)
	}
	if _, ok := b.model.events[key]; ok {
		return NewInvalidModelError("duplicate event %v.%v", key.TaskID, key.EventID)
	}
	b.model.events[key] = event
	b.model.adjacency[key.TaskID] = append(b.model.adjacency[key.TaskID], key.EventID)
	return nil
}

// Reorder sorts a task adjacency with less, applied to event ids.
func (b *Builder) Reorder(taskID int, less func(a, b int) bool) {
	ids := b.model.adjacency[taskID]
	sort.SliceStable(ids, func(i, j int) bool { return less(ids[i], ids[j]) })
}

// Build returns the assembled model.
func (b *Builder) Build() *Model {
	ret := b.model
	b.model = nil
	return ret
}

// NewBuilder creates a builder for version with the given profile.
func NewBuilder(version string, profile *item.Collection) *Builder {
	if profile == nil {
		profile = item.New()
	}
	return &Builder{model: &Model{
		version:   version,
		profile:   profile,
		tasks:     map[int]*Task{},
		events:    map[Key]*Event{},
		adjacency: map[int][]int{},
	}}
}
