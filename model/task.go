package model

import "github.com/viant/bpmflow/model/item"

// Task represents a named state of a process model.
type Task struct {
	*item.Collection
}

// ID returns task id.
func (t *Task) ID() int { return t.Int(TaskIDAttr) }

// Name returns task display name.
func (t *Task) Name() string { return t.String(NameAttr) }

// Group returns the owning workflow group.
func (t *Task) Group() string { return t.String(WorkflowGroupAttr) }

// Version returns model version.
func (t *Task) Version() string { return t.String(ModelVersionAttr) }

// NewTask creates a task.
func NewTask(id int, version string) *Task {
	ret := &Task{Collection: item.New()}
	ret.Set(TaskIDAttr, id)
	ret.Set(ModelVersionAttr, version)
	return ret
}
