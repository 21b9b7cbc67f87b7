package model

import (
	"time"

	"github.com/viant/bpmflow/model/item"
)

// WorkItem is a caller owned case record advanced by events.
type WorkItem struct {
	*item.Collection
}

// TaskID returns current task id.
func (w *WorkItem) TaskID() int { return w.Int(WorkItemTaskIDAttr) }

// SetTaskID sets current task id.
func (w *WorkItem) SetTaskID(id int) { w.Set(WorkItemTaskIDAttr, id) }

// EventID returns the last processed event id.
func (w *WorkItem) EventID() int { return w.Int(WorkItemEventIDAttr) }

// SetEventID sets the last processed event id.
func (w *WorkItem) SetEventID(id int) { w.Set(WorkItemEventIDAttr, id) }

// ModelVersion returns model version.
func (w *WorkItem) ModelVersion() string { return w.String(ModelVersionAttr) }

// SetModelVersion sets model version.
func (w *WorkItem) SetModelVersion(version string) { w.Set(ModelVersionAttr, version) }

// UniqueID returns the work item id.
func (w *WorkItem) UniqueID() string { return w.String(UniqueIDAttr) }

// LastEventDate returns the time of the last processed event.
func (w *WorkItem) LastEventDate() *time.Time { return w.Time(LastEventDateAttr) }

// WorkflowStatus returns the name of the current task.
func (w *WorkItem) WorkflowStatus() string { return w.String(WorkflowStatusAttr) }

// WorkflowGroup returns the workflow group of the current task.
func (w *WorkItem) WorkflowGroup() string { return w.String(WorkItemGroupAttr) }

// Clone returns an independent copy.
func (w *WorkItem) Clone() *WorkItem {
	return &WorkItem{Collection: w.Collection.Clone()}
}

// NewWorkItem creates a work item positioned at taskID.
func NewWorkItem(taskID int, version string) *WorkItem {
	ret := &WorkItem{Collection: item.New()}
	ret.SetTaskID(taskID)
	ret.SetModelVersion(version)
	return ret
}

// AsWorkItem wraps an existing collection.
func AsWorkItem(c *item.Collection) *WorkItem {
	if c == nil {
		c = item.New()
	}
	return &WorkItem{Collection: c}
}
