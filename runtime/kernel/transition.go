package kernel

import (
	"fmt"
	"time"
)

// Transition records one processed event.
type Transition struct {
	UniqueID    string    `json:"uniqueId,omitempty"`
	Version     string    `json:"version"`
	TaskID      int       `json:"taskId"`
	EventID     int       `json:"eventId"`
	NextTaskID  int       `json:"nextTaskId"`
	FollowUp    bool      `json:"followUp,omitempty"`
	NextEventID int       `json:"nextEventId,omitempty"`
	Time        time.Time `json:"time"`
}

// LogEntry formats the transition as a work item event log entry:
// time|version|task.event|nexttask.
func (t *Transition) LogEntry() string {
	return fmt.Sprintf("%v|%v|%v.%v|%v", t.Time.UTC().Format(time.RFC3339), t.Version, t.TaskID, t.EventID, t.NextTaskID)
}
