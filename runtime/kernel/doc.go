// Package kernel applies events to work items.
//
// Apply resolves the current task and the requested event of a work item in
// the model, runs the plugin pipeline declared by the model profile and moves
// the work item to the next task. Follow-up events chain on the same task,
// each running the full pipeline, until an event without follow-up moves the
// work item. Revisiting an event within one chain fails with
// model.ErrFollowUpCycle.
package kernel
