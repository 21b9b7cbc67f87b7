// Package application copies presentation attributes of the next task onto
// the processed work item.
package application

import (
	"context"

	"github.com/viant/bpmflow/markup"
	"github.com/viant/bpmflow/model"
	"github.com/viant/bpmflow/plugin"
	"go.uber.org/zap"
)

const (
	// ID is the registry identifier of the application plugin.
	ID = "application"
	// Alias is the fully qualified identifier used by existing model profiles.
	Alias = "org.imixs.workflow.plugins.ApplicationPlugin"
	// InvalidTextCode reports malformed placeholders in abstract or summary text.
	InvalidTextCode = "INVALID_TEXT"
)

var optionalAttrs = []struct {
	source string
	target string
	expand bool
}{
	{source: model.EditorAttr, target: model.WorkflowEditorAttr},
	{source: model.ImageAttr, target: model.WorkflowImageAttr},
	{source: model.TypeAttr, target: model.WorkItemTypeAttr},
	{source: model.AbstractAttr, target: model.WorkflowAbstractAttr, expand: true},
	{source: model.SummaryAttr, target: model.WorkflowSummaryAttr, expand: true},
}

// Plugin sets $workflowstatus and $workflowgroup from the task the event leads
// to. Follow-up events are skipped; the chain terminal event carries the task.
type Plugin struct {
	models model.Finder
	logger *zap.Logger
}

func (p *Plugin) Init(ctx context.Context, env *plugin.Environment) error {
	if env == nil {
		return nil
	}
	p.models = env.Models
	if env.Logger != nil {
		p.logger = env.Logger
	}
	return nil
}

func (p *Plugin) Run(ctx context.Context, workItem *model.WorkItem, event *model.Event) error {
	if event.FollowUp() || p.models == nil {
		return nil
	}
	next := p.models.Task(event.NextTaskID(), event.Version())
	if next == nil {
		p.logger.Warn("next task not found",
			zap.Int("taskID", event.NextTaskID()),
			zap.String("version", event.Version()))
		return nil
	}
	workItem.Set(model.WorkflowStatusAttr, next.Name())
	workItem.Set(model.WorkItemGroupAttr, next.Group())
	for _, attr := range optionalAttrs {
		value := next.String(attr.source)
		if value == "" {
			continue
		}
		if attr.expand {
			expanded, err := markup.ExpandItemValues(value, workItem.Collection)
			if err != nil {
				return &plugin.Error{Plugin: ID, Code: InvalidTextCode, Err: err}
			}
			value = expanded
		}
		workItem.Set(attr.target, value)
	}
	return nil
}

func (p *Plugin) Close(ctx context.Context, status plugin.Status) error { return nil }

// New creates an application plugin.
func New() *Plugin {
	return &Plugin{logger: zap.NewNop()}
}

// Factory creates application plugins for the registry.
func Factory() plugin.Plugin {
	return New()
}
