package rule

import (
	"context"

	"github.com/viant/bpmflow/model"
	"github.com/viant/bpmflow/plugin"
)

const (
	// ID is the registry identifier of the rule plugin.
	ID = "rule"
	// Alias is the fully qualified identifier used by existing model profiles.
	Alias = "org.imixs.workflow.plugins.RulePlugin"
)

// Plugin applies business rule outcomes to the processed event: an invalid
// result fails the transition, followUp and nextTask override the modeled
// transition.
type Plugin struct {
	evaluator *Evaluator
}

func (p *Plugin) Init(ctx context.Context, env *plugin.Environment) error {
	if env != nil && env.Logger != nil {
		p.evaluator.logger = env.Logger
	}
	return nil
}

func (p *Plugin) Run(ctx context.Context, workItem *model.WorkItem, event *model.Event) error {
	result, err := p.evaluator.Evaluate(ctx, workItem, event)
	if err != nil {
		return &plugin.Error{Plugin: ID, Code: ScriptErrorCode, Params: []string{err.Error()}, Err: err}
	}
	if !result.Valid {
		return &plugin.Error{Plugin: ID, Code: result.ErrorCode, Params: result.ErrorParams}
	}
	if result.FollowUp != nil {
		event.SetFollowUp(*result.FollowUp)
	}
	if result.NextTask != nil {
		event.SetNextTaskID(*result.NextTask)
	}
	return nil
}

func (p *Plugin) Close(ctx context.Context, status plugin.Status) error { return nil }

// NewPlugin creates a rule plugin.
func NewPlugin(options ...Option) *Plugin {
	return &Plugin{evaluator: New(options...)}
}

// Factory returns a registry factory creating rule plugins.
func Factory(options ...Option) plugin.Factory {
	return func() plugin.Plugin {
		return NewPlugin(options...)
	}
}
