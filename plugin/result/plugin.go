// Package result applies event result markup to the processed work item.
package result

import (
	"context"
	"strings"

	"github.com/viant/bpmflow/markup"
	"github.com/viant/bpmflow/model"
	"github.com/viant/bpmflow/model/item"
	"github.com/viant/bpmflow/plugin"
	"go.uber.org/zap"
)

const (
	// ID is the registry identifier of the result plugin.
	ID = "result"
	// Alias is the fully qualified identifier used by existing model profiles.
	Alias = "org.imixs.workflow.plugins.ResultPlugin"
	// InvalidResultCode reports malformed result markup.
	InvalidResultCode = "INVALID_RESULT"
)

// Plugin evaluates the result markup of an event, expanding <itemvalue>
// placeholders from the work item, and replaces the evaluated attributes on
// the work item. Attributes marked with ignore="true" and derived name.attr
// entries are not copied.
type Plugin struct {
	logger *zap.Logger
}

func (p *Plugin) Init(ctx context.Context, env *plugin.Environment) error {
	if env != nil && env.Logger != nil {
		p.logger = env.Logger
	}
	return nil
}

func (p *Plugin) Run(ctx context.Context, workItem *model.WorkItem, event *model.Event) error {
	text := event.Result()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	values, err := markup.EvaluateWith(text, workItem.Collection)
	if err != nil {
		return &plugin.Error{Plugin: ID, Code: InvalidResultCode, Err: err}
	}
	applied := item.New()
	for _, name := range values.Names() {
		if strings.Contains(name, ".") || values.Bool(name+".ignore") {
			continue
		}
		applied.Set(name, values.Get(name))
	}
	workItem.Replace(applied)
	p.logger.Debug("result applied",
		zap.Int("taskID", event.TaskID()),
		zap.Int("eventID", event.ID()),
		zap.Strings("items", applied.Names()))
	return nil
}

func (p *Plugin) Close(ctx context.Context, status plugin.Status) error { return nil }

// New creates a result plugin.
func New() *Plugin {
	return &Plugin{logger: zap.NewNop()}
}

// Factory creates result plugins for the registry.
func Factory() plugin.Plugin {
	return New()
}
