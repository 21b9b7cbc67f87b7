package kernel

import (
	"context"
	"fmt"

	"github.com/viant/bpmflow/internal/clock"
	"github.com/viant/bpmflow/model"
	"github.com/viant/bpmflow/plugin"
	"github.com/viant/bpmflow/service/messaging"
	"github.com/viant/bpmflow/tracing"
	"go.uber.org/zap"
)

// Kernel applies events to work items.
type Kernel struct {
	models   model.Finder
	registry *plugin.Registry
	config   Config
	journal  messaging.Queue[Transition]
	logger   *zap.Logger
}

// Apply processes eventID on the current task of workItem. The work item is
// mutated in place and returned, also together with a failure: no mutation
// applied by a plugin is rolled back.
func (k *Kernel) Apply(ctx context.Context, workItem *model.WorkItem, eventID int) (_ *model.WorkItem, err error) {
	taskID, version := workItem.TaskID(), workItem.ModelVersion()
	ctx, span := tracing.Start(ctx, "kernel.apply", tracing.Event(version, taskID, eventID)...)
	defer func() { span.End(err) }()

	if k.models.Event(taskID, eventID, version) == nil {
		return workItem, model.NewEventNotFoundError(taskID, eventID, version)
	}
	pipe, err := k.assemble(ctx, version)
	if err != nil {
		return workItem, err
	}
	status := plugin.StatusFailed
	defer func() { pipe.close(ctx, status) }()

	visited := map[model.Key]bool{}
	for chained := 0; ; chained++ {
		key := model.Key{TaskID: taskID, EventID: eventID, Version: version}
		if visited[key] {
			return workItem, model.NewFollowUpCycleError(taskID, eventID, version, "event revisited")
		}
		if chained > k.config.MaxFollowUps {
			return workItem, model.NewFollowUpCycleError(taskID, eventID, version, fmt.Sprintf("more than %v follow-up events", k.config.MaxFollowUps))
		}
		visited[key] = true
		if err = ctx.Err(); err != nil {
			return workItem, err
		}
		modelEvent := k.models.Event(taskID, eventID, version)
		if modelEvent == nil {
			return workItem, model.NewEventNotFoundError(taskID, eventID, version)
		}
		event := modelEvent.Clone()
		now := clock.Now()
		workItem.SetEventID(eventID)
		workItem.Set(model.LastEventDateAttr, now)
		if err = pipe.run(ctx, workItem, event); err != nil {
			k.logger.Info("event rejected",
				zap.Int("taskID", taskID),
				zap.Int("eventID", eventID),
				zap.String("version", version),
				zap.Error(err))
			return workItem, err
		}
		transition := &Transition{
			UniqueID: workItem.UniqueID(),
			Version:  version,
			TaskID:   taskID,
			EventID:  eventID,
			Time:     now,
		}
		if event.FollowUp() {
			transition.FollowUp = true
			transition.NextEventID = event.NextEventID()
			transition.NextTaskID = taskID
			k.record(ctx, workItem, transition)
			eventID = event.NextEventID()
			continue
		}
		transition.NextTaskID = event.NextTaskID()
		workItem.SetTaskID(transition.NextTaskID)
		workItem.SetModelVersion(event.Version())
		k.record(ctx, workItem, transition)
		status = plugin.StatusSuccess
		k.logger.Debug("event processed",
			zap.Int("taskID", taskID),
			zap.Int("eventID", eventID),
			zap.Int("nextTaskID", transition.NextTaskID),
			zap.String("version", version))
		return workItem, nil
	}
}

func (k *Kernel) record(ctx context.Context, workItem *model.WorkItem, transition *Transition) {
	workItem.Append(model.WorkItemEventLogAttr, transition.LogEntry())
	if k.journal == nil {
		return
	}
	if err := k.journal.Publish(ctx, transition); err != nil {
		k.logger.Warn("journal publish failed",
			zap.Int("taskID", transition.TaskID),
			zap.Int("eventID", transition.EventID),
			zap.Error(err))
	}
}

// New creates a kernel resolving models with models and plugins with registry.
func New(models model.Finder, registry *plugin.Registry, options ...Option) *Kernel {
	ret := &Kernel{
		models:   models,
		registry: registry,
		config:   DefaultConfig(),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.config.MaxFollowUps <= 0 {
		ret.config.MaxFollowUps = DefaultConfig().MaxFollowUps
	}
	if ret.registry == nil {
		ret.registry = plugin.NewRegistry()
	}
	return ret
}
