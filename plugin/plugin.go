package plugin

import (
	"context"

	"github.com/viant/bpmflow/model"
	"go.uber.org/zap"
)

// Status is the outcome reported to Close.
type Status int

const (
	// StatusSuccess reports that every module of the pipeline completed.
	StatusSuccess Status = iota
	// StatusFailed reports that a module failed and the pipeline stopped.
	StatusFailed
)

func (s Status) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return "failed"
}

// Environment is shared with modules during Init.
type Environment struct {
	Models model.Finder
	Logger *zap.Logger
}

// Plugin is a module of the transition pipeline. Run may mutate both the work
// item and the event instance it receives; the event instance is private to
// one transition step.
type Plugin interface {
	Init(ctx context.Context, env *Environment) error
	Run(ctx context.Context, workItem *model.WorkItem, event *model.Event) error
	Close(ctx context.Context, status Status) error
}

// RunFunc adapts a function to a Plugin without init and close phases.
type RunFunc func(ctx context.Context, workItem *model.WorkItem, event *model.Event) error

func (f RunFunc) Init(ctx context.Context, env *Environment) error { return nil }

func (f RunFunc) Run(ctx context.Context, workItem *model.WorkItem, event *model.Event) error {
	return f(ctx, workItem, event)
}

func (f RunFunc) Close(ctx context.Context, status Status) error { return nil }
