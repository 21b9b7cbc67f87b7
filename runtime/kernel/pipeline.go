package kernel

import (
	"context"
	"errors"

	"github.com/viant/bpmflow/model"
	"github.com/viant/bpmflow/plugin"
	"github.com/viant/bpmflow/tracing"
	"go.uber.org/zap"
)

type stage struct {
	id     string
	plugin plugin.Plugin
}

// pipeline holds initialised plugins in declared order.
type pipeline struct {
	stages []*stage
	logger *zap.Logger
}

func (p *pipeline) run(ctx context.Context, workItem *model.WorkItem, event *model.Event) error {
	for _, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		spanCtx, span := tracing.Start(ctx, "plugin."+s.id, tracing.PluginKey.String(s.id))
		err := s.plugin.Run(spanCtx, workItem, event)
		span.End(err)
		if err != nil {
			return plugin.AsError(s.id, err)
		}
	}
	return nil
}

func (p *pipeline) close(ctx context.Context, status plugin.Status) {
	for _, s := range p.stages {
		if err := s.plugin.Close(ctx, status); err != nil {
			p.logger.Warn("plugin close failed", zap.String("plugin", s.id), zap.Error(err))
		}
	}
}

// assemble creates and initialises plugins; on failure already initialised
// plugins are closed with plugin.StatusFailed.
func (k *Kernel) assemble(ctx context.Context, version string) (*pipeline, error) {
	ids := k.config.Plugins
	if ids == nil {
		ids = k.models.Plugins(version)
	}
	ret := &pipeline{logger: k.logger}
	env := &plugin.Environment{Models: k.models, Logger: k.logger}
	for _, id := range ids {
		p, err := k.registry.New(id)
		if err != nil {
			if errors.Is(err, plugin.ErrUnknownPlugin) && k.config.IgnoreUnknownPlugins {
				k.logger.Warn("skipping unknown plugin", zap.String("plugin", id), zap.String("version", version))
				continue
			}
			ret.close(ctx, plugin.StatusFailed)
			return nil, err
		}
		if err = p.Init(ctx, env); err != nil {
			ret.close(ctx, plugin.StatusFailed)
			return nil, plugin.AsError(id, err)
		}
		ret.stages = append(ret.stages, &stage{id: id, plugin: p})
	}
	return ret, nil
}
