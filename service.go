package bpmflow

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/bpmflow/internal/clock"
	"github.com/viant/bpmflow/internal/idgen"
	"github.com/viant/bpmflow/model"
	"github.com/viant/bpmflow/model/bpmn"
	"github.com/viant/bpmflow/plugin"
	"github.com/viant/bpmflow/plugin/application"
	"github.com/viant/bpmflow/plugin/result"
	"github.com/viant/bpmflow/plugin/rule"
	"github.com/viant/bpmflow/runtime/kernel"
	"github.com/viant/bpmflow/service/dao"
	"github.com/viant/bpmflow/service/dao/repository"
	"github.com/viant/bpmflow/service/messaging"
	"github.com/viant/bpmflow/service/messaging/listener"
	"github.com/viant/bpmflow/service/messaging/memory"
	"github.com/viant/bpmflow/service/meta"
	"github.com/viant/bpmflow/tracing"
	"go.uber.org/zap"
)

type extension struct {
	id      string
	factory plugin.Factory
	aliases []string
}

// Service is the engine facade: it keeps loaded models, the plugin registry
// and the transition kernel.
type Service struct {
	config        *Config
	logger        *zap.Logger
	metaService   *meta.Service
	metaBaseURL   string
	metaFsOptions []storage.Option
	repository    *repository.Service
	registry      *plugin.Registry
	extensions    []*extension
	journal       messaging.Queue[kernel.Transition]
	onTransition  listener.Handler[kernel.Transition]
	listener      *listener.Listener[kernel.Transition]
	kernel        *kernel.Kernel
}

func (s *Service) init(ctx context.Context, options []Option) error {
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if tc := s.config.Tracing; tc.Enabled {
		if err := tracing.Init(tc.ServiceName, tc.ServiceVersion, tc.OutputFile); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	s.ensureBaseSetup()
	s.registry = plugin.NewRegistry()
	s.registry.Register(rule.ID, rule.Factory(rule.WithTimeout(s.config.Rule.Timeout), rule.WithLogger(s.logger)), rule.Alias)
	s.registry.Register(result.ID, result.Factory, result.Alias)
	s.registry.Register(application.ID, application.Factory, application.Alias)
	for _, ext := range s.extensions {
		s.registry.Register(ext.id, ext.factory, ext.aliases...)
	}
	kernelOptions := []kernel.Option{kernel.WithConfig(s.config.Kernel), kernel.WithLogger(s.logger)}
	if s.journal != nil {
		kernelOptions = append(kernelOptions, kernel.WithJournal(s.journal))
	}
	s.kernel = kernel.New(s.repository, s.registry, kernelOptions...)
	if s.onTransition != nil {
		s.listener = listener.New(s.journal, s.onTransition, s.logger)
		s.listener.Start(context.WithoutCancel(ctx))
	}
	for _, location := range s.config.Model.Models {
		if _, err := s.LoadModel(ctx, location); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) ensureBaseSetup() {
	if s.metaBaseURL == "" {
		s.metaBaseURL = s.config.Model.BaseURL
	}
	if s.metaService == nil {
		s.metaService = meta.New(afs.New(), s.metaBaseURL, s.metaFsOptions...)
	}
	if s.repository == nil {
		s.repository = repository.New(s.logger)
	}
	if s.journal == nil && (s.config.Journal.Enabled || s.onTransition != nil) {
		queueConfig := s.config.Journal.Queue
		queueConfig.NonBlocking = true
		s.journal = memory.NewQueue[kernel.Transition](queueConfig)
	}
}

// LoadModel parses the diagram at location and registers its model.
func (s *Service) LoadModel(ctx context.Context, location string) (*model.Model, error) {
	data, err := s.metaService.Download(ctx, location)
	if err != nil {
		return nil, err
	}
	ret, err := bpmn.ParseBytes(data, s.config.Model.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", s.metaService.URL(location), err)
	}
	if err = s.AddModel(ctx, ret); err != nil {
		return nil, err
	}
	s.logger.Info("model loaded",
		zap.String("version", ret.Version()),
		zap.String("location", s.metaService.URL(location)))
	return ret, nil
}

// AddModel registers m, replacing a model of the same version.
func (s *Service) AddModel(ctx context.Context, m *model.Model) error {
	return s.repository.Save(ctx, m)
}

// Model returns the model of version.
func (s *Service) Model(ctx context.Context, version string) (*model.Model, error) {
	return s.repository.Load(ctx, version)
}

// Models returns registered models sorted by version, narrowed by
// repository.VersionParameter and repository.GroupParameter parameters.
func (s *Service) Models(ctx context.Context, parameters ...*dao.Parameter) ([]*model.Model, error) {
	return s.repository.List(ctx, parameters...)
}

// Versions returns registered model versions in ascending order.
func (s *Service) Versions() []string {
	return s.repository.Versions()
}

// NewWorkItem creates a work item positioned at taskID of version.
func (s *Service) NewWorkItem(taskID int, version string) (*model.WorkItem, error) {
	task := s.repository.Task(taskID, version)
	if task == nil {
		return nil, model.NewTaskNotFoundError(taskID, version)
	}
	ret := model.NewWorkItem(taskID, version)
	ret.Set(model.UniqueIDAttr, idgen.New())
	ret.Set(model.WorkItemCreatedAttr, clock.Now())
	ret.Set(model.WorkflowStatusAttr, task.Name())
	ret.Set(model.WorkItemGroupAttr, task.Group())
	return ret, nil
}

// Apply processes eventID on the current task of workItem.
func (s *Service) Apply(ctx context.Context, workItem *model.WorkItem, eventID int) (*model.WorkItem, error) {
	return s.kernel.Apply(ctx, workItem, eventID)
}

// Events returns copies of the events a user may trigger on the current task
// of workItem. Events marked invisible are skipped; events with restricted
// visibility require user in at least one of the named work item attributes.
func (s *Service) Events(ctx context.Context, workItem *model.WorkItem, user string) ([]*model.Event, error) {
	taskID, version := workItem.TaskID(), workItem.ModelVersion()
	if s.repository.Task(taskID, version) == nil {
		return nil, model.NewTaskNotFoundError(taskID, version)
	}
	var ret []*model.Event
	for _, event := range s.repository.Events(taskID, version) {
		if event.String(model.VisibleAttr) == "0" {
			continue
		}
		if restricted := event.Strings(model.RestrictedVisibilityAttr); len(restricted) > 0 && !isMember(workItem, restricted, user) {
			continue
		}
		ret = append(ret, event.Clone())
	}
	return ret, nil
}

func isMember(workItem *model.WorkItem, names []string, user string) bool {
	if user == "" {
		return false
	}
	for _, name := range names {
		for _, candidate := range workItem.Strings(name) {
			if candidate == user {
				return true
			}
		}
	}
	return false
}

// Registry returns the plugin registry.
func (s *Service) Registry() *plugin.Registry {
	return s.registry
}

// Kernel returns the transition kernel.
func (s *Service) Kernel() *kernel.Kernel {
	return s.kernel
}

// Journal returns the transition journal or nil when disabled.
func (s *Service) Journal() messaging.Queue[kernel.Transition] {
	return s.journal
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// Close stops the transition listener.
func (s *Service) Close() error {
	if s.listener != nil {
		s.listener.Stop()
	}
	return nil
}

// New creates a service and loads the models listed in the configuration.
func New(ctx context.Context, options ...Option) (*Service, error) {
	ret := &Service{config: DefaultConfig(), logger: zap.NewNop()}
	if err := ret.init(ctx, options); err != nil {
		return nil, err
	}
	return ret, nil
}
