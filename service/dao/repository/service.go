// Package repository keeps parsed models of several versions in memory and
// resolves tasks and events across them.
package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/viant/bpmflow/model"
	"github.com/viant/bpmflow/service/dao"
	"github.com/viant/bpmflow/service/dao/criteria"
	"github.com/viant/bpmflow/service/dao/store"
	"go.uber.org/zap"
)

const (
	// VersionParameter filters List by model version.
	VersionParameter = "Version"
	// GroupParameter filters List by workflow group.
	GroupParameter = "Group"
)

// Service is a multi-version model repository.
type Service struct {
	store  *store.MemoryStore[string, model.Model]
	logger *zap.Logger
}

var (
	_ dao.Service[string, model.Model] = (*Service)(nil)
	_ model.Finder                     = (*Service)(nil)
)

// Save registers m under its version, replacing a previous model of the same
// version.
func (s *Service) Save(ctx context.Context, m *model.Model) error {
	if m == nil {
		return dao.ErrNilEntity
	}
	if m.Version() == "" {
		return dao.ErrInvalidID
	}
	if previous := s.store.Lookup(m.Version()); previous != nil {
		s.logger.Info("replacing model", zap.String("version", m.Version()))
	}
	return s.store.Save(ctx, m)
}

// Load returns the model of version.
func (s *Service) Load(ctx context.Context, version string) (*model.Model, error) {
	if version == "" {
		return nil, dao.ErrInvalidID
	}
	ret, err := s.store.Load(ctx, version)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", err, model.NewModelNotFoundError(version))
	}
	return ret, nil
}

// Delete removes the model of version.
func (s *Service) Delete(ctx context.Context, version string) error {
	if version == "" {
		return dao.ErrInvalidID
	}
	return s.store.Delete(ctx, version)
}

// List returns models sorted by version, optionally filtered by the Version
// and Group parameters.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*model.Model, error) {
	models, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	ret := make([]*model.Model, 0, len(models))
	for _, m := range models {
		if !criteria.Match(VersionParameter, []string{m.Version()}, parameters) {
			continue
		}
		if !criteria.Match(GroupParameter, m.Groups(), parameters) {
			continue
		}
		ret = append(ret, m)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Version() < ret[j].Version() })
	return ret, nil
}

// Versions returns registered versions in ascending order.
func (s *Service) Versions() []string {
	ret := s.store.Keys()
	sort.Strings(ret)
	return ret
}

// Task returns a task or nil.
func (s *Service) Task(taskID int, version string) *model.Task {
	if m := s.store.Lookup(version); m != nil {
		return m.Task(taskID, version)
	}
	return nil
}

// Event returns an event or nil.
func (s *Service) Event(taskID, eventID int, version string) *model.Event {
	if m := s.store.Lookup(version); m != nil {
		return m.Event(taskID, eventID, version)
	}
	return nil
}

// Events returns the events of a task in diagram order.
func (s *Service) Events(taskID int, version string) []*model.Event {
	if m := s.store.Lookup(version); m != nil {
		return m.Events(taskID, version)
	}
	return nil
}

// Plugins returns the plugin list of the model profile.
func (s *Service) Plugins(version string) []string {
	if m := s.store.Lookup(version); m != nil {
		return m.Plugins(version)
	}
	return nil
}

// New creates an empty repository.
func New(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store.NewMemoryStore[string, model.Model](func(m *model.Model) string { return m.Version() }),
		logger: logger,
	}
}
