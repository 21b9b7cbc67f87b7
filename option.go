package bpmflow

import (
	"github.com/viant/afs/storage"
	"github.com/viant/bpmflow/plugin"
	"github.com/viant/bpmflow/runtime/kernel"
	"github.com/viant/bpmflow/service/dao/repository"
	"github.com/viant/bpmflow/service/messaging"
	"github.com/viant/bpmflow/service/messaging/listener"
	"github.com/viant/bpmflow/service/meta"
	"github.com/viant/bpmflow/tracing"
	"go.uber.org/zap"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures a Service.
type Option func(s *Service)

// WithConfig sets the engine configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithMetaService sets the meta service used to load diagrams
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) {
		s.metaService = service
	}
}

// WithMetaBaseURL sets the base URL of relative diagram locations
func WithMetaBaseURL(url string) Option {
	return func(s *Service) {
		s.metaBaseURL = url
	}
}

// WithMetaFsOptions with meta file system options
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.metaFsOptions = options
	}
}

// WithLogger sets the logger shared by the kernel and built-in plugins.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPlugin registers a plugin factory in addition to the built-in plugins;
// a factory registered under a built-in id replaces it.
func WithPlugin(id string, factory plugin.Factory, aliases ...string) Option {
	return func(s *Service) {
		s.extensions = append(s.extensions, &extension{id: id, factory: factory, aliases: aliases})
	}
}

// WithModelRepository sets the model repository
func WithModelRepository(repo *repository.Service) Option {
	return func(s *Service) {
		s.repository = repo
	}
}

// WithJournal sets the queue receiving every recorded transition. Without it
// an enabled journal uses a non-blocking in-memory queue that drops entries
// once full.
func WithJournal(journal messaging.Queue[kernel.Transition]) Option {
	return func(s *Service) {
		s.journal = journal
	}
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty the
// stdout exporter is used. The first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		if err := tracing.Init(serviceName, serviceVersion, outputFile); err != nil {
			s.logger.Warn("tracing init failed", zap.Error(err))
		}
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter, for example OTLP or Zipkin.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		if err := tracing.InitWithExporter(serviceName, serviceVersion, exporter); err != nil {
			s.logger.Warn("tracing init failed", zap.Error(err))
		}
	}
}

// WithTransitionListener consumes the transition journal in the background;
// an in-memory journal is created when none is configured. Stop it with
// Service.Close.
func WithTransitionListener(handler listener.Handler[kernel.Transition]) Option {
	return func(s *Service) {
		s.onTransition = handler
	}
}
