package bpmflow

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/bpmflow/runtime/kernel"
	"github.com/viant/bpmflow/service/messaging/memory"
	"github.com/viant/bpmflow/service/meta"
)

// Config is a serialisable representation of the engine configuration. The
// zero value of every section falls back to the section default.
type Config struct {
	Kernel  kernel.Config `json:"kernel" yaml:"kernel"`
	Rule    RuleConfig    `json:"rule" yaml:"rule"`
	Model   ModelConfig   `json:"model" yaml:"model"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// RuleConfig configures the rule plugin.
type RuleConfig struct {
	// Timeout interrupts business rules running longer; zero disables it.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// ModelConfig configures diagram loading.
type ModelConfig struct {
	// BaseURL resolves relative diagram locations.
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
	// Encoding is the diagram text encoding, UTF-8 when empty.
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	// Models are loaded by New.
	Models []string `json:"models,omitempty" yaml:"models,omitempty"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Enabled        bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	ServiceName    string `json:"serviceName,omitempty" yaml:"serviceName,omitempty"`
	ServiceVersion string `json:"serviceVersion,omitempty" yaml:"serviceVersion,omitempty"`
	OutputFile     string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// JournalConfig configures the in-memory transition journal.
type JournalConfig struct {
	Enabled bool          `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Queue   memory.Config `json:"queue" yaml:"queue"`
}

// DefaultConfig returns a Config populated with package defaults. Callers may
// modify the returned struct before passing it to WithConfig.
func DefaultConfig() *Config {
	return &Config{
		Kernel: kernel.DefaultConfig(),
		Tracing: TracingConfig{
			ServiceName:    "bpmflow",
			ServiceVersion: "0.1.0",
		},
		Journal: JournalConfig{Queue: memory.DefaultConfig()},
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if err := c.Kernel.Validate(); err != nil {
		return err
	}
	if c.Rule.Timeout < 0 {
		return fmt.Errorf("rule.timeout must not be negative: %v", c.Rule.Timeout)
	}
	if c.Tracing.Enabled && c.Tracing.ServiceName == "" {
		return fmt.Errorf("tracing.serviceName is required when tracing is enabled")
	}
	if c.Journal.Enabled && c.Journal.Queue.QueueBuffer < 0 {
		return fmt.Errorf("journal.queue.queueBuffer must not be negative: %v", c.Journal.Queue.QueueBuffer)
	}
	return nil
}

// LoadConfig decodes a YAML configuration over DefaultConfig and validates it.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	ret := DefaultConfig()
	if err := meta.New(afs.New(), "", options...).Load(ctx, URL, ret); err != nil {
		return nil, err
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
