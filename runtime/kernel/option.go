package kernel

import (
	"github.com/viant/bpmflow/service/messaging"
	"go.uber.org/zap"
)

// Option configures a Kernel.
type Option func(k *Kernel)

// WithConfig sets the kernel configuration
func WithConfig(config Config) Option {
	return func(k *Kernel) {
		k.config = config
	}
}

// WithPlugins overrides the profile plugin list; no ids gives an empty pipeline.
func WithPlugins(ids ...string) Option {
	return func(k *Kernel) {
		k.config.Plugins = append([]string{}, ids...)
	}
}

// WithJournal publishes a Transition for every processed event. A failed
// publish is logged and the entry dropped; a blocking queue blocks Apply
// while it is full.
func WithJournal(journal messaging.Queue[Transition]) Option {
	return func(k *Kernel) {
		k.journal = journal
	}
}

// WithLogger sets the kernel logger
func WithLogger(logger *zap.Logger) Option {
	return func(k *Kernel) {
		if logger != nil {
			k.logger = logger
		}
	}
}
