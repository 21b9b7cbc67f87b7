package rule

import (
	"time"

	"go.uber.org/zap"
)

// Option configures an Evaluator.
type Option func(e *Evaluator)

// WithTimeout interrupts scripts running longer than timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Evaluator) {
		e.timeout = timeout
	}
}

// WithLogger sets the evaluator logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}
