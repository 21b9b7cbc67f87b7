// Package listener consumes a queue in the background and hands every payload
// to a handler.
package listener

import (
	"context"
	"errors"
	"sync"

	"github.com/viant/bpmflow/service/messaging"
	"go.uber.org/zap"
)

// Handler processes one payload; an error nacks the message.
type Handler[T any] func(ctx context.Context, payload *T) error

// Listener dispatches queued payloads to a handler.
type Listener[T any] struct {
	queue   messaging.Queue[T]
	handler Handler[T]
	logger  *zap.Logger
	cancel  context.CancelFunc
	done    chan struct{}
	mux     sync.Mutex
}

// Start consumes the queue until ctx is done or Stop is called. Calling Start
// on a running listener is a no-op.
func (l *Listener[T]) Start(ctx context.Context) {
	l.mux.Lock()
	defer l.mux.Unlock()
	if l.cancel != nil {
		return
	}
	ctx, l.cancel = context.WithCancel(ctx)
	l.done = make(chan struct{})
	go l.run(ctx, l.done)
}

func (l *Listener[T]) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		msg, err := l.queue.Consume(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			l.logger.Warn("consume failed", zap.Error(err))
			continue
		}
		if msg == nil {
			continue
		}
		if err = l.handler(ctx, msg.T()); err != nil {
			l.logger.Warn("handler failed", zap.Error(err))
			if nackErr := msg.Nack(err); nackErr != nil {
				l.logger.Warn("nack failed", zap.Error(nackErr))
			}
			continue
		}
		if err = msg.Ack(); err != nil {
			l.logger.Warn("ack failed", zap.Error(err))
		}
	}
}

// Stop cancels consumption and waits for the running handler to return.
func (l *Listener[T]) Stop() {
	l.mux.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.mux.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// New creates a listener; a nil logger discards logs.
func New[T any](queue messaging.Queue[T], handler Handler[T], logger *zap.Logger) *Listener[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Listener[T]{queue: queue, handler: handler, logger: logger}
}
