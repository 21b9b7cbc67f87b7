package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/viant/bpmflow/internal/clock"
	"github.com/viant/bpmflow/internal/idgen"
	"github.com/viant/bpmflow/service/messaging"
)

var errProcessed = errors.New("message already processed")

// Config for memory queue implementation
type Config struct {
	MaxRetries  int           `json:"maxRetries,omitempty" yaml:"maxRetries,omitempty"`
	RetryDelay  time.Duration `json:"retryDelay,omitempty" yaml:"retryDelay,omitempty"`
	DeadLetter  bool          `json:"deadLetter,omitempty" yaml:"deadLetter,omitempty"`
	QueueBuffer int           `json:"queueBuffer,omitempty" yaml:"queueBuffer,omitempty"`
	// NonBlocking makes Publish fail with messaging.ErrQueueFull instead of
	// waiting for buffer space.
	NonBlocking bool `json:"nonBlocking,omitempty" yaml:"nonBlocking,omitempty"`
}

// DefaultConfig returns a standard configuration for memory queue
func DefaultConfig() Config {
	return Config{
		MaxRetries:  3,
		RetryDelay:  100 * time.Millisecond,
		DeadLetter:  true,
		QueueBuffer: 100,
	}
}

// Message is an in-memory queue message.
type Message[T any] struct {
	id         string
	payload    T
	queue      *Queue[T]
	retryCount int
	mu         sync.Mutex
	processed  bool
	createdAt  time.Time
}

// ID returns the message id.
func (m *Message[T]) ID() string { return m.id }

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack acknowledges the message as processed successfully
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return errProcessed
	}
	m.processed = true
	return nil
}

// Nack requeues the message after the retry delay, or moves it to the dead
// letter queue once retries are exhausted.
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return errProcessed
	}
	m.processed = true
	m.retryCount++
	if m.retryCount <= m.queue.config.MaxRetries {
		retry := &Message[T]{
			id:         m.id,
			payload:    m.payload,
			queue:      m.queue,
			retryCount: m.retryCount,
			createdAt:  clock.Now(),
		}
		time.AfterFunc(m.queue.config.RetryDelay, func() {
			m.queue.messages <- retry
		})
		return nil
	}
	if m.queue.config.DeadLetter {
		m.queue.dlqMu.Lock()
		m.queue.dlq = append(m.queue.dlq, m)
		m.queue.dlqMu.Unlock()
	}
	return nil
}

// Queue implements an in-memory messaging.Queue
type Queue[T any] struct {
	messages chan *Message[T]
	dlq      []*Message[T]
	config   Config
	dlqMu    sync.Mutex
}

// Publish adds a copy of t to the queue
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := &Message[T]{
		id:        idgen.New(),
		payload:   *t,
		queue:     q,
		createdAt: clock.Now(),
	}
	if q.config.NonBlocking {
		select {
		case q.messages <- msg:
			return nil
		default:
			return messaging.ErrQueueFull
		}
	}
	select {
	case q.messages <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume retrieves a single item from the queue
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Drain returns payloads of all currently queued messages, acknowledging them.
func (q *Queue[T]) Drain() []T {
	var ret []T
	for {
		select {
		case msg := <-q.messages:
			_ = msg.Ack()
			ret = append(ret, msg.payload)
		default:
			return ret
		}
	}
}

// Size returns the current number of messages in the queue
func (q *Queue[T]) Size() int {
	return len(q.messages)
}

// DLQSize returns the number of messages in the dead letter queue
func (q *Queue[T]) DLQSize() int {
	q.dlqMu.Lock()
	defer q.dlqMu.Unlock()
	return len(q.dlq)
}

// NewQueue creates a new in-memory queue
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{
		messages: make(chan *Message[T], config.QueueBuffer),
		config:   config,
	}
}

var _ messaging.Queue[any] = (*Queue[any])(nil)
