package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/bpmflow/service/messaging"
)

type transition struct {
	TaskID     int
	EventID    int
	NextTaskID int
}

func TestQueue_PublishConsume(t *testing.T) {
	queue := NewQueue[transition](DefaultConfig())
	ctx := context.Background()
	payload := transition{TaskID: 1000, EventID: 10, NextTaskID: 1100}
	require.NoError(t, queue.Publish(ctx, &payload))
	payload.NextTaskID = 0
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1100, message.T().NextTaskID)
	assert.NotEmpty(t, message.(*Message[transition]).ID())
	assert.NoError(t, message.Ack())
	assert.Error(t, message.Ack())
	assert.Equal(t, 0, queue.Size())
}

func TestQueue_Retries(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 2
	config.RetryDelay = 5 * time.Millisecond
	queue := NewQueue[transition](config)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, queue.Publish(ctx, &transition{TaskID: 1000}))

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		message, err := queue.Consume(ctx)
		require.NoError(t, err, "attempt %v", attempt)
		require.NoError(t, message.Nack(errors.New("failed")))
	}
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, 1, queue.DLQSize())
}

func TestQueue_NonBlocking(t *testing.T) {
	queue := NewQueue[transition](Config{QueueBuffer: 1, NonBlocking: true})
	ctx := context.Background()
	require.NoError(t, queue.Publish(ctx, &transition{EventID: 10}))
	err := queue.Publish(ctx, &transition{EventID: 20})
	assert.True(t, errors.Is(err, messaging.ErrQueueFull))
	assert.Equal(t, []transition{{EventID: 10}}, queue.Drain())
	assert.Empty(t, queue.Drain())
}

func TestQueue_Concurrency(t *testing.T) {
	queue := NewQueue[transition](DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	producers, perProducer := 10, 10

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func(taskID int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				assert.NoError(t, queue.Publish(ctx, &transition{TaskID: taskID, EventID: j}))
			}
		}(1000 + i)
	}
	consumed := 0
	for consumed < producers*perProducer {
		message, err := queue.Consume(ctx)
		require.NoError(t, err)
		require.NoError(t, message.Ack())
		consumed++
	}
	wg.Wait()
	assert.Equal(t, 0, queue.Size())
}

func TestQueue_ContextCancellation(t *testing.T) {
	queue := NewQueue[transition](DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, queue.Publish(ctx, &transition{}))

	timeoutCtx, cancelTimeout := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelTimeout()
	_, err := queue.Consume(timeoutCtx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
