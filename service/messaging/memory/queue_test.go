package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gbroques/process-scheduling/service/messaging"
	"github.com/stretchr/testify/assert"
)

type TestPayload struct {
	ID    string
	Count int
}

func TestQueue(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())
	ctx := context.Background()
	payload := TestPayload{ID: "test-1", Count: 1}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, payload, *message.T())

	assert.NoError(t, message.Ack())
	assert.Error(t, message.Ack())
	assert.Error(t, message.Nack(nil))
}

func TestQueueNackDeadLetter(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())
	ctx := context.Background()

	assert.NoError(t, queue.Publish(ctx, &TestPayload{ID: "dead"}))
	message, err := queue.Consume(ctx)
	assert.NoError(t, err)

	cause := errors.New("stale slot")
	assert.NoError(t, message.Nack(cause))
	assert.Equal(t, 1, queue.DLQSize())
	assert.Equal(t, []error{cause}, queue.DeadLetters())
	assert.Equal(t, 0, queue.Size())
}

func TestQueueConcurrency(t *testing.T) {
	config := DefaultConfig()
	config.QueueBuffer = 4
	queue := NewQueue[TestPayload](config)

	ctx := context.Background()
	concurrency := 10
	messagesPerProducer := 10

	var wg sync.WaitGroup
	wg.Add(concurrency * 2)

	var consumedCount int
	var consumedMu sync.Mutex

	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < messagesPerProducer; j++ {
				message, err := queue.Consume(ctx)
				if err != nil {
					t.Errorf("Error consuming: %v", err)
					return
				}
				assert.NoError(t, message.Ack())
				consumedMu.Lock()
				consumedCount++
				consumedMu.Unlock()
			}
		}()
	}

	for i := 0; i < concurrency; i++ {
		go func(producerID int) {
			defer wg.Done()
			for j := 0; j < messagesPerProducer; j++ {
				payload := TestPayload{ID: fmt.Sprintf("p%d-m%d", producerID, j), Count: j}
				if err := queue.Publish(ctx, &payload); err != nil {
					t.Errorf("Error publishing: %v", err)
				}
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Test timed out")
	}

	assert.Equal(t, concurrency*messagesPerProducer, consumedCount)
	assert.Equal(t, 0, queue.Size())
}

func TestQueueContextCancellation(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	payload := TestPayload{ID: "test"}
	assert.ErrorIs(t, queue.Publish(ctx, &payload), context.Canceled)

	ctxWithTimeout, cancelTimeout := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelTimeout()
	_, err := queue.Consume(ctxWithTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	emptyCtx := context.Background()
	assert.NoError(t, queue.Publish(emptyCtx, &payload))
	message, err := queue.Consume(emptyCtx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
}

func TestQueueClose(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())
	ctx := context.Background()

	result := make(chan error, 1)
	go func() {
		_, err := queue.Consume(ctx)
		result <- err
	}()

	assert.NoError(t, queue.Close())
	assert.NoError(t, queue.Close())

	select {
	case err := <-result:
		assert.ErrorIs(t, err, messaging.ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("consumer was not released")
	}
	assert.ErrorIs(t, queue.Publish(ctx, &TestPayload{}), messaging.ErrClosed)
}

func TestQueueClose_DrainsBuffered(t *testing.T) {
	config := DefaultConfig()
	config.QueueBuffer = 2
	queue := NewQueue[TestPayload](config)
	ctx := context.Background()
	assert.NoError(t, queue.Publish(ctx, &TestPayload{}))
	assert.NoError(t, queue.Publish(ctx, &TestPayload{}))
	assert.NoError(t, queue.Close())

	for i := 0; i < 2; i++ {
		msg, err := queue.Consume(ctx)
		assert.NoError(t, err)
		assert.NoError(t, msg.Ack())
	}
	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, messaging.ErrClosed)
}
