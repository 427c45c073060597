package event

import (
	"context"
)

// Listener hands every consumed event to handler on its own goroutine.
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// Stop abandons undelivered events and waits for the listener to exit.
func (l *Listener[T]) Stop() {
	l.cancel()
	<-l.done
}

// Wait blocks until the listener exits, which happens once the queue is
// closed and drained.
func (l *Listener[T]) Wait() {
	<-l.done
}

func (l *Listener[T]) Start() {
	go func() {
		defer close(l.done)
		for {
			event, err := l.publisher.Consume(l.ctx)
			if err != nil {
				return
			}
			l.handler(event)
		}
	}()
}
