// Package messaging defines the generic queue contract used for the
// scheduler/worker rendezvous: a dispatch published to a worker inbox and a
// report published back to the scheduler.
package messaging

import (
	"context"
	"errors"
)

// ErrClosed is returned by queues that were closed.
var ErrClosed = errors.New("messaging: queue closed")

// Queue represents an abstract message queue for any payload type
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue
	Publish(ctx context.Context, t *T) error

	// Consume blocks until a message is available, the context is done or
	// the queue is closed.
	Consume(ctx context.Context) (Message[T], error)

	// Close releases the queue; blocked consumers return ErrClosed.
	Close() error
}

// Message represents a message retrieved from a queue
type Message[T any] interface {
	// T returns the payload of this message
	T() *T

	// Ack acknowledges successful processing of this message
	Ack() error

	// Nack rejects the message; it is never redelivered.
	Nack(err error) error
}
