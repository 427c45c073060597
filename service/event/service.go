package event

import (
	"github.com/gbroques/process-scheduling/service/messaging/memory"
)

// DefaultBuffer is the queue capacity between publisher and handler.
const DefaultBuffer = 64

// Service connects a publisher to a single handler.
type Service[T any] struct {
	queue     *memory.Queue[Event[T]]
	publisher *Publisher[T]
	listener  *Listener[T]
}

// Publisher returns the publishing side.
func (s *Service[T]) Publisher() *Publisher[T] {
	return s.publisher
}

// Close stops accepting events and returns once the handler has seen every
// published one.
func (s *Service[T]) Close() error {
	err := s.queue.Close()
	s.listener.Wait()
	return err
}

// New starts a listener delivering events to handler. A non-positive buffer
// uses DefaultBuffer.
func New[T any](handler func(*Event[T]), buffer int) *Service[T] {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	config := memory.DefaultConfig()
	config.QueueBuffer = buffer
	queue := memory.NewQueue[Event[T]](config)
	ret := &Service[T]{queue: queue, publisher: NewPublisher[T](queue)}
	ret.listener = NewListener[T](ret.publisher, handler)
	ret.listener.Start()
	return ret
}
