package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gbroques/process-scheduling/internal/logger"
	"github.com/gbroques/process-scheduling/model/clock"
	"github.com/gbroques/process-scheduling/model/dispatch"
	"github.com/gbroques/process-scheduling/service/messaging"
	"github.com/gbroques/process-scheduling/service/messaging/memory"
)

var (
	// ErrUnknownSlot is returned when dispatching to a slot with no worker.
	ErrUnknownSlot = errors.New("processor: no worker for slot")

	// ErrDuplicateSlot is returned when launching into a slot that already has a worker.
	ErrDuplicateSlot = errors.New("processor: slot already has a worker")
)

// Config represents worker unit configuration
type Config struct {
	// CompletionThreshold is the CPU time after which a unit may terminate.
	CompletionThreshold clock.Clock
	// EventWaitMax bounds the simulated event wait added to system time.
	EventWaitMax clock.Clock
	// InboxBuffer is the capacity of each worker inbox.
	InboxBuffer int
}

// DefaultConfig returns the default worker configuration
func DefaultConfig() Config {
	return Config{
		CompletionThreshold: clock.New(0, 50_000_000),
		EventWaitMax:        clock.New(5, 0),
		InboxBuffer:         1,
	}
}

// Service launches and tracks worker units.
type Service struct {
	config    Config
	threshold clock.Clock
	waitMax   int64
	reports   messaging.Queue[dispatch.Report]
	slot      *dispatch.Slot
	logger    *slog.Logger

	mu       sync.Mutex
	workers  map[int]*worker
	workerWg sync.WaitGroup
}

// New creates a worker service
func New(options ...Option) (*Service, error) {
	s := &Service{
		config:  DefaultConfig(),
		workers: make(map[int]*worker),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.reports == nil {
		return nil, fmt.Errorf("report queue is required")
	}
	if s.slot == nil {
		return nil, fmt.Errorf("dispatch slot is required")
	}
	if s.logger == nil {
		s.logger = logger.Discard()
	}
	var err error
	if s.waitMax, err = clock.ToNanos[int64](s.config.EventWaitMax); err != nil {
		return nil, fmt.Errorf("invalid event wait max: %w", err)
	}
	s.threshold = s.config.CompletionThreshold
	return s, nil
}

// Launch starts a worker unit for spawn. The worker lives until it
// terminates, ctx is cancelled or Abort is called.
func (s *Service) Launch(ctx context.Context, spawn dispatch.Spawn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workers[spawn.Slot]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateSlot, spawn.Slot)
	}
	workerCtx, cancel := context.WithCancel(ctx)
	w := newWorker(workerCtx, cancel, s, spawn)
	s.workers[spawn.Slot] = w
	s.workerWg.Add(1)
	go w.run()
	return nil
}

// Dispatch delivers d to the inbox of the worker owning d.Slot.
func (s *Service) Dispatch(ctx context.Context, d *dispatch.Dispatch) error {
	s.mu.Lock()
	w, ok := s.workers[d.Slot]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownSlot, d.Slot)
	}
	return w.inbox.Publish(ctx, d)
}

// Active returns the number of live workers.
func (s *Service) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workers)
}

// Wait blocks until every launched worker has exited.
func (s *Service) Wait() {
	s.workerWg.Wait()
}

// Abort cancels every live worker without waiting for them.
func (s *Service) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for slot, w := range s.workers {
		w.cancelFn()
		_ = w.inbox.Close()
		delete(s.workers, slot)
	}
}

func (s *Service) release(w *worker) {
	s.mu.Lock()
	if current, ok := s.workers[w.slot]; ok && current == w {
		delete(s.workers, w.slot)
	}
	s.mu.Unlock()
	_ = w.inbox.Close()
}

func (s *Service) newInbox() *memory.Queue[dispatch.Dispatch] {
	config := memory.DefaultConfig()
	config.QueueBuffer = s.config.InboxBuffer
	return memory.NewQueue[dispatch.Dispatch](config)
}
