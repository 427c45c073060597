package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gbroques/process-scheduling/internal/clock"
	"github.com/gbroques/process-scheduling/internal/idgen"
	"github.com/gbroques/process-scheduling/internal/logger"
	simclock "github.com/gbroques/process-scheduling/model/clock"
	"github.com/gbroques/process-scheduling/model/dispatch"
	"github.com/gbroques/process-scheduling/model/pcb"
	"github.com/gbroques/process-scheduling/policy"
	"github.com/gbroques/process-scheduling/progress"
	"github.com/gbroques/process-scheduling/service/dao"
	"github.com/gbroques/process-scheduling/service/event"
	ledger "github.com/gbroques/process-scheduling/service/dao/ledger/memory"
	"github.com/gbroques/process-scheduling/service/messaging"
	"github.com/gbroques/process-scheduling/service/queue"
	"github.com/gbroques/process-scheduling/service/trace"
	"github.com/gbroques/process-scheduling/tracing"
	"golang.org/x/exp/rand"
)

// Launcher starts worker units and delivers their dispatches.
type Launcher interface {
	Launch(ctx context.Context, spawn dispatch.Spawn) error
	Dispatch(ctx context.Context, d *dispatch.Dispatch) error
	// Wait blocks until every launched unit exited.
	Wait()
	// Abort stops every live unit without waiting.
	Abort()
}

// Result summarises a completed run.
type Result struct {
	RunID      string
	Seed       int64
	Admitted   int
	Completed  int
	Dispatches int
	IdleTicks  int
	Clock      simclock.Clock
	Records    []*pcb.Record
}

type unit struct {
	pid        int
	admittedAt simclock.Clock
	dispatches int
}

// Service is the supervisor: it owns the simulated clock, the process table
// and the ready queues, and is the only goroutine mutating them.
type Service struct {
	config   Config
	launcher Launcher
	reports  messaging.Queue[dispatch.Report]
	slot     *dispatch.Slot
	ledger   dao.Service[int, pcb.Record]
	policy   *policy.Policy
	recorder *trace.Recorder
	progress *progress.Progress
	logger   *slog.Logger
	events   *event.Publisher[pcb.PCB]
	onState  func(State)

	runID       string
	seed        int64
	rng         *rand.Rand
	now         simclock.Clock
	table       *pcb.Table
	queues      *queue.Set
	units       []unit
	quantum     int64
	arrivalMax  int64
	overheadMax int64
	idleMax     int64

	admitted      int
	completed     int
	dispatches    int
	idleTicks     int
	lastAdmission simclock.Clock
	arrival       simclock.Clock
}

// New creates a scheduler
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, opt := range options {
		opt(s)
	}
	if s.launcher == nil {
		return nil, fmt.Errorf("launcher is required")
	}
	if s.reports == nil {
		return nil, fmt.Errorf("report queue is required")
	}
	if s.slot == nil {
		return nil, fmt.Errorf("dispatch slot is required")
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if s.ledger == nil {
		s.ledger = ledger.New()
	}
	if s.recorder == nil {
		s.recorder = trace.New(0)
	}
	if s.logger == nil {
		s.logger = logger.Discard()
	}

	var err error
	if s.quantum, err = simclock.ToNanos[int64](s.config.Quantum); err != nil {
		return nil, fmt.Errorf("invalid quantum: %w", err)
	}
	if s.arrivalMax, err = simclock.ToNanos[int64](s.config.ArrivalMax); err != nil {
		return nil, fmt.Errorf("invalid arrival max: %w", err)
	}
	if s.overheadMax, err = simclock.ToNanos[int64](s.config.DispatchOverheadMax); err != nil {
		return nil, fmt.Errorf("invalid dispatch overhead max: %w", err)
	}
	if s.idleMax, err = simclock.ToNanos[int64](s.config.IdleTickMax); err != nil {
		return nil, fmt.Errorf("invalid idle tick max: %w", err)
	}
	if s.table, err = pcb.NewTable(s.config.MaxConcurrent); err != nil {
		return nil, err
	}
	if s.queues, err = queue.New(s.config.Levels); err != nil {
		return nil, err
	}
	s.units = make([]unit, s.config.MaxConcurrent)
	return s, nil
}

// Run drives the supervisor loop until the completion target is reached and
// every ready queue is empty, or ctx is done.
func (s *Service) Run(ctx context.Context) (result *Result, err error) {
	s.begin(ctx)
	ctx, span := tracing.StartSpan(ctx, "scheduler.run", "INTERNAL")
	span.WithAttributes(map[string]string{"run.id": s.runID}).WithInt("seed", s.seed)
	defer func() { tracing.EndSpan(span, err) }()

	s.logger.Info("scheduler started",
		slog.String("runID", s.runID),
		slog.Int64("seed", s.seed),
		slog.Int("maxConcurrent", s.config.MaxConcurrent),
		slog.Int("target", s.config.Target),
		logger.ClockAttr("startAt", s.now))

	for {
		if ctx.Err() != nil {
			return nil, s.interrupt(ctx)
		}
		state := s.next()
		if s.onState != nil {
			s.onState(state)
		}
		switch state {
		case Done:
			return s.finish(ctx)
		case Admitting:
			err = s.admit(ctx)
		case Dispatching:
			err = s.dispatch(ctx)
		case IdleAdvance:
			s.idle()
		}
		if err == nil {
			err = s.verify()
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, s.interrupt(ctx)
			}
			s.teardown()
			s.logger.Error("scheduler failed", logger.ErrAttr(err), logger.ClockAttr("clock", s.now))
			return nil, err
		}
	}
}

// Now returns the simulated clock. It must not be called while Run is active.
func (s *Service) Now() simclock.Clock {
	return s.now
}

// Recorder returns the trace recorder of the run.
func (s *Service) Recorder() *trace.Recorder {
	return s.recorder
}

func (s *Service) begin(ctx context.Context) {
	if s.progress == nil {
		if tracker, ok := progress.FromContext(ctx); ok {
			s.progress = tracker
		}
	}
	s.runID = idgen.New()
	if s.progress != nil && s.progress.RunID != "" {
		s.runID = s.progress.RunID
	}
	s.seed = clock.Seed(s.config.Seed)
	s.rng = rand.New(rand.NewSource(uint64(s.seed)))
	s.now = s.config.StartAt
	s.lastAdmission = s.now
	s.arrival = simclock.Zero
	s.admitted, s.completed, s.dispatches, s.idleTicks = 0, 0, 0, 0
	s.table.Reset()
	s.queues.Reset()
	s.slot.Reset()
	if s.policy == nil {
		s.policy = policy.FromContext(ctx)
	}
	if s.progress == nil {
		s.progress = progress.New(s.runID, nil)
	}
}

// next picks the state of the coming iteration in precedence order.
func (s *Service) next() State {
	switch {
	case s.completed >= s.config.Target && s.queues.IsEmpty():
		return Done
	case s.admitted < s.config.TotalToCreate && s.table.HasFree() &&
		s.now.IsPast(s.lastAdmission.Add(s.arrival)):
		return Admitting
	case !s.queues.IsEmpty():
		return Dispatching
	}
	return IdleAdvance
}

func (s *Service) admit(ctx context.Context) error {
	pid := s.admitted
	slot, ok := s.table.Admit(pid)
	if !ok {
		return fmt.Errorf("%w: no free slot for pid %d", ErrInconsistentState, pid)
	}
	s.units[slot] = unit{pid: pid, admittedAt: s.now}
	if err := s.queues.Enqueue(slot, 0); err != nil {
		return fmt.Errorf("%w: %w", ErrInconsistentState, err)
	}
	spawn := dispatch.Spawn{Slot: slot, PID: pid, AdmittedAt: s.now, Seed: s.rng.Int63()}
	if err := s.launcher.Launch(ctx, spawn); err != nil {
		return fmt.Errorf("%w: pid %d: %w", ErrLaunch, pid, err)
	}
	s.admitted++
	s.lastAdmission = s.now
	s.arrival = s.drawArrival()
	s.recorder.Admitted(pid, 0, s.now)
	s.emit(ctx, event.Admitted, pid, slot, 0, pcb.PCB{})
	s.logger.Debug("unit admitted", logger.PIDAttr(pid), logger.SlotAttr(slot), logger.ClockAttr("clock", s.now))
	s.now = s.now.Add(s.config.AdmissionOverhead)
	s.progress.Update(progress.Delta{Created: 1})
	return nil
}

func (s *Service) dispatch(ctx context.Context) (err error) {
	slot, level, ok := s.queues.DispatchNext()
	if !ok {
		return fmt.Errorf("%w: ready queues drained unexpectedly", ErrInconsistentState)
	}
	entry, err := s.table.Get(slot)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInconsistentState, err)
	}
	pid := s.units[slot].pid
	outcome := s.drawOutcome()

	ctx, span := tracing.StartSpan(ctx, "scheduler.dispatch", "INTERNAL")
	span.WithInt("pid", int64(pid)).WithInt("slot", int64(slot)).WithInt("level", int64(level))
	span.WithAttributes(map[string]string{"outcome": outcome.String()})
	defer func() { tracing.EndSpan(span, err) }()

	s.now = s.now.AddNanos(s.drawDispatchOverhead())
	if err = s.slot.Announce(slot, s.quantum, outcome); err != nil {
		return fmt.Errorf("%w: %w", ErrInconsistentState, err)
	}
	s.recorder.Dispatched(pid, level, s.now, s.quantum, outcome)
	s.emit(ctx, event.Dispatched, pid, slot, level, entry)
	d := &dispatch.Dispatch{Slot: slot, PID: pid, Quantum: s.quantum, Outcome: outcome, Now: s.now, PCB: entry}
	if err = s.launcher.Dispatch(ctx, d); err != nil {
		return fmt.Errorf("failed to dispatch pid %d: %w", pid, err)
	}
	s.dispatches++
	s.units[slot].dispatches++

	report, err := s.await(ctx, slot)
	if err != nil {
		return err
	}
	return s.settle(ctx, slot, level, report)
}

// await blocks until the dispatched unit reports back and checks that it
// released the dispatch slot.
func (s *Service) await(ctx context.Context, slot int) (*dispatch.Report, error) {
	msg, err := s.reports.Consume(ctx)
	if err != nil {
		return nil, err
	}
	report := *msg.T()
	if report.Err != nil {
		_ = msg.Nack(report.Err)
		return nil, fmt.Errorf("%w: pid %d: %w", ErrWorkerReport, report.PID, report.Err)
	}
	_ = msg.Ack()
	if report.Slot != slot {
		return nil, fmt.Errorf("%w: dispatched slot %d, report from slot %d", ErrInconsistentState, slot, report.Slot)
	}
	if !s.slot.IsIdle() {
		return nil, fmt.Errorf("%w: dispatch slot not released by slot %d", ErrInconsistentState, slot)
	}
	return &report, nil
}

// settle charges the turn to the clock and requeues or retires the unit.
func (s *Service) settle(ctx context.Context, slot, level int, report *dispatch.Report) error {
	s.now = s.now.AddNanos(uint64(report.Burst))
	s.recorder.Received(report)
	delta := progress.Delta{Dispatched: 1}
	if report.PCB.WasInterrupted() {
		delta.Interrupted = 1
	}

	if !report.Terminal() {
		next := s.policy.Next(policy.Turn{
			Level:       level,
			Quantum:     s.quantum,
			Burst:       report.Burst,
			Interrupted: report.PCB.WasInterrupted(),
		})
		err := s.table.Update(slot, func(entry *pcb.PCB) {
			*entry = report.PCB
			entry.Priority = next
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInconsistentState, err)
		}
		if err := s.queues.Enqueue(slot, next); err != nil {
			return fmt.Errorf("%w: %w", ErrInconsistentState, err)
		}
		s.recorder.Requeued(report.PID, next)
		s.emit(ctx, event.Requeued, report.PID, slot, next, report.PCB)
		delta.Requeued = 1
		s.progress.Update(delta)
		return nil
	}

	if err := s.table.Put(slot, report.PCB); err != nil {
		return fmt.Errorf("%w: %w", ErrInconsistentState, err)
	}
	u := s.units[slot]
	record := &pcb.Record{
		PID:          u.pid,
		Slot:         slot,
		AdmittedAt:   u.admittedAt,
		TerminatedAt: s.now,
		Dispatches:   u.dispatches,
		PCB:          report.PCB,
	}
	if err := s.ledger.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to archive pid %d: %w", u.pid, err)
	}
	if err := s.table.Retire(slot); err != nil {
		return fmt.Errorf("%w: %w", ErrInconsistentState, err)
	}
	s.units[slot] = unit{}
	s.completed++
	s.recorder.Terminated(u.pid, slot, s.now)
	s.emit(ctx, event.Terminated, u.pid, slot, level, report.PCB)
	s.logger.Debug("unit terminated", logger.PIDAttr(u.pid), logger.SlotAttr(slot),
		logger.ClockAttr("clock", s.now), logger.ClockAttr("cpu", report.PCB.TotalCPU))
	delta.Completed = 1
	s.progress.Update(delta)
	return nil
}

func (s *Service) idle() {
	s.now = s.now.AddNanos(s.drawIdleTick())
	s.idleTicks++
	s.progress.Update(progress.Delta{IdleTicks: 1})
}

// verify checks that every occupied slot waits in exactly one ready queue
// while no unit is running.
func (s *Service) verify() error {
	if !s.slot.IsIdle() {
		return fmt.Errorf("%w: dispatch slot held between iterations", ErrInconsistentState)
	}
	if occupied, queued := s.table.Len(), s.queues.Total(); occupied != queued {
		return fmt.Errorf("%w: %d occupied slots, %d queued", ErrInconsistentState, occupied, queued)
	}
	return nil
}

func (s *Service) finish(ctx context.Context) (*Result, error) {
	s.launcher.Wait()
	records, err := s.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived records: %w", err)
	}
	s.logger.Info("scheduler finished",
		slog.String("runID", s.runID),
		slog.Int("admitted", s.admitted),
		slog.Int("completed", s.completed),
		slog.Int("dispatches", s.dispatches),
		logger.ClockAttr("clock", s.now))
	return &Result{
		RunID:      s.runID,
		Seed:       s.seed,
		Admitted:   s.admitted,
		Completed:  s.completed,
		Dispatches: s.dispatches,
		IdleTicks:  s.idleTicks,
		Clock:      s.now,
		Records:    records,
	}, nil
}

// interrupt stops every live unit without joining them and releases the
// shared state.
func (s *Service) interrupt(ctx context.Context) error {
	s.teardown()
	cause := context.Cause(ctx)
	if cause == nil {
		cause = ctx.Err()
	}
	s.logger.Warn("scheduler interrupted", logger.ErrAttr(cause), logger.ClockAttr("clock", s.now),
		slog.Int("completed", s.completed))
	s.recorder.Note("Interrupted at time %s after %d of %d completions", s.now, s.completed, s.config.Target)
	if errors.Is(cause, ErrInterrupted) {
		return cause
	}
	return fmt.Errorf("%w: %w", ErrInterrupted, cause)
}

func (s *Service) teardown() {
	s.launcher.Abort()
	s.slot.Reset()
	s.queues.Reset()
	s.table.Reset()
}

func (s *Service) emit(ctx context.Context, kind event.Type, pid, slot, level int, entry pcb.PCB) {
	if s.events == nil {
		return
	}
	e := event.NewEvent(&event.Context{RunID: s.runID, PID: pid, Slot: slot, Level: level, Type: kind}, s.now, entry)
	if err := s.events.Publish(ctx, e); err != nil {
		s.logger.Debug("event not published", logger.PIDAttr(pid), logger.ErrAttr(err))
	}
}
