package scheduler

import (
	"log/slog"

	"github.com/gbroques/process-scheduling/model/dispatch"
	"github.com/gbroques/process-scheduling/model/pcb"
	"github.com/gbroques/process-scheduling/policy"
	"github.com/gbroques/process-scheduling/progress"
	"github.com/gbroques/process-scheduling/service/dao"
	"github.com/gbroques/process-scheduling/service/event"
	"github.com/gbroques/process-scheduling/service/messaging"
	"github.com/gbroques/process-scheduling/service/trace"
)

// Option configures the scheduler.
type Option func(*Service)

// WithConfig sets the configuration for the service
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithLauncher sets the worker unit launcher.
func WithLauncher(launcher Launcher) Option {
	return func(s *Service) {
		s.launcher = launcher
	}
}

// WithReportQueue sets the queue workers report turn results on.
func WithReportQueue(queue messaging.Queue[dispatch.Report]) Option {
	return func(s *Service) {
		s.reports = queue
	}
}

// WithDispatchSlot sets the shared record naming the running unit.
func WithDispatchSlot(slot *dispatch.Slot) Option {
	return func(s *Service) {
		s.slot = slot
	}
}

// WithLedger sets the archive of terminated units.
func WithLedger(ledger dao.Service[int, pcb.Record]) Option {
	return func(s *Service) {
		s.ledger = ledger
	}
}

// WithPolicy sets the requeue policy.
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithRecorder sets the trace recorder.
func WithRecorder(recorder *trace.Recorder) Option {
	return func(s *Service) {
		s.recorder = recorder
	}
}

// WithProgress sets the run counters.
func WithProgress(tracker *progress.Progress) Option {
	return func(s *Service) {
		s.progress = tracker
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithStateListener registers a callback invoked with every state chosen.
func WithStateListener(fn func(State)) Option {
	return func(s *Service) {
		s.onState = fn
	}
}

// WithEvents publishes lifecycle events carrying a PCB snapshot.
func WithEvents(publisher *event.Publisher[pcb.PCB]) Option {
	return func(s *Service) {
		s.events = publisher
	}
}
