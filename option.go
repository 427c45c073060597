package oss

import (
	"log/slog"

	"github.com/gbroques/process-scheduling/model/pcb"
	"github.com/gbroques/process-scheduling/progress"
	"github.com/gbroques/process-scheduling/service/dao"
	"github.com/gbroques/process-scheduling/service/event"
	"github.com/gbroques/process-scheduling/service/trace"
	"github.com/gbroques/process-scheduling/tracing"
	"github.com/viant/afs/storage"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures the simulator service.
type Option func(s *Service)

// WithConfig sets the configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithLedger sets the archive of terminated units, overriding output.archiveURL.
func WithLedger(ledger dao.Service[int, pcb.Record]) Option {
	return func(s *Service) {
		s.ledger = ledger
	}
}

// WithRecorder sets the trace recorder
func WithRecorder(recorder *trace.Recorder) Option {
	return func(s *Service) {
		s.recorder = recorder
	}
}

// WithProgressListener registers a callback receiving run counters after every change.
func WithProgressListener(fn func(progress.Progress)) Option {
	return func(s *Service) {
		s.onProgress = fn
	}
}

// WithEventHandler registers a handler receiving every lifecycle event of a run.
// Run returns only after the handler has seen all of them.
func WithEventHandler(fn func(*event.Event[pcb.PCB])) Option {
	return func(s *Service) {
		s.onEvent = fn
	}
}

// WithFsOptions sets storage options used when reading the baseline report.
func WithFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.fsOptions = options
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter. The
// first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
		s.tracing = true
	}
}
