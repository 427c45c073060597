package oss

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/gbroques/process-scheduling/internal/idgen"
	"github.com/gbroques/process-scheduling/internal/logger"
	"github.com/gbroques/process-scheduling/model/dispatch"
	"github.com/gbroques/process-scheduling/model/pcb"
	"github.com/gbroques/process-scheduling/policy"
	"github.com/gbroques/process-scheduling/progress"
	"github.com/gbroques/process-scheduling/service/dao"
	archive "github.com/gbroques/process-scheduling/service/dao/ledger/fs"
	"github.com/gbroques/process-scheduling/service/dao/ledger/memory"
	"github.com/gbroques/process-scheduling/service/event"
	mmemory "github.com/gbroques/process-scheduling/service/messaging/memory"
	"github.com/gbroques/process-scheduling/service/processor"
	"github.com/gbroques/process-scheduling/service/report"
	"github.com/gbroques/process-scheduling/service/scheduler"
	"github.com/gbroques/process-scheduling/service/trace"
	"github.com/gbroques/process-scheduling/tracing"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// Version is attached to exported spans.
const Version = "1.0.0"

const serviceName = "oss"

// Outcome is the result of a completed simulation.
type Outcome struct {
	Result  *scheduler.Result
	Summary *report.Summary
	// Report is the rendered statistics report.
	Report string
	// Delta is set when a baseline report was compared.
	Delta *report.Delta
	// OutputURL is where the trace and report were written.
	OutputURL string
}

// Service wires the scheduler, its workers and the reporting around them.
type Service struct {
	config     *Config
	fs         afs.Service
	fsOptions  []storage.Option
	logger     *slog.Logger
	ledger     dao.Service[int, pcb.Record]
	recorder   *trace.Recorder
	onProgress func(progress.Progress)
	onEvent    func(*event.Event[pcb.PCB])
	tracing    bool
}

// New creates a simulator service
func New(options ...Option) (*Service, error) {
	s := &Service{fs: afs.New()}
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if s.logger == nil {
		s.logger = logger.Discard()
	}
	if s.config.Tracing.Enabled && !s.tracing {
		if err := tracing.Init(serviceName, Version, s.config.Tracing.OutputFile); err != nil {
			return nil, fmt.Errorf("failed to initialise tracing: %w", err)
		}
		s.tracing = true
	}
	return s, nil
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// Run simulates until the completion target is reached, then writes the
// trace and the statistics report to output.path. An interrupted or failed
// run still writes the trace recorded so far.
func (s *Service) Run(ctx context.Context) (*Outcome, error) {
	if s.tracing {
		defer func() { _ = tracing.Flush(context.Background()) }()
	}
	if limit := s.config.Scheduler.WallLimit; limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, limit, ErrWallLimit)
		defer cancel()
	}

	runID := idgen.New()
	recorder := s.recorder
	if recorder == nil {
		recorder = trace.New(0)
	}
	ctx, _ = progress.WithNewTracker(ctx, runID, s.onProgress)
	var options []scheduler.Option
	if s.onEvent != nil {
		bus := event.New(s.onEvent, 0)
		defer func() { _ = bus.Close() }()
		options = append(options, scheduler.WithEvents(bus.Publisher()))
	}
	sched, err := s.newScheduler(ctx, runID, recorder, options...)
	if err != nil {
		return nil, err
	}

	result, runErr := sched.Run(ctx)
	if runErr != nil {
		if _, err := s.writeOutput(ctx, recorder, ""); err != nil {
			s.logger.Error("failed to write trace", logger.ErrAttr(err))
		}
		return nil, runErr
	}

	summary := report.Compute(result.Records, s.config.Scheduler.TotalToCreate)
	outcome := &Outcome{Result: result, Summary: summary, Report: summary.String()}
	if outcome.OutputURL, err = s.writeOutput(ctx, recorder, outcome.Report); err != nil {
		return nil, err
	}
	if err = s.uploadSummary(ctx, summary); err != nil {
		return nil, err
	}
	if outcome.Delta, err = s.compare(ctx, outcome.Report); err != nil {
		return nil, err
	}
	s.logger.Info("simulation finished",
		slog.String("runID", result.RunID),
		slog.Int("completed", result.Completed),
		slog.String("output", outcome.OutputURL),
		logger.ClockAttr("avgTurnaround", summary.AvgTurnaround),
		logger.ClockAttr("avgWait", summary.AvgWait))
	return outcome, nil
}

func (s *Service) newScheduler(ctx context.Context, runID string, recorder *trace.Recorder, options ...scheduler.Option) (*scheduler.Service, error) {
	ledger, err := s.ensureLedger(ctx, runID)
	if err != nil {
		return nil, err
	}
	p, err := policy.FromConfig(&s.config.Policy, s.config.Scheduler.Levels)
	if err != nil {
		return nil, err
	}

	queueConfig := mmemory.DefaultConfig()
	reports := mmemory.NewQueue[dispatch.Report](queueConfig)
	slot := dispatch.NewSlot()
	workers, err := processor.New(
		processor.WithConfig(s.config.ToWorker()),
		processor.WithReportQueue(reports),
		processor.WithDispatchSlot(slot),
		processor.WithLogger(s.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create workers: %w", err)
	}
	options = append(options,
		scheduler.WithConfig(s.config.ToScheduler()),
		scheduler.WithLauncher(workers),
		scheduler.WithReportQueue(reports),
		scheduler.WithDispatchSlot(slot),
		scheduler.WithLedger(ledger),
		scheduler.WithPolicy(p),
		scheduler.WithRecorder(recorder),
		scheduler.WithLogger(s.logger))
	return scheduler.New(options...)
}

// ensureLedger archives each run under its own folder of output.archiveURL.
func (s *Service) ensureLedger(ctx context.Context, runID string) (dao.Service[int, pcb.Record], error) {
	if s.ledger != nil {
		return s.ledger, nil
	}
	if s.config.Output.ArchiveURL == "" {
		return memory.New(), nil
	}
	ledger, err := archive.New(ctx, url.Join(s.config.Output.ArchiveURL, runID))
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}
	return ledger, nil
}

// writeOutput stores the trace lines followed by rendered at output.path. It
// ignores ctx cancellation so an interrupted run keeps its trace.
func (s *Service) writeOutput(ctx context.Context, recorder *trace.Recorder, rendered string) (string, error) {
	ctx = context.WithoutCancel(ctx)
	var buf bytes.Buffer
	if _, err := recorder.WriteTo(&buf); err != nil {
		return "", err
	}
	buf.WriteString(rendered)
	location := url.Normalize(s.config.Output.Path, file.Scheme)
	if err := s.fs.Upload(ctx, location, file.DefaultFileOsMode, &buf); err != nil {
		return "", fmt.Errorf("failed to write output %s: %w", location, err)
	}
	return location, nil
}

func (s *Service) uploadSummary(ctx context.Context, summary *report.Summary) error {
	if s.config.Output.SummaryURL == "" {
		return nil
	}
	data, err := summary.YAML()
	if err != nil {
		return err
	}
	location := url.Normalize(s.config.Output.SummaryURL, file.Scheme)
	if err = s.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to upload summary %s: %w", location, err)
	}
	return nil
}

// compare diffs rendered against output.baselineURL. A missing baseline is
// not an error.
func (s *Service) compare(ctx context.Context, rendered string) (*report.Delta, error) {
	if s.config.Output.BaselineURL == "" {
		return nil, nil
	}
	location := url.Normalize(s.config.Output.BaselineURL, file.Scheme)
	exists, err := s.fs.Exists(ctx, location, s.fsOptions...)
	if err != nil || !exists {
		s.logger.Warn("baseline report not found", slog.String("baseline", location), logger.ErrAttr(err))
		return nil, nil
	}
	data, err := s.fs.DownloadWithURL(ctx, location, s.fsOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline %s: %w", location, err)
	}
	delta, err := report.Diff(string(data), rendered)
	if err != nil {
		return nil, err
	}
	if !delta.IsEmpty() {
		s.logger.Info("report differs from baseline",
			slog.String("baseline", location),
			slog.Int("added", delta.Added),
			slog.Int("changed", delta.Changed),
			slog.Int("deleted", delta.Deleted))
	}
	return delta, nil
}
