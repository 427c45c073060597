package oss

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gbroques/process-scheduling/internal/envexpr"
	"github.com/gbroques/process-scheduling/internal/logger"
	"github.com/gbroques/process-scheduling/model/clock"
	"github.com/gbroques/process-scheduling/policy"
	"github.com/gbroques/process-scheduling/service/processor"
	"github.com/gbroques/process-scheduling/service/scheduler"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the simulator configuration.
// Zero-valued sections are never used directly; LoadConfig decodes on top
// of DefaultConfig.
type Config struct {
	Scheduler SchedulerConfig `json:"scheduler" yaml:"scheduler"`
	Worker    WorkerConfig    `json:"worker" yaml:"worker"`
	Policy    policy.Config   `json:"policy" yaml:"policy"`
	Output    OutputConfig    `json:"output" yaml:"output"`
	Tracing   TracingConfig   `json:"tracing" yaml:"tracing"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

// SchedulerConfig holds supervisor settings.
type SchedulerConfig struct {
	MaxConcurrent       int           `json:"maxConcurrent" yaml:"maxConcurrent"`
	TotalToCreate       int           `json:"totalToCreate" yaml:"totalToCreate"`
	Target              int           `json:"target" yaml:"target"`
	Quantum             clock.Clock   `json:"quantum" yaml:"quantum"`
	ArrivalMax          clock.Clock   `json:"arrivalMax" yaml:"arrivalMax"`
	ArrivalRedraws      int           `json:"arrivalRedraws" yaml:"arrivalRedraws"`
	AdmissionOverhead   clock.Clock   `json:"admissionOverhead" yaml:"admissionOverhead"`
	DispatchOverheadMax clock.Clock   `json:"dispatchOverheadMax" yaml:"dispatchOverheadMax"`
	IdleTickMax         clock.Clock   `json:"idleTickMax" yaml:"idleTickMax"`
	OutcomeRedraws      int           `json:"outcomeRedraws" yaml:"outcomeRedraws"`
	Levels              int           `json:"levels" yaml:"levels"`
	Seed                int64         `json:"seed" yaml:"seed"`
	StartAt             clock.Clock   `json:"startAt" yaml:"startAt"`
	WallLimit           time.Duration `json:"wallLimit" yaml:"wallLimit"`
}

// WorkerConfig holds worker unit settings.
type WorkerConfig struct {
	CompletionThreshold clock.Clock `json:"completionThreshold" yaml:"completionThreshold"`
	EventWaitMax        clock.Clock `json:"eventWaitMax" yaml:"eventWaitMax"`
	InboxBuffer         int         `json:"inboxBuffer" yaml:"inboxBuffer"`
}

// OutputConfig controls where results are written.
type OutputConfig struct {
	// Path receives the trace lines followed by the statistics report.
	Path string `json:"path" yaml:"path"`
	// ArchiveURL stores one record per terminated unit; empty keeps them in memory.
	ArchiveURL string `json:"archiveURL,omitempty" yaml:"archiveURL,omitempty"`
	// SummaryURL receives the summary as YAML.
	SummaryURL string `json:"summaryURL,omitempty" yaml:"summaryURL,omitempty"`
	// BaselineURL points at a previous report to compare against.
	BaselineURL string `json:"baselineURL,omitempty" yaml:"baselineURL,omitempty"`
}

// TracingConfig controls OpenTelemetry span export.
type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	sched := scheduler.DefaultConfig()
	worker := processor.DefaultConfig()
	return &Config{
		Scheduler: SchedulerConfig{
			MaxConcurrent:       sched.MaxConcurrent,
			TotalToCreate:       sched.TotalToCreate,
			Target:              sched.Target,
			Quantum:             sched.Quantum,
			ArrivalMax:          sched.ArrivalMax,
			ArrivalRedraws:      sched.ArrivalRedraws,
			AdmissionOverhead:   sched.AdmissionOverhead,
			DispatchOverheadMax: sched.DispatchOverheadMax,
			IdleTickMax:         sched.IdleTickMax,
			OutcomeRedraws:      sched.OutcomeRedraws,
			Levels:              sched.Levels,
			Seed:                sched.Seed,
			StartAt:             sched.StartAt,
			WallLimit:           60 * time.Second,
		},
		Worker: WorkerConfig{
			CompletionThreshold: worker.CompletionThreshold,
			EventWaitMax:        worker.EventWaitMax,
			InboxBuffer:         worker.InboxBuffer,
		},
		Policy: policy.Config{Mode: policy.ModeFixed},
		Output: OutputConfig{Path: "oss.out"},
		Log:    LogConfig{Level: "info"},
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	sched := c.ToScheduler()
	if err := sched.Validate(); err != nil {
		return err
	}
	if c.Scheduler.WallLimit < 0 {
		return fmt.Errorf("scheduler.wallLimit must be >= 0")
	}
	if c.Worker.InboxBuffer <= 0 {
		return fmt.Errorf("worker.inboxBuffer must be > 0")
	}
	if _, err := policy.FromConfig(&c.Policy, c.Scheduler.Levels); err != nil {
		return err
	}
	if strings.TrimSpace(c.Output.Path) == "" {
		return fmt.Errorf("output.path cannot be empty")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ToScheduler converts the scheduler section.
func (c *Config) ToScheduler() scheduler.Config {
	s := c.Scheduler
	return scheduler.Config{
		MaxConcurrent:       s.MaxConcurrent,
		TotalToCreate:       s.TotalToCreate,
		Target:              s.Target,
		Quantum:             s.Quantum,
		ArrivalMax:          s.ArrivalMax,
		ArrivalRedraws:      s.ArrivalRedraws,
		AdmissionOverhead:   s.AdmissionOverhead,
		DispatchOverheadMax: s.DispatchOverheadMax,
		IdleTickMax:         s.IdleTickMax,
		OutcomeRedraws:      s.OutcomeRedraws,
		Levels:              s.Levels,
		Seed:                s.Seed,
		StartAt:             s.StartAt,
	}
}

// ToWorker converts the worker section.
func (c *Config) ToWorker() processor.Config {
	return processor.Config{
		CompletionThreshold: c.Worker.CompletionThreshold,
		EventWaitMax:        c.Worker.EventWaitMax,
		InboxBuffer:         c.Worker.InboxBuffer,
	}
}

// LoadConfig decodes the YAML document at URL on top of DefaultConfig after
// expanding ${env.KEY} references.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	fs := afs.New()
	URL = url.Normalize(URL, file.Scheme)
	data, err := fs.DownloadWithURL(ctx, URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	data = []byte(envexpr.ExpandEnv(string(data)))
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return config, nil
}
