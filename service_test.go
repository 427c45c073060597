package oss_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	oss "github.com/gbroques/process-scheduling"
	"github.com/gbroques/process-scheduling/model/clock"
	"github.com/gbroques/process-scheduling/model/pcb"
	"github.com/gbroques/process-scheduling/progress"
	"github.com/gbroques/process-scheduling/service/event"
	"github.com/gbroques/process-scheduling/service/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *oss.Config {
	dir := t.TempDir()
	config := oss.DefaultConfig()
	config.Scheduler.MaxConcurrent = 3
	config.Scheduler.TotalToCreate = 5
	config.Scheduler.Target = 5
	config.Scheduler.ArrivalMax = clock.New(0, 100_000_000)
	config.Scheduler.Seed = 11
	config.Output.Path = filepath.Join(dir, "oss.out")
	return config
}

func run(t *testing.T, config *oss.Config, options ...oss.Option) *oss.Outcome {
	srv, err := oss.New(append([]oss.Option{oss.WithConfig(config)}, options...)...)
	require.NoError(t, err)
	outcome, err := srv.Run(context.Background())
	require.NoError(t, err)
	return outcome
}

func TestNew_InvalidConfig(t *testing.T) {
	config := oss.DefaultConfig()
	config.Scheduler.Target = 0
	_, err := oss.New(oss.WithConfig(config))
	assert.Error(t, err)
}

func TestService_Run(t *testing.T) {
	config := testConfig(t)
	dir := filepath.Dir(config.Output.Path)
	config.Output.ArchiveURL = filepath.Join(dir, "archive")
	config.Output.SummaryURL = filepath.Join(dir, "summary.yaml")

	var last progress.Progress
	terminated := 0
	outcome := run(t, config,
		oss.WithProgressListener(func(p progress.Progress) { last = p }),
		oss.WithEventHandler(func(e *event.Event[pcb.PCB]) {
			if e.Context.Type == event.Terminated {
				terminated++
			}
		}))

	assert.Equal(t, 5, outcome.Result.Completed)
	assert.Equal(t, 5, last.Completed)
	assert.Equal(t, 5, terminated)
	assert.Equal(t, outcome.Result.RunID, last.RunID)
	assert.Nil(t, outcome.Delta)
	assert.True(t, strings.HasPrefix(outcome.OutputURL, "file://"))

	data, err := os.ReadFile(config.Output.Path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "OSS: Generating process with PID 0 and putting it in queue 0 at time 0:000000000")
	assert.Contains(t, text, "Statistics for 5 of 5 processes")
	assert.True(t, strings.HasSuffix(text, outcome.Report))
	assert.Less(t, strings.Index(text, "terminated at time"), strings.Index(text, "Statistics for"))

	summary, err := os.ReadFile(config.Output.SummaryURL)
	require.NoError(t, err)
	assert.Contains(t, string(summary), "Units: 5")

	archived, err := os.ReadDir(filepath.Join(config.Output.ArchiveURL, outcome.Result.RunID))
	require.NoError(t, err)
	assert.Len(t, archived, 5)
}

func TestService_Run_Baseline(t *testing.T) {
	config := testConfig(t)
	first := run(t, config)

	baseline := filepath.Join(t.TempDir(), "baseline.txt")
	require.NoError(t, os.WriteFile(baseline, []byte(first.Report), 0o644))
	config.Output.BaselineURL = baseline

	same := run(t, config)
	require.NotNil(t, same.Delta)
	assert.True(t, same.Delta.IsEmpty())
	assert.Equal(t, first.Report, same.Report)

	config.Scheduler.Seed = 12
	other := run(t, config)
	require.NotNil(t, other.Delta)
	assert.False(t, other.Delta.IsEmpty())

	config.Output.BaselineURL = filepath.Join(t.TempDir(), "missing.txt")
	missing := run(t, config)
	assert.Nil(t, missing.Delta)
}

func TestService_Run_WallLimit(t *testing.T) {
	config := testConfig(t)
	config.Scheduler.MaxConcurrent = 18
	config.Scheduler.TotalToCreate = 1_000_000
	config.Scheduler.Target = 1_000_000
	config.Scheduler.ArrivalMax = clock.Zero
	config.Scheduler.WallLimit = 20 * time.Millisecond

	srv, err := oss.New(oss.WithConfig(config))
	require.NoError(t, err)
	_, err = srv.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, scheduler.ErrInterrupted))
	assert.True(t, errors.Is(err, oss.ErrWallLimit))

	data, err := os.ReadFile(config.Output.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "OSS: Interrupted at time")
	assert.NotContains(t, string(data), "Statistics for")
}
