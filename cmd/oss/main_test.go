package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-h"}, &stdout, &stderr)
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, stdout.String(), "Operating System Simulator")
	assert.Empty(t, stderr.String())
}

func TestRun_UnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-x"}, &stdout, &stderr)
	assert.Error(t, err)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "flag provided but not defined: -x")
	assert.Contains(t, stderr.String(), "Operating System Simulator")
}

func TestRun_WritesLogFile(t *testing.T) {
	dir := t.TempDir()
	configURL := filepath.Join(dir, "oss.yaml")
	require.NoError(t, os.WriteFile(configURL, []byte("scheduler:\n  maxConcurrent: 2\n  totalToCreate: 3\n  target: 3\n  arrivalMax: 0:0\nlog:\n  level: error\n"), 0o644))
	logFile := filepath.Join(dir, "run.out")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-l", logFile, "-c", configURL, "-s", "5"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Simulated 3 processes")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "OSS: Generating process with PID 2")
	assert.Contains(t, string(data), "Statistics for 3 of 3 processes")
}

func TestRun_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	err := run(ctx, []string{"-l", filepath.Join(t.TempDir(), "oss.out")}, &stdout, &stderr)
	assert.Error(t, err)
}
