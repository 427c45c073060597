package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/gbroques/process-scheduling/model/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	buf := &bytes.Buffer{}
	log := Build(buf, slog.LevelInfo)
	log.Debug("hidden")
	log.Info("admitted", PIDAttr(3), SlotAttr(1), ClockAttr("at", clock.Clock{Seconds: 1}), ErrAttr(errors.New("boom")))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"pid":3`)
	assert.Contains(t, out, `"slot":1`)
	assert.Contains(t, out, `"at":"1:000000000"`)
	assert.Contains(t, out, `"error":"boom"`)
}

func TestParseLevel(t *testing.T) {
	var testCases = []struct {
		text   string
		expect slog.Level
	}{
		{text: "debug", expect: slog.LevelDebug},
		{text: "", expect: slog.LevelInfo},
		{text: "WARN", expect: slog.LevelWarn},
		{text: "error", expect: slog.LevelError},
	}
	for _, testCase := range testCases {
		t.Run(testCase.text, func(t *testing.T) {
			level, err := ParseLevel(testCase.text)
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, level)
		})
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
