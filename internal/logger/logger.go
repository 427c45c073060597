// Package logger builds the structured slog loggers used across the module.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gbroques/process-scheduling/model/clock"
)

// Build returns a JSON logger writing to w at level.
func Build(w io.Writer, level slog.Level) *slog.Logger {
	ops := &slog.HandlerOptions{
		AddSource: level <= slog.LevelDebug,
		Level:     level,
	}
	return slog.New(slog.NewJSONHandler(w, ops))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ParseLevel maps debug, info, warn and error to a slog level.
func ParseLevel(text string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unsupported log level %q", text)
}

func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}

func PIDAttr(pid int) slog.Attr {
	return slog.Int("pid", pid)
}

func SlotAttr(slot int) slog.Attr {
	return slog.Int("slot", slot)
}

func ClockAttr(key string, c clock.Clock) slog.Attr {
	return slog.String(key, c.String())
}
