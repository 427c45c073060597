// Package policy decides which ready queue a unit returns to after a turn
// that did not terminate it. A nil *Policy behaves like ModeFixed, which
// always requeues at the highest priority level.

package policy

import (
	"context"
	"fmt"
	"strings"
)

// Feedback modes recognised by the scheduler.
const (
	ModeFixed  = "fixed"  // always return to level 0 (default)
	ModeDemote = "demote" // drop one level after consuming a full quantum
)

// Turn summarises one finished dispatch for the policy.
type Turn struct {
	Level       int   // level the unit was dispatched from
	Quantum     int64 // granted quantum
	Burst       int64 // quantum actually used
	Interrupted bool  // unit left a remainder to resume
}

// Policy represents the feedback settings for the current run.
type Policy struct {
	Mode   string
	Levels int
}

// Config represents the declarative, serialisable part of a Policy.
type Config struct {
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{Mode: p.Mode}
}

// FromConfig converts a stored Config into a Policy spanning levels.
func FromConfig(c *Config, levels int) (*Policy, error) {
	if c == nil {
		return nil, nil
	}
	mode := strings.ToLower(strings.TrimSpace(c.Mode))
	switch mode {
	case "":
		mode = ModeFixed
	case ModeFixed, ModeDemote:
	default:
		return nil, fmt.Errorf("policy: unsupported mode %q", c.Mode)
	}
	return &Policy{Mode: mode, Levels: levels}, nil
}

// Next returns the level a unit is requeued at after turn.
func (p *Policy) Next(turn Turn) int {
	if p == nil || p.Mode != ModeDemote {
		return 0
	}
	level := turn.Level
	if !turn.Interrupted && turn.Burst >= turn.Quantum {
		level++
	}
	if level >= p.Levels {
		level = p.Levels - 1
	}
	if level < 0 {
		level = 0
	}
	return level
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the *Policy or nil.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
