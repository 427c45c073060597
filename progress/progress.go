package progress

import (
	"context"
	"sync"
	"time"

	"github.com/gbroques/process-scheduling/internal/clock"
)

// Delta represents an incremental counter change emitted by the scheduler.
type Delta struct {
	Created     int
	Completed   int
	Dispatched  int
	Requeued    int
	Interrupted int
	IdleTicks   int
}

// Progress keeps aggregated counters for one run. It is safe for concurrent use.
type Progress struct {
	RunID     string
	StartedAt time.Time

	Created     int
	Completed   int
	Dispatched  int
	Requeued    int
	Interrupted int
	IdleTicks   int

	sync.Mutex
	onChange func(Progress)
}

// Update applies the supplied delta. The onChange callback, if any, receives a
// copy of the updated counters outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}

	p.Lock()
	p.Created += d.Created
	p.Completed += d.Completed
	p.Dispatched += d.Dispatched
	p.Requeued += d.Requeued
	p.Interrupted += d.Interrupted
	p.IdleTicks += d.IdleTicks

	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

// OnChange registers a callback invoked after every Update. Passing nil
// disables it.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

// InFlight returns the number of created units not yet completed.
func (p *Progress) InFlight() int {
	s := p.Snapshot()
	return s.Created - s.Completed
}

func (p *Progress) copy() Progress {
	return Progress{
		RunID:       p.RunID,
		StartedAt:   p.StartedAt,
		Created:     p.Created,
		Completed:   p.Completed,
		Dispatched:  p.Dispatched,
		Requeued:    p.Requeued,
		Interrupted: p.Interrupted,
		IdleTicks:   p.IdleTicks,
	}
}

// ----------------------------------------------------------------------------
// Context helpers
// ----------------------------------------------------------------------------

type trackerKeyT struct{}

var trackerKey trackerKeyT

// New creates a tracker for runID.
func New(runID string, onChange func(Progress)) *Progress {
	return &Progress{RunID: runID, StartedAt: clock.Now(), onChange: onChange}
}

// WithNewTracker creates a new tracker, embeds it in a derived context and
// returns both.
func WithNewTracker(ctx context.Context, runID string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := New(runID, onChange)
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx looks up the tracker in ctx (if any) and applies the delta.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
