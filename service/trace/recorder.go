// Package trace records the human-readable, line-oriented log of a run:
// admissions, dispatches, turn results, requeues and terminations.
package trace

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gbroques/process-scheduling/model/clock"
	"github.com/gbroques/process-scheduling/model/dispatch"
)

const prefix = "OSS: "

// Recorder accumulates trace lines. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	lines    []string
	maxLines int
	dropped  int
}

// New creates a recorder keeping at most maxLines lines; zero keeps all.
func New(maxLines int) *Recorder {
	return &Recorder{maxLines: maxLines}
}

// Admitted records the creation of a unit.
func (r *Recorder) Admitted(pid, level int, at clock.Clock) {
	r.add("Generating process with PID %d and putting it in queue %d at time %s", pid, level, at)
}

// Dispatched records the hand-off of a quantum.
func (r *Recorder) Dispatched(pid, level int, at clock.Clock, quantum int64, outcome dispatch.Outcome) {
	r.add("Dispatching process with PID %d from queue %d at time %s with quantum %d (%s)", pid, level, at, quantum, outcome)
}

// Received records the result of a turn.
func (r *Recorder) Received(report *dispatch.Report) {
	switch {
	case report.Resumed:
		r.add("Receiving that process with PID %d resumed and ran for %d nanoseconds", report.PID, report.Burst)
	case report.PCB.WasInterrupted():
		r.add("Receiving that process with PID %d ran for %d nanoseconds, interrupted (%s) with %d nanoseconds left",
			report.PID, report.Burst, report.Outcome, report.PCB.Remaining.OrElse(0))
	default:
		r.add("Receiving that process with PID %d ran for %d nanoseconds", report.PID, report.Burst)
	}
}

// Requeued records a unit returning to a ready queue.
func (r *Recorder) Requeued(pid, level int) {
	r.add("Putting process with PID %d into queue %d", pid, level)
}

// Terminated records the retirement of a unit.
func (r *Recorder) Terminated(pid, slot int, at clock.Clock) {
	r.add("Process with PID %d terminated at time %s, freeing slot %d", pid, at, slot)
}

// Note records a free-form line.
func (r *Recorder) Note(format string, args ...interface{}) {
	r.add(format, args...)
}

func (r *Recorder) add(format string, args ...interface{}) {
	line := prefix + fmt.Sprintf(format, args...)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.maxLines > 0 && len(r.lines) >= r.maxLines {
		r.dropped++
		return
	}
	r.lines = append(r.lines, line)
}

// Lines returns a copy of the recorded lines.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// Dropped returns the number of lines discarded past the limit.
func (r *Recorder) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// WriteTo writes every line followed by a newline.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	lines := r.Lines()
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if dropped := r.Dropped(); dropped > 0 {
		fmt.Fprintf(&sb, "%s%d further lines omitted\n", prefix, dropped)
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}
