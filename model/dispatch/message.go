package dispatch

import (
	"github.com/gbroques/process-scheduling/model/clock"
	"github.com/gbroques/process-scheduling/model/pcb"
)

// Spawn describes a worker unit to launch.
type Spawn struct {
	Slot       int
	PID        int
	AdmittedAt clock.Clock
	Seed       int64
}

// Dispatch hands one quantum to the unit owning Slot. The PCB travels with the
// message so that only the dispatched worker mutates it during its turn.
type Dispatch struct {
	Slot    int
	PID     int
	Quantum int64
	Outcome Outcome
	Now     clock.Clock
	PCB     pcb.PCB
}

// Report is what a worker returns at the end of its turn.
type Report struct {
	Slot int
	PID  int
	PCB  pcb.PCB
	// Burst is the part of the quantum actually used.
	Burst int64
	// Outcome is the effective outcome; a resumed turn always runs Normal.
	Outcome   Outcome
	Resumed   bool
	WaitDelay int64
	Err       error
}

// Terminal reports whether the unit exits after this turn.
func (r *Report) Terminal() bool {
	return r.PCB.ReadyToTerminate
}
