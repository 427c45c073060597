// Package dispatch defines the hand-off between the scheduler and its worker
// units: the outcome codes, the dispatch slot naming the running unit, and
// the messages exchanged over the rendezvous queues.
package dispatch

import "fmt"

// Outcome is the execution outcome the scheduler assigns to one dispatch.
type Outcome int

const (
	// Normal runs the chosen usage uninterrupted.
	Normal Outcome = iota
	// EventWait interrupts the unit to wait on a simulated event.
	EventWait
	// Preempted interrupts the unit after part of its usage.
	Preempted
)

// Outcomes lists every outcome in draw order.
var Outcomes = []Outcome{Normal, EventWait, Preempted}

func (o Outcome) String() string {
	switch o {
	case Normal:
		return "normal"
	case EventWait:
		return "event-wait"
	case Preempted:
		return "preempted"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Interrupting reports whether o cuts the turn short.
func (o Outcome) Interrupting() bool {
	return o == EventWait || o == Preempted
}
