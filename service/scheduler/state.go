package scheduler

// State is the supervisor loop state chosen for one iteration.
type State int

const (
	// Admitting creates a new unit.
	Admitting State = iota
	// Dispatching hands the head of the ready queues a quantum.
	Dispatching
	// IdleAdvance moves the clock forward with nothing to run.
	IdleAdvance
	// Done ends the run.
	Done
)

func (s State) String() string {
	switch s {
	case Admitting:
		return "admitting"
	case Dispatching:
		return "dispatching"
	case IdleAdvance:
		return "idle"
	case Done:
		return "done"
	}
	return "unknown"
}
