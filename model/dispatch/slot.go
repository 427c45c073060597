package dispatch

import (
	"fmt"
	"sync"
)

// Idle is the slot id published when no unit is dispatched.
const Idle = -1

// Slot names the unit currently dispatched. Only one unit can be named at a
// time; the scheduler announces and the named worker releases.
type Slot struct {
	mu      sync.Mutex
	current int
	quantum int64
	outcome Outcome
}

// NewSlot returns an idle dispatch slot.
func NewSlot() *Slot {
	return &Slot{current: Idle}
}

// Announce names slot as the running unit.
func (s *Slot) Announce(slot int, quantum int64, outcome Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != Idle {
		return fmt.Errorf("%w: slot %d still running", ErrBusy, s.current)
	}
	s.current = slot
	s.quantum = quantum
	s.outcome = outcome
	return nil
}

// Release resets the slot to Idle. Only the named unit may release it.
func (s *Slot) Release(slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != slot {
		return fmt.Errorf("%w: slot %d, running %d", ErrNotScheduled, slot, s.current)
	}
	s.current = Idle
	return nil
}

// Current returns the named slot with its quantum and outcome.
func (s *Slot) Current() (int, int64, Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.quantum, s.outcome
}

// IsIdle reports whether no unit is named.
func (s *Slot) IsIdle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current == Idle
}

// Reset forces the slot back to Idle.
func (s *Slot) Reset() {
	s.mu.Lock()
	s.current = Idle
	s.mu.Unlock()
}
