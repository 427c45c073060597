package scheduler

import (
	"fmt"

	"github.com/gbroques/process-scheduling/model/clock"
)

// Config represents scheduler configuration
type Config struct {
	// MaxConcurrent is the process table capacity.
	MaxConcurrent int
	// TotalToCreate caps the number of units ever admitted.
	TotalToCreate int
	// Target is the number of completions that ends the run.
	Target int
	// Quantum is the time slice granted per dispatch.
	Quantum clock.Clock
	// ArrivalMax bounds the randomized time between admissions.
	ArrivalMax clock.Clock
	// ArrivalRedraws is how many times a long arrival gap is redrawn.
	ArrivalRedraws int
	// AdmissionOverhead is charged to the clock for every admission.
	AdmissionOverhead clock.Clock
	// DispatchOverheadMax bounds the random overhead charged per dispatch.
	DispatchOverheadMax clock.Clock
	// IdleTickMax bounds the clock advance of an idle iteration.
	IdleTickMax clock.Clock
	// OutcomeRedraws is how many times a non-normal outcome is redrawn.
	OutcomeRedraws int
	// Levels is the number of ready queue levels.
	Levels int
	// Seed drives every random draw; zero derives one from the wall clock.
	Seed int64
	// StartAt is the initial simulated clock.
	StartAt clock.Clock
}

// DefaultConfig returns the default scheduler configuration
func DefaultConfig() Config {
	return Config{
		MaxConcurrent:       18,
		TotalToCreate:       100,
		Target:              100,
		Quantum:             clock.New(0, 100_000_000),
		ArrivalMax:          clock.New(2, 0),
		ArrivalRedraws:      2,
		AdmissionOverhead:   clock.New(0, 1_000_000),
		DispatchOverheadMax: clock.New(0, 1_000),
		IdleTickMax:         clock.New(0, 1_000_000),
		OutcomeRedraws:      2,
		Levels:              3,
	}
}

// Validate returns an error describing the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.MaxConcurrent <= 0:
		return fmt.Errorf("scheduler.maxConcurrent must be > 0")
	case c.TotalToCreate <= 0:
		return fmt.Errorf("scheduler.totalToCreate must be > 0")
	case c.Target <= 0:
		return fmt.Errorf("scheduler.target must be > 0")
	case c.Target > c.TotalToCreate:
		return fmt.Errorf("scheduler.target (%d) must not exceed totalToCreate (%d)", c.Target, c.TotalToCreate)
	case c.Quantum.IsZero():
		return fmt.Errorf("scheduler.quantum must be > 0")
	case c.Levels <= 0:
		return fmt.Errorf("scheduler.levels must be > 0")
	case c.ArrivalRedraws < 0 || c.OutcomeRedraws < 0:
		return fmt.Errorf("scheduler redraw counts must be >= 0")
	}
	return nil
}
