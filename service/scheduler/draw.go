package scheduler

import (
	simclock "github.com/gbroques/process-scheduling/model/clock"
	"github.com/gbroques/process-scheduling/model/dispatch"
)

// drawOutcome picks a turn outcome uniformly, redrawing non-normal picks so
// that most turns run undisturbed.
func (s *Service) drawOutcome() dispatch.Outcome {
	outcome := dispatch.Outcomes[s.rng.Intn(len(dispatch.Outcomes))]
	for i := 0; i < s.config.OutcomeRedraws && outcome != dispatch.Normal; i++ {
		outcome = dispatch.Outcomes[s.rng.Intn(len(dispatch.Outcomes))]
	}
	return outcome
}

// drawArrival picks the gap before the next admission in [0, ArrivalMax],
// redrawing values above half the range.
func (s *Service) drawArrival() simclock.Clock {
	if s.arrivalMax <= 0 {
		return simclock.Zero
	}
	gap := s.rng.Int63n(s.arrivalMax + 1)
	for i := 0; i < s.config.ArrivalRedraws && gap > s.arrivalMax/2; i++ {
		gap = s.rng.Int63n(s.arrivalMax + 1)
	}
	return simclock.New(0, uint64(gap))
}

func (s *Service) drawDispatchOverhead() uint64 {
	if s.overheadMax <= 0 {
		return 0
	}
	return uint64(s.rng.Int63n(s.overheadMax + 1))
}

// drawIdleTick always advances the clock by at least one nanosecond.
func (s *Service) drawIdleTick() uint64 {
	if s.idleMax <= 1 {
		return 1
	}
	return 1 + uint64(s.rng.Int63n(s.idleMax))
}
