package scheduler

import "errors"

var (
	// ErrInterrupted is returned when the run is cancelled before completion.
	ErrInterrupted = errors.New("scheduler: interrupted")

	// ErrInconsistentState is returned when table, queues and dispatch slot disagree.
	ErrInconsistentState = errors.New("scheduler: inconsistent state")

	// ErrWorkerReport is returned when a worker reports a failed turn.
	ErrWorkerReport = errors.New("scheduler: worker report failed")

	// ErrLaunch is returned when a worker unit cannot be started.
	ErrLaunch = errors.New("scheduler: launch failed")
)
