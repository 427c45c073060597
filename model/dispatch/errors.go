package dispatch

import "errors"

var (
	// ErrBusy is returned when announcing while another unit is dispatched.
	ErrBusy = errors.New("dispatch: slot busy")

	// ErrNotScheduled is returned when a unit releases a dispatch it does not hold.
	ErrNotScheduled = errors.New("dispatch: unit not scheduled")
)
