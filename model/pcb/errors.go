package pcb

import "errors"

var (
	// ErrCapacity is returned for a non-positive table capacity.
	ErrCapacity = errors.New("pcb: invalid capacity")

	// ErrSlotRange is returned for a slot id outside the table.
	ErrSlotRange = errors.New("pcb: slot out of range")

	// ErrSlotFree is returned when a free slot is accessed.
	ErrSlotFree = errors.New("pcb: slot is free")

	// ErrNotTerminal is returned when retiring a unit that has not terminated.
	ErrNotTerminal = errors.New("pcb: unit not ready to terminate")
)
