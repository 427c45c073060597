// Package progress keeps the live counters of a scheduling run (units
// created, completed, dispatched, requeued, interrupted and idle ticks) so
// that observers can follow a run without touching scheduler state.
package progress
