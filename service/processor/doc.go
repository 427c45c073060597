// Package processor runs the worker units. Each admitted unit is a goroutine
// with its own inbox; it blocks until the scheduler dispatches it, simulates
// one turn against the granted quantum, releases the dispatch slot and
// reports back exactly once per dispatch.
package processor
