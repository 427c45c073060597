// Package clock wraps the host wall clock. The simulation never reads it for
// simulated time; it only stamps runs and derives seeds.
package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Since returns the wall time elapsed since t.
func Since(t time.Time) time.Duration { return Now().Sub(t) }

// Seed returns seed unchanged, or a wall-clock derived seed when it is zero.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return Now().UnixNano()
}
