// Package clock provides the simulated clock shared by the scheduler and its
// worker units.
//
// A Clock is a fixed-point (seconds, nanoseconds) value. Every constructor and
// arithmetic operation returns a normalized value with Nanoseconds below
// NanosPerSecond. Clocks never go negative: subtraction clamps at Zero, so
// ordering must be tested with IsPast or Compare rather than by subtracting.
package clock

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/constraints"
)

// NanosPerSecond is the nanosecond field modulus.
const NanosPerSecond = 1_000_000_000

// Clock represents a simulated time value.
type Clock struct {
	Seconds     uint32
	Nanoseconds uint32
}

var (
	// Zero is the start of simulated time.
	Zero = Clock{}
	// Max is the largest representable clock; additions saturate here.
	Max = Clock{Seconds: math.MaxUint32, Nanoseconds: NanosPerSecond - 1}
)

const maxTotal = uint64(math.MaxUint32)*NanosPerSecond + NanosPerSecond - 1

// New returns a normalized clock, folding whole seconds out of nanoseconds.
func New(seconds, nanoseconds uint64) Clock {
	seconds += nanoseconds / NanosPerSecond
	nanoseconds %= NanosPerSecond
	if seconds > math.MaxUint32 {
		return Max
	}
	return Clock{Seconds: uint32(seconds), Nanoseconds: uint32(nanoseconds)}
}

func fromTotal(total uint64) Clock {
	return New(total/NanosPerSecond, total%NanosPerSecond)
}

func (c Clock) total() uint64 {
	return uint64(c.Seconds)*NanosPerSecond + uint64(c.Nanoseconds)
}

// Add returns c+d.
func (c Clock) Add(d Clock) Clock {
	a, b := c.total(), d.total()
	if a > maxTotal-b {
		return Max
	}
	return fromTotal(a + b)
}

// AddNanos advances c by n nanoseconds.
func (c Clock) AddNanos(n uint64) Clock {
	return c.Add(New(0, n))
}

// Sub returns c-d, or Zero when d is past c.
func (c Clock) Sub(d Clock) Clock {
	a, b := c.total(), d.total()
	if b >= a {
		return Zero
	}
	return fromTotal(a - b)
}

// Div divides c by n. Whole seconds truncate toward zero and the remainder is
// folded into the nanosecond field. Dividing by zero yields Zero.
func (c Clock) Div(n uint64) Clock {
	if n == 0 {
		return Zero
	}
	seconds := uint64(c.Seconds) / n
	rem := uint64(c.Seconds) % n
	nanos := (rem*NanosPerSecond + uint64(c.Nanoseconds)) / n
	return New(seconds, nanos)
}

// IsPast reports whether c is at or after d.
func (c Clock) IsPast(d Clock) bool {
	return c.Compare(d) >= 0
}

// Compare returns -1, 0 or 1 when c is before, equal to or after d.
func (c Clock) Compare(d Clock) int {
	switch {
	case c.Seconds < d.Seconds:
		return -1
	case c.Seconds > d.Seconds:
		return 1
	case c.Nanoseconds < d.Nanoseconds:
		return -1
	case c.Nanoseconds > d.Nanoseconds:
		return 1
	}
	return 0
}

// IsZero reports whether c is the zero clock.
func (c Clock) IsZero() bool {
	return c.Seconds == 0 && c.Nanoseconds == 0
}

// String formats c as seconds:nanoseconds.
func (c Clock) String() string {
	return fmt.Sprintf("%d:%09d", c.Seconds, c.Nanoseconds)
}

// ToNanos flattens c into a nanosecond count of type T.
func ToNanos[T constraints.Integer](c Clock) (T, error) {
	total := c.total()
	v := T(total)
	if v < 0 || uint64(v) != total {
		return 0, fmt.Errorf("%w: %s does not fit %T", ErrOverflow, c, v)
	}
	return v, nil
}

// FromNanos builds a clock from a flat nanosecond count.
func FromNanos[T constraints.Integer](n T) (Clock, error) {
	if n < 0 {
		return Zero, fmt.Errorf("%w: %d", ErrNegative, n)
	}
	total := uint64(n)
	if total > maxTotal {
		return Zero, fmt.Errorf("%w: %d nanoseconds", ErrOverflow, total)
	}
	return fromTotal(total), nil
}

// FromDuration converts a wall-clock duration into a simulated span.
func FromDuration(d time.Duration) (Clock, error) {
	return FromNanos(int64(d))
}

// Duration converts c into a time.Duration.
func (c Clock) Duration() (time.Duration, error) {
	n, err := ToNanos[int64](c)
	if err != nil {
		return 0, err
	}
	return time.Duration(n), nil
}
