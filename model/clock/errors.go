package clock

import "errors"

var (
	// ErrNegative is returned when a negative count is converted to a clock.
	ErrNegative = errors.New("clock: negative value")

	// ErrOverflow is returned when a conversion exceeds the target width.
	ErrOverflow = errors.New("clock: overflow")

	// ErrSyntax is returned when clock text cannot be parsed.
	ErrSyntax = errors.New("clock: invalid syntax")
)
