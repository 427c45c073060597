package idgen

import "github.com/google/uuid"

// NewFunc returns a new globally unique identifier. Override in tests.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as string.
func New() string { return NewFunc() }

// Short returns the first block of a new identifier, for human-facing output.
func Short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
