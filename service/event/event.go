// Package event streams scheduler lifecycle events to a handler through a
// buffered message queue.
package event

import (
	"time"

	"github.com/gbroques/process-scheduling/internal/clock"
	simclock "github.com/gbroques/process-scheduling/model/clock"
)

// Type names a lifecycle transition.
type Type string

const (
	Admitted   Type = "admitted"
	Dispatched Type = "dispatched"
	Requeued   Type = "requeued"
	Terminated Type = "terminated"
)

type Context struct {
	RunID string `json:"runID"`
	PID   int    `json:"pid"`
	Slot  int    `json:"slot"`
	Level int    `json:"level"`
	Type  Type   `json:"type"`
}

type Event[T any] struct {
	Context *Context `json:"context"`
	// Clock is the simulated time of the transition.
	Clock     simclock.Clock `json:"clock"`
	CreatedAt time.Time      `json:"createdAt"`
	Data      T              `json:"data"`
}

func NewEvent[T any](context *Context, at simclock.Clock, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		Clock:     at,
		CreatedAt: clock.Now(),
		Data:      data,
	}
}
