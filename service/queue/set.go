// Package queue implements the multi-level feedback ready queues. Level 0 is
// the highest priority; each level is FIFO and a slot is queued at most once
// across all levels. The set is owned by the scheduler and is not safe for
// concurrent use.
package queue

import (
	"errors"
	"fmt"
)

var (
	// ErrLevel is returned for a level outside the set.
	ErrLevel = errors.New("queue: invalid level")

	// ErrQueued is returned when a slot is already queued.
	ErrQueued = errors.New("queue: slot already queued")
)

// DefaultLevels is the number of priority levels.
const DefaultLevels = 3

// Set is a strict-priority set of FIFO ready queues.
type Set struct {
	levels  [][]int
	members map[int]int
}

// New creates a set with the given number of levels.
func New(levels int) (*Set, error) {
	if levels <= 0 {
		return nil, fmt.Errorf("%w: %d levels", ErrLevel, levels)
	}
	return &Set{
		levels:  make([][]int, levels),
		members: make(map[int]int),
	}, nil
}

// Enqueue appends slot to the tail of level.
func (s *Set) Enqueue(slot, level int) error {
	if err := s.check(level); err != nil {
		return err
	}
	if at, ok := s.members[slot]; ok {
		return fmt.Errorf("%w: slot %d at level %d", ErrQueued, slot, at)
	}
	s.levels[level] = append(s.levels[level], slot)
	s.members[slot] = level
	return nil
}

// Peek returns the head of level without removing it.
func (s *Set) Peek(level int) (int, bool) {
	if s.check(level) != nil || len(s.levels[level]) == 0 {
		return 0, false
	}
	return s.levels[level][0], true
}

// Dequeue removes and returns the head of level.
func (s *Set) Dequeue(level int) (int, bool) {
	slot, ok := s.Peek(level)
	if !ok {
		return 0, false
	}
	s.levels[level] = s.levels[level][1:]
	delete(s.members, slot)
	return slot, true
}

// DispatchNext dequeues the head of the highest priority non-empty level.
func (s *Set) DispatchNext() (slot int, level int, ok bool) {
	for level = range s.levels {
		if slot, ok = s.Dequeue(level); ok {
			return slot, level, true
		}
	}
	return 0, 0, false
}

// IsEmpty reports whether every level is empty.
func (s *Set) IsEmpty() bool {
	return len(s.members) == 0
}

// Len returns the length of level.
func (s *Set) Len(level int) int {
	if s.check(level) != nil {
		return 0
	}
	return len(s.levels[level])
}

// Total returns the number of queued slots across all levels.
func (s *Set) Total() int {
	return len(s.members)
}

// Levels returns the number of levels.
func (s *Set) Levels() int {
	return len(s.levels)
}

// Contains returns the level slot is queued at.
func (s *Set) Contains(slot int) (int, bool) {
	level, ok := s.members[slot]
	return level, ok
}

// Snapshot returns a copy of every level in dispatch order.
func (s *Set) Snapshot() [][]int {
	result := make([][]int, len(s.levels))
	for i, level := range s.levels {
		result[i] = append([]int{}, level...)
	}
	return result
}

// Reset empties every level.
func (s *Set) Reset() {
	for i := range s.levels {
		s.levels[i] = nil
	}
	s.members = make(map[int]int)
}

func (s *Set) check(level int) error {
	if level < 0 || level >= len(s.levels) {
		return fmt.Errorf("%w: %d of %d", ErrLevel, level, len(s.levels))
	}
	return nil
}
