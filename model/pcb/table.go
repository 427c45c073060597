package pcb

import "fmt"

// Table is a fixed-capacity arena of PCB slots with an occupancy vector.
// It is owned by the scheduler and is not safe for concurrent use.
type Table struct {
	entries  []PCB
	pids     []int
	occupied []bool
	count    int
}

// NewTable creates a table with capacity slots.
func NewTable(capacity int) (*Table, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrCapacity, capacity)
	}
	return &Table{
		entries:  make([]PCB, capacity),
		pids:     make([]int, capacity),
		occupied: make([]bool, capacity),
	}, nil
}

// Admit allocates the lowest free slot to pid and zeroes its PCB. It returns
// false when every slot is occupied.
func (t *Table) Admit(pid int) (int, bool) {
	for slot, taken := range t.occupied {
		if taken {
			continue
		}
		t.occupied[slot] = true
		t.pids[slot] = pid
		t.entries[slot] = PCB{}
		t.count++
		return slot, true
	}
	return 0, false
}

// Retire frees a slot whose PCB is ready to terminate.
func (t *Table) Retire(slot int) error {
	if err := t.check(slot); err != nil {
		return err
	}
	if !t.entries[slot].ReadyToTerminate {
		return fmt.Errorf("%w: slot %d (pid %d)", ErrNotTerminal, slot, t.pids[slot])
	}
	t.occupied[slot] = false
	t.count--
	return nil
}

// Get returns a copy of the PCB held in slot.
func (t *Table) Get(slot int) (PCB, error) {
	if err := t.check(slot); err != nil {
		return PCB{}, err
	}
	return t.entries[slot], nil
}

// Put replaces the PCB held in slot.
func (t *Table) Put(slot int, entry PCB) error {
	if err := t.check(slot); err != nil {
		return err
	}
	t.entries[slot] = entry
	return nil
}

// Update applies fn to the PCB held in slot.
func (t *Table) Update(slot int, fn func(entry *PCB)) error {
	if err := t.check(slot); err != nil {
		return err
	}
	fn(&t.entries[slot])
	return nil
}

// PID returns the pid occupying slot, or -1 when the slot is free.
func (t *Table) PID(slot int) int {
	if !t.Occupied(slot) {
		return -1
	}
	return t.pids[slot]
}

// Occupied reports whether slot holds an active unit.
func (t *Table) Occupied(slot int) bool {
	return slot >= 0 && slot < len(t.occupied) && t.occupied[slot]
}

// HasFree reports whether Admit would succeed.
func (t *Table) HasFree() bool {
	return t.count < len(t.occupied)
}

// Len returns the number of occupied slots.
func (t *Table) Len() int {
	return t.count
}

// Cap returns the number of slots.
func (t *Table) Cap() int {
	return len(t.occupied)
}

// Slots returns the occupied slot ids in ascending order.
func (t *Table) Slots() []int {
	result := make([]int, 0, t.count)
	for slot, taken := range t.occupied {
		if taken {
			result = append(result, slot)
		}
	}
	return result
}

// Reset frees every slot without retirement bookkeeping.
func (t *Table) Reset() {
	for slot := range t.occupied {
		t.occupied[slot] = false
		t.entries[slot] = PCB{}
	}
	t.count = 0
}

func (t *Table) check(slot int) error {
	if slot < 0 || slot >= len(t.occupied) {
		return fmt.Errorf("%w: %d", ErrSlotRange, slot)
	}
	if !t.occupied[slot] {
		return fmt.Errorf("%w: %d", ErrSlotFree, slot)
	}
	return nil
}
