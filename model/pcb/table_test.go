package pcb

import (
	"testing"

	"github.com/gbroques/process-scheduling/model/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	_, err := NewTable(0)
	assert.ErrorIs(t, err, ErrCapacity)

	table, err := NewTable(3)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Cap())
	assert.Equal(t, 0, table.Len())
	assert.True(t, table.HasFree())
}

func TestTable_AdmitLowestFirst(t *testing.T) {
	table, err := NewTable(3)
	require.NoError(t, err)

	for pid := 0; pid < 3; pid++ {
		slot, ok := table.Admit(pid)
		assert.True(t, ok)
		assert.Equal(t, pid, slot)
	}
	_, ok := table.Admit(9)
	assert.False(t, ok)
	assert.False(t, table.HasFree())

	entry, err := table.Get(1)
	require.NoError(t, err)
	entry.ReadyToTerminate = true
	require.NoError(t, table.Put(1, entry))
	require.NoError(t, table.Retire(1))
	assert.False(t, table.Occupied(1))
	assert.Equal(t, -1, table.PID(1))

	slot, ok := table.Admit(3)
	assert.True(t, ok)
	assert.Equal(t, 1, slot)
	assert.Equal(t, 3, table.PID(1))
	assert.Equal(t, []int{0, 1, 2}, table.Slots())
}

func TestTable_AdmitZeroesEntry(t *testing.T) {
	table, err := NewTable(1)
	require.NoError(t, err)
	slot, _ := table.Admit(0)
	require.NoError(t, table.Put(slot, PCB{TotalCPU: clock.Clock{Seconds: 4}, Priority: 2, ReadyToTerminate: true}))
	require.NoError(t, table.Retire(slot))

	slot, _ = table.Admit(1)
	entry, err := table.Get(slot)
	require.NoError(t, err)
	assert.Equal(t, PCB{}, entry)
}

func TestTable_Errors(t *testing.T) {
	table, err := NewTable(2)
	require.NoError(t, err)

	var testCases = []struct {
		description string
		run         func() error
		expect      error
	}{
		{description: "retire free", run: func() error { return table.Retire(0) }, expect: ErrSlotFree},
		{description: "get out of range", run: func() error { _, err := table.Get(5); return err }, expect: ErrSlotRange},
		{description: "put negative", run: func() error { return table.Put(-1, PCB{}) }, expect: ErrSlotRange},
		{description: "retire active", run: func() error {
			slot, _ := table.Admit(0)
			return table.Retire(slot)
		}, expect: ErrNotTerminal},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.ErrorIs(t, testCase.run(), testCase.expect)
		})
	}
}

func TestTable_Reset(t *testing.T) {
	table, err := NewTable(2)
	require.NoError(t, err)
	table.Admit(0)
	table.Admit(1)
	table.Reset()
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Slots())
}

func TestTable_Update(t *testing.T) {
	table, err := NewTable(2)
	require.NoError(t, err)
	slot, _ := table.Admit(4)
	require.NoError(t, table.Update(slot, func(entry *PCB) { entry.Priority = 2 }))
	entry, err := table.Get(slot)
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Priority)
	assert.ErrorIs(t, table.Update(1, func(entry *PCB) {}), ErrSlotFree)
}
