package report

import (
	"strings"
	"testing"

	"github.com/gbroques/process-scheduling/model/clock"
	"github.com/gbroques/process-scheduling/model/pcb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []*pcb.Record {
	return []*pcb.Record{
		{PID: 2, Slot: 0, Dispatches: 3, PCB: pcb.PCB{TotalCPU: clock.New(1, 0), TotalSys: clock.New(4, 0)}},
		{PID: 0, Slot: 1, Dispatches: 1, PCB: pcb.PCB{TotalCPU: clock.New(2, 0), TotalSys: clock.New(3, 0)}},
		{PID: 1, Slot: 0, Dispatches: 2, PCB: pcb.PCB{TotalCPU: clock.New(1, 0), TotalSys: clock.New(3, 0)}},
		{PID: 3, Slot: 2, Dispatches: 5, PCB: pcb.PCB{TotalCPU: clock.Zero, TotalSys: clock.Zero}},
	}
}

func TestCompute(t *testing.T) {
	summary := Compute(sampleRecords(), 4)

	assert.Equal(t, 4, summary.Units)
	assert.Equal(t, clock.New(4, 0), summary.TotalCPU)
	assert.Equal(t, clock.New(10, 0), summary.TotalSys)
	assert.Equal(t, clock.New(1, 0), summary.AvgCPU)
	assert.Equal(t, clock.New(2, 500_000_000), summary.AvgTurnaround)
	assert.Equal(t, clock.New(1, 500_000_000), summary.AvgWait)

	var pids []int
	for _, row := range summary.Rows {
		pids = append(pids, row.PID)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, pids)
	assert.Equal(t, clock.New(3, 0), summary.Rows[2].Wait)
	assert.Equal(t, 3e9, summary.P50Turnaround)
	assert.Greater(t, summary.StdDevTurnaround, 0.0)
}

func TestCompute_Empty(t *testing.T) {
	summary := Compute(nil, 0)
	assert.Equal(t, clock.Zero, summary.AvgCPU)
	assert.Equal(t, clock.Zero, summary.AvgWait)
	assert.Contains(t, summary.String(), "Average wait time: 0:000000000")
}

func TestRender_Idempotent(t *testing.T) {
	records := sampleRecords()
	first := Compute(records, 4).String()
	second := Compute(records, 4).String()
	assert.Equal(t, first, second)
	assert.Equal(t, clock.New(4, 0), records[0].PCB.TotalSys)

	assert.True(t, strings.HasPrefix(first, "Statistics for 4 of 4 processes\n"))
	assert.Contains(t, first, "Average turnaround time: 2:500000000")
	assert.Contains(t, first, "Average CPU time: 1:000000000")
	assert.Contains(t, first, "Average wait time: 1:500000000")
	assert.Contains(t, first, "Turnaround")
}

func TestDiff(t *testing.T) {
	baseline := Compute(sampleRecords(), 4).String()

	delta, err := Diff(baseline, baseline)
	require.NoError(t, err)
	assert.True(t, delta.IsEmpty())

	changed := sampleRecords()
	changed[1].PCB.TotalCPU = clock.New(3, 0)
	delta, err = Diff(baseline, Compute(changed, 4).String())
	require.NoError(t, err)
	assert.False(t, delta.IsEmpty())
	assert.Contains(t, delta.Patch, "--- baseline")
	assert.Greater(t, delta.Added+delta.Changed+delta.Deleted, 0)
}

func TestSummary_Export(t *testing.T) {
	summary := Compute(sampleRecords(), 4)
	aMap, err := summary.AsMap()
	require.NoError(t, err)
	assert.Equal(t, "1:500000000", aMap["AvgWait"])
	assert.EqualValues(t, 4, aMap["Units"])

	data, err := summary.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "AvgWait: 1:500000000")
}
