// Package report aggregates the archived accounting records of a run into
// the end-of-run statistics and renders them. It never mutates its input, so
// computing and rendering the same records twice yields identical output.
package report

import (
	"sort"

	"github.com/gbroques/process-scheduling/model/clock"
	"github.com/gbroques/process-scheduling/model/pcb"
	"gonum.org/v1/gonum/stat"
)

// Row is the per-unit line of the report.
type Row struct {
	PID          int
	Slot         int
	Dispatches   int
	AdmittedAt   clock.Clock
	TerminatedAt clock.Clock
	CPU          clock.Clock
	Turnaround   clock.Clock
	Wait         clock.Clock
}

// Summary holds the aggregated statistics of a run.
type Summary struct {
	// Units is the number of archived records.
	Units int
	// Divisor is the total-to-create count averages are taken over.
	Divisor       int
	TotalCPU      clock.Clock
	TotalSys      clock.Clock
	AvgCPU        clock.Clock
	AvgTurnaround clock.Clock
	AvgWait       clock.Clock
	// Spread of turnaround across units, in nanoseconds.
	StdDevTurnaround float64
	P50Turnaround    float64
	P95Turnaround    float64
	Rows             []Row
}

// Compute sums CPU and system time over records and averages them over
// total. Average wait is average turnaround minus average CPU.
func Compute(records []*pcb.Record, total int) *Summary {
	summary := &Summary{Units: len(records), Divisor: total}
	turnarounds := make([]float64, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		entry := record.PCB
		summary.TotalCPU = summary.TotalCPU.Add(entry.TotalCPU)
		summary.TotalSys = summary.TotalSys.Add(entry.TotalSys)
		summary.Rows = append(summary.Rows, Row{
			PID:          record.PID,
			Slot:         record.Slot,
			Dispatches:   record.Dispatches,
			AdmittedAt:   record.AdmittedAt,
			TerminatedAt: record.TerminatedAt,
			CPU:          entry.TotalCPU,
			Turnaround:   entry.Turnaround(),
			Wait:         record.Wait(),
		})
		nanos, err := clock.ToNanos[int64](entry.Turnaround())
		if err == nil {
			turnarounds = append(turnarounds, float64(nanos))
		}
	}
	sort.Slice(summary.Rows, func(i, j int) bool { return summary.Rows[i].PID < summary.Rows[j].PID })

	if total > 0 {
		summary.AvgCPU = summary.TotalCPU.Div(uint64(total))
		summary.AvgTurnaround = summary.TotalSys.Div(uint64(total))
	}
	summary.AvgWait = summary.AvgTurnaround.Sub(summary.AvgCPU)

	if len(turnarounds) > 0 {
		sort.Float64s(turnarounds)
		_, summary.StdDevTurnaround = stat.MeanStdDev(turnarounds, nil)
		summary.P50Turnaround = stat.Quantile(0.5, stat.Empirical, turnarounds, nil)
		summary.P95Turnaround = stat.Quantile(0.95, stat.Empirical, turnarounds, nil)
	}
	return summary
}
