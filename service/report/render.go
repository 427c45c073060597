package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Render writes the per-unit table followed by the averages.
func Render(w io.Writer, summary *Summary) error {
	if _, err := fmt.Fprintf(w, "Statistics for %d of %d processes\n", summary.Units, summary.Divisor); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Slot", "Dispatches", "Admitted", "Terminated", "CPU", "Turnaround", "Wait"})
	table.SetAutoFormatHeaders(false)
	rows := make([][]string, 0, len(summary.Rows))
	for _, row := range summary.Rows {
		rows = append(rows, []string{
			strconv.Itoa(row.PID),
			strconv.Itoa(row.Slot),
			strconv.Itoa(row.Dispatches),
			row.AdmittedAt.String(),
			row.TerminatedAt.String(),
			row.CPU.String(),
			row.Turnaround.String(),
			row.Wait.String(),
		})
	}
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "", "Average",
		summary.AvgCPU.String(), summary.AvgTurnaround.String(), summary.AvgWait.String()})
	table.Render()

	lines := []string{
		fmt.Sprintf("Average turnaround time: %s", summary.AvgTurnaround),
		fmt.Sprintf("Average CPU time: %s", summary.AvgCPU),
		fmt.Sprintf("Average wait time: %s", summary.AvgWait),
		fmt.Sprintf("Turnaround spread: stddev %s, p50 %s, p95 %s",
			formatNanos(summary.StdDevTurnaround), formatNanos(summary.P50Turnaround), formatNanos(summary.P95Turnaround)),
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// String renders summary into a string.
func (s *Summary) String() string {
	var sb strings.Builder
	if err := Render(&sb, s); err != nil {
		return err.Error()
	}
	return sb.String()
}

func formatNanos(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.3fms", v/1e6)
}
