package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/schedsim/sim"
)

// recommendations close every comparison report.
var recommendations = []string{
	"Interactive processes: Use MLFQ or RR",
	"Batch jobs: Use SJF or STCF",
	"Mixed workload: Use MLFQ with appropriate tuning",
}

// newMarkdownTable returns a tablewriter configured for GitHub-flavored Markdown.
func newMarkdownTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// WriteMarkdownReport writes the comparison report of results, which must all
// have been produced from workload. The best algorithm is the one with the
// lowest average turnaround time; the first result wins ties.
func WriteMarkdownReport(w io.Writer, workload []sim.Process, results []*sim.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("report needs at least one result")
	}
	_, _ = fmt.Fprint(w, "# Scheduler Performance Report\n\n")

	_, _ = fmt.Fprint(w, "## Process Set\n\n")
	procTable := newMarkdownTable(w, []string{"PID", "Arrival", "Burst", "Priority"})
	for _, p := range workload {
		procTable.Append([]string{
			strconv.Itoa(p.PID),
			strconv.FormatInt(p.ArrivalTime, 10),
			strconv.FormatInt(p.BurstTime, 10),
			strconv.Itoa(p.Priority),
		})
	}
	procTable.Render()
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprint(w, "## Algorithm Comparison\n\n")
	cmpTable := newMarkdownTable(w, []string{"Algorithm", "Avg TAT", "Avg WT", "Avg RT", "Throughput", "CPU Util %", "Fairness"})
	for _, r := range results {
		m := r.Metrics
		cmpTable.Append([]string{
			algorithmLabel(r),
			fmt.Sprintf("%.2f", m.AvgTurnaround),
			fmt.Sprintf("%.2f", m.AvgWaiting),
			fmt.Sprintf("%.2f", m.AvgResponse),
			fmt.Sprintf("%.2f", m.Throughput),
			fmt.Sprintf("%.2f", m.CPUUtilization),
			fmt.Sprintf("%.4f", m.FairnessIndex),
		})
	}
	cmpTable.Render()
	_, _ = fmt.Fprintln(w)

	best := sim.Best(results)
	_, _ = fmt.Fprint(w, "## Best Algorithm for This Workload\n")
	_, _ = fmt.Fprintf(w, "**%s** - Lowest average turnaround time and waiting time\n\n", algorithmLabel(best))

	_, _ = fmt.Fprint(w, "## Recommendations\n")
	for _, rec := range recommendations {
		_, _ = fmt.Fprintf(w, "- %s\n", rec)
	}
	return nil
}

// algorithmLabel is the display name, qualified with parameters when they
// distinguish otherwise identical rows (e.g. "RR (q=3)").
func algorithmLabel(r *sim.Result) string {
	switch r.Spec.Name {
	case "rr":
		return fmt.Sprintf("%s (q=%d)", r.Algorithm, r.Spec.Quantum)
	case "mlfq":
		return fmt.Sprintf("%s (%s)", r.Algorithm, r.Spec.String())
	}
	return r.Algorithm
}

// SaveMarkdownReport writes the comparison report to path, replacing any existing file.
func SaveMarkdownReport(path string, workload []sim.Process, results []*sim.Result) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing report %s: %w", path, closeErr)
		}
	}()
	if err := WriteMarkdownReport(file, workload, results); err != nil {
		return err
	}
	logrus.Infof("Report generated: %s", path)
	return nil
}
