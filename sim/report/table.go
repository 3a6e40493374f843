package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/trace"
)

// unset is printed in place of a value that was never recorded.
const unset int64 = -1

func orUnset(v *int64) int64 {
	if v == nil {
		return unset
	}
	return *v
}

// processRow formats the per-process columns shared by console and Markdown tables.
func processRow(p *sim.Process) []string {
	tat, wt := unset, unset
	if p.Completed() {
		tat, wt = p.TurnaroundTime, p.WaitingTime
	}
	return []string{
		strconv.Itoa(p.PID),
		strconv.FormatInt(p.ArrivalTime, 10),
		strconv.FormatInt(p.BurstTime, 10),
		strconv.Itoa(p.Priority),
		strconv.FormatInt(orUnset(p.StartTime), 10),
		strconv.FormatInt(orUnset(p.CompletionTime), 10),
		strconv.FormatInt(tat, 10),
		strconv.FormatInt(wt, 10),
		strconv.FormatInt(orUnset(p.ResponseTime), 10),
	}
}

// WriteProcessTable prints one row per process with an averages footer.
// procs must already carry derived timings (see sim.CalculateMetrics).
func WriteProcessTable(w io.Writer, procs []sim.Process, m *sim.Metrics) {
	rows := make([][]string, len(procs))
	for i := range procs {
		rows[i] = processRow(&procs[i])
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Arrival", "Burst", "Priority", "Start", "Completion", "TAT", "WT", "RT"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "", "", "Average",
		fmt.Sprintf("%.2f", m.AvgTurnaround),
		fmt.Sprintf("%.2f", m.AvgWaiting),
		fmt.Sprintf("%.2f", m.AvgResponse)})
	table.Render()
}

// WriteTimeline prints every timeline event on its own line. Idle spans use pid -1.
func WriteTimeline(w io.Writer, tl sim.Timeline) {
	_, _ = fmt.Fprintln(w, "Timeline events:")
	for _, e := range tl {
		pid := e.PID
		if e.Idle {
			pid = int(unset)
		}
		_, _ = fmt.Fprintf(w, "  time=%d pid=%d dur=%d\n", e.Start, pid, e.Duration)
	}
}

// WriteMetrics prints the aggregate metrics of one run.
func WriteMetrics(w io.Writer, m *sim.Metrics) {
	_, _ = fmt.Fprintln(w, "Metrics:")
	_, _ = fmt.Fprintf(w, "Avg Turnaround Time: %.2f\n", m.AvgTurnaround)
	_, _ = fmt.Fprintf(w, "Avg Waiting Time:    %.2f\n", m.AvgWaiting)
	_, _ = fmt.Fprintf(w, "Avg Response Time:   %.2f\n", m.AvgResponse)
	_, _ = fmt.Fprintf(w, "CPU Utilization:     %.2f%%\n", m.CPUUtilization)
	_, _ = fmt.Fprintf(w, "Throughput:          %.4f\n", m.Throughput)
	_, _ = fmt.Fprintf(w, "Fairness Index:      %.4f\n", m.FairnessIndex)
	if m.Turnaround.Count > 0 {
		_, _ = fmt.Fprintf(w, "Turnaround p50/p95/max: %.2f / %.2f / %.2f\n",
			m.Turnaround.P50, m.Turnaround.P95, m.Turnaround.Max)
	}
}

// WriteRunSummary prints the full console report of one run.
func WriteRunSummary(w io.Writer, res *sim.Result) {
	_, _ = fmt.Fprintf(w, "Algorithm: %s\n", res.Algorithm)
	if res.Quantum > 0 {
		_, _ = fmt.Fprintf(w, "Quantum: %d\n", res.Quantum)
	}
	_, _ = fmt.Fprintln(w, "Processes:")
	WriteProcessTable(w, res.Processes, res.Metrics)
	WriteTimeline(w, res.Timeline)
	_, _ = fmt.Fprintln(w)
	WriteMetrics(w, res.Metrics)
}

// WriteComparisonTable prints one row per result, marking the best one.
func WriteComparisonTable(w io.Writer, results []*sim.Result) {
	best := sim.Best(results)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Algorithm", "Avg TAT", "Avg WT", "Avg RT", "CPU Util %", "Throughput", "Fairness", ""})
	for _, r := range results {
		m := r.Metrics
		mark := ""
		if r == best {
			mark = "best"
		}
		table.Append([]string{
			algorithmLabel(r),
			fmt.Sprintf("%.2f", m.AvgTurnaround),
			fmt.Sprintf("%.2f", m.AvgWaiting),
			fmt.Sprintf("%.2f", m.AvgResponse),
			fmt.Sprintf("%.2f", m.CPUUtilization),
			fmt.Sprintf("%.4f", m.Throughput),
			fmt.Sprintf("%.4f", m.FairnessIndex),
			mark,
		})
	}
	table.Render()
}

// WriteTraceSummary prints the aggregate of a decision trace.
func WriteTraceSummary(w io.Writer, s *trace.TraceSummary) {
	_, _ = fmt.Fprintln(w, "Decision trace:")
	_, _ = fmt.Fprintf(w, "Dispatches:       %d\n", s.TotalDispatches)
	_, _ = fmt.Fprintf(w, "Context switches: %d\n", s.ContextSwitches)
	_, _ = fmt.Fprintf(w, "Demotions:        %d\n", s.Demotions)
	_, _ = fmt.Fprintf(w, "Boosts:           %d\n", s.Boosts)
	_, _ = fmt.Fprintf(w, "Idle time:        %d\n", s.IdleTime)
	pids := make([]int, 0, len(s.DispatchesPerPID))
	for pid := range s.DispatchesPerPID {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	for _, pid := range pids {
		_, _ = fmt.Fprintf(w, "  pid=%d dispatches=%d\n", pid, s.DispatchesPerPID[pid])
	}
}
