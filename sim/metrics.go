// Reduces a finished run into scalar performance statistics:
// turnaround, waiting, response, utilization, throughput and fairness.

package sim

// Metrics is the read-only aggregate of one completed run.
type Metrics struct {
	AvgTurnaround  float64 `json:"avg_turnaround_time"`
	AvgWaiting     float64 `json:"avg_waiting_time"`
	AvgResponse    float64 `json:"avg_response_time"`
	CPUUtilization float64 `json:"cpu_utilization"` // percent of TotalTime spent on process work
	Throughput     float64 `json:"throughput"`      // completed processes per tick
	FairnessIndex  float64 `json:"fairness_index"`  // Jain's index over turnaround times

	CompletedProcesses int          `json:"completed_processes"`
	TotalProcesses     int          `json:"total_processes"`
	TotalTime          int64        `json:"total_time"`
	BusyTime           int64        `json:"busy_time"`
	Turnaround         Distribution `json:"turnaround"`
}

// CalculateMetrics fills the derived timings of every completed process and
// aggregates them. totalTime is the sum of the run's timeline durations.
//
// Processes without a completion time (partial runs) are excluded from the
// averages and from the fairness sums, but the work they did consume still
// counts as busy time. A completed process that was never dispatched gets an
// unset ResponseTime, which contributes zero to the response sum.
func CalculateMetrics(procs []Process, totalTime int64) *Metrics {
	m := &Metrics{
		TotalProcesses: len(procs),
		TotalTime:      totalTime,
	}

	var sumTAT, sumWT, sumRT, sumTAT2 float64
	tats := make([]float64, 0, len(procs))
	for i := range procs {
		p := &procs[i]
		if !p.Completed() {
			m.BusyTime += p.BurstTime - p.RemainingTime
			continue
		}
		m.CompletedProcesses++
		p.TurnaroundTime = *p.CompletionTime - p.ArrivalTime
		p.WaitingTime = p.TurnaroundTime - p.BurstTime
		if p.Started() {
			p.ResponseTime = tick(*p.StartTime - p.ArrivalTime)
			sumRT += float64(*p.ResponseTime)
		} else {
			p.ResponseTime = nil
		}
		tat := float64(p.TurnaroundTime)
		sumTAT += tat
		sumWT += float64(p.WaitingTime)
		sumTAT2 += tat * tat
		m.BusyTime += p.BurstTime
		tats = append(tats, tat)
	}

	if m.CompletedProcesses > 0 {
		n := float64(m.CompletedProcesses)
		m.AvgTurnaround = sumTAT / n
		m.AvgWaiting = sumWT / n
		m.AvgResponse = sumRT / n
	}
	if totalTime > 0 {
		m.CPUUtilization = float64(m.BusyTime) / float64(totalTime) * 100.0
		m.Throughput = float64(m.CompletedProcesses) / float64(totalTime)
	}
	if len(procs) > 0 && sumTAT2 > 0 {
		m.FairnessIndex = (sumTAT * sumTAT) / (float64(len(procs)) * sumTAT2)
	}
	m.Turnaround = NewDistribution(tats)
	return m
}
