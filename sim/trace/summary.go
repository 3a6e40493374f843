package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDispatches  int         `json:"total_dispatches"`
	DispatchesPerPID map[int]int `json:"dispatches_per_pid"` // PID → number of dispatches
	Demotions        int         `json:"demotions"`
	Boosts           int         `json:"boosts"`
	ContextSwitches  int         `json:"context_switches"` // consecutive dispatches of different processes
	IdleTime         int64       `json:"idle_time"`        // sum of idle spans
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DispatchesPerPID: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDispatches = len(st.Dispatches)
	for i, d := range st.Dispatches {
		summary.DispatchesPerPID[d.PID]++
		if d.Outcome == OutcomeDemoted {
			summary.Demotions++
		}
		if i > 0 && st.Dispatches[i-1].PID != d.PID {
			summary.ContextSwitches++
		}
	}

	summary.Boosts = len(st.Boosts)
	for _, idle := range st.Idles {
		summary.IdleTime += idle.Duration
	}

	return summary
}
