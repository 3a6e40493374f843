package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	// GIVEN no trace (tracing disabled)
	// WHEN summarized
	summary := Summarize(nil)

	// THEN all counts are zero
	if summary.TotalDispatches != 0 || summary.Demotions != 0 || summary.Boosts != 0 {
		t.Errorf("expected zero counts, got %+v", summary)
	}
	if summary.ContextSwitches != 0 {
		t.Errorf("expected 0 context switches, got %d", summary.ContextSwitches)
	}
	if len(summary.DispatchesPerPID) != 0 {
		t.Error("expected empty dispatch distribution")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with a mix of dispatch outcomes, one boost and one idle span
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordDispatch(DispatchRecord{Clock: 0, PID: 1, Ran: 2, Outcome: OutcomeDemoted})
	st.RecordDispatch(DispatchRecord{Clock: 2, PID: 2, Ran: 2, Outcome: OutcomeDemoted})
	st.RecordDispatch(DispatchRecord{Clock: 4, PID: 2, Ran: 1, Outcome: OutcomeFinished})
	st.RecordDispatch(DispatchRecord{Clock: 5, PID: 1, Ran: 3, Outcome: OutcomeFinished})
	st.RecordBoost(BoostRecord{Clock: 4})
	st.RecordIdle(IdleRecord{Clock: 8, Duration: 4})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.TotalDispatches != 4 {
		t.Errorf("expected 4 dispatches, got %d", summary.TotalDispatches)
	}
	if summary.Demotions != 2 {
		t.Errorf("expected 2 demotions, got %d", summary.Demotions)
	}
	if summary.Boosts != 1 {
		t.Errorf("expected 1 boost, got %d", summary.Boosts)
	}
	if summary.IdleTime != 4 {
		t.Errorf("expected idle time 4, got %d", summary.IdleTime)
	}
	// 1→2 and 2→1 are switches; 2→2 is not
	if summary.ContextSwitches != 2 {
		t.Errorf("expected 2 context switches, got %d", summary.ContextSwitches)
	}
}

func TestSummarize_DispatchesPerPID_CountsPerProcess(t *testing.T) {
	// GIVEN the same process dispatched several times
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordDispatch(DispatchRecord{PID: 3})
	st.RecordDispatch(DispatchRecord{PID: 3})
	st.RecordDispatch(DispatchRecord{PID: 7})

	// WHEN summarized
	summary := Summarize(st)

	// THEN the distribution reflects counts
	if summary.DispatchesPerPID[3] != 2 {
		t.Errorf("expected pid 3 count 2, got %d", summary.DispatchesPerPID[3])
	}
	if summary.DispatchesPerPID[7] != 1 {
		t.Errorf("expected pid 7 count 1, got %d", summary.DispatchesPerPID[7])
	}
}
