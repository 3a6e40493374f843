package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/trace"
)

// ProcessRecord is the exported view of one process. Unset values are -1.
type ProcessRecord struct {
	PID        int   `json:"pid"`
	Arrival    int64 `json:"arrival"`
	Burst      int64 `json:"burst"`
	Priority   int   `json:"priority"`
	Start      int64 `json:"start"`
	Completion int64 `json:"completion"`
	Turnaround int64 `json:"turnaround"`
	Waiting    int64 `json:"waiting"`
	Response   int64 `json:"response"`
}

// EventRecord is the exported view of one timeline event. Idle spans use pid -1.
type EventRecord struct {
	Time     int64 `json:"time"`
	PID      int   `json:"pid"`
	Duration int64 `json:"duration"`
}

// ResultRecord is the JSON export of one run.
type ResultRecord struct {
	Algorithm string              `json:"algorithm"`
	Policy    string              `json:"policy"`
	Quantum   int64               `json:"quantum,omitempty"`
	Processes []ProcessRecord     `json:"processes"`
	Timeline  []EventRecord       `json:"timeline"`
	Metrics   *sim.Metrics        `json:"metrics"`
	Trace     *trace.TraceSummary `json:"trace,omitempty"`
}

// NewResultRecord converts a result into its export form.
func NewResultRecord(res *sim.Result) ResultRecord {
	rec := ResultRecord{
		Algorithm: res.Algorithm,
		Policy:    res.Spec.String(),
		Quantum:   res.Quantum,
		Processes: make([]ProcessRecord, len(res.Processes)),
		Timeline:  make([]EventRecord, len(res.Timeline)),
		Metrics:   res.Metrics,
	}
	for i := range res.Processes {
		p := &res.Processes[i]
		pr := ProcessRecord{
			PID:        p.PID,
			Arrival:    p.ArrivalTime,
			Burst:      p.BurstTime,
			Priority:   p.Priority,
			Start:      orUnset(p.StartTime),
			Completion: orUnset(p.CompletionTime),
			Turnaround: unset,
			Waiting:    unset,
			Response:   orUnset(p.ResponseTime),
		}
		if p.Completed() {
			pr.Turnaround, pr.Waiting = p.TurnaroundTime, p.WaitingTime
		}
		rec.Processes[i] = pr
	}
	for i, e := range res.Timeline {
		pid := e.PID
		if e.Idle {
			pid = int(unset)
		}
		rec.Timeline[i] = EventRecord{Time: e.Start, PID: pid, Duration: e.Duration}
	}
	if res.Trace != nil {
		rec.Trace = trace.Summarize(res.Trace)
	}
	return rec
}

// NewResultRecords converts every result, preserving order.
func NewResultRecords(results []*sim.Result) []ResultRecord {
	recs := make([]ResultRecord, len(results))
	for i, r := range results {
		recs[i] = NewResultRecord(r)
	}
	return recs
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}

// SaveJSON writes v as indented JSON to path.
func SaveJSON(path string, v any) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()
	return WriteJSON(file, v)
}
