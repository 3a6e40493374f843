package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/schedsim/sim/trace"
)

// RunOptions controls a single policy invocation.
type RunOptions struct {
	MaxEvents  int              // timeline capacity (0 = grow on demand)
	TraceLevel trace.TraceLevel // decision tracing ("" or "none" disables it)
}

// Result is the finalized output of one policy run.
// Consumers (reports, renderers, the HTTP API) treat it as read-only.
type Result struct {
	Spec      PolicySpec
	Algorithm string // display name, e.g. "RR"
	Quantum   int64  // RR quantum, 0 for every other policy
	Processes []Process
	Timeline  Timeline
	Metrics   *Metrics
	Trace     *trace.SimulationTrace // nil unless tracing was requested
}

// Run executes s over procs in place and returns the recorded timeline.
// This is the low-level entry point: procs is mutated, and its contents are
// unspecified when an error is returned.
func Run(s Scheduler, procs []Process, opts RunOptions) (Timeline, *trace.SimulationTrace, error) {
	if !trace.IsValidTraceLevel(string(opts.TraceLevel)) {
		return nil, nil, fmt.Errorf("unknown trace level %q", opts.TraceLevel)
	}
	tl := NewTimelineRecorder(opts.MaxEvents)
	tr := trace.NewSimulationTrace(trace.TraceConfig{Level: opts.TraceLevel})
	if err := s.Schedule(procs, tl, tr); err != nil {
		return nil, nil, err
	}
	return tl.Events(), tr, nil
}

// Simulate runs one policy over a private copy of workload and computes its
// metrics. workload itself is never modified, so the same slice can be passed
// to any number of Simulate calls. No result is returned on error.
func Simulate(spec PolicySpec, workload []Process, opts RunOptions) (*Result, error) {
	s, err := NewScheduler(spec)
	if err != nil {
		return nil, err
	}
	procs := CloneProcesses(workload)
	if procs == nil {
		procs = []Process{}
	}
	tl, tr, err := Run(s, procs, opts)
	if err != nil {
		return nil, err
	}
	if tl == nil {
		tl = Timeline{}
	}
	metrics := CalculateMetrics(procs, tl.TotalDuration())
	logrus.Infof("%s: %d processes, %d timeline events, total time %d",
		spec.DisplayName(), len(procs), len(tl), metrics.TotalTime)

	res := &Result{
		Spec:      spec,
		Algorithm: spec.DisplayName(),
		Processes: procs,
		Timeline:  tl,
		Metrics:   metrics,
		Trace:     tr,
	}
	if spec.Name == "rr" {
		res.Quantum = spec.Quantum
	}
	return res, nil
}

// Compare runs every spec over its own copy of workload, in order.
func Compare(specs []PolicySpec, workload []Process, opts RunOptions) ([]*Result, error) {
	results := make([]*Result, 0, len(specs))
	for _, spec := range specs {
		res, err := Simulate(spec, workload, opts)
		if err != nil {
			return nil, fmt.Errorf("comparing %s: %w", spec, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Best returns the result with the lowest average turnaround time.
// The first result wins ties. Returns nil for no results.
func Best(results []*Result) *Result {
	var best *Result
	for _, r := range results {
		if best == nil || r.Metrics.AvgTurnaround < best.Metrics.AvgTurnaround {
			best = r
		}
	}
	return best
}
