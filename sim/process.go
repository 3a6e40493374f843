// Defines the Process struct that models one entry of the workload.
// Tracks arrival/burst inputs, run state mutated by a policy, and the
// derived timings filled in by the metrics stage.

package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidWorkload is returned when a process set violates the input contract
// (duplicate PID, negative arrival, non-positive burst).
var ErrInvalidWorkload = errors.New("invalid workload")

// Process models a single process of a fixed, already-known workload.
// Each process has:
// - immutable inputs (arrival, burst, priority)
// - run state mutated by exactly one policy invocation
// - derived timings populated by CalculateMetrics, never by a policy
type Process struct {
	PID         int   // Unique identifier, stable for the run
	ArrivalTime int64 // Time at which the process becomes eligible
	BurstTime   int64 // Total CPU time required
	Priority    int   // Carried through for reporting; not consulted by any policy

	RemainingTime  int64  // Non-increasing, starts at BurstTime
	StartTime      *int64 // First dispatch time (nil until dispatched)
	CompletionTime *int64 // Time RemainingTime reached zero (nil until finished)
	Finished       bool

	TurnaroundTime int64  // CompletionTime - ArrivalTime
	WaitingTime    int64  // TurnaroundTime - BurstTime
	ResponseTime   *int64 // StartTime - ArrivalTime (nil when never dispatched)
}

// NewProcess creates a process in its initial, not-yet-run state.
func NewProcess(pid int, arrival, burst int64, priority int) Process {
	return Process{
		PID:           pid,
		ArrivalTime:   arrival,
		BurstTime:     burst,
		Priority:      priority,
		RemainingTime: burst,
	}
}

// Reset clears run state and derived timings so the process can be scheduled again.
func (p *Process) Reset() {
	p.RemainingTime = p.BurstTime
	p.StartTime = nil
	p.CompletionTime = nil
	p.Finished = false
	p.TurnaroundTime = 0
	p.WaitingTime = 0
	p.ResponseTime = nil
}

// Started reports whether the process has been dispatched at least once.
func (p *Process) Started() bool {
	return p.StartTime != nil
}

// Completed reports whether the process has a completion time.
func (p *Process) Completed() bool {
	return p.CompletionTime != nil
}

// String returns a human-readable representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (PID: %d, Arrival: %d, Burst: %d, Remaining: %d, Finished: %v)",
		p.PID, p.ArrivalTime, p.BurstTime, p.RemainingTime, p.Finished)
}

// CloneProcesses returns an independent deep copy of procs.
// Every policy invocation must run on its own copy: run state is destructively
// overwritten, so sharing one slice across invocations corrupts results.
func CloneProcesses(procs []Process) []Process {
	if procs == nil {
		return nil
	}
	out := make([]Process, len(procs))
	for i, p := range procs {
		out[i] = p
		out[i].StartTime = cloneTick(p.StartTime)
		out[i].CompletionTime = cloneTick(p.CompletionTime)
		out[i].ResponseTime = cloneTick(p.ResponseTime)
	}
	return out
}

// ValidateProcesses checks the input contract shared by all policies.
// The latest arrival plus the total burst must fit in an int64 clock.
func ValidateProcesses(procs []Process) error {
	seen := make(map[int]bool, len(procs))
	var lastArrival, totalBurst int64
	for i := range procs {
		p := &procs[i]
		if seen[p.PID] {
			return fmt.Errorf("%w: duplicate pid %d", ErrInvalidWorkload, p.PID)
		}
		seen[p.PID] = true
		if p.ArrivalTime < 0 {
			return fmt.Errorf("%w: pid %d has negative arrival time %d", ErrInvalidWorkload, p.PID, p.ArrivalTime)
		}
		if p.BurstTime <= 0 {
			return fmt.Errorf("%w: pid %d has non-positive burst time %d", ErrInvalidWorkload, p.PID, p.BurstTime)
		}
		if totalBurst > math.MaxInt64-p.BurstTime {
			return fmt.Errorf("%w: total burst time overflows the clock at pid %d", ErrInvalidWorkload, p.PID)
		}
		totalBurst += p.BurstTime
		lastArrival = max(lastArrival, p.ArrivalTime)
	}
	if lastArrival > math.MaxInt64-totalBurst {
		return fmt.Errorf("%w: last arrival %d plus total burst %d overflows the clock", ErrInvalidWorkload, lastArrival, totalBurst)
	}
	return nil
}

// firstArrival returns the minimum arrival time over procs, or 0 when empty.
func firstArrival(procs []Process) int64 {
	if len(procs) == 0 {
		return 0
	}
	mn := procs[0].ArrivalTime
	for i := 1; i < len(procs); i++ {
		if procs[i].ArrivalTime < mn {
			mn = procs[i].ArrivalTime
		}
	}
	return mn
}

func tick(v int64) *int64 {
	return &v
}

func cloneTick(v *int64) *int64 {
	if v == nil {
		return nil
	}
	return tick(*v)
}
