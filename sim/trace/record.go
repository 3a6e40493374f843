// Package trace provides decision-trace recording for scheduling policy analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Outcome describes what happened to a process at the end of a dispatch.
type Outcome string

const (
	// OutcomeFinished means the slice consumed the remaining work.
	OutcomeFinished Outcome = "finished"
	// OutcomeRequeued means the process went back to the tail of its current queue.
	OutcomeRequeued Outcome = "requeued"
	// OutcomeDemoted means the process used its full quantum and moved one level down.
	OutcomeDemoted Outcome = "demoted"
	// OutcomePreempted means a process with less remaining work took the CPU.
	OutcomePreempted Outcome = "preempted"
)

// DispatchRecord captures a single dispatch decision.
type DispatchRecord struct {
	Clock     int64 // tick at which the slice started
	PID       int
	Level     int   // queue level the process was taken from (0 for single-queue policies)
	Quantum   int64 // allotted slice length (0 = run to completion / unit tick)
	Ran       int64 // ticks actually consumed
	Remaining int64 // remaining work after the slice
	Outcome   Outcome
}

// BoostRecord captures a single MLFQ priority boost.
type BoostRecord struct {
	Clock       int64
	Moved       []int // PIDs moved into level 0, in their new order
	DepthsAfter []int // queue depth per level right after the boost
}

// IdleRecord captures a span during which no process was ready.
type IdleRecord struct {
	Clock    int64
	Duration int64
}
