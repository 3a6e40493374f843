// Package sim provides the CPU scheduling engine of schedsim.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - process.go: Process inputs, run state and derived timings
//   - timeline.go: TimelineEvent, Timeline and the per-run TimelineRecorder
//   - simulator.go: per-invocation run state shared by every policy
//     (admission in input order, idle spans, dispatch bookkeeping)
//
// # Policies
//
// Each policy implements Scheduler and lives in its own file:
//   - fcfs.go: First-Come-First-Served, (arrival, pid) order
//   - sjf.go: non-preemptive Shortest-Job-First
//   - stcf.go: preemptive Shortest-Time-to-Completion-First, one-tick granularity
//   - round_robin.go: single FIFO ready queue with a fixed quantum
//   - mlfq.go: Multi-Level Feedback Queue with demotion and periodic boost
//
// bundle.go resolves the comparison set from YAML, and metrics.go reduces a
// finished run to its aggregates.
//
// A policy mutates the process slice it is given. Simulate and Compare clone the
// workload per invocation, so a single workload can be compared across policies.
//
// # Sub-packages
//
//   - sim/trace/: decision trace recording (dispatches, boosts, idle spans)
//   - sim/workload/: workload file loading, conversion and seeded generation
//     (streams come from PartitionedRNG in rng.go)
//   - sim/report/: console tables, ASCII Gantt, Markdown comparison report, JSON export
package sim
