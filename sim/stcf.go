package sim

import "github.com/inference-sim/schedsim/sim/trace"

// STCFScheduler is preemptive Shortest-Time-to-Completion-First.
// The arrived, unfinished process with the least remaining time runs; ties go
// to the earlier arrival, then to input order. The choice can only change when
// a process arrives or finishes, so each step runs up to the nearer of the two.
// The result equals re-deciding every tick. Consecutive steps of the same
// process form one timeline event.
type STCFScheduler struct{}

// Name returns the report label.
func (s *STCFScheduler) Name() string { return "STCF" }

// Schedule implements Scheduler.
func (s *STCFScheduler) Schedule(procs []Process, tl *TimelineRecorder, tr *trace.SimulationTrace) error {
	sim, err := newSimulator(s.Name(), procs, tl, tr)
	if err != nil {
		return err
	}

	remaining := func(p *Process) int64 { return p.RemainingTime }
	current, segStart := -1, int64(0)
	for !sim.Done() {
		best := sim.selectMin(remaining)
		if best < 0 {
			if err := sim.idleUntilNextArrival(nil); err != nil {
				return err
			}
			continue
		}
		if best != current {
			if current >= 0 {
				sim.recordDispatch(current, segStart, 0, 0, sim.Clock-segStart, trace.OutcomePreempted)
			}
			current, segStart = best, sim.Clock
		}
		d := procs[best].RemainingTime
		if next, ok := sim.upcomingArrival(); ok && next-sim.Clock < d {
			d = next - sim.Clock
		}
		if err := sim.dispatch(best, d, true); err != nil {
			return err
		}
		if procs[best].Finished {
			sim.recordDispatch(best, segStart, 0, 0, sim.Clock-segStart, trace.OutcomeFinished)
			current = -1
		}
	}
	return nil
}
