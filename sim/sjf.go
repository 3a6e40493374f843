package sim

import "github.com/inference-sim/schedsim/sim/trace"

// SJFScheduler is non-preemptive Shortest-Job-First.
// Among arrived, unfinished processes it picks the smallest burst time;
// ties go to the earlier arrival, then to the first process in input order.
// Warning: SJF can starve long processes under sustained load.
type SJFScheduler struct{}

// Name returns the report label.
func (s *SJFScheduler) Name() string { return "SJF" }

// Schedule implements Scheduler.
func (s *SJFScheduler) Schedule(procs []Process, tl *TimelineRecorder, tr *trace.SimulationTrace) error {
	sim, err := newSimulator(s.Name(), procs, tl, tr)
	if err != nil {
		return err
	}

	burst := func(p *Process) int64 { return p.BurstTime }
	for !sim.Done() {
		best := sim.selectMin(burst)
		if best < 0 {
			if err := sim.idleUntilNextArrival(nil); err != nil {
				return err
			}
			continue
		}
		start := sim.Clock
		ran := procs[best].RemainingTime
		if err := sim.dispatch(best, ran, false); err != nil {
			return err
		}
		sim.recordDispatch(best, start, 0, 0, ran, trace.OutcomeFinished)
	}
	return nil
}
