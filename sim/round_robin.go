package sim

import "github.com/inference-sim/schedsim/sim/trace"

// RoundRobinScheduler time-slices a single FIFO ready queue.
type RoundRobinScheduler struct {
	Config RoundRobinConfig
}

// NewRoundRobinScheduler creates a RoundRobinScheduler with a validated config.
func NewRoundRobinScheduler(cfg RoundRobinConfig) (*RoundRobinScheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &RoundRobinScheduler{Config: cfg}, nil
}

// Name returns the report label.
func (s *RoundRobinScheduler) Name() string { return "RR" }

// Schedule implements Scheduler.
// After each slice, processes that arrived during the slice are enqueued first
// and only then the preempted process goes back to the tail.
func (s *RoundRobinScheduler) Schedule(procs []Process, tl *TimelineRecorder, tr *trace.SimulationTrace) error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	sim, err := newSimulator(s.Name(), procs, tl, tr)
	if err != nil {
		return err
	}

	quantum := s.Config.Quantum
	rq := &ReadyQueue{}
	sim.admitArrivals(rq.Enqueue)
	for !sim.Done() {
		i, ok := rq.Dequeue()
		if !ok {
			if err := sim.idleUntilNextArrival(rq.Enqueue); err != nil {
				return err
			}
			continue
		}
		start := sim.Clock
		ran := min(procs[i].RemainingTime, quantum)
		if err := sim.dispatch(i, ran, false); err != nil {
			return err
		}
		sim.admitArrivals(rq.Enqueue)
		if procs[i].Finished {
			sim.recordDispatch(i, start, 0, quantum, ran, trace.OutcomeFinished)
			continue
		}
		rq.Enqueue(i)
		sim.recordDispatch(i, start, 0, quantum, ran, trace.OutcomeRequeued)
	}
	return nil
}

