package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/schedsim/sim/trace"
)

// MLFQScheduler is a preemptive Multi-Level Feedback Queue.
//   - Every arriving process enters level 0 (highest priority).
//   - A process that consumes its level's full quantum without finishing moves one
//     level down, clamped at the last level.
//   - With a positive boost interval, once that many ticks have elapsed since the
//     last boost, every process waiting in levels 1..k-1 moves to level 0.
type MLFQScheduler struct {
	Config MLFQConfig
}

// NewMLFQScheduler creates an MLFQScheduler with a validated config.
func NewMLFQScheduler(cfg MLFQConfig) (*MLFQScheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &MLFQScheduler{Config: cfg}, nil
}

// Name returns the report label.
func (s *MLFQScheduler) Name() string { return "MLFQ" }

// Schedule implements Scheduler.
func (s *MLFQScheduler) Schedule(procs []Process, tl *TimelineRecorder, tr *trace.SimulationTrace) error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	sim, err := newSimulator(s.Name(), procs, tl, tr)
	if err != nil {
		return err
	}

	cfg := s.Config
	last := cfg.NumQueues() - 1
	mq := NewMultiLevelQueue(cfg.NumQueues())
	enqueueTop := func(i int) { mq.Enqueue(0, i) }
	lastBoost := sim.Clock

	sim.admitArrivals(enqueueTop)
	for !sim.Done() {
		if cfg.BoostInterval > 0 && sim.Clock-lastBoost >= cfg.BoostInterval {
			s.boost(sim, mq)
			lastBoost = sim.Clock
		}

		level, ok := mq.HighestNonEmpty()
		if !ok {
			if err := sim.idleUntilNextArrival(enqueueTop); err != nil {
				return err
			}
			continue
		}

		i, _ := mq.Level(level).Dequeue()
		quantum := cfg.Quanta[level]
		start := sim.Clock
		ran := min(procs[i].RemainingTime, quantum)
		if err := sim.dispatch(i, ran, false); err != nil {
			return err
		}
		sim.admitArrivals(enqueueTop)

		switch {
		case procs[i].Finished:
			sim.recordDispatch(i, start, level, quantum, ran, trace.OutcomeFinished)
		case ran >= quantum:
			next := min(level+1, last)
			mq.Enqueue(next, i)
			sim.recordDispatch(i, start, level, quantum, ran, trace.OutcomeDemoted)
		default:
			sim.invariant("pid %d ran %d of quantum %d without finishing", procs[i].PID, ran, quantum)
		}
	}
	return nil
}

// boost flattens levels 1..k-1 into level 0 in ascending level order.
func (s *MLFQScheduler) boost(sim *Simulator, mq *MultiLevelQueue) {
	moved := mq.Flatten()
	pids := make([]int, len(moved))
	for k, i := range moved {
		pids[k] = sim.Procs[i].PID
	}
	logrus.Debugf("[tick %07d] %s: boost moved %v to level 0", sim.Clock, sim.policy, pids)
	sim.trace.RecordBoost(trace.BoostRecord{
		Clock:       sim.Clock,
		Moved:       pids,
		DepthsAfter: mq.Depths(),
	})
}
