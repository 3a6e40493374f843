package sim

import (
	"sort"

	"github.com/inference-sim/schedsim/sim/trace"
)

// FCFSScheduler runs processes to completion in (arrival, pid) order.
type FCFSScheduler struct{}

// Name returns the report label.
func (f *FCFSScheduler) Name() string { return "FIFO" }

// Schedule implements Scheduler.
func (f *FCFSScheduler) Schedule(procs []Process, tl *TimelineRecorder, tr *trace.SimulationTrace) error {
	sim, err := newSimulator(f.Name(), procs, tl, tr)
	if err != nil {
		return err
	}

	order := make([]int, len(procs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := &procs[order[a]], &procs[order[b]]
		if pa.ArrivalTime != pb.ArrivalTime {
			return pa.ArrivalTime < pb.ArrivalTime
		}
		return pa.PID < pb.PID
	})

	for _, i := range order {
		if sim.Clock < procs[i].ArrivalTime {
			if err := sim.idleUntilNextArrival(nil); err != nil {
				return err
			}
		}
		start := sim.Clock
		ran := procs[i].RemainingTime
		if err := sim.dispatch(i, ran, false); err != nil {
			return err
		}
		sim.recordDispatch(i, start, 0, 0, ran, trace.OutcomeFinished)
	}
	return nil
}
