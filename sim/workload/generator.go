package workload

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/schedsim/sim"
)

// GenerateProcesses creates a synthetic process set from a GeneratorSpec.
// Deterministic given the same spec: arrivals, bursts and priorities each draw
// from their own seeded stream, so changing the burst distribution does not
// shift the arrival pattern. The first process arrives at tick 0; PIDs are
// sequential from 1 in arrival order.
func GenerateProcesses(g *GeneratorSpec) ([]sim.Process, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}
	burstSampler, err := NewBurstSampler(g.Burst)
	if err != nil {
		return nil, fmt.Errorf("generator burst distribution: %w", err)
	}
	arrivalSampler := NewArrivalSampler(g.Arrival)

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(g.Seed))
	arrivalRNG := rng.ForSubsystem(sim.SubsystemArrival)
	burstRNG := rng.ForSubsystem(sim.SubsystemBurst)
	priorityRNG := rng.ForSubsystem(sim.SubsystemPriority)

	procs := make([]sim.Process, 0, g.Count)
	var now int64
	for i := 0; i < g.Count; i++ {
		if i > 0 {
			if now, err = advanceArrival(now, arrivalSampler.SampleGap(arrivalRNG)); err != nil {
				return nil, fmt.Errorf("generating process %d: %w", i+1, err)
			}
		}
		priority := 0
		if g.Priorities > 1 {
			priority = priorityRNG.Intn(g.Priorities)
		}
		procs = append(procs, sim.NewProcess(i+1, now, burstSampler.Sample(burstRNG), priority))
	}
	logrus.Debugf("generated %d processes (seed %d, last arrival %d)", len(procs), g.Seed, now)
	return procs, nil
}

// ErrArrivalOverflow is returned when accumulated gaps no longer fit the clock.
var ErrArrivalOverflow = errors.New("arrival time overflows the clock")

// advanceArrival adds a non-negative gap to now.
func advanceArrival(now, gap int64) (int64, error) {
	if gap > math.MaxInt64-now {
		return 0, fmt.Errorf("%w: %d + %d", ErrArrivalOverflow, now, gap)
	}
	return now + gap, nil
}
