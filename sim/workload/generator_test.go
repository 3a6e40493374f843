package workload

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/schedsim/sim"
)

func poissonGenerator(seed int64, count int) *GeneratorSpec {
	return &GeneratorSpec{
		Seed:       seed,
		Count:      count,
		Arrival:    ArrivalSpec{Process: "poisson", Rate: 0.5},
		Burst:      DistSpec{Type: "exponential", Params: map[string]float64{"mean": 6}},
		Priorities: 4,
	}
}

func TestGenerateProcesses_ProducesValidWorkload(t *testing.T) {
	// GIVEN a Poisson generator for 50 processes
	g := poissonGenerator(42, 50)

	// WHEN processes are generated
	procs, err := GenerateProcesses(g)
	require.NoError(t, err)

	// THEN the set is accepted by the engine, PIDs are 1..n and arrivals are non-decreasing from 0
	require.Len(t, procs, 50)
	require.NoError(t, sim.ValidateProcesses(procs))
	assert.Equal(t, int64(0), procs[0].ArrivalTime)
	for i, p := range procs {
		assert.Equal(t, i+1, p.PID)
		assert.Equal(t, p.BurstTime, p.RemainingTime)
		assert.GreaterOrEqual(t, p.Priority, 0)
		assert.Less(t, p.Priority, 4)
		if i > 0 {
			assert.GreaterOrEqual(t, p.ArrivalTime, procs[i-1].ArrivalTime)
		}
	}
}

func TestGenerateProcesses_Deterministic_SameSeedSameOutput(t *testing.T) {
	a, err := GenerateProcesses(poissonGenerator(7, 30))
	require.NoError(t, err)
	b, err := GenerateProcesses(poissonGenerator(7, 30))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := GenerateProcesses(poissonGenerator(8, 30))
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "different seeds should produce different workloads")
}

func TestGenerateProcesses_BurstChange_KeepsArrivalPattern(t *testing.T) {
	// GIVEN two generators differing only in their burst distribution
	g1 := poissonGenerator(99, 40)
	g2 := poissonGenerator(99, 40)
	g2.Burst = DistSpec{Type: "constant", Params: map[string]float64{"value": 3}}

	a, err := GenerateProcesses(g1)
	require.NoError(t, err)
	b, err := GenerateProcesses(g2)
	require.NoError(t, err)

	// THEN the arrival times are identical
	for i := range a {
		assert.Equal(t, a[i].ArrivalTime, b[i].ArrivalTime, "pid %d", a[i].PID)
		assert.Equal(t, int64(3), b[i].BurstTime)
	}
}

func TestGenerateProcesses_UniformArrivals_EvenSpacing(t *testing.T) {
	g := &GeneratorSpec{
		Count:   5,
		Arrival: ArrivalSpec{Process: "uniform", Rate: 0.5},
		Burst:   DistSpec{Type: "constant", Params: map[string]float64{"value": 2}},
	}
	procs, err := GenerateProcesses(g)
	require.NoError(t, err)
	for i, p := range procs {
		assert.Equal(t, int64(2*i), p.ArrivalTime)
		assert.Equal(t, 0, p.Priority, "priorities unset means every priority is 0")
	}
}

func TestGenerateProcesses_InvalidSpec_ReturnsError(t *testing.T) {
	g := poissonGenerator(1, 0)
	_, err := GenerateProcesses(g)
	assert.Error(t, err)

	g = poissonGenerator(1, 5)
	g.Burst = DistSpec{Type: "exponential"}
	_, err = GenerateProcesses(g)
	assert.Error(t, err, "missing mean param")
}

func TestAdvanceArrival_Overflow_ReturnsError(t *testing.T) {
	// GIVEN a clock already near the int64 limit
	now := int64(math.MaxInt64 - 10)

	// WHEN a gap that still fits is added, THEN it succeeds
	next, err := advanceArrival(now, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), next)

	// WHEN a saturated gap is added, THEN the overflow is reported, never wrapped
	_, err = advanceArrival(now, roundGap(1e300))
	assert.ErrorIs(t, err, ErrArrivalOverflow)
	_, err = advanceArrival(1, math.MaxInt64)
	assert.ErrorIs(t, err, ErrArrivalOverflow)
}
