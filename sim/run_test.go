package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate_DoesNotMutateWorkload(t *testing.T) {
	// GIVEN a workload
	workload := threeProcessWorkload()
	before := CloneProcesses(workload)

	// WHEN it is simulated under every default policy
	specs, err := DefaultPolicyBundle().Specs()
	require.NoError(t, err)
	results, err := Compare(specs, workload, RunOptions{})
	require.NoError(t, err)

	// THEN the caller's slice is unchanged and each result owns its processes
	assert.Equal(t, before, workload)
	require.Len(t, results, 5)
	results[0].Processes[0].PID = 99
	assert.Equal(t, 1, results[1].Processes[0].PID)
}

func TestCompare_ResultsInSpecOrder(t *testing.T) {
	specs, err := DefaultPolicyBundle().Specs()
	require.NoError(t, err)
	results, err := Compare(specs, threeProcessWorkload(), RunOptions{})
	require.NoError(t, err)

	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Algorithm
	}
	assert.Equal(t, []string{"FIFO", "SJF", "STCF", "RR", "MLFQ"}, names)
	assert.Equal(t, int64(3), results[3].Quantum)
	assert.Equal(t, int64(0), results[4].Quantum)
	assert.Nil(t, results[0].Trace)

	best := Best(results)
	require.NotNil(t, best)
	assert.Equal(t, "STCF", best.Algorithm)
}

func TestCompare_InvalidSpec_ReturnsError(t *testing.T) {
	_, err := Compare([]PolicySpec{{Name: "fifo"}, {Name: "rr"}}, threeProcessWorkload(), RunOptions{})
	assert.ErrorIs(t, err, ErrInvalidQuantum)
}

func TestBest_TieGoesToFirst(t *testing.T) {
	fifo := mustSimulate(t, []string{"fifo"}, threeProcessWorkload(), RunOptions{})
	sjf := mustSimulate(t, []string{"sjf"}, threeProcessWorkload(), RunOptions{})

	assert.Same(t, fifo, Best([]*Result{fifo, sjf}))
	assert.Same(t, sjf, Best([]*Result{sjf, fifo}))
	assert.Nil(t, Best(nil))
}

func TestRun_UnknownTraceLevel_ReturnsError(t *testing.T) {
	_, _, err := Run(&FCFSScheduler{}, threeProcessWorkload(), RunOptions{TraceLevel: "verbose"})
	assert.Error(t, err)
}

func TestRun_MutatesProcsInPlace(t *testing.T) {
	procs := threeProcessWorkload()
	tl, tr, err := Run(&FCFSScheduler{}, procs, RunOptions{})
	require.NoError(t, err)

	assert.Nil(t, tr)
	assert.Len(t, tl, 3)
	assert.True(t, procs[2].Finished)
	assert.Equal(t, int64(16), *procs[2].CompletionTime)
}
