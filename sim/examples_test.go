package sim_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/workload"
)

// TestExampleConfigs_Policies verifies that policies.yaml loads, validates and
// resolves to the documented comparison set.
func TestExampleConfigs_Policies(t *testing.T) {
	// GIVEN the policies.yaml example config
	bundle, err := sim.LoadPolicyBundle(filepath.Join("..", "examples", "policies.yaml"))
	require.NoError(t, err, "failed to load policies.yaml")

	// THEN validation passes
	require.NoError(t, bundle.Validate())

	// THEN RR and MLFQ pick up the overridden parameters
	specs, err := bundle.Specs()
	require.NoError(t, err)
	require.Len(t, specs, 5)
	assert.Equal(t, "rr 4", specs[3].String())
	assert.Equal(t, "mlfq 3 2,4,8 20", specs[4].String())
}

// TestExampleConfigs_WorkloadFormatsAgree verifies that the text and YAML
// example workloads describe the same process set.
func TestExampleConfigs_WorkloadFormatsAgree(t *testing.T) {
	text, err := workload.LoadWorkload(filepath.Join("..", "examples", "workload.txt"))
	require.NoError(t, err)
	spec, err := workload.LoadWorkload(filepath.Join("..", "examples", "workload.yaml"))
	require.NoError(t, err)

	assert.Equal(t, text, spec)
	require.Len(t, text, 3)
	assert.Equal(t, sim.NewProcess(3, 2, 8, 1), text[2])
}

// TestExampleConfigs_GeneratedWorkloadRunsUnderEveryPolicy verifies that the
// generator example produces a valid workload that every policy completes.
func TestExampleConfigs_GeneratedWorkloadRunsUnderEveryPolicy(t *testing.T) {
	procs, err := workload.LoadWorkload(filepath.Join("..", "examples", "generated.yaml"))
	require.NoError(t, err)
	require.Len(t, procs, 20)

	bundle, err := sim.LoadPolicyBundle(filepath.Join("..", "examples", "policies.yaml"))
	require.NoError(t, err)
	specs, err := bundle.Specs()
	require.NoError(t, err)

	results, err := sim.Compare(specs, procs, sim.RunOptions{})
	require.NoError(t, err)
	for _, r := range results {
		assert.Equal(t, 20, r.Metrics.CompletedProcesses, r.Algorithm)
	}
	assert.Equal(t, results[2].Metrics.AvgTurnaround, sim.Best(results).Metrics.AvgTurnaround, "STCF is never beaten")
}
