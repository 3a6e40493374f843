// Package testutil provides shared test infrastructure for the scheduler simulator.
// It holds the golden dataset types and assertion helpers used across
// sim/ and its sub-package tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one workload run under one policy, with its hand-computed outcome.
type GoldenTestCase struct {
	Name      string          `json:"name"`
	Policy    []string        `json:"policy"` // CLI form, e.g. ["rr", "3"]
	Processes []GoldenProcess `json:"processes"`
	Timeline  []GoldenEvent   `json:"timeline"`
	Metrics   GoldenMetrics   `json:"metrics"`
}

// GoldenProcess is a workload entry plus its expected completion time.
type GoldenProcess struct {
	PID        int   `json:"pid"`
	Arrival    int64 `json:"arrival"`
	Burst      int64 `json:"burst"`
	Completion int64 `json:"completion"`
}

// GoldenEvent is one expected timeline span. PID -1 marks an idle span.
type GoldenEvent struct {
	Start    int64 `json:"start"`
	PID      int   `json:"pid"`
	Duration int64 `json:"duration"`
}

// GoldenMetrics represents the expected aggregates of a golden test case.
type GoldenMetrics struct {
	// Exact match
	TotalTime int64 `json:"total_time"`
	BusyTime  int64 `json:"busy_time"`

	// Compared with relative tolerance
	AvgTurnaround  float64 `json:"avg_turnaround_time"`
	AvgWaiting     float64 `json:"avg_waiting_time"`
	AvgResponse    float64 `json:"avg_response_time"`
	CPUUtilization float64 `json:"cpu_utilization"`
	Throughput     float64 `json:"throughput"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
