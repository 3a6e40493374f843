package workload

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/schedsim/sim"
)

// SpecVersion is written into converted specs.
const SpecVersion = "1"

// ConvertToSpec builds a WorkloadSpec from a process set, dropping run state.
// Process order is preserved, so loading the spec back yields the same PIDs
// whenever the input PIDs were 1..n in order.
func ConvertToSpec(procs []sim.Process) (*WorkloadSpec, error) {
	if len(procs) == 0 {
		return nil, ErrNoProcesses
	}
	spec := &WorkloadSpec{Version: SpecVersion, Processes: make([]ProcessSpec, len(procs))}
	for i, p := range procs {
		spec.Processes[i] = ProcessSpec{Arrival: p.ArrivalTime, Burst: p.BurstTime, Priority: p.Priority}
	}
	return spec, nil
}

// WriteSpec marshals a WorkloadSpec to YAML.
func WriteSpec(w io.Writer, spec *WorkloadSpec) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("marshaling workload spec: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing workload spec: %w", err)
	}
	return nil
}

// WriteText writes procs in the text format read by ParseWorkload, one
// "arrival burst priority" triple per line.
func WriteText(w io.Writer, procs []sim.Process) error {
	for _, p := range procs {
		if _, err := fmt.Fprintf(w, "%d %d %d\n", p.ArrivalTime, p.BurstTime, p.Priority); err != nil {
			return fmt.Errorf("writing workload: %w", err)
		}
	}
	return nil
}
