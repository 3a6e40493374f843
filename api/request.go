package api

import (
	"fmt"
	"strings"

	"github.com/inference-sim/schedsim/sim"
)

// ProcessRequest is one process of a request body.
// A zero PID is replaced by its 1-based position in the list.
type ProcessRequest struct {
	PID      int   `json:"pid"`
	Arrival  int64 `json:"arrival"`
	Burst    int64 `json:"burst"`
	Priority int   `json:"priority"`
}

// MLFQRequest overrides the server's MLFQ parameters.
type MLFQRequest struct {
	Quanta        []int64 `json:"quanta"`
	BoostInterval *int64  `json:"boost_interval"`
}

// ScheduleRequest is the body of POST /api/v1/schedule/:policy.
// Parameters left out fall back to the server's policy bundle.
type ScheduleRequest struct {
	Processes []ProcessRequest `json:"processes"`
	Quantum   *int64           `json:"quantum"`
	MLFQ      *MLFQRequest     `json:"mlfq"`
	Trace     bool             `json:"trace"`
}

// CompareRequest is the body of POST /api/v1/compare.
// Policies use the CLI argument form ("rr 4", "mlfq 3 4,8,16 50");
// an empty list runs the server's bundle.
type CompareRequest struct {
	Processes []ProcessRequest `json:"processes"`
	Policies  []string         `json:"policies"`
}

// ToProcesses converts request processes into engine processes.
func ToProcesses(reqs []ProcessRequest) ([]sim.Process, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: no processes in request", sim.ErrInvalidWorkload)
	}
	procs := make([]sim.Process, len(reqs))
	for i, r := range reqs {
		pid := r.PID
		if pid == 0 {
			pid = i + 1
		}
		procs[i] = sim.NewProcess(pid, r.Arrival, r.Burst, r.Priority)
	}
	return procs, nil
}

// FromProcesses converts engine processes into their request form.
func FromProcesses(procs []sim.Process) []ProcessRequest {
	reqs := make([]ProcessRequest, len(procs))
	for i, p := range procs {
		reqs[i] = ProcessRequest{PID: p.PID, Arrival: p.ArrivalTime, Burst: p.BurstTime, Priority: p.Priority}
	}
	return reqs
}

// policySpec resolves the policy path parameter and request overrides against bundle.
func (r *ScheduleRequest) policySpec(name string, bundle *sim.PolicyBundle) (sim.PolicySpec, error) {
	spec := sim.PolicySpec{Name: strings.ToLower(name)}
	switch spec.Name {
	case "rr":
		spec.Quantum = bundle.ResolvedQuantum()
		if r.Quantum != nil {
			spec.Quantum = *r.Quantum
		}
	case "mlfq":
		spec.MLFQ = bundle.ResolvedMLFQ()
		if r.MLFQ != nil {
			if len(r.MLFQ.Quanta) > 0 {
				spec.MLFQ.Quanta = append([]int64(nil), r.MLFQ.Quanta...)
			}
			if r.MLFQ.BoostInterval != nil {
				spec.MLFQ.BoostInterval = *r.MLFQ.BoostInterval
			}
		}
	}
	return spec, spec.Validate()
}

// policySpecs resolves the compare policy list, falling back to bundle.
func (r *CompareRequest) policySpecs(bundle *sim.PolicyBundle) ([]sim.PolicySpec, error) {
	if len(r.Policies) == 0 {
		return bundle.Specs()
	}
	specs := make([]sim.PolicySpec, 0, len(r.Policies))
	for _, p := range r.Policies {
		spec, err := sim.ParsePolicyArgs(strings.Fields(p))
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
