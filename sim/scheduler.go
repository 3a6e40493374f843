package sim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/inference-sim/schedsim/sim/trace"
)

// ErrUnknownPolicy is returned for an unrecognized policy name.
var ErrUnknownPolicy = errors.New("unknown policy")

// Scheduler runs one policy to completion over a process set.
// Schedule resets run state, mutates procs in place and records the timeline into tl.
// tr may be nil. Invalid input is reported as an error before anything is mutated.
type Scheduler interface {
	Name() string
	Schedule(procs []Process, tl *TimelineRecorder, tr *trace.SimulationTrace) error
}

// ValidPolicies is the set of recognized policy names.
// "fcfs" is accepted as an alias of "fifo".
var ValidPolicies = map[string]bool{"fifo": true, "fcfs": true, "sjf": true, "stcf": true, "rr": true, "mlfq": true}

// displayNames maps policy names to the labels used in reports.
var displayNames = map[string]string{
	"fifo": "FIFO",
	"fcfs": "FIFO",
	"sjf":  "SJF",
	"stcf": "STCF",
	"rr":   "RR",
	"mlfq": "MLFQ",
}

// PolicySpec selects a policy and its parameters.
type PolicySpec struct {
	Name    string     // one of ValidPolicies
	Quantum int64      // "rr" only
	MLFQ    MLFQConfig // "mlfq" only
}

// DisplayName returns the label used by reports (e.g. "RR").
func (ps PolicySpec) DisplayName() string {
	if n, ok := displayNames[ps.Name]; ok {
		return n
	}
	return strings.ToUpper(ps.Name)
}

// String renders the spec in CLI argument form, e.g. "mlfq 3 4,8,16 50".
func (ps PolicySpec) String() string {
	switch ps.Name {
	case "rr":
		return fmt.Sprintf("rr %d", ps.Quantum)
	case "mlfq":
		quanta := make([]string, len(ps.MLFQ.Quanta))
		for i, q := range ps.MLFQ.Quanta {
			quanta[i] = strconv.FormatInt(q, 10)
		}
		return fmt.Sprintf("mlfq %d %s %d", ps.MLFQ.NumQueues(), strings.Join(quanta, ","), ps.MLFQ.BoostInterval)
	default:
		return ps.Name
	}
}

// Validate checks the policy name and its parameters.
func (ps PolicySpec) Validate() error {
	if !ValidPolicies[ps.Name] {
		return fmt.Errorf("%w %q", ErrUnknownPolicy, ps.Name)
	}
	switch ps.Name {
	case "rr":
		return RoundRobinConfig{Quantum: ps.Quantum}.Validate()
	case "mlfq":
		return ps.MLFQ.Validate()
	}
	return nil
}

// ParsePolicyArgs parses the CLI form of a policy:
//
//	fifo | sjf | stcf | rr <quantum> | mlfq <num_queues> <q1,q2,...> <boost_interval>
//
// Syntactically invalid parameters are rejected before any engine runs.
func ParsePolicyArgs(args []string) (PolicySpec, error) {
	if len(args) == 0 {
		return PolicySpec{}, fmt.Errorf("%w: no policy given", ErrUnknownPolicy)
	}
	name := strings.ToLower(args[0])
	params := args[1:]
	if !ValidPolicies[name] {
		return PolicySpec{}, fmt.Errorf("%w %q", ErrUnknownPolicy, args[0])
	}
	switch name {
	case "rr":
		if len(params) != 1 {
			return PolicySpec{}, fmt.Errorf("rr requires exactly one parameter <quantum>, got %d", len(params))
		}
		q, err := strconv.ParseInt(params[0], 10, 64)
		if err != nil {
			return PolicySpec{}, fmt.Errorf("rr: parsing quantum %q: %w", params[0], err)
		}
		cfg, err := NewRoundRobinConfig(q)
		if err != nil {
			return PolicySpec{}, err
		}
		return PolicySpec{Name: name, Quantum: cfg.Quantum}, nil
	case "mlfq":
		if len(params) != 3 {
			return PolicySpec{}, fmt.Errorf("mlfq requires <num_queues> <quanta_csv> <boost_interval>, got %d parameters", len(params))
		}
		numQueues, err := strconv.Atoi(params[0])
		if err != nil {
			return PolicySpec{}, fmt.Errorf("mlfq: parsing num_queues %q: %w", params[0], err)
		}
		quanta, err := ParseQuanta(params[1])
		if err != nil {
			return PolicySpec{}, err
		}
		boost, err := strconv.ParseInt(params[2], 10, 64)
		if err != nil {
			return PolicySpec{}, fmt.Errorf("mlfq: parsing boost_interval %q: %w", params[2], err)
		}
		cfg, err := NewMLFQConfig(numQueues, quanta, boost)
		if err != nil {
			return PolicySpec{}, err
		}
		return PolicySpec{Name: name, MLFQ: cfg}, nil
	default:
		if len(params) != 0 {
			return PolicySpec{}, fmt.Errorf("%s takes no parameters, got %v", name, params)
		}
		return PolicySpec{Name: name}, nil
	}
}

// ParseQuanta parses a comma-separated list of quanta, e.g. "4,8,16".
func ParseQuanta(csv string) ([]int64, error) {
	fields := strings.Split(csv, ",")
	quanta := make([]int64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		q, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("mlfq: parsing quantum %q: %w", f, err)
		}
		quanta = append(quanta, q)
	}
	return quanta, nil
}

// NewScheduler creates a Scheduler from a validated PolicySpec.
func NewScheduler(spec PolicySpec) (Scheduler, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	switch spec.Name {
	case "fifo", "fcfs":
		return &FCFSScheduler{}, nil
	case "sjf":
		return &SJFScheduler{}, nil
	case "stcf":
		return &STCFScheduler{}, nil
	case "rr":
		return NewRoundRobinScheduler(RoundRobinConfig{Quantum: spec.Quantum})
	case "mlfq":
		return NewMLFQScheduler(spec.MLFQ)
	default:
		panic(fmt.Sprintf("unhandled policy %q", spec.Name))
	}
}
