package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Comparison defaults used when a bundle leaves a parameter unset.
const (
	DefaultRoundRobinQuantum = 3
	DefaultMLFQBoostInterval = 50
)

// DefaultMLFQQuanta are the per-level quanta used when a bundle sets none.
var DefaultMLFQQuanta = []int64{4, 8, 16}

// DefaultPolicies is the comparison set, in report order.
var DefaultPolicies = []string{"fifo", "sjf", "stcf", "rr", "mlfq"}

// PolicyBundle holds the policy set of a comparison run, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" and fall back to the defaults above.
type PolicyBundle struct {
	Policies   []string         `yaml:"policies"`
	RoundRobin RoundRobinBundle `yaml:"round_robin"`
	MLFQ       MLFQBundle       `yaml:"mlfq"`
}

// RoundRobinBundle holds Round-Robin parameters.
type RoundRobinBundle struct {
	Quantum *int64 `yaml:"quantum"`
}

// MLFQBundle holds MLFQ parameters.
type MLFQBundle struct {
	Quanta        []int64 `yaml:"quanta"`
	BoostInterval *int64  `yaml:"boost_interval"`
}

// DefaultPolicyBundle returns the five-policy comparison: FIFO, SJF, STCF,
// RR with quantum 3, and MLFQ with quanta 4,8,16 and boost every 50 ticks.
func DefaultPolicyBundle() *PolicyBundle {
	return &PolicyBundle{Policies: append([]string(nil), DefaultPolicies...)}
}

// LoadPolicyBundle reads and parses a YAML policy configuration file.
// Unknown keys are rejected so that typos surface as errors.
func LoadPolicyBundle(path string) (*PolicyBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy config: %w", err)
	}
	var bundle PolicyBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing policy config: %w", err)
	}
	if len(bundle.Policies) == 0 {
		bundle.Policies = append([]string(nil), DefaultPolicies...)
	}
	return &bundle, nil
}

// Validate checks that all policy names and parameter ranges in the bundle are valid.
func (b *PolicyBundle) Validate() error {
	_, err := b.Specs()
	return err
}

// Specs resolves the bundle into one PolicySpec per listed policy.
func (b *PolicyBundle) Specs() ([]PolicySpec, error) {
	specs := make([]PolicySpec, 0, len(b.Policies))
	for _, name := range b.Policies {
		spec := PolicySpec{Name: name}
		switch name {
		case "rr":
			spec.Quantum = b.ResolvedQuantum()
		case "mlfq":
			spec.MLFQ = b.ResolvedMLFQ()
		}
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("policy bundle: %w", err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// ResolvedQuantum returns the RR quantum, falling back to DefaultRoundRobinQuantum.
func (b *PolicyBundle) ResolvedQuantum() int64 {
	if b.RoundRobin.Quantum != nil {
		return *b.RoundRobin.Quantum
	}
	return DefaultRoundRobinQuantum
}

// ResolvedMLFQ returns the MLFQ configuration with defaults filled in.
// The result is not validated.
func (b *PolicyBundle) ResolvedMLFQ() MLFQConfig {
	cfg := MLFQConfig{
		Quanta:        append([]int64(nil), DefaultMLFQQuanta...),
		BoostInterval: DefaultMLFQBoostInterval,
	}
	if len(b.MLFQ.Quanta) > 0 {
		cfg.Quanta = append([]int64(nil), b.MLFQ.Quanta...)
	}
	if b.MLFQ.BoostInterval != nil {
		cfg.BoostInterval = *b.MLFQ.BoostInterval
	}
	return cfg
}
