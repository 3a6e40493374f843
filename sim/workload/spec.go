package workload

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/schedsim/sim"
)

// WorkloadSpec is the YAML form of a workload: either an explicit process list
// or a generator section describing a synthetic process set.
// PIDs are not part of the file: they are assigned from 1 in list order,
// the same way the text loader assigns them.
type WorkloadSpec struct {
	Version   string         `yaml:"version,omitempty"`
	Processes []ProcessSpec  `yaml:"processes,omitempty"`
	Generator *GeneratorSpec `yaml:"generator,omitempty"`
}

// ProcessSpec describes one process of a WorkloadSpec.
type ProcessSpec struct {
	Arrival  int64 `yaml:"arrival"`
	Burst    int64 `yaml:"burst"`
	Priority int   `yaml:"priority"`
}

// GeneratorSpec parameterizes a synthetic workload.
// Generation is deterministic given the same spec.
type GeneratorSpec struct {
	Seed       int64       `yaml:"seed"`
	Count      int         `yaml:"count"`
	Arrival    ArrivalSpec `yaml:"arrival"`
	Burst      DistSpec    `yaml:"burst"`
	Priorities int         `yaml:"priorities,omitempty"` // priority drawn from [0, priorities); 0 or 1 = all zero
}

// ArrivalSpec configures the inter-arrival process, in ticks.
type ArrivalSpec struct {
	Process string   `yaml:"process"`
	Rate    float64  `yaml:"rate"` // mean arrivals per tick
	CV      *float64 `yaml:"cv,omitempty"`
}

// DistSpec parameterizes a burst length distribution.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// Valid value registries.
var (
	validArrivalProcesses = map[string]bool{
		"poisson": true, "gamma": true, "weibull": true, "uniform": true,
	}
	validDistTypes = map[string]bool{
		"gaussian": true, "exponential": true, "uniform": true, "bimodal": true, "empirical": true, "constant": true,
	}
)

// LoadWorkloadSpec reads a WorkloadSpec from a YAML file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	spec, err := DecodeWorkloadSpec(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// DecodeWorkloadSpec decodes a WorkloadSpec with strict field checking.
func DecodeWorkloadSpec(r io.Reader) (*WorkloadSpec, error) {
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		if err == io.EOF {
			return nil, ErrNoProcesses
		}
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	return &spec, nil
}

// Validate checks that the spec describes exactly one process source.
// Per-process values are checked later by the engine itself.
func (s *WorkloadSpec) Validate() error {
	switch {
	case len(s.Processes) > 0 && s.Generator != nil:
		return fmt.Errorf("processes and generator are mutually exclusive")
	case len(s.Processes) == 0 && s.Generator == nil:
		return ErrNoProcesses
	case s.Generator != nil:
		return s.Generator.Validate()
	}
	return nil
}

// Validate checks every generator field.
func (g *GeneratorSpec) Validate() error {
	if g.Count <= 0 {
		return fmt.Errorf("generator: count must be positive, got %d", g.Count)
	}
	if g.Priorities < 0 {
		return fmt.Errorf("generator: priorities must be non-negative, got %d", g.Priorities)
	}
	if !validArrivalProcesses[g.Arrival.Process] {
		return fmt.Errorf("generator: unknown arrival process %q; valid: poisson, gamma, weibull, uniform", g.Arrival.Process)
	}
	if err := validateFinitePositive("generator.arrival.rate", g.Arrival.Rate); err != nil {
		return err
	}
	if g.Arrival.CV != nil {
		if err := validateFinitePositive("generator.arrival.cv", *g.Arrival.CV); err != nil {
			return err
		}
		if g.Arrival.Process == "weibull" && (*g.Arrival.CV < 0.01 || *g.Arrival.CV > 10.4) {
			return fmt.Errorf("generator: weibull CV must be in [0.01, 10.4], got %f", *g.Arrival.CV)
		}
	}
	return validateDistSpec("generator.burst", &g.Burst)
}

func validateDistSpec(prefix string, d *DistSpec) error {
	if !validDistTypes[d.Type] {
		return fmt.Errorf("%s: unknown distribution type %q; valid: gaussian, exponential, uniform, bimodal, empirical, constant", prefix, d.Type)
	}
	for name, val := range d.Params {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%s.params.%s must be a finite number, got %f", prefix, name, val)
		}
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}

// ToProcesses converts the spec into engine processes, running the generator
// when the spec carries one.
func (s *WorkloadSpec) ToProcesses() ([]sim.Process, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Generator != nil {
		return GenerateProcesses(s.Generator)
	}
	procs := make([]sim.Process, len(s.Processes))
	for i, p := range s.Processes {
		procs[i] = sim.NewProcess(i+1, p.Arrival, p.Burst, p.Priority)
	}
	return procs, nil
}
