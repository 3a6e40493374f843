package workload

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// BurstSampler generates CPU burst lengths for generated processes.
type BurstSampler interface {
	// Sample returns a burst length in ticks, always >= 1.
	Sample(rng *rand.Rand) int64
}

// GaussianSampler produces clamped Gaussian bursts.
type GaussianSampler struct {
	mean, stdDev float64
	min, max     int64
}

func (s *GaussianSampler) Sample(rng *rand.Rand) int64 {
	if s.min == s.max {
		return atLeastOne(float64(s.min))
	}
	val := rng.NormFloat64()*s.stdDev + s.mean
	return atLeastOne(math.Min(float64(s.max), math.Max(float64(s.min), val)))
}

// ExponentialSampler produces exponentially-distributed bursts.
// Most processes are short with a long tail of CPU-heavy ones.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) int64 {
	return atLeastOne(rng.ExpFloat64() * s.mean)
}

// UniformSampler draws bursts uniformly from [min, max].
type UniformSampler struct {
	min, max int64
}

func (s *UniformSampler) Sample(rng *rand.Rand) int64 {
	if s.max <= s.min {
		return atLeastOne(float64(s.min))
	}
	return atLeastOne(float64(s.min + rng.Int63n(s.max-s.min+1)))
}

// BimodalSampler mixes short interactive bursts with long batch bursts.
// With probability longWeight a burst is drawn around longMean, otherwise around shortMean.
type BimodalSampler struct {
	shortMean  float64
	longMean   float64
	longWeight float64
}

func (s *BimodalSampler) Sample(rng *rand.Rand) int64 {
	if rng.Float64() < s.longWeight {
		return atLeastOne(rng.ExpFloat64() * s.longMean)
	}
	return atLeastOne(rng.ExpFloat64() * s.shortMean)
}

// EmpiricalPDFSampler samples from an empirical burst distribution via inverse CDF.
type EmpiricalPDFSampler struct {
	values []int64
	cdf    []float64
}

// NewEmpiricalPDFSampler creates a sampler from a burst → probability map.
// Probabilities are normalized; non-positive entries are dropped.
func NewEmpiricalPDFSampler(pdf map[int64]float64) *EmpiricalPDFSampler {
	keys := make([]int64, 0, len(pdf))
	total := 0.0
	for k, p := range pdf {
		keys = append(keys, k)
		if p > 0 {
			total += p
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	values := make([]int64, 0, len(keys))
	cdf := make([]float64, 0, len(keys))
	cumulative := 0.0
	for _, k := range keys {
		p := pdf[k]
		if p <= 0 {
			continue
		}
		cumulative += p / total
		values = append(values, k)
		cdf = append(cdf, cumulative)
	}
	if len(cdf) > 0 {
		cdf[len(cdf)-1] = 1.0
	}
	return &EmpiricalPDFSampler{values: values, cdf: cdf}
}

func (s *EmpiricalPDFSampler) Sample(rng *rand.Rand) int64 {
	switch len(s.values) {
	case 0:
		return 1
	case 1:
		return atLeastOne(float64(s.values[0]))
	}
	idx := sort.SearchFloat64s(s.cdf, rng.Float64())
	if idx >= len(s.values) {
		idx = len(s.values) - 1
	}
	return atLeastOne(float64(s.values[idx]))
}

// ConstantSampler always returns the same burst.
type ConstantSampler struct {
	value int64
}

func (s *ConstantSampler) Sample(_ *rand.Rand) int64 {
	return atLeastOne(float64(s.value))
}

func atLeastOne(v float64) int64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 1
	}
	r := int64(math.Round(v))
	if r < 1 {
		return 1
	}
	return r
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewBurstSampler creates a BurstSampler from a DistSpec.
func NewBurstSampler(spec DistSpec) (BurstSampler, error) {
	switch spec.Type {
	case "gaussian":
		if err := requireParam(spec.Params, "mean", "std_dev", "min", "max"); err != nil {
			return nil, err
		}
		return &GaussianSampler{
			mean:   spec.Params["mean"],
			stdDev: spec.Params["std_dev"],
			min:    int64(spec.Params["min"]),
			max:    int64(spec.Params["max"]),
		}, nil

	case "exponential":
		if err := requireParam(spec.Params, "mean"); err != nil {
			return nil, err
		}
		return &ExponentialSampler{mean: spec.Params["mean"]}, nil

	case "uniform":
		if err := requireParam(spec.Params, "min", "max"); err != nil {
			return nil, err
		}
		lo, hi := int64(spec.Params["min"]), int64(spec.Params["max"])
		if lo > hi {
			return nil, fmt.Errorf("uniform distribution min %d exceeds max %d", lo, hi)
		}
		return &UniformSampler{min: lo, max: hi}, nil

	case "bimodal":
		if err := requireParam(spec.Params, "short_mean", "long_mean", "long_weight"); err != nil {
			return nil, err
		}
		w := spec.Params["long_weight"]
		if w < 0 || w > 1 {
			return nil, fmt.Errorf("bimodal long_weight must be in [0,1], got %g", w)
		}
		return &BimodalSampler{shortMean: spec.Params["short_mean"], longMean: spec.Params["long_mean"], longWeight: w}, nil

	case "constant":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		return &ConstantSampler{value: int64(spec.Params["value"])}, nil

	case "empirical":
		pdf := make(map[int64]float64, len(spec.Params))
		for k, v := range spec.Params {
			var burst int64
			if _, err := fmt.Sscanf(k, "%d", &burst); err != nil {
				return nil, fmt.Errorf("empirical PDF key %q is not an integer: %w", k, err)
			}
			pdf[burst] = v
		}
		if len(pdf) == 0 {
			return nil, fmt.Errorf("empirical distribution has no valid bins")
		}
		return NewEmpiricalPDFSampler(pdf), nil

	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}
