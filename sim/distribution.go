package sim

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Distribution captures the statistical summary of a per-process timing.
type Distribution struct {
	Mean  float64 `json:"mean"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// NewDistribution computes a Distribution from raw values using linear
// interpolation between order statistics. Returns zero-value Distribution for empty input.
func NewDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Distribution{
		Mean:  stat.Mean(sorted, nil),
		P50:   stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		P95:   stat.Quantile(0.95, stat.LinInterp, sorted, nil),
		P99:   stat.Quantile(0.99, stat.LinInterp, sorted, nil),
		Min:   floats.Min(sorted),
		Max:   floats.Max(sorted),
		Count: len(sorted),
	}
}
