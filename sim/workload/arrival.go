package workload

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// ArrivalSampler generates inter-arrival gaps between generated processes.
type ArrivalSampler interface {
	// SampleGap returns the next inter-arrival gap in ticks.
	// Always returns a non-negative value; zero means a simultaneous arrival.
	SampleGap(rng *rand.Rand) int64
}

// PoissonSampler generates exponentially-distributed gaps (CV=1).
type PoissonSampler struct {
	rate float64 // processes per tick
}

func (s *PoissonSampler) SampleGap(rng *rand.Rand) int64 {
	return roundGap(rng.ExpFloat64() / s.rate)
}

// GammaSampler generates Gamma-distributed gaps.
// CV > 1 produces bursty arrivals that pile work up in the ready queue.
type GammaSampler struct {
	shape float64 // 1/CV²
	scale float64 // CV²/rate, in ticks
}

func (s *GammaSampler) SampleGap(rng *rand.Rand) int64 {
	return roundGap(gammaRand(rng, s.shape, s.scale))
}

// gammaRand samples from Gamma(shape, scale) using Marsaglia-Tsang's method.
// For shape < 1: Gamma(shape) = Gamma(shape+1) * U^(1/shape).
func gammaRand(rng *rand.Rand, shape, scale float64) float64 {
	if shape < 1.0 {
		u := rng.Float64()
		return gammaRand(rng, shape+1.0, scale) * math.Pow(u, 1.0/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1.0 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1.0-0.0331*(x*x)*(x*x) {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// WeibullSampler generates Weibull-distributed gaps.
type WeibullSampler struct {
	shape float64 // k
	scale float64 // λ, in ticks
}

func (s *WeibullSampler) SampleGap(rng *rand.Rand) int64 {
	u := rng.Float64()
	if u == 0 {
		u = math.SmallestNonzeroFloat64 // -ln(0) = +Inf
	}
	return roundGap(s.scale * math.Pow(-math.Log(u), 1.0/s.shape))
}

// UniformGapSampler spaces processes a fixed number of ticks apart.
type UniformGapSampler struct {
	gap int64
}

func (s *UniformGapSampler) SampleGap(_ *rand.Rand) int64 {
	return s.gap
}

func roundGap(v float64) int64 {
	if math.IsInf(v, 0) || math.IsNaN(v) || v < 0 {
		return 0
	}
	r := math.Round(v)
	if r >= float64(math.MaxInt64) {
		return math.MaxInt64
	}
	return int64(r)
}

// NewArrivalSampler creates an ArrivalSampler from a validated ArrivalSpec.
func NewArrivalSampler(spec ArrivalSpec) ArrivalSampler {
	rate := spec.Rate
	if rate < 1e-9 {
		rate = 1e-9
	}
	cv := 1.0
	if spec.CV != nil && *spec.CV > 0 {
		cv = *spec.CV
	}
	switch spec.Process {
	case "gamma":
		shape := 1.0 / (cv * cv)
		if shape < 0.01 {
			logrus.Warnf("Gamma shape %.4f (CV=%.1f) is very small; falling back to Poisson", shape, cv)
			return &PoissonSampler{rate: rate}
		}
		return &GammaSampler{shape: shape, scale: cv * cv / rate}
	case "weibull":
		k := weibullShapeFromCV(cv)
		return &WeibullSampler{shape: k, scale: (1.0 / rate) / math.Gamma(1.0+1.0/k)}
	case "uniform":
		return &UniformGapSampler{gap: roundGap(1.0 / rate)}
	default:
		return &PoissonSampler{rate: rate}
	}
}

// weibullShapeFromCV finds k such that CV² = Γ(1+2/k)/Γ(1+1/k)² - 1, by bisection.
func weibullShapeFromCV(targetCV float64) float64 {
	lo, hi := 0.1, 100.0
	for i := 0; i < 100; i++ {
		mid := (lo + hi) / 2.0
		cv := weibullCV(mid)
		if math.Abs(cv-targetCV) < 0.001 {
			return mid
		}
		// CV decreases monotonically in k
		if cv > targetCV {
			lo = mid
		} else {
			hi = mid
		}
	}
	logrus.Warnf("weibullShapeFromCV: no convergence for CV=%.3f; using k=%.3f", targetCV, (lo+hi)/2.0)
	return (lo + hi) / 2.0
}

func weibullCV(k float64) float64 {
	g1 := math.Gamma(1.0 + 1.0/k)
	g2 := math.Gamma(1.0 + 2.0/k)
	return math.Sqrt(g2/(g1*g1) - 1.0)
}
