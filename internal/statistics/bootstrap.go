package statistics

import (
	"math"
	"math/rand"
	"sort"
)

// ConfidenceInterval holds a bootstrap confidence interval around a mean.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Mean            float64 `json:"mean"`
	ConfidenceLevel float64 `json:"confidence_level"`
	NumBootstraps   int     `json:"num_bootstraps"`
}

// DefaultBootstrapIterations is the number of bootstrap resamples.
const DefaultBootstrapIterations = 10000

// BootstrapCI computes a percentile bootstrap confidence interval for the
// mean of values. confidenceLevel should be in (0, 1), e.g. 0.95.
// Fewer than 2 values yield a degenerate interval at the mean.
func BootstrapCI(values []float64, confidenceLevel float64) ConfidenceInterval {
	return BootstrapCIWithSeed(values, confidenceLevel, -1)
}

// BootstrapCIWithSeed is like BootstrapCI but accepts a seed for reproducibility.
// A negative seed uses a non-deterministic source.
func BootstrapCIWithSeed(values []float64, confidenceLevel float64, seed int64) ConfidenceInterval {
	m := Mean(values)
	ci := ConfidenceInterval{Lower: m, Upper: m, Mean: m, ConfidenceLevel: confidenceLevel}

	n := len(values)
	if n < 2 {
		return ci
	}

	if seed < 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	iters := DefaultBootstrapIterations
	means := make([]float64, iters)
	sample := make([]float64, n)
	for i := range means {
		for j := range sample {
			sample[j] = values[rng.Intn(n)]
		}
		means[i] = Mean(sample)
	}
	sort.Float64s(means)

	alpha := 1.0 - confidenceLevel
	lo := int(math.Floor(alpha / 2.0 * float64(iters)))
	hi := int(math.Floor((1.0 - alpha/2.0) * float64(iters)))
	if hi >= iters {
		hi = iters - 1
	}

	ci.Lower = means[lo]
	ci.Upper = means[hi]
	ci.NumBootstraps = iters
	return ci
}
