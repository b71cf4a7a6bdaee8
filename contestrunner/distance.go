package contestrunner

import (
	"fmt"
	"math"

	"github.com/scooter-solver/contest/config"
	"gonum.org/v1/gonum/stat"
)

// DistanceFunc measures how far a non-negative vector, once normalized, is from
// the discrete uniform distribution of the same length. It is zero only for
// uniform vectors.
type DistanceFunc func(weights []float64) float64

func DistanceByName(name string) (DistanceFunc, error) {
	switch name {
	case config.DistanceWasserstein:
		return WassersteinToUniform, nil
	case config.DistanceKL:
		return KLToUniform, nil
	default:
		return nil, fmt.Errorf("%w: unknown distance %q", config.ErrInvalidConfig, name)
	}
}

// WassersteinToUniform is the earth mover's distance between the normalized
// weights and n equal weights, both read as one-dimensional samples.
// Vectors that sum to zero are infinitely far away.
func WassersteinToUniform(weights []float64) float64 {
	p, ok := normalize(weights)
	if !ok {
		return math.Inf(1)
	}

	u := 1 / float64(len(p))
	distance := 0.0
	for _, v := range p {
		distance += math.Abs(v - u)
	}
	return distance / float64(len(p))
}

// KLToUniform is the Kullback-Leibler divergence, in nats, from the normalized
// weights to the uniform distribution.
func KLToUniform(weights []float64) float64 {
	p, ok := normalize(weights)
	if !ok {
		return math.Inf(1)
	}

	uniform := make([]float64, len(p))
	for i := range uniform {
		uniform[i] = 1 / float64(len(p))
	}

	return math.Max(stat.KullbackLeibler(p, uniform), 0)
}

func normalize(weights []float64) ([]float64, bool) {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if len(weights) == 0 || total <= 0 {
		return nil, false
	}

	p := make([]float64, len(weights))
	for i, w := range weights {
		p[i] = w / total
	}
	return p, true
}
