package stats

import "fmt"

// ProbabilityVector is an ordered sequence of non-negative weights. Once
// normalized its elements sum to 1.
type ProbabilityVector []float64

// Sum returns the total of all elements.
func (p ProbabilityVector) Sum() float64 {
	var total float64
	for _, v := range p {
		total += v
	}
	return total
}

// Normalize divides every element by the sum of all elements. It fails with
// ErrDegenerateDistribution when the sum is zero or negative.
func Normalize(values []float64) (ProbabilityVector, error) {
	total := ProbabilityVector(values).Sum()
	if total <= 0 {
		return nil, fmt.Errorf("%w: weights %v sum to %g", ErrDegenerateDistribution, values, total)
	}

	out := make(ProbabilityVector, len(values))
	for i, v := range values {
		out[i] = v / total
	}
	return out, nil
}

// WeightedChoice returns an index drawn with probability proportional to its
// weight. When the weights are degenerate it draws uniformly instead.
func WeightedChoice(weights []float64, rng Rand) int {
	dist, err := Normalize(weights)
	if err != nil {
		return rng.Intn(len(weights))
	}
	return dist.choose(rng.Float64())
}

// choose maps a uniform draw u in [0, 1) onto an index of a normalized vector.
func (p ProbabilityVector) choose(u float64) int {
	var cumulative float64
	for i, v := range p {
		cumulative += v
		if u < cumulative {
			return i
		}
	}
	// Rounding can leave the cumulative sum a hair under 1; pick the last
	// bucket with any mass.
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] > 0 {
			return i
		}
	}
	return len(p) - 1
}
