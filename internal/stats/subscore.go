package stats

import (
	"fmt"
	"math"
)

// WeightTolerance is how far a weight set may stray from summing to 1.
const WeightTolerance = 0.001

// Weights are the relative contributions of the components of an overall
// score, such as assessment claims. They must sum to 1 within WeightTolerance.
type Weights []float64

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	return total
}

// Validate checks that every weight is positive and that they sum to 1.
// Weights are never renormalized: a bad set is a configuration error.
func (w Weights) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("%w: no weights", ErrInvalidWeights)
	}
	for i, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: weight %d is %g", ErrInvalidWeights, i, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > WeightTolerance {
		return fmt.Errorf("%w: weights %v sum to %g", ErrInvalidWeights, []float64(w), sum)
	}
	return nil
}

// RandomSubscores splits overall into one integer score per weight such that
// Σ weights[i]*scores[i] is within ±1 of overall and every score lies in
// [min, max].
//
// The ±1 bound needs overall to be reachable, that is inside
// [Σw*min, Σw*max]. Weights summing to 1 only within WeightTolerance move
// those ends off the scale's, and an overall score between the two is met by
// pinning every component to the nearer scale end. The error there is at most
// 1 + |Σw-1|*max(|min|, |max|).
//
// Components are visited in shuffled order so none is systematically favoured.
// Each picks a value uniformly from the tightest range that still lets the
// remaining components reach the target, then the remaining target and weight
// mass shrink accordingly. The last component absorbs the remainder. Results
// are returned in the original weight order.
func RandomSubscores(overall int, weights Weights, min, max int, rng Rand) ([]int, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if min > max {
		return nil, fmt.Errorf("%w: empty scale [%d, %d]", ErrOutOfRange, min, max)
	}
	if overall < min || overall > max {
		return nil, fmt.Errorf("%w: overall score %d not in [%d, %d]", ErrOutOfRange, overall, min, max)
	}

	n := len(weights)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

	scores := make([]int, n)
	remainingScore := float64(overall)
	remainingWeight := weights.Sum()
	lowest, highest := float64(min), float64(max)

	for k, idx := range order {
		w := weights[idx]
		rest := remainingWeight - w

		var score int
		if k == n-1 {
			score = clamp(int(math.Round(remainingScore/w)), min, max)
		} else {
			lo := clamp(int(math.Ceil((remainingScore-rest*highest)/w)), min, max)
			hi := clamp(int(math.Floor((remainingScore-rest*lowest)/w)), min, max)
			if lo > hi {
				score = clamp(int(math.Round(remainingScore/remainingWeight)), min, max)
			} else {
				score = lo + rng.Intn(hi-lo+1)
			}
		}

		scores[idx] = score
		remainingScore -= w * float64(score)
		remainingWeight = rest
	}

	return scores, nil
}
