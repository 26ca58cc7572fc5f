package stats

import (
	"fmt"
	"math"
)

// Score is a synthesized scale score with its one-based performance level and
// standard error. A zero StdErr means no error was recorded.
type Score struct {
	Value  int
	Level  int
	StdErr int
}

// PerformanceLevel returns the zero-based band index i such that
// cuts[i] <= score < cuts[i+1]. A score equal to the scale maximum belongs to
// the top band. Scores outside [cuts[0], cuts[-1]] fail with ErrOutOfRange.
func PerformanceLevel(score int, cuts CutPoints) (int, error) {
	if err := cuts.Validate(); err != nil {
		return 0, err
	}
	if score < cuts.Min() || score > cuts.Max() {
		return 0, fmt.Errorf("%w: score %d not in [%d, %d]", ErrOutOfRange, score, cuts.Min(), cuts.Max())
	}
	for i := 1; i < len(cuts)-1; i++ {
		if score < cuts[i] {
			return i - 1, nil
		}
	}
	return cuts.Levels() - 1, nil
}

// ScoreGivenCapability maps capability linearly onto the scale to find a mean
// score, then draws the final score from a Gaussian around that mean with a
// standard deviation of one eighth of the mean's level width. The score is
// clamped to [min, max-1] and the level is derived from the clamped score.
func ScoreGivenCapability(capability Capability, cuts CutPoints, rng Rand) (Score, error) {
	if err := cuts.Validate(); err != nil {
		return Score{}, err
	}

	span := float64(cuts.Max() - cuts.Min())
	mean := float64(cuts.Min()) + capability.Value()/MaxCapability*span

	meanLevel, err := PerformanceLevel(clamp(int(math.Round(mean)), cuts.Min(), cuts.Max()), cuts)
	if err != nil {
		return Score{}, err
	}
	width := float64(cuts[meanLevel+1] - cuts[meanLevel])
	sd := width / 8

	value := clamp(int(math.Round(mean+rng.NormFloat64()*sd)), cuts.Min(), cuts.Max()-1)
	level, err := PerformanceLevel(value, cuts)
	if err != nil {
		return Score{}, err
	}

	return Score{Value: value, Level: level + 1}, nil
}

// ScoreGivenLevel draws a score uniformly from the band of a fixed one-based
// level.
func ScoreGivenLevel(level int, cuts CutPoints, rng Rand) (Score, error) {
	if err := cuts.Validate(); err != nil {
		return Score{}, err
	}
	if level < 1 || level > cuts.Levels() {
		return Score{}, fmt.Errorf("%w: level %d not in [1, %d]", ErrOutOfRange, level, cuts.Levels())
	}

	low, high := cuts[level-1], cuts[level]
	value := low + rng.Intn(high-low)
	return Score{Value: value, Level: level}, nil
}

// RandomStderr returns a plausible standard error for score on the scale
// [min, max]. Error is larger for low scores, roughly 2% of the scale near
// the top growing to 8% at the bottom, with ±10% jitter. The result is at
// least 1.
func RandomStderr(score, min, max int, rng Rand) (int, error) {
	if min >= max {
		return 0, fmt.Errorf("%w: empty scale [%d, %d]", ErrOutOfRange, min, max)
	}
	if score < min || score > max {
		return 0, fmt.Errorf("%w: score %d not in [%d, %d]", ErrOutOfRange, score, min, max)
	}

	span := float64(max - min)
	distance := float64(max-score) / span
	base := span * (0.02 + 0.06*distance*distance)
	jitter := 0.9 + 0.2*rng.Float64()

	stderr := int(math.Round(base * jitter))
	if stderr < 1 {
		stderr = 1
	}
	return stderr, nil
}

// Claim performance levels produced by ClaimPerfLevel.
const (
	ClaimBelowStandard = 1
	ClaimNearStandard  = 2
	ClaimAboveStandard = 3
)

// ClaimPerfLevel classifies score against a single cutpoint using a ±1.5
// standard error band: entirely below the cut is 1, entirely above is 3, a
// band straddling the cut is 2.
func ClaimPerfLevel(score, stderr, cutpoint int) int {
	band := 1.5 * float64(stderr)
	switch {
	case float64(score)+band < float64(cutpoint):
		return ClaimBelowStandard
	case float64(score)-band > float64(cutpoint):
		return ClaimAboveStandard
	default:
		return ClaimNearStandard
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
