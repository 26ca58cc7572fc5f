package stats

import "errors"

// Sentinel errors returned by the statistics engine. They are usually wrapped
// with detail about the offending input; test for them with errors.Is.
var (
	// ErrDegenerateDistribution is returned when a weight vector sums to zero
	// or less and therefore cannot be normalized. Callers decide the fallback.
	ErrDegenerateDistribution = errors.New("degenerate probability distribution")

	// ErrInvalidAdjustment is returned when a capability adjustment is outside
	// the open interval (-10, 1).
	ErrInvalidAdjustment = errors.New("capability adjustment out of range")

	// ErrInvalidWeights is returned when a subscore weight set does not sum
	// to 1.0 within tolerance or contains a non-positive weight.
	ErrInvalidWeights = errors.New("invalid subscore weights")

	// ErrOutOfRange is returned when a score falls outside its scale.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidCutPoints is returned when cut points are not strictly
	// ascending or have fewer than two entries.
	ErrInvalidCutPoints = errors.New("invalid cut points")

	// ErrInvalidCapability is returned when a capability value is outside [0, 4).
	ErrInvalidCapability = errors.New("capability out of range")
)
