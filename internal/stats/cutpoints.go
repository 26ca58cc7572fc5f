package stats

import "fmt"

// CutPoints is an ascending scale definition [min, cut1, ..., cutK, max]
// describing K+1 performance levels.
type CutPoints []int

// Validate checks that the cut points are strictly ascending and have at
// least two entries.
func (c CutPoints) Validate() error {
	if len(c) < 2 {
		return fmt.Errorf("%w: need at least 2 entries, got %d", ErrInvalidCutPoints, len(c))
	}
	for i := 1; i < len(c); i++ {
		if c[i] <= c[i-1] {
			return fmt.Errorf("%w: %v not strictly ascending at index %d", ErrInvalidCutPoints, []int(c), i)
		}
	}
	return nil
}

// Min returns the lowest score on the scale.
func (c CutPoints) Min() int { return c[0] }

// Max returns the highest score on the scale.
func (c CutPoints) Max() int { return c[len(c)-1] }

// Levels returns the number of performance levels.
func (c CutPoints) Levels() int { return len(c) - 1 }
