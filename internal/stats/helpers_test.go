package stats

import "math/rand"

// fixedRand returns the same draw every time so individual branches can be
// pinned. Shuffle leaves the order untouched.
type fixedRand struct {
	float     float64
	norm      float64
	intn      int
	intnCalls int
}

func (r *fixedRand) Float64() float64 { return r.float }

func (r *fixedRand) Intn(n int) int {
	r.intnCalls++
	if r.intn >= n {
		return n - 1
	}
	return r.intn
}

func (r *fixedRand) NormFloat64() float64 { return r.norm }

func (r *fixedRand) Shuffle(int, func(i, j int)) {}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// ela3 is the grade 3 ELA scale: LOSS, three cuts, HOSS.
var ela3 = CutPoints{2114, 2367, 2432, 2490, 2623}
