package stats

// Rand is the subset of *math/rand.Rand used by the engine. Accepting the
// interface lets tests pin individual draws.
type Rand interface {
	Float64() float64
	Intn(n int) int
	NormFloat64() float64
	Shuffle(n int, swap func(i, j int))
}
