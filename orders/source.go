package orders

import (
	"math/rand/v2"
)

// pcgStream is the fixed PCG stream selector for seeded sources.
const pcgStream = 0x9e3779b97f4a7c15

// Source is the random source the Generator draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// NewSeededSource returns a deterministic Source. Identical seeds yield identical order sequences.
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^pcgStream)) //nolint:gosec // synthetic data, weak random is acceptable
}

// NewRandomSource returns a Source seeded from the runtime's random generator.
func NewRandomSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // synthetic data, weak random is acceptable
}
