package combat

import "math/rand"

// Rand is the single source of randomness for a session: spawn choices,
// enemy spread, loot rolls and particle jitter all draw from it.
type Rand interface {
	Float64() float64 // in [0, 1)
	Intn(n int) int   // in [0, n)
}

// NewRand returns a seeded Rand.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}
