package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a random float in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Jitter returns a symmetric random perturbation of the given amplitude,
// distributed over (-amplitude/2, amplitude/2).
func (r *RNG) Jitter(amplitude float64) float64 {
	return (r.r.Float64() - 0.5) * amplitude
}
