package core

import "math/rand"

// Range is a closed numeric interval [Min, Max].
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether v lies in the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// RNG draws jitter for positions, scales and config rewards.
// It is seeded so that a run can be replayed.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a generator with the given seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// FloatBetween returns a uniform float in [lo, hi].
func (g *RNG) FloatBetween(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	v := lo + g.r.Float64()*(hi-lo)
	// Float64 is half-open, keep the result inside the closed range anyway
	return ClampF(v, lo, hi)
}

// Float returns a uniform float inside r.
func (g *RNG) Float(r Range) float64 {
	return g.FloatBetween(r.Min, r.Max)
}

// IntBetween returns a uniform integer in [lo, hi], both inclusive.
func (g *RNG) IntBetween(lo, hi int) int {
	n := hi - lo + 1
	if hi <= lo || n <= 0 {
		return lo
	}
	return lo + g.r.Intn(n)
}
