// Package synth expands a single-city KPI snapshot into stable synthetic
// series for visualization. Output is deterministic per seed string and is
// documented as synthetic, never represented as measured data.
package synth

import "unicode/utf16"

// Rand is a deterministic 32-bit xorshift generator seeded from a string.
// The same seed always produces the same sequence; stability across calls
// is a functional requirement, not an optimization.
type Rand struct {
	state uint32
}

// NewRand folds the UTF-16 code units of seed into an initial state via
// h = h*31 + unit, with uint32 wraparound.
func NewRand(seed string) *Rand {
	var h uint32
	for _, unit := range utf16.Encode([]rune(seed)) {
		h = h*31 + uint32(unit)
	}
	if h == 0 {
		// xorshift is stuck at zero; any fixed non-zero constant preserves
		// determinism for the empty-fold case.
		h = 0x9e3779b9
	}
	return &Rand{state: h}
}

// Float64 returns the next value in [0, 1).
func (r *Rand) Float64() float64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return float64(x) / (1 << 32)
}

// Between returns the next value in [lo, hi).
func (r *Rand) Between(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// IntBetween returns the next integer in [lo, hi].
func (r *Rand) IntBetween(lo, hi int) int {
	return lo + int(r.Float64()*float64(hi-lo+1))
}
