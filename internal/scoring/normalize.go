// Package scoring normalizes per-city metrics and ranks markets by a
// weighted investment score.
package scoring

// Normalizer maps a raw metric value onto the 0-100 scale.
type Normalizer func(v float64) float64

// BuildNormalizer returns a min-max normalizer over values, clamped to
// [0, 100]. When all inputs are identical (including the empty list) the
// normalizer returns a constant 50: a flat distribution carries no ranking
// signal and must not be biased toward either extreme.
//
// Normalizers are built fresh per request; each invocation operates on its
// own city set.
func BuildNormalizer(values []float64) Normalizer {
	if len(values) == 0 {
		return func(float64) float64 { return 50 }
	}

	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	if minV == maxV {
		return func(float64) float64 { return 50 }
	}

	span := maxV - minV
	return func(v float64) float64 {
		n := (v - minV) / span * 100
		if n < 0 {
			return 0
		}
		if n > 100 {
			return 100
		}
		return n
	}
}

// RangeNormalize linearly rescales v against a fixed [lo, hi] range onto
// 0-100, clamped. Used by the single-city KPI score, which has no peer set
// to min-max against.
func RangeNormalize(v, lo, hi float64) float64 {
	if hi == lo {
		return 50
	}
	n := (v - lo) / (hi - lo) * 100
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
