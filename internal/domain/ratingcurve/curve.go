// Package ratingcurve maps raw aggregate scores onto the bounded 0-10
// rating scale. The mapping is monotonically non-decreasing, linear near
// the 6.0 baseline, and compresses both tails so only outlier raw scores
// approach the clamp bounds.
//
// Documented bands on the output scale: Poor < 5.5, Average 6.3-6.9,
// Legendary >= 9.3.
package ratingcurve

import "math"

// Curve shape constants. The floor of 4.5 is the engine-internal working
// clamp; displays may clamp further.
const (
	Baseline = 6.0
	Floor    = 4.5
	Ceiling  = 9.9

	// Linear regions around the baseline. The negative slope is steeper
	// than the positive one, so mistakes move the needle faster than
	// routine good play accumulates.
	posInflection = 8.0
	posSlope      = 0.1
	negInflection = 4.0
	negSlope      = 0.3

	// Tail compression rates. Larger tau = slower saturation.
	upperTau = 10.0
	lowerTau = 2.0
)

// Rating maps a raw aggregate score to the final bounded rating.
func Rating(raw float64) float64 {
	var r float64
	switch {
	case raw >= posInflection:
		// Soft saturation toward the ceiling: reaching 9.3+ requires an
		// outlier raw score well past the inflection point.
		knee := Baseline + posSlope*posInflection
		r = knee + (Ceiling-knee)*(1-math.Exp(-(raw-posInflection)/upperTau))
	case raw >= 0:
		r = Baseline + posSlope*raw
	case raw > -negInflection:
		r = Baseline + negSlope*raw
	default:
		knee := Baseline - negSlope*negInflection
		r = knee - (knee-Floor)*(1-math.Exp(-(-raw-negInflection)/lowerTau))
	}
	return clamp(r)
}

func clamp(r float64) float64 {
	return math.Max(Floor, math.Min(Ceiling, r))
}
