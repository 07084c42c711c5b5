package curve

import (
	"math"
	"sort"
)

// Interpolate returns the curve yield at the given horizon (years), linearly
// interpolated between the two bracketing terms and rounded to 2 decimal
// places. A horizon matching an existing term returns that term's yield
// unchanged. Horizons outside the observed range are clamped to the nearest
// edge term. Returns nil for an empty curve; never fails otherwise.
func Interpolate(curve map[float64]float64, horizon float64) *float64 {
	if len(curve) == 0 {
		return nil
	}

	if value, ok := curve[horizon]; ok {
		return &value
	}

	terms := make([]float64, 0, len(curve))
	for term := range curve {
		terms = append(terms, term)
	}
	sort.Float64s(terms)

	var lower, upper float64
	var hasLower, hasUpper bool

	for _, term := range terms {
		if term < horizon {
			lower, hasLower = term, true
			continue
		}
		if term > horizon {
			upper, hasUpper = term, true
			break
		}
	}

	if !hasLower {
		lower = terms[0]
	}
	if !hasUpper {
		upper = terms[len(terms)-1]
	}

	if lower == upper {
		value := curve[lower]
		return &value
	}

	yieldLower, yieldUpper := curve[lower], curve[upper]
	value := round2(yieldLower + (yieldUpper-yieldLower)*((horizon-lower)/(upper-lower)))
	return &value
}

// round2 rounds to 2 decimal places, halves go away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
