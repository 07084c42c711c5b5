package curve

import (
	"fmt"
	"math"
)

// NoValue is the placeholder rendered for a missing spread.
const NoValue = "—"

// Spread returns the signed difference between a bond's yield to maturity
// and the curve yield at the same horizon, rounded to 2 decimal places.
// Returns nil when either input is missing or not a finite number.
func Spread(ytm, curveYield *float64) *float64 {
	if ytm == nil || curveYield == nil {
		return nil
	}
	if !isFinite(*ytm) || !isFinite(*curveYield) {
		return nil
	}

	value := round2(*ytm - *curveYield)
	return &value
}

// FormatSpread renders a spread for display: "+2.50%", "-1.25%", "0.00%" or
// the "—" placeholder when there is no value. Re-rounding an already rounded
// spread is a no-op, so formatting is idempotent.
func FormatSpread(spread *float64) string {
	if spread == nil || math.IsNaN(*spread) {
		return NoValue
	}

	value := round2(*spread)
	switch {
	case value == 0:
		return "0.00%"
	case value > 0:
		return fmt.Sprintf("+%.2f%%", value)
	default:
		return fmt.Sprintf("%.2f%%", value)
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
