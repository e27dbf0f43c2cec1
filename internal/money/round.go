// Package money holds the two rounding rules used for every monetary and
// area figure in the system. They are intentionally distinct: services and
// hectares use the generous rule, ledger amounts use the standard rule.
package money

import "math"

// ulp of 1.0 for IEEE 754 doubles.
const epsilon = 2.220446049250313e-16

// RoundGenerous rounds to two decimals and, when the fractional part of the
// result exceeds 0.95, bumps the value up to the next whole unit
// (49.96 ha -> 50 ha). Applied to hectares, unit prices and service totals.
func RoundGenerous(v float64) float64 {
	r := roundHalfUp(v*100) / 100
	if r-math.Floor(r) > 0.95 {
		return math.Ceil(r)
	}
	return r
}

// RoundStandard is plain half-up rounding to two decimals with an epsilon
// nudge so that sums of already-rounded values never surface artifacts
// such as -0.00. Applied to contribution amounts and derived balances.
func RoundStandard(v float64) float64 {
	r := roundHalfUp((v+epsilon)*100) / 100
	if r == 0 {
		return 0
	}
	return r
}

// roundHalfUp rounds half toward positive infinity, matching the rounding
// the business figures were produced with historically.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
