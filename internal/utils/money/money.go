// Package money consolidates the fixed-point arithmetic and tolerance rules
// used everywhere money totals are computed or compared. Amounts are
// shopspring decimals, never binary floats; rounding is half-up to 2 decimal
// places and is applied only at line/document boundaries, never
// mid-calculation.
package money

import "github.com/shopspring/decimal"

// Epsilon is the tolerance for money-sum equality. Multi-line sums accumulate
// rounding residue of at most one minor unit, so every balance and allocation
// check in the system uses this single value.
var Epsilon = decimal.NewFromFloat(0.01)

// Round applies round-half-up to 2 decimal places (currency minor units).
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Within reports whether a and b are equal within Epsilon.
func Within(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Epsilon)
}

// IsSettled reports whether an outstanding amount is small enough to be
// treated as fully paid (at most Epsilon of rounding residue).
func IsSettled(due decimal.Decimal) bool {
	return due.LessThanOrEqual(Epsilon)
}

// Percent returns amount * pct / 100 at full precision. Callers round the
// result at their own boundary.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(decimal.NewFromInt(100))
}
