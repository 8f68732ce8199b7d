package accounting

import (
	"sort"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeVariances joins budgeted amounts with actuals aggregated by category
// and computes variance (budgeted - actual) and variance percent per
// category. Categories present only in actuals are reported with a zero
// budget; a zero budget yields a zero variance percent rather than a division
// by zero. The result is ordered by category for deterministic reports.
func ComputeVariances(budgeted map[string]decimal.Decimal, actual map[string]decimal.Decimal) []domain.BudgetVariance {
	categories := make(map[string]struct{}, len(budgeted)+len(actual))
	for c := range budgeted {
		categories[c] = struct{}{}
	}
	for c := range actual {
		categories[c] = struct{}{}
	}

	ordered := make([]string, 0, len(categories))
	for c := range categories {
		ordered = append(ordered, c)
	}
	sort.Strings(ordered)

	variances := make([]domain.BudgetVariance, 0, len(ordered))
	for _, c := range ordered {
		b := budgeted[c]
		a := actual[c]
		variance := b.Sub(a)
		pct := decimal.Zero
		if !b.IsZero() {
			pct = variance.Div(b).Mul(oneHundred)
		}
		variances = append(variances, domain.BudgetVariance{
			Category:        c,
			Budgeted:        b,
			Actual:          a,
			Variance:        variance,
			VariancePercent: pct,
		})
	}
	return variances
}
