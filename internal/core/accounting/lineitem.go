// Package accounting is the pure computation core behind the billing and
// general-ledger services: line and document totals, payment allocation,
// double-entry validation with running balances, and budget variance. The
// package performs no I/O; services feed it freshly-read domain data and
// persist the results inside their own datastore transaction.
package accounting

import (
	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/utils/money"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// LineItemInput are the user-supplied fields of a billable line.
type LineItemInput struct {
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxRate         decimal.Decimal
}

// LineTotals are the derived amounts for one line, each rounded to currency
// minor units at the line boundary.
type LineTotals struct {
	LineSubtotal   decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableAmount  decimal.Decimal
	TaxAmount      decimal.Decimal
	LineTotal      decimal.Decimal
}

// ComputeLineTotals derives subtotal, discount, tax and total for a single
// line item. Intermediate products keep full precision; each output field is
// rounded once.
func ComputeLineTotals(in LineItemInput) (LineTotals, error) {
	if in.Quantity.IsNegative() {
		return LineTotals{}, &apperrors.InvalidLineItemError{Field: "quantity", Reason: "must not be negative"}
	}
	if in.UnitPrice.IsNegative() {
		return LineTotals{}, &apperrors.InvalidLineItemError{Field: "unitPrice", Reason: "must not be negative"}
	}
	if in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(oneHundred) {
		return LineTotals{}, &apperrors.InvalidLineItemError{Field: "discountPercent", Reason: "must be between 0 and 100"}
	}
	if in.TaxRate.IsNegative() {
		return LineTotals{}, &apperrors.InvalidLineItemError{Field: "taxRate", Reason: "must not be negative"}
	}

	lineSubtotal := in.Quantity.Mul(in.UnitPrice)
	discountAmount := money.Percent(lineSubtotal, in.DiscountPercent)
	taxableAmount := lineSubtotal.Sub(discountAmount)
	taxAmount := money.Percent(taxableAmount, in.TaxRate)

	return LineTotals{
		LineSubtotal:   money.Round(lineSubtotal),
		DiscountAmount: money.Round(discountAmount),
		TaxableAmount:  money.Round(taxableAmount),
		TaxAmount:      money.Round(taxAmount),
		LineTotal:      money.Round(taxableAmount.Add(taxAmount)),
	}, nil
}
