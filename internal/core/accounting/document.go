package accounting

import (
	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/utils/money"
	"github.com/shopspring/decimal"
)

// DocumentTotals are the monetary aggregates of a document, recomputed in
// full from its current line list on every edit. Totals are never patched
// incrementally, so they cannot drift from the lines.
type DocumentTotals struct {
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// DocumentAdjustments carries the document-level amounts that apply on top of
// the line sums. Only purchase orders use them.
type DocumentAdjustments struct {
	ShippingCost   decimal.Decimal
	DiscountAmount decimal.Decimal
}

// AggregateDocumentTotals sums computed line totals into document aggregates.
// Subtotal is the sum of taxable amounts (after line discounts); purchase
// orders additionally add shipping and subtract the document-level discount.
func AggregateDocumentTotals(docType domain.DocumentType, lines []LineTotals, adj DocumentAdjustments) (DocumentTotals, error) {
	if len(lines) == 0 {
		return DocumentTotals{}, apperrors.ErrEmptyDocument
	}

	subtotal := decimal.Zero
	taxAmount := decimal.Zero
	for _, lt := range lines {
		subtotal = subtotal.Add(lt.TaxableAmount)
		taxAmount = taxAmount.Add(lt.TaxAmount)
	}

	total := subtotal.Add(taxAmount)
	if docType == domain.DocPurchaseOrder {
		total = total.Add(adj.ShippingCost).Sub(adj.DiscountAmount)
	}

	return DocumentTotals{
		Subtotal:    money.Round(subtotal),
		TaxAmount:   money.Round(taxAmount),
		TotalAmount: money.Round(total),
	}, nil
}
