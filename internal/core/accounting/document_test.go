package accounting_test

import (
	"testing"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/accounting"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLineTotals(t *testing.T, in accounting.LineItemInput) accounting.LineTotals {
	t.Helper()
	lt, err := accounting.ComputeLineTotals(in)
	require.NoError(t, err)
	return lt
}

func TestAggregateDocumentTotals(t *testing.T) {
	standard := line("3", "100.00", "10", "15") // taxable 270.00, tax 40.50

	tests := []struct {
		name     string
		docType  domain.DocumentType
		lines    []accounting.LineItemInput
		adj      accounting.DocumentAdjustments
		wantSub  string
		wantTax  string
		wantTot  string
		wantErr  error
	}{
		{
			name:    "invoice with two identical lines",
			docType: domain.DocInvoice,
			lines:   []accounting.LineItemInput{standard, standard},
			wantSub: "540.00",
			wantTax: "81.00",
			wantTot: "621.00",
		},
		{
			name:    "quote single line",
			docType: domain.DocQuote,
			lines:   []accounting.LineItemInput{standard},
			wantSub: "270.00",
			wantTax: "40.50",
			wantTot: "310.50",
		},
		{
			name:    "purchase order adds shipping and subtracts discount",
			docType: domain.DocPurchaseOrder,
			lines:   []accounting.LineItemInput{standard},
			adj: accounting.DocumentAdjustments{
				ShippingCost:   dec("25.00"),
				DiscountAmount: dec("10.00"),
			},
			wantSub: "270.00",
			wantTax: "40.50",
			wantTot: "325.50",
		},
		{
			name:    "invoice ignores adjustments",
			docType: domain.DocInvoice,
			lines:   []accounting.LineItemInput{standard},
			adj: accounting.DocumentAdjustments{
				ShippingCost: dec("25.00"),
			},
			wantSub: "270.00",
			wantTax: "40.50",
			wantTot: "310.50",
		},
		{
			name:    "empty document rejected",
			docType: domain.DocInvoice,
			lines:   nil,
			wantErr: apperrors.ErrEmptyDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lineTotals := make([]accounting.LineTotals, 0, len(tt.lines))
			for _, in := range tt.lines {
				lineTotals = append(lineTotals, mustLineTotals(t, in))
			}

			got, err := accounting.AggregateDocumentTotals(tt.docType, lineTotals, tt.adj)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Subtotal.Equal(dec(tt.wantSub)), "subtotal %s", got.Subtotal)
			assert.True(t, got.TaxAmount.Equal(dec(tt.wantTax)), "tax %s", got.TaxAmount)
			assert.True(t, got.TotalAmount.Equal(dec(tt.wantTot)), "total %s", got.TotalAmount)
		})
	}
}

func TestAggregateDocumentTotals_RecomputeIsIdempotent(t *testing.T) {
	lines := []accounting.LineTotals{
		mustLineTotals(t, line("3", "100.00", "10", "15")),
		mustLineTotals(t, line("7", "19.99", "12.5", "21")),
	}

	first, err := accounting.AggregateDocumentTotals(domain.DocInvoice, lines, accounting.DocumentAdjustments{})
	require.NoError(t, err)
	second, err := accounting.AggregateDocumentTotals(domain.DocInvoice, lines, accounting.DocumentAdjustments{})
	require.NoError(t, err)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
	assert.True(t, first.TotalAmount.Equal(second.TotalAmount))
	assert.True(t, first.TotalAmount.Equal(first.Subtotal.Add(first.TaxAmount)))
}

func TestAggregateDocumentTotals_TotalEqualsSubtotalPlusTax(t *testing.T) {
	lines := []accounting.LineTotals{
		mustLineTotals(t, line("1", "0.10", "0", "7")),
		mustLineTotals(t, line("1", "0.10", "0", "7")),
		mustLineTotals(t, line("1", "0.10", "0", "7")),
	}
	got, err := accounting.AggregateDocumentTotals(domain.DocQuote, lines, accounting.DocumentAdjustments{})
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(got.Subtotal.Add(got.TaxAmount)))
}
