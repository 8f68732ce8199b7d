package dto

import (
	"time"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetLineRequest is one budgeted category amount.
type BudgetLineRequest struct {
	Category       string          `json:"category" binding:"required"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount" binding:"required,dgte0"`
}

// CreateBudgetRequest defines the payload for creating a budget.
type CreateBudgetRequest struct {
	Name        string              `json:"name" binding:"required"`
	PeriodStart time.Time           `json:"periodStart" binding:"required"`
	PeriodEnd   time.Time           `json:"periodEnd" binding:"required"`
	Lines       []BudgetLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateBudgetLinesRequest replaces a budget's full line list.
type UpdateBudgetLinesRequest struct {
	Lines []BudgetLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID    string              `json:"budgetID"`
	Name        string              `json:"name"`
	PeriodStart time.Time           `json:"periodStart"`
	PeriodEnd   time.Time           `json:"periodEnd"`
	Lines       []BudgetLineRequest `json:"lines,omitempty"`
}

// BudgetVarianceResponse is one row of the variance report.
type BudgetVarianceResponse struct {
	Category        string          `json:"category"`
	Budgeted        decimal.Decimal `json:"budgeted"`
	Actual          decimal.Decimal `json:"actual"`
	Variance        decimal.Decimal `json:"variance"`
	VariancePercent decimal.Decimal `json:"variancePercent"`
}

// VarianceReportResponse is the full report for one budget.
type VarianceReportResponse struct {
	BudgetID    string                   `json:"budgetID"`
	PeriodStart time.Time                `json:"periodStart"`
	PeriodEnd   time.Time                `json:"periodEnd"`
	Rows        []BudgetVarianceResponse `json:"rows"`
}

// ToBudgetResponse converts a domain.Budget and its lines.
func ToBudgetResponse(b *domain.Budget, lines []domain.BudgetLine) BudgetResponse {
	resp := BudgetResponse{
		BudgetID:    b.BudgetID,
		Name:        b.Name,
		PeriodStart: b.PeriodStart,
		PeriodEnd:   b.PeriodEnd,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, BudgetLineRequest{Category: l.Category, BudgetedAmount: l.BudgetedAmount})
	}
	return resp
}

// ToVarianceRows converts engine variance rows to response rows.
func ToVarianceRows(rows []domain.BudgetVariance) []BudgetVarianceResponse {
	out := make([]BudgetVarianceResponse, len(rows))
	for i, r := range rows {
		out[i] = BudgetVarianceResponse{
			Category:        r.Category,
			Budgeted:        r.Budgeted,
			Actual:          r.Actual,
			Variance:        r.Variance,
			VariancePercent: r.VariancePercent,
		}
	}
	return out
}
