package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget groups budget lines for a company over a reporting period.
type Budget struct {
	BudgetID    string    `json:"budgetID"`  // Primary Key (UUID)
	CompanyID   string    `json:"companyID"` // FK -> companies.company_id (Not Null)
	Name        string    `json:"name"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	AuditFields
}

// BudgetLine is a budgeted amount for one expense category.
type BudgetLine struct {
	BudgetLineID   string          `json:"budgetLineID"` // Primary Key (UUID)
	BudgetID       string          `json:"budgetID"`     // FK -> budgets.budget_id (Not Null)
	Category       string          `json:"category"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount"`
	AuditFields
}

// BudgetVariance is the reporting row comparing a budgeted amount with the
// actuals aggregated over the matching period.
type BudgetVariance struct {
	Category        string          `json:"category"`
	Budgeted        decimal.Decimal `json:"budgeted"`
	Actual          decimal.Decimal `json:"actual"`
	Variance        decimal.Decimal `json:"variance"`        // budgeted - actual
	VariancePercent decimal.Decimal `json:"variancePercent"` // 0 when budgeted is 0
}
