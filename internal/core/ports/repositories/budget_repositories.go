package repositories

import (
	"context"
	"time"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetReader defines read operations for budgets and actuals.
type BudgetReader interface {
	FindBudgetByID(ctx context.Context, companyID, budgetID string) (*domain.Budget, []domain.BudgetLine, error)
	ListBudgetsByCompany(ctx context.Context, companyID string) ([]domain.Budget, error)

	// AggregateActualsByCategory sums posted expense amounts per category over
	// a period. The variance calculator consumes the result as-is.
	AggregateActualsByCategory(ctx context.Context, companyID string, from, to time.Time) (map[string]decimal.Decimal, error)
}

// BudgetWriter defines write operations for budgets.
type BudgetWriter interface {
	// SaveBudget persists a budget and its lines atomically.
	SaveBudget(ctx context.Context, budget domain.Budget, lines []domain.BudgetLine) error

	// ReplaceBudgetLines replaces a budget's full line list.
	ReplaceBudgetLines(ctx context.Context, budget domain.Budget, lines []domain.BudgetLine) error

	DeleteBudget(ctx context.Context, companyID, budgetID string) error
}

// BudgetRepositoryFacade combines budget read and write operations.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
