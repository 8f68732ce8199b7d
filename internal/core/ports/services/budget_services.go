package services

import (
	"context"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

// BudgetSvcFacade defines budget CRUD and variance reporting.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, companyID string, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, []domain.BudgetLine, error)
	GetBudget(ctx context.Context, companyID, budgetID, requestingUserID string) (*domain.Budget, []domain.BudgetLine, error)
	ListBudgets(ctx context.Context, companyID, requestingUserID string) ([]domain.Budget, error)
	UpdateBudgetLines(ctx context.Context, companyID, budgetID string, req dto.UpdateBudgetLinesRequest, requestingUserID string) (*domain.Budget, []domain.BudgetLine, error)
	DeleteBudget(ctx context.Context, companyID, budgetID, requestingUserID string) error

	// VarianceReport joins the budget's lines with actuals aggregated over
	// the budget period and returns the computed variance rows.
	VarianceReport(ctx context.Context, companyID, budgetID, requestingUserID string) ([]domain.BudgetVariance, error)
}
