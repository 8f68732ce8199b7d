package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/accounting"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/core/ports"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

// budgetService manages expense budgets and produces variance reports.
type budgetService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
	clock      ports.Clock
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc, clock ports.Clock) portssvc.BudgetSvcFacade {
	return &budgetService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		budgetRepo:  budgetRepo,
		clock:       clock,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// buildBudgetLines materializes request lines, rejecting duplicate categories
// and negative amounts.
func buildBudgetLines(budgetID string, reqs []dto.BudgetLineRequest, now time.Time, userID string) ([]domain.BudgetLine, error) {
	seen := make(map[string]bool, len(reqs))
	lines := make([]domain.BudgetLine, len(reqs))
	for i, lr := range reqs {
		if seen[lr.Category] {
			return nil, fmt.Errorf("%w: duplicate budget category %s", apperrors.ErrValidation, lr.Category)
		}
		seen[lr.Category] = true
		if lr.BudgetedAmount.IsNegative() {
			return nil, fmt.Errorf("%w: budgeted amount must not be negative for category %s", apperrors.ErrValidation, lr.Category)
		}
		lines[i] = domain.BudgetLine{
			BudgetLineID:   uuid.NewString(),
			BudgetID:       budgetID,
			Category:       lr.Category,
			BudgetedAmount: lr.BudgetedAmount,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return lines, nil
}

// CreateBudget creates a budget with its category lines.
func (s *budgetService) CreateBudget(ctx context.Context, companyID string, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, []domain.BudgetLine, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, nil, err
	}
	if !req.PeriodEnd.After(req.PeriodStart) {
		return nil, nil, fmt.Errorf("%w: budget period end must be after the start", apperrors.ErrValidation)
	}

	now := s.clock.Now()
	budget := domain.Budget{
		BudgetID:    uuid.NewString(),
		CompanyID:   companyID,
		Name:        req.Name,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	lines, err := buildBudgetLines(budget.BudgetID, req.Lines, now, creatorUserID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget, lines); err != nil {
		s.LogError(ctx, err, "Failed to save budget", slog.String("company_id", companyID))
		return nil, nil, fmt.Errorf("failed to save budget: %w", err)
	}
	return &budget, lines, nil
}

// GetBudget returns a budget with its lines.
func (s *budgetService) GetBudget(ctx context.Context, companyID, budgetID, requestingUserID string) (*domain.Budget, []domain.BudgetLine, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	return s.budgetRepo.FindBudgetByID(ctx, companyID, budgetID)
}

// ListBudgets lists the company's budgets.
func (s *budgetService) ListBudgets(ctx context.Context, companyID, requestingUserID string) ([]domain.Budget, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.budgetRepo.ListBudgetsByCompany(ctx, companyID)
}

// UpdateBudgetLines replaces the budget's full line list.
func (s *budgetService) UpdateBudgetLines(ctx context.Context, companyID, budgetID string, req dto.UpdateBudgetLinesRequest, requestingUserID string) (*domain.Budget, []domain.BudgetLine, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, nil, err
	}

	budget, _, err := s.budgetRepo.FindBudgetByID(ctx, companyID, budgetID)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	lines, err := buildBudgetLines(budget.BudgetID, req.Lines, now, requestingUserID)
	if err != nil {
		return nil, nil, err
	}
	budget.LastUpdatedAt = now
	budget.LastUpdatedBy = requestingUserID

	if err := s.budgetRepo.ReplaceBudgetLines(ctx, *budget, lines); err != nil {
		s.LogError(ctx, err, "Failed to replace budget lines", slog.String("budget_id", budgetID))
		return nil, nil, fmt.Errorf("failed to replace budget lines: %w", err)
	}
	return budget, lines, nil
}

// DeleteBudget removes a budget and its lines.
func (s *budgetService) DeleteBudget(ctx context.Context, companyID, budgetID, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}
	if _, _, err := s.budgetRepo.FindBudgetByID(ctx, companyID, budgetID); err != nil {
		return err
	}
	return s.budgetRepo.DeleteBudget(ctx, companyID, budgetID)
}

// VarianceReport joins the budget's lines with the actual expense totals
// aggregated over the budget period. Categories with spend but no budget line
// still appear, with a zero budget.
func (s *budgetService) VarianceReport(ctx context.Context, companyID, budgetID, requestingUserID string) ([]domain.BudgetVariance, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	budget, lines, err := s.budgetRepo.FindBudgetByID(ctx, companyID, budgetID)
	if err != nil {
		return nil, err
	}

	budgeted := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		budgeted[l.Category] = l.BudgetedAmount
	}

	actual, err := s.budgetRepo.AggregateActualsByCategory(ctx, companyID, budget.PeriodStart, budget.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate actuals: %w", err)
	}

	return accounting.ComputeVariances(budgeted, actual), nil
}
