package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/accounting"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/core/ports"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
	"github.com/finbooks/bookkeeping_app/internal/utils/money"
)

// accountService provides chart-of-accounts operations.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	clock       ports.Clock
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc, clock ports.Clock) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		accountRepo: accountRepo,
		clock:       clock,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount adds an account to the company's chart of accounts.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	accountType := domain.AccountType(req.AccountType)
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: invalid account type %s", apperrors.ErrValidation, req.AccountType)
	}

	now := s.clock.Now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      companyID,
		Name:           req.Name,
		AccountType:    accountType,
		CurrencyCode:   req.CurrencyCode,
		Description:    req.Description,
		OpeningBalance: req.OpeningBalance,
		Balance:        req.OpeningBalance,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	return &account, nil
}

// GetAccountByID returns an account scoped to the company.
func (s *accountService) GetAccountByID(ctx context.Context, companyID, accountID, requestingUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountByID(ctx, companyID, accountID)
}

// GetAccountsByIDs returns multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string, requestingUserID string) (map[string]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDs)
}

// ListAccounts lists the company's chart of accounts.
func (s *accountService) ListAccounts(ctx context.Context, companyID, requestingUserID string) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.accountRepo.ListAccountsByCompany(ctx, companyID)
}

// GetAccountBalance replays the account's transaction lines and reconciles the
// result against the cached balance. A mismatch beyond tolerance indicates
// drift and is reported as an internal error rather than silently papered over.
func (s *accountService) GetAccountBalance(ctx context.Context, companyID, accountID, requestingUserID string) (decimal.Decimal, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return decimal.Zero, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	lines, err := s.accountRepo.FindTransactionLinesByAccountID(ctx, companyID, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load transaction lines: %w", err)
	}

	replayed, err := accounting.ReplayBalance(*account, lines)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to replay balance: %w", err)
	}

	if !money.Within(replayed, account.Balance) {
		s.LogError(ctx, fmt.Errorf("cached balance %s does not match replay %s", account.Balance, replayed),
			"Account balance drift detected",
			slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("account balance drift: cached %s, replayed %s", account.Balance, replayed)
	}
	return replayed, nil
}

// UpdateAccount updates an account's mutable fields.
func (s *accountService) UpdateAccount(ctx context.Context, companyID, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = s.clock.Now()
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// DeactivateAccount soft-deletes an account. Accounts with a non-zero balance
// stay active so the ledger remains explainable.
func (s *accountService) DeactivateAccount(ctx context.Context, companyID, accountID, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return err
	}
	if !money.Within(account.Balance, decimal.Zero) {
		return fmt.Errorf("%w: account %s has non-zero balance %s", apperrors.ErrValidation, accountID, account.Balance)
	}

	return s.accountRepo.DeactivateAccount(ctx, companyID, accountID, requestingUserID)
}
