package services

import (
	"context"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations on the chart of accounts.
type AccountReaderSvc interface {
	GetAccountByID(ctx context.Context, companyID, accountID, requestingUserID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string, requestingUserID string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, companyID, requestingUserID string) ([]domain.Account, error)

	// GetAccountBalance replays the account's transaction lines and reconciles
	// the result against the cached balance.
	GetAccountBalance(ctx context.Context, companyID, accountID, requestingUserID string) (decimal.Decimal, error)
}

// AccountWriterSvc defines write operations on the chart of accounts.
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, companyID, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, companyID, accountID, requestingUserID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
