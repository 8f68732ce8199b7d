package repositories

import (
	"context"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves an account scoped to a company.
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts in one query, keyed by ID.
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccountsByCompany retrieves all accounts for a company.
	ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error)

	// FindTransactionLinesByAccountID retrieves every transaction line posted
	// to an account, ordered by (entry_date, line_seq). Used for balance replay.
	FindTransactionLinesByAccountID(ctx context.Context, companyID, accountID string) ([]domain.TransactionLine, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeactivateAccount(ctx context.Context, companyID, accountID, updatedBy string) error
}

// AccountRepositoryFacade combines account read and write operations.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
