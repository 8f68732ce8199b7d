package repositories

import (
	"context"
	"time"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal entry data.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry scoped to a company.
	FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all transaction lines of one entry in
	// creation order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.TransactionLine, error)

	// ListEntriesByCompany retrieves a paginated list of entries using
	// token-based pagination on (entry_date, created_at).
	ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal entry data.
type JournalWriter interface {
	// SaveEntry persists an entry and its lines, draws the next entry number
	// from the (company, fiscal year) sequence, and applies the net balance
	// changes to the affected accounts, all within one datastore
	// transaction. Nothing is recorded when any part fails.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.TransactionLine, balanceChanges map[string]decimal.Decimal, fiscalYear int) (entryNumber string, err error)

	// UpdateEntryStatusAndLinks updates the status and reversal linkage of an entry.
	UpdateEntryStatusAndLinks(ctx context.Context, entryID string, status domain.EntryStatus, reversingEntryID *string, originalEntryID *string, updatedBy string, updatedAt time.Time) error
}

// JournalRepositoryFacade combines journal read and write operations.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
