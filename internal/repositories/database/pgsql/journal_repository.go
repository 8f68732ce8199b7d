package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finbooks/bookkeeping_app/internal/core/accounting"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
	"github.com/finbooks/bookkeeping_app/internal/utils/pagination"
)

// PgxJournalRepository persists journal entries and their transaction lines.
type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveEntry persists an entry, its lines and the net balance changes within
// one database transaction. The steps are: draw the entry number from the
// fiscal-year sequence, insert the entry, lock the affected accounts, apply
// balance changes, then batch-insert the lines with running balances computed
// from the locked pre-change balances.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.TransactionLine, balanceChanges map[string]decimal.Decimal, fiscalYear int) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	seq, err := nextSequence(ctx, tx, entry.CompanyID, "JE", fiscalYear)
	if err != nil {
		return "", err
	}
	entryNumber := accounting.EntryNumber(fiscalYear, seq)

	entryQuery := `
		INSERT INTO journal_entries (
			entry_id, company_id, entry_number, entry_date, description, status,
			reversing_entry_id, original_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID, entry.CompanyID, entryNumber, entry.EntryDate, entry.Description, entry.Status,
		entry.ReversingEntryID, entry.OriginalEntryID,
		entry.CreatedAt, entry.CreatedBy, entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		return "", mapError(err, "failed to insert journal entry "+entry.EntryID)
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		accountIDs = append(accountIDs, id)
	}
	lockedAccounts, err := lockAccountsForUpdate(ctx, tx, entry.CompanyID, accountIDs)
	if err != nil {
		return "", err
	}
	if err := applyBalanceChanges(ctx, tx, entry.CompanyID, balanceChanges, entry.CreatedBy, entry.CreatedAt); err != nil {
		return "", err
	}

	// Running balances start from each account's balance before this entry.
	running := make(map[string]decimal.Decimal, len(lockedAccounts))
	for id, acc := range lockedAccounts {
		running[id] = acc.Balance
	}

	lineQuery := `
		INSERT INTO transaction_lines (
			line_id, entry_id, account_id, debit_amount, credit_amount,
			description, line_seq, running_balance, entry_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		account, ok := lockedAccounts[line.AccountID]
		if !ok {
			return "", fmt.Errorf("locked account %s missing while inserting lines", line.AccountID)
		}
		signed, err := accounting.SignedAmount(account.AccountType, line)
		if err != nil {
			return "", fmt.Errorf("failed to compute signed amount for line %s: %w", line.LineID, err)
		}
		newBalance := running[line.AccountID].Add(signed)
		running[line.AccountID] = newBalance

		batch.Queue(lineQuery,
			line.LineID, line.EntryID, line.AccountID, line.DebitAmount, line.CreditAmount,
			line.Description, line.LineSeq, newBalance, line.EntryDate,
			line.CreatedAt, line.CreatedBy, line.LastUpdatedAt, line.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return "", fmt.Errorf("failed to insert transaction lines for entry %s: %w", entry.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return entryNumber, nil
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT entry_id, company_id, entry_number, entry_date, description, status,
		       reversing_entry_id, original_entry_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE company_id = $1 AND entry_id = $2;
	`
	var e domain.JournalEntry
	err := r.Pool.QueryRow(ctx, query, companyID, entryID).Scan(
		&e.EntryID, &e.CompanyID, &e.EntryNumber, &e.EntryDate, &e.Description, &e.Status,
		&e.ReversingEntryID, &e.OriginalEntryID,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "failed to find journal entry "+entryID)
	}
	return &e, nil
}

func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.TransactionLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, debit_amount, credit_amount,
		       description, line_seq, running_balance, entry_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM transaction_lines
		WHERE entry_id = $1
		ORDER BY line_seq;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, mapError(err, "failed to query lines for entry "+entryID)
	}
	defer rows.Close()

	var lines []domain.TransactionLine
	for rows.Next() {
		var l domain.TransactionLine
		if err := rows.Scan(
			&l.LineID, &l.EntryID, &l.AccountID, &l.DebitAmount, &l.CreditAmount,
			&l.Description, &l.LineSeq, &l.RunningBalance, &l.EntryDate,
			&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction line row: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *PgxJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT entry_id, company_id, entry_number, entry_date, description, status,
		       reversing_entry_id, original_entry_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE company_id = $1
	`
	args := []any{companyID}
	if nextToken != nil {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid pagination token: %w", err)
		}
		query += ` AND (entry_date, created_at) < ($2, $3)`
		args = append(args, entryDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapError(err, "failed to list journal entries")
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		if err := rows.Scan(
			&e.EntryID, &e.CompanyID, &e.EntryNumber, &e.EntryDate, &e.Description, &e.Status,
			&e.ReversingEntryID, &e.OriginalEntryID,
			&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}

func (r *PgxJournalRepository) UpdateEntryStatusAndLinks(ctx context.Context, entryID string, status domain.EntryStatus, reversingEntryID *string, originalEntryID *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2,
		    reversing_entry_id = COALESCE($3, reversing_entry_id),
		    original_entry_id = COALESCE($4, original_entry_id),
		    last_updated_at = $5, last_updated_by = $6
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, status, reversingEntryID, originalEntryID, updatedAt, updatedBy)
	if err != nil {
		return mapError(err, "failed to update journal entry "+entryID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "journal entry "+entryID)
	}
	return nil
}
