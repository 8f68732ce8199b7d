package pgsql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
)

// PgxAccountRepository persists the chart of accounts.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `
	account_id, company_id, name, account_type, currency_code, description,
	opening_balance, balance, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID,
		&a.CompanyID,
		&a.Name,
		&a.AccountType,
		&a.CurrencyCode,
		&a.Description,
		&a.OpeningBalance,
		&a.Balance,
		&a.IsActive,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	return a, err
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND account_id = $2;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, companyID, accountID))
	if err != nil {
		return nil, mapError(err, "failed to find account "+accountID)
	}
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND account_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, companyID, accountIDs)
	if err != nil {
		return nil, mapError(err, "failed to query accounts")
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[a.AccountID] = a
	}
	return accounts, rows.Err()
}

func (r *PgxAccountRepository) ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, mapError(err, "failed to list accounts")
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *PgxAccountRepository) FindTransactionLinesByAccountID(ctx context.Context, companyID, accountID string) ([]domain.TransactionLine, error) {
	query := `
		SELECT tl.line_id, tl.entry_id, tl.account_id, tl.debit_amount, tl.credit_amount,
		       tl.description, tl.line_seq, tl.running_balance, tl.entry_date,
		       tl.created_at, tl.created_by, tl.last_updated_at, tl.last_updated_by
		FROM transaction_lines tl
		JOIN journal_entries je ON je.entry_id = tl.entry_id
		WHERE je.company_id = $1 AND tl.account_id = $2
		ORDER BY tl.entry_date, tl.line_seq;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, accountID)
	if err != nil {
		return nil, mapError(err, "failed to query transaction lines for account "+accountID)
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

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (
			account_id, company_id, name, account_type, currency_code, description,
			opening_balance, balance, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID, account.CompanyID, account.Name, account.AccountType,
		account.CurrencyCode, account.Description,
		account.OpeningBalance, account.Balance, account.IsActive,
		account.CreatedAt, account.CreatedBy, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to insert account "+account.AccountID)
	}
	return nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $3, description = $4, last_updated_at = $5, last_updated_by = $6
		WHERE company_id = $1 AND account_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.CompanyID, account.AccountID,
		account.Name, account.Description,
		account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to update account "+account.AccountID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "account "+account.AccountID)
	}
	return nil
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, companyID, accountID, updatedBy string) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = NOW(), last_updated_by = $3
		WHERE company_id = $1 AND account_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, accountID, updatedBy)
	if err != nil {
		return mapError(err, "failed to deactivate account "+accountID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "account "+accountID)
	}
	return nil
}

// lockAccountsForUpdate reads the affected accounts under FOR UPDATE row
// locks, in ascending account ID order so concurrent postings acquire locks
// in the same order and cannot deadlock each other.
func lockAccountsForUpdate(ctx context.Context, tx pgx.Tx, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	ids := make([]string, len(accountIDs))
	copy(ids, accountIDs)
	sort.Strings(ids)

	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND account_id = ANY($2)
		ORDER BY account_id
		FOR UPDATE;`
	rows, err := tx.Query(ctx, query, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(ids))
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accounts[a.AccountID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(accounts) != len(ids) {
		return nil, mapError(pgx.ErrNoRows, "one or more accounts")
	}
	return accounts, nil
}

// applyBalanceChanges adds each account's net change to its cached balance
// inside the caller's transaction. Rows must already be locked.
func applyBalanceChanges(ctx context.Context, tx pgx.Tx, companyID string, changes map[string]decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance + $3, last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $1 AND account_id = $2;
	`
	batch := &pgx.Batch{}
	for accountID, change := range changes {
		batch.Queue(query, companyID, accountID, change, updatedAt, updatedBy)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to apply balance changes: %w", err)
	}
	return nil
}
