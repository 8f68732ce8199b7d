package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
)

// PgxBudgetRepository persists budgets and aggregates expense actuals.
type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, companyID, budgetID string) (*domain.Budget, []domain.BudgetLine, error) {
	query := `
		SELECT budget_id, company_id, name, period_start, period_end,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM budgets
		WHERE company_id = $1 AND budget_id = $2;
	`
	var b domain.Budget
	err := r.Pool.QueryRow(ctx, query, companyID, budgetID).Scan(
		&b.BudgetID, &b.CompanyID, &b.Name, &b.PeriodStart, &b.PeriodEnd,
		&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
	)
	if err != nil {
		return nil, nil, mapError(err, "failed to find budget "+budgetID)
	}

	lineQuery := `
		SELECT budget_line_id, budget_id, category, budgeted_amount,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM budget_lines
		WHERE budget_id = $1
		ORDER BY category;
	`
	rows, err := r.Pool.Query(ctx, lineQuery, budgetID)
	if err != nil {
		return nil, nil, mapError(err, "failed to query budget lines for "+budgetID)
	}
	defer rows.Close()

	var lines []domain.BudgetLine
	for rows.Next() {
		var l domain.BudgetLine
		if err := rows.Scan(
			&l.BudgetLineID, &l.BudgetID, &l.Category, &l.BudgetedAmount,
			&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan budget line row: %w", err)
		}
		lines = append(lines, l)
	}
	return &b, lines, rows.Err()
}

func (r *PgxBudgetRepository) ListBudgetsByCompany(ctx context.Context, companyID string) ([]domain.Budget, error) {
	query := `
		SELECT budget_id, company_id, name, period_start, period_end,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM budgets
		WHERE company_id = $1
		ORDER BY period_start DESC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, mapError(err, "failed to list budgets")
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		var b domain.Budget
		if err := rows.Scan(
			&b.BudgetID, &b.CompanyID, &b.Name, &b.PeriodStart, &b.PeriodEnd,
			&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// AggregateActualsByCategory sums posted expense debits net of credits per
// expense account name over the period. Account name doubles as the spend
// category, so budgets and the chart of accounts share one vocabulary.
func (r *PgxBudgetRepository) AggregateActualsByCategory(ctx context.Context, companyID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT a.name, COALESCE(SUM(tl.debit_amount - tl.credit_amount), 0)
		FROM transaction_lines tl
		JOIN accounts a ON a.account_id = tl.account_id
		JOIN journal_entries je ON je.entry_id = tl.entry_id
		WHERE a.company_id = $1
		  AND a.account_type = 'EXPENSE'
		  AND je.status = 'POSTED'
		  AND tl.entry_date >= $2 AND tl.entry_date <= $3
		GROUP BY a.name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, mapError(err, "failed to aggregate actuals")
	}
	defer rows.Close()

	actuals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var category string
		var amount decimal.Decimal
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan actuals row: %w", err)
		}
		actuals[category] = amount
	}
	return actuals, rows.Err()
}

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget, lines []domain.BudgetLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	budgetQuery := `
		INSERT INTO budgets (
			budget_id, company_id, name, period_start, period_end,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, budgetQuery,
		budget.BudgetID, budget.CompanyID, budget.Name, budget.PeriodStart, budget.PeriodEnd,
		budget.CreatedAt, budget.CreatedBy, budget.LastUpdatedAt, budget.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to insert budget "+budget.BudgetID)
	}

	if err := insertBudgetLines(ctx, tx, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func insertBudgetLines(ctx context.Context, tx pgx.Tx, lines []domain.BudgetLine) error {
	query := `
		INSERT INTO budget_lines (
			budget_line_id, budget_id, category, budgeted_amount,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(query,
			l.BudgetLineID, l.BudgetID, l.Category, l.BudgetedAmount,
			l.CreatedAt, l.CreatedBy, l.LastUpdatedAt, l.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert budget lines: %w", err)
	}
	return nil
}

func (r *PgxBudgetRepository) ReplaceBudgetLines(ctx context.Context, budget domain.Budget, lines []domain.BudgetLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM budget_lines WHERE budget_id = $1;`, budget.BudgetID); err != nil {
		return mapError(err, "failed to delete budget lines for "+budget.BudgetID)
	}
	if err := insertBudgetLines(ctx, tx, lines); err != nil {
		return err
	}

	updateQuery := `
		UPDATE budgets
		SET last_updated_at = $3, last_updated_by = $4
		WHERE company_id = $1 AND budget_id = $2;
	`
	if _, err := tx.Exec(ctx, updateQuery, budget.CompanyID, budget.BudgetID, budget.LastUpdatedAt, budget.LastUpdatedBy); err != nil {
		return mapError(err, "failed to touch budget "+budget.BudgetID)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, companyID, budgetID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM budget_lines WHERE budget_id = $1;`, budgetID); err != nil {
		return mapError(err, "failed to delete budget lines for "+budgetID)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM budgets WHERE company_id = $1 AND budget_id = $2;`, companyID, budgetID)
	if err != nil {
		return mapError(err, "failed to delete budget "+budgetID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "budget "+budgetID)
	}
	return r.Commit(ctx, tx)
}
