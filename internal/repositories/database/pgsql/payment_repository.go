package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/bookkeeping_app/internal/core/accounting"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
	"github.com/finbooks/bookkeeping_app/internal/utils/pagination"
)

// PgxPaymentRepository persists payments and their allocations.
type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) *PgxPaymentRepository {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// SavePayment inserts the payment, its allocations and the allocation
// engine's document updates within one transaction.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, allocations []domain.Allocation, updates []accounting.DocumentUpdate) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	paymentQuery := `
		INSERT INTO payments (
			payment_id, company_id, customer_id, payment_date, amount,
			method, reference, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, paymentQuery,
		payment.PaymentID, payment.CompanyID, payment.CustomerID, payment.PaymentDate, payment.Amount,
		payment.Method, payment.Reference, payment.Notes,
		payment.CreatedAt, payment.CreatedBy, payment.LastUpdatedAt, payment.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to insert payment "+payment.PaymentID)
	}

	allocQuery := `
		INSERT INTO allocations (
			allocation_id, payment_id, document_id, amount,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, a := range allocations {
		batch.Queue(allocQuery,
			a.AllocationID, a.PaymentID, a.DocumentID, a.Amount,
			a.CreatedAt, a.CreatedBy, a.LastUpdatedAt, a.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert allocations for payment %s: %w", payment.PaymentID, err)
	}

	if err := applyDocumentUpdatesTx(ctx, tx, payment.CompanyID, updates, payment.CreatedBy, payment.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeletePayment removes the payment and its allocations and applies the
// reversal's document updates atomically.
func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, companyID, paymentID string, updates []accounting.DocumentUpdate, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := applyDocumentUpdatesTx(ctx, tx, companyID, updates, updatedBy, updatedAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM allocations WHERE payment_id = $1;`, paymentID); err != nil {
		return mapError(err, "failed to delete allocations for payment "+paymentID)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM payments WHERE company_id = $1 AND payment_id = $2;`, companyID, paymentID)
	if err != nil {
		return mapError(err, "failed to delete payment "+paymentID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "payment "+paymentID)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, companyID, paymentID string) (*domain.Payment, error) {
	query := `
		SELECT payment_id, company_id, customer_id, payment_date, amount,
		       method, reference, notes,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM payments
		WHERE company_id = $1 AND payment_id = $2;
	`
	var p domain.Payment
	err := r.Pool.QueryRow(ctx, query, companyID, paymentID).Scan(
		&p.PaymentID, &p.CompanyID, &p.CustomerID, &p.PaymentDate, &p.Amount,
		&p.Method, &p.Reference, &p.Notes,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "failed to find payment "+paymentID)
	}
	return &p, nil
}

func (r *PgxPaymentRepository) FindAllocationsByPaymentID(ctx context.Context, paymentID string) ([]domain.Allocation, error) {
	query := `
		SELECT allocation_id, payment_id, document_id, amount,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM allocations
		WHERE payment_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, mapError(err, "failed to query allocations for payment "+paymentID)
	}
	defer rows.Close()

	var allocations []domain.Allocation
	for rows.Next() {
		var a domain.Allocation
		if err := rows.Scan(
			&a.AllocationID, &a.PaymentID, &a.DocumentID, &a.Amount,
			&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan allocation row: %w", err)
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

func (r *PgxPaymentRepository) ListPaymentsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT payment_id, company_id, customer_id, payment_date, amount,
		       method, reference, notes,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM payments
		WHERE company_id = $1
	`
	args := []any{companyID}
	if nextToken != nil {
		paymentDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid pagination token: %w", err)
		}
		query += ` AND (payment_date, created_at) < ($2, $3)`
		args = append(args, paymentDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY payment_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapError(err, "failed to list payments")
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(
			&p.PaymentID, &p.CompanyID, &p.CustomerID, &p.PaymentDate, &p.Amount,
			&p.Method, &p.Reference, &p.Notes,
			&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(payments) > limit {
		payments = payments[:limit]
		last := payments[len(payments)-1]
		t := pagination.EncodeToken(last.PaymentDate, last.CreatedAt)
		token = &t
	}
	return payments, token, nil
}
