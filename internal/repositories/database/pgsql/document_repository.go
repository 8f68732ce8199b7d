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

// PgxDocumentRepository persists invoices, quotes and purchase orders.
type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(pool *pgxpool.Pool) *PgxDocumentRepository {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const documentColumns = `
	document_id, company_id, customer_id, vendor_id, document_type, document_number,
	issue_date, due_date, subtotal, tax_amount, shipping_cost, discount_amount,
	total_amount, amount_paid, amount_due, status, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.Row) (domain.Document, error) {
	var d domain.Document
	err := row.Scan(
		&d.DocumentID, &d.CompanyID, &d.CustomerID, &d.VendorID, &d.DocumentType, &d.DocumentNumber,
		&d.IssueDate, &d.DueDate, &d.Subtotal, &d.TaxAmount, &d.ShippingCost, &d.DiscountAmount,
		&d.TotalAmount, &d.AmountPaid, &d.AmountDue, &d.Status, &d.Notes,
		&d.CreatedAt, &d.CreatedBy, &d.LastUpdatedAt, &d.LastUpdatedBy,
	)
	return d, err
}

func (r *PgxDocumentRepository) findLineItems(ctx context.Context, documentID string) ([]domain.LineItem, error) {
	query := `
		SELECT line_item_id, document_id, description, quantity, unit_price,
		       discount_percent, tax_rate, line_subtotal, discount_amount,
		       tax_amount, line_total, position,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM line_items
		WHERE document_id = $1
		ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, mapError(err, "failed to query line items for document "+documentID)
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var li domain.LineItem
		if err := rows.Scan(
			&li.LineItemID, &li.DocumentID, &li.Description, &li.Quantity, &li.UnitPrice,
			&li.DiscountPercent, &li.TaxRate, &li.LineSubtotal, &li.DiscountAmount,
			&li.TaxAmount, &li.LineTotal, &li.Position,
			&li.CreatedAt, &li.CreatedBy, &li.LastUpdatedAt, &li.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		items = append(items, li)
	}
	return items, rows.Err()
}

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, companyID, documentID string) (*domain.Document, []domain.LineItem, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE company_id = $1 AND document_id = $2;`
	doc, err := scanDocument(r.Pool.QueryRow(ctx, query, companyID, documentID))
	if err != nil {
		return nil, nil, mapError(err, "failed to find document "+documentID)
	}
	items, err := r.findLineItems(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}
	return &doc, items, nil
}

func (r *PgxDocumentRepository) FindDocumentsByIDs(ctx context.Context, companyID string, documentIDs []string) (map[string]domain.Document, error) {
	if len(documentIDs) == 0 {
		return map[string]domain.Document{}, nil
	}
	query := `SELECT ` + documentColumns + ` FROM documents WHERE company_id = $1 AND document_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, companyID, documentIDs)
	if err != nil {
		return nil, mapError(err, "failed to query documents")
	}
	defer rows.Close()

	docs := make(map[string]domain.Document)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs[d.DocumentID] = d
	}
	return docs, rows.Err()
}

func (r *PgxDocumentRepository) ListDocumentsByCompany(ctx context.Context, companyID string, docType domain.DocumentType, limit int, nextToken *string) ([]domain.Document, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + documentColumns + ` FROM documents WHERE company_id = $1 AND document_type = $2`
	args := []any{companyID, docType}
	if nextToken != nil {
		issueDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid pagination token: %w", err)
		}
		query += ` AND (issue_date, created_at) < ($3, $4)`
		args = append(args, issueDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY issue_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapError(err, "failed to list documents")
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(docs) > limit {
		docs = docs[:limit]
		last := docs[len(docs)-1]
		t := pagination.EncodeToken(last.IssueDate, last.CreatedAt)
		token = &t
	}
	return docs, token, nil
}

// SaveDocument inserts a document and its line items in one transaction,
// drawing the document number from the per-(company, type, year) sequence.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document, lines []domain.LineItem, sequenceScope string, year int) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	seq, err := nextSequence(ctx, tx, doc.CompanyID, sequenceScope, year)
	if err != nil {
		return "", err
	}
	documentNumber := fmt.Sprintf("%s-%d-%05d", sequenceScope, year, seq)

	docQuery := `
		INSERT INTO documents (
			document_id, company_id, customer_id, vendor_id, document_type, document_number,
			issue_date, due_date, subtotal, tax_amount, shipping_cost, discount_amount,
			total_amount, amount_paid, amount_due, status, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err = tx.Exec(ctx, docQuery,
		doc.DocumentID, doc.CompanyID, doc.CustomerID, doc.VendorID, doc.DocumentType, documentNumber,
		doc.IssueDate, doc.DueDate, doc.Subtotal, doc.TaxAmount, doc.ShippingCost, doc.DiscountAmount,
		doc.TotalAmount, doc.AmountPaid, doc.AmountDue, doc.Status, doc.Notes,
		doc.CreatedAt, doc.CreatedBy, doc.LastUpdatedAt, doc.LastUpdatedBy,
	)
	if err != nil {
		return "", mapError(err, "failed to insert document "+doc.DocumentID)
	}

	if err := insertLineItems(ctx, tx, lines); err != nil {
		return "", err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return documentNumber, nil
}

func insertLineItems(ctx context.Context, tx pgx.Tx, lines []domain.LineItem) error {
	query := `
		INSERT INTO line_items (
			line_item_id, document_id, description, quantity, unit_price,
			discount_percent, tax_rate, line_subtotal, discount_amount,
			tax_amount, line_total, position,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	batch := &pgx.Batch{}
	for _, li := range lines {
		batch.Queue(query,
			li.LineItemID, li.DocumentID, li.Description, li.Quantity, li.UnitPrice,
			li.DiscountPercent, li.TaxRate, li.LineSubtotal, li.DiscountAmount,
			li.TaxAmount, li.LineTotal, li.Position,
			li.CreatedAt, li.CreatedBy, li.LastUpdatedAt, li.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert line items: %w", err)
	}
	return nil
}

// ReplaceDocumentLines deletes the old line list, inserts the new one and
// writes the recomputed aggregates, all in one transaction.
func (r *PgxDocumentRepository) ReplaceDocumentLines(ctx context.Context, doc domain.Document, lines []domain.LineItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM line_items WHERE document_id = $1;`, doc.DocumentID); err != nil {
		return mapError(err, "failed to delete line items for document "+doc.DocumentID)
	}
	if err := insertLineItems(ctx, tx, lines); err != nil {
		return err
	}

	updateQuery := `
		UPDATE documents
		SET subtotal = $3, tax_amount = $4, shipping_cost = $5, discount_amount = $6,
		    total_amount = $7, amount_due = $8, notes = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE company_id = $1 AND document_id = $2;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		doc.CompanyID, doc.DocumentID,
		doc.Subtotal, doc.TaxAmount, doc.ShippingCost, doc.DiscountAmount,
		doc.TotalAmount, doc.AmountDue, doc.Notes,
		doc.LastUpdatedAt, doc.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to update document aggregates "+doc.DocumentID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "document "+doc.DocumentID)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, companyID, documentID string, status domain.DocumentStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE documents
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $1 AND document_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, documentID, status, updatedAt, updatedBy)
	if err != nil {
		return mapError(err, "failed to update document status "+documentID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "document "+documentID)
	}
	return nil
}

// ApplyDocumentUpdates persists the allocation engine's paid/due/status
// results. It runs on the pool when called standalone; the payment repository
// uses applyDocumentUpdatesTx inside its own transaction instead.
func (r *PgxDocumentRepository) ApplyDocumentUpdates(ctx context.Context, companyID string, updates []accounting.DocumentUpdate, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := applyDocumentUpdatesTx(ctx, tx, companyID, updates, updatedBy, updatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func applyDocumentUpdatesTx(ctx context.Context, tx pgx.Tx, companyID string, updates []accounting.DocumentUpdate, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE documents
		SET amount_paid = $3, amount_due = $4, status = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE company_id = $1 AND document_id = $2;
	`
	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(query, companyID, u.DocumentID, u.AmountPaid, u.AmountDue, u.Status, updatedAt, updatedBy)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to apply document updates: %w", err)
	}
	return nil
}
