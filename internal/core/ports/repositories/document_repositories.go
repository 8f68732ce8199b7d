package repositories

import (
	"context"
	"time"

	"github.com/finbooks/bookkeeping_app/internal/core/accounting"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
)

// DocumentReader defines read operations for billing documents.
type DocumentReader interface {
	// FindDocumentByID retrieves a document with its line items, scoped to a company.
	FindDocumentByID(ctx context.Context, companyID, documentID string) (*domain.Document, []domain.LineItem, error)

	// FindDocumentsByIDs retrieves multiple documents (without lines) keyed by
	// ID. The payment service uses it to load allocation targets in one query.
	FindDocumentsByIDs(ctx context.Context, companyID string, documentIDs []string) (map[string]domain.Document, error)

	// ListDocumentsByCompany retrieves a paginated list of one document type
	// using token-based pagination on (issue_date, created_at).
	ListDocumentsByCompany(ctx context.Context, companyID string, docType domain.DocumentType, limit int, nextToken *string) ([]domain.Document, *string, error)
}

// DocumentWriter defines write operations for billing documents.
type DocumentWriter interface {
	// SaveDocument persists a new document and its line items atomically,
	// drawing the document number from the per-(company, type, year) sequence.
	SaveDocument(ctx context.Context, doc domain.Document, lines []domain.LineItem, sequenceScope string, year int) (documentNumber string, err error)

	// ReplaceDocumentLines replaces the full line-item list and the recomputed
	// aggregates of an existing document in one transaction. Edits never
	// patch lines incrementally.
	ReplaceDocumentLines(ctx context.Context, doc domain.Document, lines []domain.LineItem) error

	// UpdateDocumentStatus transitions a document's status.
	UpdateDocumentStatus(ctx context.Context, companyID, documentID string, status domain.DocumentStatus, updatedBy string, updatedAt time.Time) error

	// ApplyDocumentUpdates persists the paid/due/status changes computed by the
	// allocation engine. Callers run it inside the payment transaction.
	ApplyDocumentUpdates(ctx context.Context, companyID string, updates []accounting.DocumentUpdate, updatedBy string, updatedAt time.Time) error
}

// DocumentRepositoryFacade combines document read and write operations.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
