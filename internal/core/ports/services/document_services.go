package services

import (
	"context"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

// DocumentReaderSvc defines read operations on billing documents.
type DocumentReaderSvc interface {
	GetDocument(ctx context.Context, companyID, documentID, requestingUserID string) (*domain.Document, []domain.LineItem, error)
	ListDocuments(ctx context.Context, companyID string, docType domain.DocumentType, limit int, nextToken *string, requestingUserID string) ([]domain.Document, *string, error)
}

// DocumentWriterSvc defines write operations on billing documents.
type DocumentWriterSvc interface {
	CreateDocument(ctx context.Context, companyID string, docType domain.DocumentType, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, []domain.LineItem, error)

	// UpdateDocumentLines replaces the full line list and recomputes totals.
	UpdateDocumentLines(ctx context.Context, companyID, documentID string, req dto.UpdateDocumentLinesRequest, requestingUserID string) (*domain.Document, []domain.LineItem, error)

	UpdateDocumentStatus(ctx context.Context, companyID, documentID string, status domain.DocumentStatus, requestingUserID string) error

	// ConvertQuoteToInvoice copies an accepted quote's lines into a new draft
	// invoice with its own number.
	ConvertQuoteToInvoice(ctx context.Context, companyID, quoteID, requestingUserID string) (*domain.Document, []domain.LineItem, error)
}

// DocumentSvcFacade combines all document-related service interfaces.
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
}
