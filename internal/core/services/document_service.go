package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/accounting"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/core/ports"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

// defaultPaymentTerm is the fallback due-date offset when a document is
// created without an explicit due date.
const defaultPaymentTerm = 30 * 24 * time.Hour

// sequenceScopes maps a document type to its number prefix, e.g. INV-2025-00007.
var sequenceScopes = map[domain.DocumentType]string{
	domain.DocInvoice:       "INV",
	domain.DocQuote:         "QUO",
	domain.DocPurchaseOrder: "PO",
}

// documentService manages invoices, quotes and purchase orders. All totals go
// through the line-item engine; the service never adjusts amounts by hand.
type documentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	vendorRepo   portsrepo.VendorRepositoryFacade
	clock        ports.Clock
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	vendorRepo portsrepo.VendorRepositoryFacade,
	authorizer portssvc.CompanyAuthorizerSvc,
	clock ports.Clock,
) portssvc.DocumentSvcFacade {
	return &documentService{
		BaseService:  BaseService{CompanyAuthorizer: authorizer},
		documentRepo: documentRepo,
		customerRepo: customerRepo,
		vendorRepo:   vendorRepo,
		clock:        clock,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// computeLines runs every requested line through the totals engine and
// returns the materialized line items plus their computed totals.
func computeLines(documentID string, reqs []dto.LineItemRequest, now time.Time, userID string) ([]domain.LineItem, []accounting.LineTotals, error) {
	items := make([]domain.LineItem, len(reqs))
	totals := make([]accounting.LineTotals, len(reqs))
	for i, lr := range reqs {
		lt, err := accounting.ComputeLineTotals(accounting.LineItemInput{
			Quantity:        lr.Quantity,
			UnitPrice:       lr.UnitPrice,
			DiscountPercent: lr.DiscountPercent,
			TaxRate:         lr.TaxRate,
		})
		if err != nil {
			return nil, nil, err
		}
		totals[i] = lt
		items[i] = domain.LineItem{
			LineItemID:      uuid.NewString(),
			DocumentID:      documentID,
			Description:     lr.Description,
			Quantity:        lr.Quantity,
			UnitPrice:       lr.UnitPrice,
			DiscountPercent: lr.DiscountPercent,
			TaxRate:         lr.TaxRate,
			LineSubtotal:    lt.LineSubtotal,
			DiscountAmount:  lt.DiscountAmount,
			TaxAmount:       lt.TaxAmount,
			LineTotal:       lt.LineTotal,
			Position:        i,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return items, totals, nil
}

// validateParty enforces the customer/vendor pairing per document type and
// checks that the referenced party exists in the company.
func (s *documentService) validateParty(ctx context.Context, companyID string, docType domain.DocumentType, customerID, vendorID string) error {
	switch docType {
	case domain.DocInvoice, domain.DocQuote:
		if customerID == "" || vendorID != "" {
			return fmt.Errorf("%w: %s requires a customer and no vendor", apperrors.ErrValidation, docType)
		}
		if _, err := s.customerRepo.FindCustomerByID(ctx, companyID, customerID); err != nil {
			return err
		}
	case domain.DocPurchaseOrder:
		if vendorID == "" || customerID != "" {
			return fmt.Errorf("%w: purchase order requires a vendor and no customer", apperrors.ErrValidation)
		}
		if _, err := s.vendorRepo.FindVendorByID(ctx, companyID, vendorID); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown document type %s", apperrors.ErrValidation, docType)
	}
	return nil
}

// CreateDocument creates an invoice, quote or purchase order in DRAFT status
// with totals computed from its lines.
func (s *documentService) CreateDocument(ctx context.Context, companyID string, docType domain.DocumentType, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, []domain.LineItem, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, nil, err
	}
	if err := s.validateParty(ctx, companyID, docType, req.CustomerID, req.VendorID); err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}
	dueDate := issueDate.Add(defaultPaymentTerm)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	doc := domain.Document{
		DocumentID:     uuid.NewString(),
		CompanyID:      companyID,
		CustomerID:     req.CustomerID,
		VendorID:       req.VendorID,
		DocumentType:   docType,
		IssueDate:      issueDate,
		DueDate:        dueDate,
		ShippingCost:   req.ShippingCost,
		DiscountAmount: req.DiscountAmount,
		Status:         domain.StatusDraft,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	items, lineTotals, err := computeLines(doc.DocumentID, req.LineItems, now, creatorUserID)
	if err != nil {
		return nil, nil, err
	}
	docTotals, err := accounting.AggregateDocumentTotals(docType, lineTotals, accounting.DocumentAdjustments{
		ShippingCost:   req.ShippingCost,
		DiscountAmount: req.DiscountAmount,
	})
	if err != nil {
		return nil, nil, err
	}
	doc.Subtotal = docTotals.Subtotal
	doc.TaxAmount = docTotals.TaxAmount
	doc.TotalAmount = docTotals.TotalAmount
	doc.AmountPaid = decimal.Zero
	doc.AmountDue = docTotals.TotalAmount

	year := issueDate.Year()
	number, err := s.documentRepo.SaveDocument(ctx, doc, items, sequenceScopes[docType], year)
	if err != nil {
		s.LogError(ctx, err, "Failed to save document",
			slog.String("company_id", companyID),
			slog.String("document_type", string(docType)))
		return nil, nil, fmt.Errorf("failed to save document: %w", err)
	}
	doc.DocumentNumber = number

	s.LogInfo(ctx, "Document created",
		slog.String("document_id", doc.DocumentID),
		slog.String("document_number", number))
	return &doc, items, nil
}

// UpdateDocumentLines replaces the document's full line list and recomputes
// every aggregate from scratch. Amounts already paid are preserved and the
// remaining due is rebased on the new total.
func (s *documentService) UpdateDocumentLines(ctx context.Context, companyID, documentID string, req dto.UpdateDocumentLinesRequest, requestingUserID string) (*domain.Document, []domain.LineItem, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, nil, err
	}

	doc, _, err := s.documentRepo.FindDocumentByID(ctx, companyID, documentID)
	if err != nil {
		return nil, nil, err
	}
	if doc.Status.IsTerminal() {
		return nil, nil, fmt.Errorf("%w: document in status %s cannot be edited", apperrors.ErrValidation, doc.Status)
	}

	if req.Notes != nil {
		doc.Notes = *req.Notes
	}
	if req.ShippingCost != nil {
		doc.ShippingCost = *req.ShippingCost
	}
	if req.DiscountAmount != nil {
		doc.DiscountAmount = *req.DiscountAmount
	}

	now := s.clock.Now()
	items, lineTotals, err := computeLines(doc.DocumentID, req.LineItems, now, requestingUserID)
	if err != nil {
		return nil, nil, err
	}
	docTotals, err := accounting.AggregateDocumentTotals(doc.DocumentType, lineTotals, accounting.DocumentAdjustments{
		ShippingCost:   doc.ShippingCost,
		DiscountAmount: doc.DiscountAmount,
	})
	if err != nil {
		return nil, nil, err
	}
	doc.Subtotal = docTotals.Subtotal
	doc.TaxAmount = docTotals.TaxAmount
	doc.TotalAmount = docTotals.TotalAmount
	doc.AmountDue = docTotals.TotalAmount.Sub(doc.AmountPaid)
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = requestingUserID

	if err := s.documentRepo.ReplaceDocumentLines(ctx, *doc, items); err != nil {
		s.LogError(ctx, err, "Failed to replace document lines", slog.String("document_id", documentID))
		return nil, nil, fmt.Errorf("failed to replace document lines: %w", err)
	}
	return doc, items, nil
}

// allowedStatuses lists the statuses each document type may enter via the
// status endpoint. PAID is reachable only through the payment engine.
var allowedStatuses = map[domain.DocumentType]map[domain.DocumentStatus]bool{
	domain.DocInvoice: {
		domain.StatusSent:      true,
		domain.StatusOverdue:   true,
		domain.StatusCancelled: true,
	},
	domain.DocQuote: {
		domain.StatusSent:      true,
		domain.StatusAccepted:  true,
		domain.StatusRejected:  true,
		domain.StatusExpired:   true,
		domain.StatusCancelled: true,
	},
	domain.DocPurchaseOrder: {
		domain.StatusSent:      true,
		domain.StatusApproved:  true,
		domain.StatusCancelled: true,
	},
}

// UpdateDocumentStatus transitions a document's lifecycle status. Terminal
// statuses never transition again.
func (s *documentService) UpdateDocumentStatus(ctx context.Context, companyID, documentID string, status domain.DocumentStatus, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return err
	}

	doc, _, err := s.documentRepo.FindDocumentByID(ctx, companyID, documentID)
	if err != nil {
		return err
	}
	if doc.Status.IsTerminal() {
		return fmt.Errorf("%w: document in status %s cannot transition", apperrors.ErrValidation, doc.Status)
	}
	if !allowedStatuses[doc.DocumentType][status] {
		return fmt.Errorf("%w: status %s is not valid for %s", apperrors.ErrValidation, status, doc.DocumentType)
	}

	return s.documentRepo.UpdateDocumentStatus(ctx, companyID, documentID, status, requestingUserID, s.clock.Now())
}

// ConvertQuoteToInvoice copies an accepted quote's lines into a new draft
// invoice carrying its own number. The quote itself is left untouched.
func (s *documentService) ConvertQuoteToInvoice(ctx context.Context, companyID, quoteID, requestingUserID string) (*domain.Document, []domain.LineItem, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, nil, err
	}

	quote, quoteLines, err := s.documentRepo.FindDocumentByID(ctx, companyID, quoteID)
	if err != nil {
		return nil, nil, err
	}
	if quote.DocumentType != domain.DocQuote {
		return nil, nil, fmt.Errorf("%w: document %s is not a quote", apperrors.ErrValidation, quoteID)
	}
	if quote.Status != domain.StatusAccepted {
		return nil, nil, fmt.Errorf("%w: only accepted quotes convert to invoices, quote is %s", apperrors.ErrValidation, quote.Status)
	}

	lineReqs := make([]dto.LineItemRequest, len(quoteLines))
	for i, l := range quoteLines {
		lineReqs[i] = dto.LineItemRequest{
			Description:     l.Description,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
			TaxRate:         l.TaxRate,
		}
	}

	invoice, items, err := s.CreateDocument(ctx, companyID, domain.DocInvoice, dto.CreateDocumentRequest{
		CustomerID: quote.CustomerID,
		Notes:      quote.Notes,
		LineItems:  lineReqs,
	}, requestingUserID)
	if err != nil {
		return nil, nil, err
	}

	s.LogInfo(ctx, "Quote converted to invoice",
		slog.String("quote_id", quote.DocumentID),
		slog.String("invoice_id", invoice.DocumentID))
	return invoice, items, nil
}

// GetDocument returns a document with its line items.
func (s *documentService) GetDocument(ctx context.Context, companyID, documentID, requestingUserID string) (*domain.Document, []domain.LineItem, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	return s.documentRepo.FindDocumentByID(ctx, companyID, documentID)
}

// ListDocuments returns a page of one document type for the company.
func (s *documentService) ListDocuments(ctx context.Context, companyID string, docType domain.DocumentType, limit int, nextToken *string, requestingUserID string) ([]domain.Document, *string, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	return s.documentRepo.ListDocumentsByCompany(ctx, companyID, docType, limit, nextToken)
}
