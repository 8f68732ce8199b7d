package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/accounting"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/core/ports"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

// paymentService records customer payments and distributes them across
// invoices through the allocation engine.
type paymentService struct {
	BaseService
	paymentRepo  portsrepo.PaymentRepositoryFacade
	documentRepo portsrepo.DocumentRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	clock        ports.Clock
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	documentRepo portsrepo.DocumentRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	authorizer portssvc.CompanyAuthorizerSvc,
	clock ports.Clock,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService:  BaseService{CompanyAuthorizer: authorizer},
		paymentRepo:  paymentRepo,
		documentRepo: documentRepo,
		customerRepo: customerRepo,
		clock:        clock,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// CreatePayment validates the requested allocations against the referenced
// invoices and persists payment, allocations and invoice updates atomically.
// A mismatch between the payment amount and the allocation sum fails the whole
// request; no partial state is recorded.
func (s *paymentService) CreatePayment(ctx context.Context, companyID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, []domain.Allocation, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, nil, err
	}
	if _, err := s.customerRepo.FindCustomerByID(ctx, companyID, req.CustomerID); err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		CompanyID:   companyID,
		CustomerID:  req.CustomerID,
		PaymentDate: paymentDate,
		Amount:      req.Amount,
		Method:      req.Method,
		Reference:   req.Reference,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	inputs := make([]accounting.AllocationInput, len(req.Allocations))
	documentIDs := make([]string, len(req.Allocations))
	for i, ar := range req.Allocations {
		inputs[i] = accounting.AllocationInput{DocumentID: ar.DocumentID, Amount: ar.Amount}
		documentIDs[i] = ar.DocumentID
	}

	docs, err := s.documentRepo.FindDocumentsByIDs(ctx, companyID, documentIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load allocation targets: %w", err)
	}
	for id, doc := range docs {
		if doc.DocumentType != domain.DocInvoice {
			return nil, nil, fmt.Errorf("%w: document %s is a %s, payments allocate to invoices only", apperrors.ErrValidation, id, doc.DocumentType)
		}
	}

	updates, err := accounting.ApplyAllocations(payment, inputs, docs)
	if err != nil {
		s.LogWarn(ctx, "Payment allocation rejected",
			slog.String("company_id", companyID),
			slog.String("reason", err.Error()))
		return nil, nil, err
	}

	allocations := make([]domain.Allocation, len(inputs))
	for i, in := range inputs {
		allocations[i] = domain.Allocation{
			AllocationID: uuid.NewString(),
			PaymentID:    payment.PaymentID,
			DocumentID:   in.DocumentID,
			Amount:       in.Amount,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}

	if err := s.paymentRepo.SavePayment(ctx, payment, allocations, updates); err != nil {
		s.LogError(ctx, err, "Failed to save payment", slog.String("company_id", companyID))
		return nil, nil, fmt.Errorf("failed to save payment: %w", err)
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", payment.Amount.String()),
		slog.Int("allocations", len(allocations)))
	return &payment, allocations, nil
}

// DeletePayment reverses each allocation's effect on its invoice and removes
// the payment atomically.
func (s *paymentService) DeletePayment(ctx context.Context, companyID, paymentID, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return err
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, companyID, paymentID)
	if err != nil {
		return err
	}
	allocations, err := s.paymentRepo.FindAllocationsByPaymentID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("failed to load allocations: %w", err)
	}

	documentIDs := make([]string, len(allocations))
	for i, a := range allocations {
		documentIDs[i] = a.DocumentID
	}
	docs, err := s.documentRepo.FindDocumentsByIDs(ctx, companyID, documentIDs)
	if err != nil {
		return fmt.Errorf("failed to load allocation targets: %w", err)
	}

	updates, err := accounting.ReverseAllocations(*payment, allocations, docs)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	if err := s.paymentRepo.DeletePayment(ctx, companyID, paymentID, updates, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to delete payment", slog.String("payment_id", paymentID))
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	s.LogInfo(ctx, "Payment deleted", slog.String("payment_id", paymentID))
	return nil
}

// GetPaymentWithAllocations returns a payment and its allocations.
func (s *paymentService) GetPaymentWithAllocations(ctx context.Context, companyID, paymentID, requestingUserID string) (*domain.Payment, []domain.Allocation, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	payment, err := s.paymentRepo.FindPaymentByID(ctx, companyID, paymentID)
	if err != nil {
		return nil, nil, err
	}
	allocations, err := s.paymentRepo.FindAllocationsByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load allocations: %w", err)
	}
	return payment, allocations, nil
}

// ListPayments returns a page of the company's payments.
func (s *paymentService) ListPayments(ctx context.Context, companyID string, limit int, nextToken *string, requestingUserID string) ([]domain.Payment, *string, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	return s.paymentRepo.ListPaymentsByCompany(ctx, companyID, limit, nextToken)
}
