package services

import (
	"context"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

// PaymentReaderSvc defines read operations on payments.
type PaymentReaderSvc interface {
	GetPaymentWithAllocations(ctx context.Context, companyID, paymentID, requestingUserID string) (*domain.Payment, []domain.Allocation, error)
	ListPayments(ctx context.Context, companyID string, limit int, nextToken *string, requestingUserID string) ([]domain.Payment, *string, error)
}

// PaymentWriterSvc defines write operations on payments.
type PaymentWriterSvc interface {
	// CreatePayment runs the allocation engine and persists payment,
	// allocations and invoice updates atomically.
	CreatePayment(ctx context.Context, companyID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, []domain.Allocation, error)

	// DeletePayment reverses each allocation's effect on its invoice and
	// removes the payment atomically.
	DeletePayment(ctx context.Context, companyID, paymentID, requestingUserID string) error
}

// PaymentSvcFacade combines all payment-related service interfaces.
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
