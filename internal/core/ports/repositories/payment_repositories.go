package repositories

import (
	"context"
	"time"

	"github.com/finbooks/bookkeeping_app/internal/core/accounting"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
)

// PaymentReader defines read operations for payments and their allocations.
type PaymentReader interface {
	FindPaymentByID(ctx context.Context, companyID, paymentID string) (*domain.Payment, error)
	FindAllocationsByPaymentID(ctx context.Context, paymentID string) ([]domain.Allocation, error)
	ListPaymentsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Payment, *string, error)
}

// PaymentWriter defines write operations for payments.
type PaymentWriter interface {
	// SavePayment persists the payment, its allocations and the allocation
	// engine's document updates as one atomic transaction.
	SavePayment(ctx context.Context, payment domain.Payment, allocations []domain.Allocation, updates []accounting.DocumentUpdate) error

	// DeletePayment removes the payment and its allocations and applies the
	// reversal's document updates, again atomically.
	DeletePayment(ctx context.Context, companyID, paymentID string, updates []accounting.DocumentUpdate, updatedBy string, updatedAt time.Time) error
}

// PaymentRepositoryFacade combines payment read and write operations.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
