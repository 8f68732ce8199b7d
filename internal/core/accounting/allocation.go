package accounting

import (
	"fmt"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/utils/money"
	"github.com/shopspring/decimal"
)

// AllocationInput is one requested split of a payment onto a document.
type AllocationInput struct {
	DocumentID string
	Amount     decimal.Decimal
}

// DocumentUpdate is the new paid/due/status state the caller must persist for
// one document, in the same datastore transaction as the payment itself.
type DocumentUpdate struct {
	DocumentID string
	AmountPaid decimal.Decimal
	AmountDue  decimal.Decimal
	Status     domain.DocumentStatus
}

// ApplyAllocations validates a payment's allocations against the referenced
// documents and computes each document's next state. Validation failures are
// returned before any state is produced; the caller must have read the
// documents fresh, under its transaction's row locks.
func ApplyAllocations(payment domain.Payment, allocations []AllocationInput, docs map[string]domain.Document) ([]DocumentUpdate, error) {
	if len(allocations) == 0 {
		return nil, fmt.Errorf("%w: payment must have at least one allocation", apperrors.ErrValidation)
	}

	allocated := decimal.Zero
	for _, alloc := range allocations {
		if alloc.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: allocation amount must be positive for document %s", apperrors.ErrValidation, alloc.DocumentID)
		}
		allocated = allocated.Add(alloc.Amount)
	}
	if !money.Within(allocated, payment.Amount) {
		return nil, &apperrors.AllocationMismatchError{Expected: payment.Amount, Actual: allocated}
	}

	updates := make([]DocumentUpdate, 0, len(allocations))
	for _, alloc := range allocations {
		doc, ok := docs[alloc.DocumentID]
		if !ok {
			return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, alloc.DocumentID)
		}
		if doc.CompanyID != payment.CompanyID || doc.CustomerID != payment.CustomerID {
			return nil, apperrors.ErrCrossTenantAllocation
		}

		newPaid := doc.AmountPaid.Add(alloc.Amount)
		newDue := doc.AmountDue.Sub(alloc.Amount)
		status := doc.Status
		if money.IsSettled(newDue) && status != domain.StatusCancelled {
			status = domain.StatusPaid
		}
		updates = append(updates, DocumentUpdate{
			DocumentID: doc.DocumentID,
			AmountPaid: newPaid,
			AmountDue:  newDue,
			Status:     status,
		})
	}
	return updates, nil
}

// ReverseAllocations computes the inverse of ApplyAllocations for a payment
// being deleted: each allocation's amount moves back from paid to due.
//
// When the reversal reopens a settled document the status reverts to SENT
// unconditionally, even if the document was OVERDUE before it was paid. That
// matches the behavior of the system this replaces; whether it should restore
// the prior status instead is an open product question (see DESIGN.md).
func ReverseAllocations(payment domain.Payment, allocations []domain.Allocation, docs map[string]domain.Document) ([]DocumentUpdate, error) {
	updates := make([]DocumentUpdate, 0, len(allocations))
	for _, alloc := range allocations {
		doc, ok := docs[alloc.DocumentID]
		if !ok {
			return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, alloc.DocumentID)
		}
		if doc.CompanyID != payment.CompanyID {
			return nil, apperrors.ErrCrossTenantAllocation
		}

		newPaid := doc.AmountPaid.Sub(alloc.Amount)
		newDue := doc.AmountDue.Add(alloc.Amount)
		status := doc.Status
		if status == domain.StatusPaid && newDue.GreaterThan(money.Epsilon) {
			status = domain.StatusSent
		}
		updates = append(updates, DocumentUpdate{
			DocumentID: doc.DocumentID,
			AmountPaid: newPaid,
			AmountDue:  newDue,
			Status:     status,
		})
	}
	return updates, nil
}
