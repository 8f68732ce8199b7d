package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the authenticated user is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrEmptyDocument indicates a document was submitted with no line items.
var ErrEmptyDocument = fmt.Errorf("%w: document must have at least one line item", ErrValidation)

// ErrCrossTenantAllocation indicates a payment allocation referenced a document
// outside the payment's company or customer scope.
var ErrCrossTenantAllocation = fmt.Errorf("%w: allocation references a document outside the payment scope", ErrValidation)

// InvalidLineItemError reports a line item whose quantity, price, discount or
// tax rate is outside the accepted range.
type InvalidLineItemError struct {
	Field  string
	Reason string
}

func (e *InvalidLineItemError) Error() string {
	return fmt.Sprintf("invalid line item: %s %s", e.Field, e.Reason)
}

func (e *InvalidLineItemError) Unwrap() error {
	return ErrValidation
}

// AllocationMismatchError reports that payment allocations do not sum to the
// payment amount. Both totals are carried for display.
type AllocationMismatchError struct {
	Expected decimal.Decimal // the payment amount
	Actual   decimal.Decimal // the allocation sum
}

func (e *AllocationMismatchError) Error() string {
	return fmt.Sprintf("allocations sum to %s but payment amount is %s", e.Actual.StringFixed(2), e.Expected.StringFixed(2))
}

func (e *AllocationMismatchError) Unwrap() error {
	return ErrValidation
}

// UnbalancedEntryError reports a journal entry whose debits and credits do not
// agree. Both totals are carried for diagnostics.
type UnbalancedEntryError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("journal entry does not balance: debits %s, credits %s", e.Debits.StringFixed(2), e.Credits.StringFixed(2))
}

func (e *UnbalancedEntryError) Unwrap() error {
	return ErrValidation
}

// UnknownAccountError reports a transaction line referencing an account that
// does not exist or belongs to another company.
type UnknownAccountError struct {
	AccountID string
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("unknown account %s", e.AccountID)
}

func (e *UnknownAccountError) Unwrap() error {
	return ErrValidation
}
