package dto

import (
	"time"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllocationRequest is one requested split of a payment onto an invoice.
type AllocationRequest struct {
	DocumentID string          `json:"documentID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required,dgt0"`
}

// CreatePaymentRequest defines the payload for recording a customer payment
// together with its allocations.
type CreatePaymentRequest struct {
	CustomerID  string              `json:"customerID" binding:"required"`
	PaymentDate *time.Time          `json:"paymentDate"` // Defaults to today when omitted
	Amount      decimal.Decimal     `json:"amount" binding:"required,dgt0"`
	Method      string              `json:"method"`
	Reference   string              `json:"reference"`
	Notes       string              `json:"notes"`
	Allocations []AllocationRequest `json:"allocations" binding:"required,min=1,dive"`
}

// AllocationResponse defines the data returned for one allocation.
type AllocationResponse struct {
	AllocationID string          `json:"allocationID"`
	DocumentID   string          `json:"documentID"`
	Amount       decimal.Decimal `json:"amount"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID   string               `json:"paymentID"`
	CustomerID  string               `json:"customerID"`
	PaymentDate time.Time            `json:"paymentDate"`
	Amount      decimal.Decimal      `json:"amount"`
	Method      string               `json:"method"`
	Reference   string               `json:"reference"`
	Notes       string               `json:"notes"`
	Allocations []AllocationResponse `json:"allocations,omitempty"`
}

// ListPaymentsResponse is a page of payments with the next cursor.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToPaymentResponse converts a domain.Payment and its allocations.
func ToPaymentResponse(p *domain.Payment, allocations []domain.Allocation) PaymentResponse {
	resp := PaymentResponse{
		PaymentID:   p.PaymentID,
		CustomerID:  p.CustomerID,
		PaymentDate: p.PaymentDate,
		Amount:      p.Amount,
		Method:      p.Method,
		Reference:   p.Reference,
		Notes:       p.Notes,
	}
	for _, a := range allocations {
		resp.Allocations = append(resp.Allocations, AllocationResponse{
			AllocationID: a.AllocationID,
			DocumentID:   a.DocumentID,
			Amount:       a.Amount,
		})
	}
	return resp
}
