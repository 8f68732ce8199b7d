package dto

import (
	"time"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one billable line of a document create/edit payload.
type LineItemRequest struct {
	Description     string          `json:"description" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required,dgte0"`
	UnitPrice       decimal.Decimal `json:"unitPrice" binding:"required,dgte0"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TaxRate         decimal.Decimal `json:"taxRate"`
}

// CreateDocumentRequest defines the payload for creating an invoice, quote or
// purchase order. CustomerID is required for invoices and quotes, VendorID
// for purchase orders; the service enforces the pairing.
type CreateDocumentRequest struct {
	CustomerID     string            `json:"customerID"`
	VendorID       string            `json:"vendorID"`
	IssueDate      *time.Time        `json:"issueDate"` // Defaults to today when omitted
	DueDate        *time.Time        `json:"dueDate"`
	Notes          string            `json:"notes"`
	ShippingCost   decimal.Decimal   `json:"shippingCost"`   // Purchase orders only
	DiscountAmount decimal.Decimal   `json:"discountAmount"` // Purchase orders only
	LineItems      []LineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
}

// UpdateDocumentLinesRequest replaces a document's full line-item list.
type UpdateDocumentLinesRequest struct {
	Notes          *string           `json:"notes"`
	ShippingCost   *decimal.Decimal  `json:"shippingCost"`
	DiscountAmount *decimal.Decimal  `json:"discountAmount"`
	LineItems      []LineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
}

// UpdateDocumentStatusRequest transitions a document's lifecycle status.
type UpdateDocumentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	LineItemID      string          `json:"lineItemID"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	LineSubtotal    decimal.Decimal `json:"lineSubtotal"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
}

// DocumentResponse defines the data returned for a document.
type DocumentResponse struct {
	DocumentID     string          `json:"documentID"`
	DocumentType   string          `json:"documentType"`
	DocumentNumber string          `json:"documentNumber"`
	CustomerID     string          `json:"customerID,omitempty"`
	VendorID       string          `json:"vendorID,omitempty"`
	IssueDate      time.Time       `json:"issueDate"`
	DueDate        time.Time       `json:"dueDate"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	AmountDue      decimal.Decimal `json:"amountDue"`
	Status         string          `json:"status"`
	DaysOverdue    int             `json:"daysOverdue"`
	Notes          string          `json:"notes"`
}

// GetDocumentResponse combines a document with its line items.
type GetDocumentResponse struct {
	Document  DocumentResponse   `json:"document"`
	LineItems []LineItemResponse `json:"lineItems"`
}

// ListDocumentsResponse is a page of documents with the next cursor.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToDocumentResponse converts a domain.Document; now feeds the days-overdue field.
func ToDocumentResponse(d *domain.Document, now time.Time) DocumentResponse {
	return DocumentResponse{
		DocumentID:     d.DocumentID,
		DocumentType:   string(d.DocumentType),
		DocumentNumber: d.DocumentNumber,
		CustomerID:     d.CustomerID,
		VendorID:       d.VendorID,
		IssueDate:      d.IssueDate,
		DueDate:        d.DueDate,
		Subtotal:       d.Subtotal,
		TaxAmount:      d.TaxAmount,
		ShippingCost:   d.ShippingCost,
		DiscountAmount: d.DiscountAmount,
		TotalAmount:    d.TotalAmount,
		AmountPaid:     d.AmountPaid,
		AmountDue:      d.AmountDue,
		Status:         string(d.Status),
		DaysOverdue:    d.DaysOverdue(now),
		Notes:          d.Notes,
	}
}

// ToLineItemResponses converts a slice of domain.LineItem.
func ToLineItemResponses(lines []domain.LineItem) []LineItemResponse {
	responses := make([]LineItemResponse, len(lines))
	for i, l := range lines {
		responses[i] = LineItemResponse{
			LineItemID:      l.LineItemID,
			Description:     l.Description,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
			TaxRate:         l.TaxRate,
			LineSubtotal:    l.LineSubtotal,
			DiscountAmount:  l.DiscountAmount,
			TaxAmount:       l.TaxAmount,
			LineTotal:       l.LineTotal,
		}
	}
	return responses
}
