package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType distinguishes the billing documents sharing one aggregate.
type DocumentType string

const (
	DocInvoice       DocumentType = "INVOICE"
	DocQuote         DocumentType = "QUOTE"
	DocPurchaseOrder DocumentType = "PURCHASE_ORDER"
)

// DocumentStatus is the lifecycle state of a billing document. Not every
// status applies to every document type: paid/overdue are invoice states,
// accepted/rejected/expired are quote states, approved is a purchase-order
// state.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "DRAFT"
	StatusSent      DocumentStatus = "SENT"
	StatusPaid      DocumentStatus = "PAID"
	StatusOverdue   DocumentStatus = "OVERDUE"
	StatusCancelled DocumentStatus = "CANCELLED"
	StatusAccepted  DocumentStatus = "ACCEPTED"
	StatusRejected  DocumentStatus = "REJECTED"
	StatusExpired   DocumentStatus = "EXPIRED"
	StatusApproved  DocumentStatus = "APPROVED"
)

// IsTerminal reports whether no further status transition is allowed.
func (s DocumentStatus) IsTerminal() bool {
	switch s {
	case StatusPaid, StatusCancelled, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// LineItem is a single billable line owned by exactly one document. The
// derived fields are recomputed from the input fields on every edit.
type LineItem struct {
	LineItemID      string          `json:"lineItemID"` // Primary Key (UUID)
	DocumentID      string          `json:"documentID"` // FK -> documents.document_id (Not Null)
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`        // Non-negative
	UnitPrice       decimal.Decimal `json:"unitPrice"`       // Non-negative
	DiscountPercent decimal.Decimal `json:"discountPercent"` // 0..100
	TaxRate         decimal.Decimal `json:"taxRate"`         // >= 0
	LineSubtotal    decimal.Decimal `json:"lineSubtotal"`    // Derived: quantity * unitPrice
	DiscountAmount  decimal.Decimal `json:"discountAmount"`  // Derived
	TaxAmount       decimal.Decimal `json:"taxAmount"`       // Derived
	LineTotal       decimal.Decimal `json:"lineTotal"`       // Derived: taxable + tax
	Position        int             `json:"position"`        // Order within the document
	AuditFields
}

// Document represents an invoice, quote or purchase order with its monetary
// aggregates. Totals are always recomputed from the full line-item list.
type Document struct {
	DocumentID     string          `json:"documentID"` // Primary Key (UUID)
	CompanyID      string          `json:"companyID"`  // FK -> companies.company_id (Not Null)
	CustomerID     string          `json:"customerID"` // Set for invoices and quotes
	VendorID       string          `json:"vendorID"`   // Set for purchase orders
	DocumentType   DocumentType    `json:"documentType"`
	DocumentNumber string          `json:"documentNumber"` // e.g. INV-2025-00007
	IssueDate      time.Time       `json:"issueDate"`
	DueDate        time.Time       `json:"dueDate"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`   // Purchase orders only
	DiscountAmount decimal.Decimal `json:"discountAmount"` // Document-level, purchase orders only
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	AmountDue      decimal.Decimal `json:"amountDue"`
	Status         DocumentStatus  `json:"status"`
	Notes          string          `json:"notes"`
	AuditFields
}

// DaysOverdue returns the number of whole days past the due date as of now,
// or 0 when the document is not yet due or already settled.
func (d Document) DaysOverdue(now time.Time) int {
	if d.Status == StatusPaid || d.Status == StatusCancelled {
		return 0
	}
	if !now.After(d.DueDate) {
		return 0
	}
	return int(now.Sub(d.DueDate).Hours() / 24)
}
