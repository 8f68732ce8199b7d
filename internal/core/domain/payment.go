package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents money received from a customer, distributed across one
// or more invoices via Allocations. A payment is created atomically with its
// allocations; deleting it reverses each allocation's effect.
type Payment struct {
	PaymentID   string          `json:"paymentID"`  // Primary Key (UUID)
	CompanyID   string          `json:"companyID"`  // FK -> companies.company_id (Not Null)
	CustomerID  string          `json:"customerID"` // FK -> customers.customer_id (Not Null)
	PaymentDate time.Time       `json:"paymentDate"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"` // e.g. bank_transfer, cash, card
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
	AuditFields
}

// Allocation is the portion of a payment applied to a specific document.
type Allocation struct {
	AllocationID string          `json:"allocationID"` // Primary Key (UUID)
	PaymentID    string          `json:"paymentID"`    // FK -> payments.payment_id (Not Null)
	DocumentID   string          `json:"documentID"`   // FK -> documents.document_id (Not Null)
	Amount       decimal.Decimal `json:"amount"`       // Positive
	AuditFields
}
