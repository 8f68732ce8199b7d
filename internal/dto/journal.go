package dto

import (
	"time"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionLineRequest is one debit/credit line of a new journal entry.
type CreateTransactionLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
}

// CreateJournalEntryRequest defines the payload for posting a journal entry.
type CreateJournalEntryRequest struct {
	EntryDate   *time.Time                     `json:"entryDate"` // Defaults to today when omitted
	Description string                         `json:"description" binding:"required"`
	Lines       []CreateTransactionLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// TransactionLineResponse defines the data returned for a transaction line.
type TransactionLineResponse struct {
	LineID         string          `json:"lineID"`
	AccountID      string          `json:"accountID"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	Description    string          `json:"description"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID     string    `json:"entryID"`
	EntryNumber string    `json:"entryNumber"`
	EntryDate   time.Time `json:"entryDate"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// GetJournalEntryResponse combines an entry with its lines.
type GetJournalEntryResponse struct {
	Entry JournalEntryResponse      `json:"entry"`
	Lines []TransactionLineResponse `json:"lines"`
}

// ListJournalEntriesResponse is a page of entries with the next cursor.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:     e.EntryID,
		EntryNumber: e.EntryNumber,
		EntryDate:   e.EntryDate,
		Description: e.Description,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}

// ToTransactionLineResponses converts a slice of domain.TransactionLine.
func ToTransactionLineResponses(lines []domain.TransactionLine) []TransactionLineResponse {
	responses := make([]TransactionLineResponse, len(lines))
	for i, l := range lines {
		responses[i] = TransactionLineResponse{
			LineID:         l.LineID,
			AccountID:      l.AccountID,
			DebitAmount:    l.DebitAmount,
			CreditAmount:   l.CreditAmount,
			Description:    l.Description,
			RunningBalance: l.RunningBalance,
		}
	}
	return responses
}
