package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionLine represents a single debit/credit line within a JournalEntry,
// affecting one account.
//
// By convention exactly one of DebitAmount/CreditAmount is non-zero, but lines
// with both set (or both zero) are tolerated: the posting engine treats the
// net of the pair.
type TransactionLine struct {
	LineID         string          `json:"lineID"`    // Primary Key (UUID)
	EntryID        string          `json:"entryID"`   // FK -> journal_entries.entry_id (Not Null)
	AccountID      string          `json:"accountID"` // FK -> accounts.account_id (Not Null)
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	Description    string          `json:"description"`
	LineSeq        int             `json:"lineSeq"`        // Creation order within the entry; tie-break for same-date ordering
	RunningBalance decimal.Decimal `json:"runningBalance"` // Account balance after this line, set at posting time
	EntryDate      time.Time       `json:"entryDate"`      // Denormalized from the entry for replay ordering
	AuditFields
}

// Net returns debit minus credit for the line.
func (l TransactionLine) Net() decimal.Decimal {
	return l.DebitAmount.Sub(l.CreditAmount)
}
