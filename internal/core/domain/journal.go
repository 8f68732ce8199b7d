package domain

import "time"

// EntryStatus indicates the state of a journal entry.
//
// Draft entries exist only in memory; a successful validation moves the entry
// to Validated, posting persists it as Posted. Validation failure terminates
// the entry as Rejected. Posted entries may later be marked Reversed by a
// mirror-image reversal entry.
type EntryStatus string

const (
	EntryDraft     EntryStatus = "DRAFT"
	EntryValidated EntryStatus = "VALIDATED"
	EntryPosted    EntryStatus = "POSTED"
	EntryRejected  EntryStatus = "REJECTED"
	EntryReversed  EntryStatus = "REVERSED"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple transaction lines.
type JournalEntry struct {
	EntryID          string      `json:"entryID"`     // Primary Key (UUID)
	CompanyID        string      `json:"companyID"`   // FK -> companies.company_id (Not Null)
	EntryNumber      string      `json:"entryNumber"` // Human-readable, e.g. JE-2025-00042
	EntryDate        time.Time   `json:"entryDate"`   // Date the event occurred
	Description      string      `json:"description"`
	Status           EntryStatus `json:"status"`
	ReversingEntryID *string     `json:"reversingEntryID,omitempty"` // Set on the original when reversed
	OriginalEntryID  *string     `json:"originalEntryID,omitempty"`  // Set on the reversal entry
	AuditFields
}
