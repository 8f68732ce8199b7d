package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether the account type is one of the five known types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents a general-ledger account within a company's chart of accounts.
type Account struct {
	AccountID      string          `json:"accountID"`      // Primary Key (UUID)
	CompanyID      string          `json:"companyID"`      // FK -> companies.company_id (NON-NULL)
	Name           string          `json:"name"`           // User-defined name
	AccountType    AccountType     `json:"accountType"`    // ASSET, LIABILITY, etc.
	CurrencyCode   string          `json:"currencyCode"`   // ISO 4217
	Description    string          `json:"description"`    // Nullable user description
	OpeningBalance decimal.Decimal `json:"openingBalance"` // Balance before any posted entries
	Balance        decimal.Decimal `json:"balance"`        // Cached running balance; reconciled against replay
	IsActive       bool            `json:"isActive"`
	AuditFields
}
