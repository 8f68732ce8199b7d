package accounting

import (
	"fmt"
	"sort"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/utils/money"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the double-entry direction rule to a line's net
// (debit - credit) for the given account type: debits increase Asset/Expense
// balances, credits increase Liability/Equity/Revenue balances.
func SignedAmount(accountType domain.AccountType, line domain.TransactionLine) (decimal.Decimal, error) {
	net := line.Net()
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return net.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' for account %s", accountType, line.AccountID)
	}
}

// ValidateEntry checks a draft journal entry against the double-entry rules:
// every referenced account must exist in the entry's company, and total
// debits must equal total credits within money.Epsilon. A difference of
// exactly one minor unit is accepted as rounding residue.
//
// Lines with both amounts set, or both zero, are tolerated; each side still
// contributes its full amount to the respective total.
func ValidateEntry(entry domain.JournalEntry, lines []domain.TransactionLine, accounts map[string]domain.Account) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
			return fmt.Errorf("%w: debit and credit amounts must not be negative for account %s", apperrors.ErrValidation, line.AccountID)
		}
		acc, ok := accounts[line.AccountID]
		if !ok || acc.CompanyID != entry.CompanyID {
			return &apperrors.UnknownAccountError{AccountID: line.AccountID}
		}
		if !acc.AccountType.IsValid() {
			return fmt.Errorf("%w: account %s has invalid type %s", apperrors.ErrValidation, line.AccountID, acc.AccountType)
		}
		debits = debits.Add(line.DebitAmount)
		credits = credits.Add(line.CreditAmount)
	}

	if !money.Within(debits, credits) {
		return &apperrors.UnbalancedEntryError{Debits: debits, Credits: credits}
	}
	return nil
}

// EntryNumber formats the human-readable journal entry number for a fiscal
// year and a per-(company, fiscal year) sequence value.
func EntryNumber(fiscalYear int, seq int64) string {
	return fmt.Sprintf("JE-%d-%05d", fiscalYear, seq)
}

// orderLines returns the lines sorted by the ledger ordering rule:
// (entry date, creation sequence). Entries on the same date keep their
// creation order and are never re-ordered retroactively.
func orderLines(lines []domain.TransactionLine) []domain.TransactionLine {
	ordered := make([]domain.TransactionLine, len(lines))
	copy(ordered, lines)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].EntryDate.Equal(ordered[j].EntryDate) {
			return ordered[i].EntryDate.Before(ordered[j].EntryDate)
		}
		return ordered[i].LineSeq < ordered[j].LineSeq
	})
	return ordered
}

// ReplayBalance recomputes an account's balance by replaying all of its
// transaction lines in (entry date, creation sequence) order on top of the
// opening balance. This is the authoritative balance; any cached per-account
// balance must reconcile against it.
func ReplayBalance(account domain.Account, lines []domain.TransactionLine) (decimal.Decimal, error) {
	balance := account.OpeningBalance
	for _, line := range orderLines(lines) {
		signed, err := SignedAmount(account.AccountType, line)
		if err != nil {
			return decimal.Zero, err
		}
		balance = balance.Add(signed)
	}
	return balance, nil
}

// RunningBalances returns the balance after each of the account's lines,
// replayed in ledger order. The slice is parallel to the ordered lines.
func RunningBalances(account domain.Account, lines []domain.TransactionLine) ([]decimal.Decimal, error) {
	ordered := orderLines(lines)
	balances := make([]decimal.Decimal, len(ordered))
	balance := account.OpeningBalance
	for i, line := range ordered {
		signed, err := SignedAmount(account.AccountType, line)
		if err != nil {
			return nil, err
		}
		balance = balance.Add(signed)
		balances[i] = balance
	}
	return balances, nil
}
