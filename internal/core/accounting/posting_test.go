package accounting_test

import (
	"testing"
	"time"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/accounting"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func account(id, companyID string, accType domain.AccountType, opening string) domain.Account {
	return domain.Account{
		AccountID:      id,
		CompanyID:      companyID,
		AccountType:    accType,
		OpeningBalance: dec(opening),
		IsActive:       true,
	}
}

func txLine(accountID string, debit, credit string, seq int, date time.Time) domain.TransactionLine {
	return domain.TransactionLine{
		AccountID:    accountID,
		DebitAmount:  dec(debit),
		CreditAmount: dec(credit),
		LineSeq:      seq,
		EntryDate:    date,
	}
}

var day1 = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
var day2 = time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

func TestValidateEntry(t *testing.T) {
	entry := domain.JournalEntry{EntryID: "je_1", CompanyID: "co_1", Status: domain.EntryDraft}
	accounts := map[string]domain.Account{
		"cash":    account("cash", "co_1", domain.Asset, "0"),
		"revenue": account("revenue", "co_1", domain.Revenue, "0"),
		"foreign": account("foreign", "co_2", domain.Asset, "0"),
	}

	tests := []struct {
		name    string
		lines   []domain.TransactionLine
		wantErr error
	}{
		{
			name: "balanced entry passes",
			lines: []domain.TransactionLine{
				txLine("cash", "500.00", "0", 1, day1),
				txLine("revenue", "0", "500.00", 2, day1),
			},
		},
		{
			name: "difference exactly at epsilon passes",
			lines: []domain.TransactionLine{
				txLine("cash", "500.00", "0", 1, day1),
				txLine("revenue", "0", "499.99", 2, day1),
			},
		},
		{
			name: "line with both sides set is netted into totals",
			lines: []domain.TransactionLine{
				txLine("cash", "500.00", "100.00", 1, day1),
				txLine("revenue", "0", "400.00", 2, day1),
			},
		},
		{
			name: "single line rejected",
			lines: []domain.TransactionLine{
				txLine("cash", "500.00", "0", 1, day1),
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "negative amount rejected",
			lines: []domain.TransactionLine{
				txLine("cash", "-500.00", "0", 1, day1),
				txLine("revenue", "0", "-500.00", 2, day1),
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "unknown account rejected",
			lines: []domain.TransactionLine{
				txLine("cash", "500.00", "0", 1, day1),
				txLine("missing", "0", "500.00", 2, day1),
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "foreign company account rejected",
			lines: []domain.TransactionLine{
				txLine("cash", "500.00", "0", 1, day1),
				txLine("foreign", "0", "500.00", 2, day1),
			},
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateEntry(entry, tt.lines, accounts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateEntry_UnbalancedCarriesTotals(t *testing.T) {
	entry := domain.JournalEntry{EntryID: "je_1", CompanyID: "co_1"}
	accounts := map[string]domain.Account{
		"cash":    account("cash", "co_1", domain.Asset, "0"),
		"revenue": account("revenue", "co_1", domain.Revenue, "0"),
	}
	err := accounting.ValidateEntry(entry, []domain.TransactionLine{
		txLine("cash", "500.00", "0", 1, day1),
		txLine("revenue", "0", "499.97", 2, day1),
	}, accounts)

	var unbalanced *apperrors.UnbalancedEntryError
	require.ErrorAs(t, err, &unbalanced)
	assert.True(t, unbalanced.Debits.Equal(dec("500.00")))
	assert.True(t, unbalanced.Credits.Equal(dec("499.97")))
}

func TestValidateEntry_UnknownAccountCarriesID(t *testing.T) {
	entry := domain.JournalEntry{EntryID: "je_1", CompanyID: "co_1"}
	accounts := map[string]domain.Account{
		"cash": account("cash", "co_1", domain.Asset, "0"),
	}
	err := accounting.ValidateEntry(entry, []domain.TransactionLine{
		txLine("cash", "10.00", "0", 1, day1),
		txLine("ghost", "0", "10.00", 2, day1),
	}, accounts)

	var unknown *apperrors.UnknownAccountError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "ghost", unknown.AccountID)
}

func TestEntryNumber(t *testing.T) {
	assert.Equal(t, "JE-2025-00001", accounting.EntryNumber(2025, 1))
	assert.Equal(t, "JE-2025-00042", accounting.EntryNumber(2025, 42))
	assert.Equal(t, "JE-2024-12345", accounting.EntryNumber(2024, 12345))
	assert.Equal(t, "JE-2025-100000", accounting.EntryNumber(2025, 100000), "sequence wider than five digits is not truncated")
}

func TestSignedAmount_DirectionByAccountType(t *testing.T) {
	debit := txLine("x", "100.00", "0", 1, day1)
	credit := txLine("x", "0", "100.00", 2, day1)

	tests := []struct {
		accType    domain.AccountType
		wantDebit  string
		wantCredit string
	}{
		{domain.Asset, "100.00", "-100.00"},
		{domain.Expense, "100.00", "-100.00"},
		{domain.Liability, "-100.00", "100.00"},
		{domain.Equity, "-100.00", "100.00"},
		{domain.Revenue, "-100.00", "100.00"},
	}

	for _, tt := range tests {
		t.Run(string(tt.accType), func(t *testing.T) {
			got, err := accounting.SignedAmount(tt.accType, debit)
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.wantDebit)), "debit signed %s", got)

			got, err = accounting.SignedAmount(tt.accType, credit)
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.wantCredit)), "credit signed %s", got)
		})
	}

	_, err := accounting.SignedAmount(domain.AccountType("BOGUS"), debit)
	assert.Error(t, err)
}

func TestReplayBalance_OrdersByDateThenSequence(t *testing.T) {
	cash := account("cash", "co_1", domain.Asset, "1000.00")

	// Deliberately shuffled input; replay must order by (date, seq).
	lines := []domain.TransactionLine{
		txLine("cash", "0", "300.00", 2, day2),
		txLine("cash", "500.00", "0", 1, day1),
		txLine("cash", "0", "100.00", 2, day1),
		txLine("cash", "50.00", "0", 1, day2),
	}

	balance, err := accounting.ReplayBalance(cash, lines)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("1150.00")), "balance %s", balance)

	running, err := accounting.RunningBalances(cash, lines)
	require.NoError(t, err)
	require.Len(t, running, 4)
	assert.True(t, running[0].Equal(dec("1500.00")))
	assert.True(t, running[1].Equal(dec("1400.00")))
	assert.True(t, running[2].Equal(dec("1450.00")))
	assert.True(t, running[3].Equal(dec("1150.00")))
}

func TestReplayBalance_LiabilityDirection(t *testing.T) {
	loan := account("loan", "co_1", domain.Liability, "0")
	lines := []domain.TransactionLine{
		txLine("loan", "0", "5000.00", 1, day1), // borrow: credit increases liability
		txLine("loan", "1000.00", "0", 1, day2), // repay: debit decreases it
	}
	balance, err := accounting.ReplayBalance(loan, lines)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("4000.00")), "balance %s", balance)
}

// Posting an entry then replaying the account's lines must reproduce the same
// balance as an incremental running total maintained during posting.
func TestReplayBalance_RoundTripWithIncremental(t *testing.T) {
	cash := account("cash", "co_1", domain.Asset, "250.00")

	lines := []domain.TransactionLine{
		txLine("cash", "500.00", "0", 1, day1),
		txLine("cash", "0", "120.00", 2, day1),
		txLine("cash", "75.50", "0", 1, day2),
	}

	incremental := cash.OpeningBalance
	for _, l := range lines {
		signed, err := accounting.SignedAmount(cash.AccountType, l)
		require.NoError(t, err)
		incremental = incremental.Add(signed)
	}

	replayed, err := accounting.ReplayBalance(cash, lines)
	require.NoError(t, err)
	assert.True(t, replayed.Equal(incremental), "replay %s vs incremental %s", replayed, incremental)
	assert.True(t, replayed.Equal(decimal.RequireFromString("705.50")))
}
