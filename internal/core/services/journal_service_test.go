package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/core/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockCompanyRepo *MockCompanyRepository
	mockAuthorizer  *MockAuthorizer
	service         portssvc.JournalSvcFacade

	now              time.Time
	companyID        string
	userID           string
	cashAccount      domain.Account
	revenueAccount   domain.Account
	expenseAccount   domain.Account
	liabilityAccount domain.Account
	company          domain.Company
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.now = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	suite.service = services.NewJournalService(
		suite.mockJournalRepo,
		suite.mockAccountRepo,
		suite.mockCompanyRepo,
		suite.mockAuthorizer,
		fixedClock{now: suite.now},
	)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.company = domain.Company{CompanyID: suite.companyID, FiscalYearStartMonth: 1}

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		AccountType: domain.Asset,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		AccountType: domain.Revenue,
	}
	suite.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		AccountType: domain.Expense,
	}
	suite.liabilityAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		AccountType: domain.Liability,
	}
}

func (suite *JournalServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	out := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		out[a.AccountID] = a
	}
	return out
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Description: "Cash sale",
		Lines: []dto.CreateTransactionLineRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(500)},
			{AccountID: suite.revenueAccount.AccountID, CreditAmount: decimal.NewFromInt(500)},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(&suite.company, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID,
		[]string{suite.cashAccount.AccountID, suite.revenueAccount.AccountID}).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx,
		mock.AnythingOfType("domain.JournalEntry"),
		mock.AnythingOfType("[]domain.TransactionLine"),
		mock.AnythingOfType("map[string]decimal.Decimal"),
		2025).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.JournalEntry)
			lines := args.Get(2).([]domain.TransactionLine)
			changes := args.Get(3).(map[string]decimal.Decimal)
			suite.Equal(domain.EntryPosted, entry.Status)
			suite.Len(lines, 2)
			suite.Equal(0, lines[0].LineSeq)
			suite.Equal(1, lines[1].LineSeq)
			// Debit grows the asset, credit grows the revenue
			suite.True(changes[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(500)))
			suite.True(changes[suite.revenueAccount.AccountID].Equal(decimal.NewFromInt(500)))
		}).
		Return("JE-2025-00042", nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("JE-2025-00042", entry.EntryNumber)
	suite.Equal(domain.EntryPosted, entry.Status)
	suite.Equal(suite.now, entry.EntryDate)
	suite.Equal(suite.userID, entry.CreatedBy)

	suite.mockAuthorizer.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AuthorizationFail() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{Description: "nope"}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).
		Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Description: "Does not balance",
		Lines: []dto.CreateTransactionLineRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(500)},
			{AccountID: suite.revenueAccount.AccountID, CreditAmount: decimal.RequireFromString("499.97")},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(&suite.company, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	var unbalanced *apperrors.UnbalancedEntryError
	suite.Require().ErrorAs(err, &unbalanced)
	suite.True(unbalanced.Debits.Equal(decimal.NewFromInt(500)))
	suite.True(unbalanced.Credits.Equal(decimal.RequireFromString("499.97")))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_WithinEpsilonPasses() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Description: "Rounding residue",
		Lines: []dto.CreateTransactionLineRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(500)},
			{AccountID: suite.revenueAccount.AccountID, CreditAmount: decimal.RequireFromString("499.99")},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(&suite.company, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything, mock.Anything, 2025).
		Return("JE-2025-00001", nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryPosted, entry.Status)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	strangerID := uuid.NewString()
	req := dto.CreateJournalEntryRequest{
		Description: "References a missing account",
		Lines: []dto.CreateTransactionLineRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
			{AccountID: strangerID, CreditAmount: decimal.NewFromInt(100)},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(&suite.company, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount), nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	var unknown *apperrors.UnknownAccountError
	suite.Require().ErrorAs(err, &unknown)
	suite.Equal(strangerID, unknown.AccountID)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_FiscalYearFromStartMonth() {
	ctx := context.Background()
	// Fiscal year starts in April; a March entry belongs to the prior label.
	suite.company.FiscalYearStartMonth = 4
	entryDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateJournalEntryRequest{
		EntryDate:   &entryDate,
		Description: "Pre-April entry",
		Lines: []dto.CreateTransactionLineRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, CreditAmount: decimal.NewFromInt(100)},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(&suite.company, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything, mock.Anything, 2024).
		Return("JE-2024-00099", nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("JE-2024-00099", entry.EntryNumber)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := domain.JournalEntry{
		EntryID:     originalID,
		CompanyID:   suite.companyID,
		EntryNumber: "JE-2025-00007",
		EntryDate:   suite.now.AddDate(0, -1, 0),
		Status:      domain.EntryPosted,
	}
	originalLines := []domain.TransactionLine{
		{LineID: uuid.NewString(), EntryID: originalID, AccountID: suite.expenseAccount.AccountID, DebitAmount: decimal.NewFromInt(250), LineSeq: 0},
		{LineID: uuid.NewString(), EntryID: originalID, AccountID: suite.cashAccount.AccountID, CreditAmount: decimal.NewFromInt(250), LineSeq: 1},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.companyID, originalID).Return(&original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, originalID).Return(originalLines, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(&suite.company, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID,
		[]string{suite.expenseAccount.AccountID, suite.cashAccount.AccountID}).
		Return(suite.accountsMap(suite.expenseAccount, suite.cashAccount), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything, mock.Anything, 2025).
		Run(func(args mock.Arguments) {
			lines := args.Get(2).([]domain.TransactionLine)
			changes := args.Get(3).(map[string]decimal.Decimal)
			// Debits and credits swap on the mirror entry.
			suite.True(lines[0].CreditAmount.Equal(decimal.NewFromInt(250)))
			suite.True(lines[0].DebitAmount.IsZero())
			suite.True(lines[1].DebitAmount.Equal(decimal.NewFromInt(250)))
			// Balance changes are the exact inverse of the original posting.
			suite.True(changes[suite.expenseAccount.AccountID].Equal(decimal.NewFromInt(-250)))
			suite.True(changes[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(250)))
		}).
		Return("JE-2025-00101", nil).Once()
	suite.mockJournalRepo.On("UpdateEntryStatusAndLinks", ctx, originalID, domain.EntryReversed,
		mock.AnythingOfType("*string"), (*string)(nil), suite.userID, suite.now).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, suite.companyID, originalID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal("JE-2025-00101", reversal.EntryNumber)
	suite.Require().NotNil(reversal.OriginalEntryID)
	suite.Equal(originalID, *reversal.OriginalEntryID)
	suite.Equal("Reversal of JE-2025-00007", reversal.Description)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_NotPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reversed := domain.JournalEntry{
		EntryID:   entryID,
		CompanyID: suite.companyID,
		Status:    domain.EntryReversed,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.companyID, entryID).Return(&reversed, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetEntryWithLines_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.companyID, entryID).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.GetEntryWithLines(ctx, suite.companyID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
