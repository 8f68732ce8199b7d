package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/accounting"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/core/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo  *MockPaymentRepository
	mockDocumentRepo *MockDocumentRepository
	mockCustomerRepo *MockCustomerRepository
	mockAuthorizer   *MockAuthorizer
	service          portssvc.PaymentSvcFacade

	now        time.Time
	companyID  string
	userID     string
	customerID string
	customer   domain.Customer
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockDocumentRepo = new(MockDocumentRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	suite.service = services.NewPaymentService(
		suite.mockPaymentRepo,
		suite.mockDocumentRepo,
		suite.mockCustomerRepo,
		suite.mockAuthorizer,
		fixedClock{now: suite.now},
	)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.customerID = uuid.NewString()
	suite.customer = domain.Customer{
		CustomerID: suite.customerID,
		CompanyID:  suite.companyID,
		Name:       "Acme Ltd",
		IsActive:   true,
	}
}

func (suite *PaymentServiceTestSuite) invoice(total string) domain.Document {
	amt := decimal.RequireFromString(total)
	return domain.Document{
		DocumentID:   uuid.NewString(),
		CompanyID:    suite.companyID,
		CustomerID:   suite.customerID,
		DocumentType: domain.DocInvoice,
		TotalAmount:  amt,
		AmountPaid:   decimal.Zero,
		AmountDue:    amt,
		Status:       domain.StatusSent,
	}
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_SplitAcrossInvoices() {
	ctx := context.Background()
	invA := suite.invoice("621.00")
	invB := suite.invoice("300.00")
	req := dto.CreatePaymentRequest{
		CustomerID: suite.customerID,
		Amount:     decimal.RequireFromString("621.00"),
		Method:     "bank_transfer",
		Allocations: []dto.AllocationRequest{
			{DocumentID: invA.DocumentID, Amount: decimal.RequireFromString("400.00")},
			{DocumentID: invB.DocumentID, Amount: decimal.RequireFromString("221.00")},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.companyID, suite.customerID).Return(&suite.customer, nil).Once()
	suite.mockDocumentRepo.On("FindDocumentsByIDs", ctx, suite.companyID, []string{invA.DocumentID, invB.DocumentID}).
		Return(map[string]domain.Document{invA.DocumentID: invA, invB.DocumentID: invB}, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx,
		mock.AnythingOfType("domain.Payment"),
		mock.AnythingOfType("[]domain.Allocation"),
		mock.AnythingOfType("[]accounting.DocumentUpdate")).
		Run(func(args mock.Arguments) {
			updates := args.Get(3).([]accounting.DocumentUpdate)
			suite.Require().Len(updates, 2)
			suite.True(updates[0].AmountDue.Equal(decimal.RequireFromString("221.00")))
			suite.Equal(domain.StatusSent, updates[0].Status)
			suite.True(updates[1].AmountDue.Equal(decimal.RequireFromString("79.00")))
			suite.Equal(domain.StatusSent, updates[1].Status)
		}).
		Return(nil).Once()

	payment, allocations, err := suite.service.CreatePayment(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal(suite.now, payment.PaymentDate)
	suite.Len(allocations, 2)
	suite.Equal(payment.PaymentID, allocations[0].PaymentID)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_AllocationMismatch() {
	ctx := context.Background()
	inv := suite.invoice("621.00")
	req := dto.CreatePaymentRequest{
		CustomerID: suite.customerID,
		Amount:     decimal.RequireFromString("621.00"),
		Allocations: []dto.AllocationRequest{
			{DocumentID: inv.DocumentID, Amount: decimal.RequireFromString("620.00")},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.companyID, suite.customerID).Return(&suite.customer, nil).Once()
	suite.mockDocumentRepo.On("FindDocumentsByIDs", ctx, suite.companyID, []string{inv.DocumentID}).
		Return(map[string]domain.Document{inv.DocumentID: inv}, nil).Once()

	_, _, err := suite.service.CreatePayment(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	var mismatch *apperrors.AllocationMismatchError
	suite.Require().ErrorAs(err, &mismatch)
	suite.True(mismatch.Expected.Equal(decimal.RequireFromString("621.00")))
	suite.True(mismatch.Actual.Equal(decimal.RequireFromString("620.00")))
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_SettlesInvoice() {
	ctx := context.Background()
	inv := suite.invoice("150.00")
	req := dto.CreatePaymentRequest{
		CustomerID: suite.customerID,
		Amount:     decimal.RequireFromString("150.00"),
		Allocations: []dto.AllocationRequest{
			{DocumentID: inv.DocumentID, Amount: decimal.RequireFromString("150.00")},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.companyID, suite.customerID).Return(&suite.customer, nil).Once()
	suite.mockDocumentRepo.On("FindDocumentsByIDs", ctx, suite.companyID, []string{inv.DocumentID}).
		Return(map[string]domain.Document{inv.DocumentID: inv}, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			updates := args.Get(3).([]accounting.DocumentUpdate)
			suite.Require().Len(updates, 1)
			suite.Equal(domain.StatusPaid, updates[0].Status)
			suite.True(updates[0].AmountDue.IsZero())
		}).
		Return(nil).Once()

	_, _, err := suite.service.CreatePayment(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_RejectsNonInvoiceTarget() {
	ctx := context.Background()
	quote := suite.invoice("100.00")
	quote.DocumentType = domain.DocQuote
	req := dto.CreatePaymentRequest{
		CustomerID: suite.customerID,
		Amount:     decimal.RequireFromString("100.00"),
		Allocations: []dto.AllocationRequest{
			{DocumentID: quote.DocumentID, Amount: decimal.RequireFromString("100.00")},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.companyID, suite.customerID).Return(&suite.customer, nil).Once()
	suite.mockDocumentRepo.On("FindDocumentsByIDs", ctx, suite.companyID, []string{quote.DocumentID}).
		Return(map[string]domain.Document{quote.DocumentID: quote}, nil).Once()

	_, _, err := suite.service.CreatePayment(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_CrossCustomerRejected() {
	ctx := context.Background()
	inv := suite.invoice("100.00")
	inv.CustomerID = uuid.NewString() // someone else's invoice
	req := dto.CreatePaymentRequest{
		CustomerID: suite.customerID,
		Amount:     decimal.RequireFromString("100.00"),
		Allocations: []dto.AllocationRequest{
			{DocumentID: inv.DocumentID, Amount: decimal.RequireFromString("100.00")},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.companyID, suite.customerID).Return(&suite.customer, nil).Once()
	suite.mockDocumentRepo.On("FindDocumentsByIDs", ctx, suite.companyID, []string{inv.DocumentID}).
		Return(map[string]domain.Document{inv.DocumentID: inv}, nil).Once()

	_, _, err := suite.service.CreatePayment(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCrossTenantAllocation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_ReopensInvoice() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	inv := suite.invoice("150.00")
	inv.AmountPaid = decimal.RequireFromString("150.00")
	inv.AmountDue = decimal.Zero
	inv.Status = domain.StatusPaid
	payment := domain.Payment{
		PaymentID:  paymentID,
		CompanyID:  suite.companyID,
		CustomerID: suite.customerID,
		Amount:     decimal.RequireFromString("150.00"),
	}
	allocations := []domain.Allocation{
		{AllocationID: uuid.NewString(), PaymentID: paymentID, DocumentID: inv.DocumentID, Amount: decimal.RequireFromString("150.00")},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, suite.companyID, paymentID).Return(&payment, nil).Once()
	suite.mockPaymentRepo.On("FindAllocationsByPaymentID", ctx, paymentID).Return(allocations, nil).Once()
	suite.mockDocumentRepo.On("FindDocumentsByIDs", ctx, suite.companyID, []string{inv.DocumentID}).
		Return(map[string]domain.Document{inv.DocumentID: inv}, nil).Once()
	suite.mockPaymentRepo.On("DeletePayment", ctx, suite.companyID, paymentID,
		mock.AnythingOfType("[]accounting.DocumentUpdate"), suite.userID, suite.now).
		Run(func(args mock.Arguments) {
			updates := args.Get(3).([]accounting.DocumentUpdate)
			suite.Require().Len(updates, 1)
			suite.True(updates[0].AmountPaid.IsZero())
			suite.True(updates[0].AmountDue.Equal(decimal.RequireFromString("150.00")))
			suite.Equal(domain.StatusSent, updates[0].Status)
		}).
		Return(nil).Once()

	err := suite.service.DeletePayment(ctx, suite.companyID, paymentID, suite.userID)

	suite.Require().NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_NotFound() {
	ctx := context.Background()
	paymentID := uuid.NewString()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, suite.companyID, paymentID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeletePayment(ctx, suite.companyID, paymentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
