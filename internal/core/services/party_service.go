package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/core/ports"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

// customerService manages the customers invoices and payments reference.
type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	clock        ports.Clock
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc, clock ports.Clock) portssvc.CustomerSvcFacade {
	return &customerService{
		BaseService:  BaseService{CompanyAuthorizer: authorizer},
		customerRepo: customerRepo,
		clock:        clock,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, companyID string, req dto.CreatePartyRequest, creatorUserID string) (*domain.Customer, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		CompanyID:  companyID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	return &customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, companyID, customerID, requestingUserID string) (*domain.Customer, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.customerRepo.FindCustomerByID(ctx, companyID, customerID)
}

func (s *customerService) ListCustomers(ctx context.Context, companyID, requestingUserID string) ([]domain.Customer, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.customerRepo.ListCustomersByCompany(ctx, companyID)
}

func (s *customerService) UpdateCustomer(ctx context.Context, companyID, customerID string, req dto.UpdatePartyRequest, requestingUserID string) (*domain.Customer, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, companyID, customerID)
	if err != nil {
		return nil, err
	}
	applyPartyUpdate(&customer.Name, &customer.Email, &customer.Phone, &customer.Address, req)
	customer.LastUpdatedAt = s.clock.Now()
	customer.LastUpdatedBy = requestingUserID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) DeactivateCustomer(ctx context.Context, companyID, customerID, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}
	return s.customerRepo.DeactivateCustomer(ctx, companyID, customerID, requestingUserID)
}

// vendorService manages the vendors purchase orders reference.
type vendorService struct {
	BaseService
	vendorRepo portsrepo.VendorRepositoryFacade
	clock      ports.Clock
}

// NewVendorService creates a new VendorService.
func NewVendorService(vendorRepo portsrepo.VendorRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc, clock ports.Clock) portssvc.VendorSvcFacade {
	return &vendorService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		vendorRepo:  vendorRepo,
		clock:       clock,
	}
}

var _ portssvc.VendorSvcFacade = (*vendorService)(nil)

func (s *vendorService) CreateVendor(ctx context.Context, companyID string, req dto.CreatePartyRequest, creatorUserID string) (*domain.Vendor, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	vendor := domain.Vendor{
		VendorID:  uuid.NewString(),
		CompanyID: companyID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.vendorRepo.SaveVendor(ctx, vendor); err != nil {
		s.LogError(ctx, err, "Failed to save vendor", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save vendor: %w", err)
	}
	return &vendor, nil
}

func (s *vendorService) GetVendorByID(ctx context.Context, companyID, vendorID, requestingUserID string) (*domain.Vendor, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.vendorRepo.FindVendorByID(ctx, companyID, vendorID)
}

func (s *vendorService) ListVendors(ctx context.Context, companyID, requestingUserID string) ([]domain.Vendor, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.vendorRepo.ListVendorsByCompany(ctx, companyID)
}

func (s *vendorService) UpdateVendor(ctx context.Context, companyID, vendorID string, req dto.UpdatePartyRequest, requestingUserID string) (*domain.Vendor, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	vendor, err := s.vendorRepo.FindVendorByID(ctx, companyID, vendorID)
	if err != nil {
		return nil, err
	}
	applyPartyUpdate(&vendor.Name, &vendor.Email, &vendor.Phone, &vendor.Address, req)
	vendor.LastUpdatedAt = s.clock.Now()
	vendor.LastUpdatedBy = requestingUserID

	if err := s.vendorRepo.UpdateVendor(ctx, *vendor); err != nil {
		return nil, fmt.Errorf("failed to update vendor: %w", err)
	}
	return vendor, nil
}

func (s *vendorService) DeactivateVendor(ctx context.Context, companyID, vendorID, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}
	return s.vendorRepo.DeactivateVendor(ctx, companyID, vendorID, requestingUserID)
}

// applyPartyUpdate copies the set fields of a party update onto the target.
func applyPartyUpdate(name, email, phone, address *string, req dto.UpdatePartyRequest) {
	if req.Name != nil {
		*name = *req.Name
	}
	if req.Email != nil {
		*email = *req.Email
	}
	if req.Phone != nil {
		*phone = *req.Phone
	}
	if req.Address != nil {
		*address = *req.Address
	}
}
