package services

import (
	"context"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

// CustomerSvcFacade defines customer CRUD.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, companyID string, req dto.CreatePartyRequest, creatorUserID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, companyID, customerID, requestingUserID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, companyID, requestingUserID string) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, companyID, customerID string, req dto.UpdatePartyRequest, requestingUserID string) (*domain.Customer, error)
	DeactivateCustomer(ctx context.Context, companyID, customerID, requestingUserID string) error
}

// VendorSvcFacade defines vendor CRUD.
type VendorSvcFacade interface {
	CreateVendor(ctx context.Context, companyID string, req dto.CreatePartyRequest, creatorUserID string) (*domain.Vendor, error)
	GetVendorByID(ctx context.Context, companyID, vendorID, requestingUserID string) (*domain.Vendor, error)
	ListVendors(ctx context.Context, companyID, requestingUserID string) ([]domain.Vendor, error)
	UpdateVendor(ctx context.Context, companyID, vendorID string, req dto.UpdatePartyRequest, requestingUserID string) (*domain.Vendor, error)
	DeactivateVendor(ctx context.Context, companyID, vendorID, requestingUserID string) error
}
