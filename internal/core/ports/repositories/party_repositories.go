package repositories

import (
	"context"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
)

// CustomerRepositoryFacade defines persistence for customers.
type CustomerRepositoryFacade interface {
	FindCustomerByID(ctx context.Context, companyID, customerID string) (*domain.Customer, error)
	ListCustomersByCompany(ctx context.Context, companyID string) ([]domain.Customer, error)
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	DeactivateCustomer(ctx context.Context, companyID, customerID, updatedBy string) error
}

// VendorRepositoryFacade defines persistence for vendors.
type VendorRepositoryFacade interface {
	FindVendorByID(ctx context.Context, companyID, vendorID string) (*domain.Vendor, error)
	ListVendorsByCompany(ctx context.Context, companyID string) ([]domain.Vendor, error)
	SaveVendor(ctx context.Context, vendor domain.Vendor) error
	UpdateVendor(ctx context.Context, vendor domain.Vendor) error
	DeactivateVendor(ctx context.Context, companyID, vendorID, updatedBy string) error
}
