package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
)

// PgxCustomerRepository persists customers.
type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) *PgxCustomerRepository {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, companyID, customerID string) (*domain.Customer, error) {
	query := `
		SELECT customer_id, company_id, name, email, phone, address, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM customers
		WHERE company_id = $1 AND customer_id = $2;
	`
	var c domain.Customer
	err := r.Pool.QueryRow(ctx, query, companyID, customerID).Scan(
		&c.CustomerID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.IsActive,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "failed to find customer "+customerID)
	}
	return &c, nil
}

func (r *PgxCustomerRepository) ListCustomersByCompany(ctx context.Context, companyID string) ([]domain.Customer, error) {
	query := `
		SELECT customer_id, company_id, name, email, phone, address, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM customers
		WHERE company_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, mapError(err, "failed to list customers")
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(
			&c.CustomerID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.IsActive,
			&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		INSERT INTO customers (
			customer_id, company_id, name, email, phone, address, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		customer.CustomerID, customer.CompanyID, customer.Name, customer.Email,
		customer.Phone, customer.Address, customer.IsActive,
		customer.CreatedAt, customer.CreatedBy, customer.LastUpdatedAt, customer.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to insert customer "+customer.CustomerID)
	}
	return nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		UPDATE customers
		SET name = $3, email = $4, phone = $5, address = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE company_id = $1 AND customer_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		customer.CompanyID, customer.CustomerID,
		customer.Name, customer.Email, customer.Phone, customer.Address,
		customer.LastUpdatedAt, customer.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to update customer "+customer.CustomerID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "customer "+customer.CustomerID)
	}
	return nil
}

func (r *PgxCustomerRepository) DeactivateCustomer(ctx context.Context, companyID, customerID, updatedBy string) error {
	query := `
		UPDATE customers
		SET is_active = FALSE, last_updated_at = NOW(), last_updated_by = $3
		WHERE company_id = $1 AND customer_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, customerID, updatedBy)
	if err != nil {
		return mapError(err, "failed to deactivate customer "+customerID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "customer "+customerID)
	}
	return nil
}

// PgxVendorRepository persists vendors.
type PgxVendorRepository struct {
	BaseRepository
}

func newPgxVendorRepository(pool *pgxpool.Pool) *PgxVendorRepository {
	return &PgxVendorRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.VendorRepositoryFacade = (*PgxVendorRepository)(nil)

func (r *PgxVendorRepository) FindVendorByID(ctx context.Context, companyID, vendorID string) (*domain.Vendor, error) {
	query := `
		SELECT vendor_id, company_id, name, email, phone, address, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM vendors
		WHERE company_id = $1 AND vendor_id = $2;
	`
	var v domain.Vendor
	err := r.Pool.QueryRow(ctx, query, companyID, vendorID).Scan(
		&v.VendorID, &v.CompanyID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.IsActive,
		&v.CreatedAt, &v.CreatedBy, &v.LastUpdatedAt, &v.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "failed to find vendor "+vendorID)
	}
	return &v, nil
}

func (r *PgxVendorRepository) ListVendorsByCompany(ctx context.Context, companyID string) ([]domain.Vendor, error) {
	query := `
		SELECT vendor_id, company_id, name, email, phone, address, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM vendors
		WHERE company_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, mapError(err, "failed to list vendors")
	}
	defer rows.Close()

	var vendors []domain.Vendor
	for rows.Next() {
		var v domain.Vendor
		if err := rows.Scan(
			&v.VendorID, &v.CompanyID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.IsActive,
			&v.CreatedAt, &v.CreatedBy, &v.LastUpdatedAt, &v.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vendor row: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (r *PgxVendorRepository) SaveVendor(ctx context.Context, vendor domain.Vendor) error {
	query := `
		INSERT INTO vendors (
			vendor_id, company_id, name, email, phone, address, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		vendor.VendorID, vendor.CompanyID, vendor.Name, vendor.Email,
		vendor.Phone, vendor.Address, vendor.IsActive,
		vendor.CreatedAt, vendor.CreatedBy, vendor.LastUpdatedAt, vendor.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to insert vendor "+vendor.VendorID)
	}
	return nil
}

func (r *PgxVendorRepository) UpdateVendor(ctx context.Context, vendor domain.Vendor) error {
	query := `
		UPDATE vendors
		SET name = $3, email = $4, phone = $5, address = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE company_id = $1 AND vendor_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		vendor.CompanyID, vendor.VendorID,
		vendor.Name, vendor.Email, vendor.Phone, vendor.Address,
		vendor.LastUpdatedAt, vendor.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to update vendor "+vendor.VendorID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "vendor "+vendor.VendorID)
	}
	return nil
}

func (r *PgxVendorRepository) DeactivateVendor(ctx context.Context, companyID, vendorID, updatedBy string) error {
	query := `
		UPDATE vendors
		SET is_active = FALSE, last_updated_at = NOW(), last_updated_by = $3
		WHERE company_id = $1 AND vendor_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, vendorID, updatedBy)
	if err != nil {
		return mapError(err, "failed to deactivate vendor "+vendorID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "vendor "+vendorID)
	}
	return nil
}
