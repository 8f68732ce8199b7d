package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
)

// PgxCompanyRepository persists companies and user memberships.
type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(pool *pgxpool.Pool) *PgxCompanyRepository {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
		SELECT company_id, name, default_currency_code, fiscal_year_start_month, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM companies
		WHERE company_id = $1;
	`
	var c domain.Company
	err := r.Pool.QueryRow(ctx, query, companyID).Scan(
		&c.CompanyID, &c.Name, &c.DefaultCurrencyCode, &c.FiscalYearStartMonth, &c.IsActive,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "failed to find company "+companyID)
	}
	return &c, nil
}

func (r *PgxCompanyRepository) ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error) {
	query := `
		SELECT c.company_id, c.name, c.default_currency_code, c.fiscal_year_start_month, c.is_active,
		       c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
		FROM companies c
		JOIN user_companies uc ON uc.company_id = c.company_id
		WHERE uc.user_id = $1
		ORDER BY c.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err, "failed to list companies for user "+userID)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(
			&c.CompanyID, &c.Name, &c.DefaultCurrencyCode, &c.FiscalYearStartMonth, &c.IsActive,
			&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// SaveCompany inserts the company and the creator's admin membership in one
// transaction so a company never exists without an admin.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company, creatorMembership domain.UserCompany) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	companyQuery := `
		INSERT INTO companies (
			company_id, name, default_currency_code, fiscal_year_start_month, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, companyQuery,
		company.CompanyID, company.Name, company.DefaultCurrencyCode, company.FiscalYearStartMonth, company.IsActive,
		company.CreatedAt, company.CreatedBy, company.LastUpdatedAt, company.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to insert company "+company.CompanyID)
	}

	membershipQuery := `
		INSERT INTO user_companies (
			user_id, company_id, role,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, membershipQuery,
		creatorMembership.UserID, creatorMembership.CompanyID, creatorMembership.Role,
		creatorMembership.CreatedAt, creatorMembership.CreatedBy, creatorMembership.LastUpdatedAt, creatorMembership.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to insert creator membership for company "+company.CompanyID)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	query := `
		UPDATE companies
		SET name = $2, default_currency_code = $3, fiscal_year_start_month = $4, is_active = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE company_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		company.CompanyID, company.Name, company.DefaultCurrencyCode, company.FiscalYearStartMonth, company.IsActive,
		company.LastUpdatedAt, company.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to update company "+company.CompanyID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "company "+company.CompanyID)
	}
	return nil
}

func (r *PgxCompanyRepository) FindUserCompanyRole(ctx context.Context, userID, companyID string) (*domain.UserCompany, error) {
	query := `
		SELECT user_id, company_id, role,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM user_companies
		WHERE user_id = $1 AND company_id = $2;
	`
	var uc domain.UserCompany
	err := r.Pool.QueryRow(ctx, query, userID, companyID).Scan(
		&uc.UserID, &uc.CompanyID, &uc.Role,
		&uc.CreatedAt, &uc.CreatedBy, &uc.LastUpdatedAt, &uc.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "failed to find membership")
	}
	return &uc, nil
}

func (r *PgxCompanyRepository) SaveUserCompanyRole(ctx context.Context, membership domain.UserCompany) error {
	query := `
		INSERT INTO user_companies (
			user_id, company_id, role,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, company_id)
		DO UPDATE SET role = EXCLUDED.role,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID, membership.CompanyID, membership.Role,
		membership.CreatedAt, membership.CreatedBy, membership.LastUpdatedAt, membership.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to save membership")
	}
	return nil
}
