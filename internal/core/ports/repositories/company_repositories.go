package repositories

import (
	"context"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
)

// CompanyRepositoryFacade defines persistence for companies and memberships.
type CompanyRepositoryFacade interface {
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error)
	SaveCompany(ctx context.Context, company domain.Company, creatorMembership domain.UserCompany) error
	UpdateCompany(ctx context.Context, company domain.Company) error

	// FindUserCompanyRole returns the membership row linking a user to a
	// company, or apperrors.ErrNotFound when the user is not a member.
	FindUserCompanyRole(ctx context.Context, userID, companyID string) (*domain.UserCompany, error)
	SaveUserCompanyRole(ctx context.Context, membership domain.UserCompany) error
}

// UserRepositoryFacade defines persistence for users.
type UserRepositoryFacade interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	SaveUser(ctx context.Context, user domain.User) error
}
