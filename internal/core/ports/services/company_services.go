package services

import (
	"context"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

// CompanyAuthorizerSvc checks a user's role within a company. Every mutating
// service path runs through it before touching tenant data.
type CompanyAuthorizerSvc interface {
	// AuthorizeUserAction returns nil when the user holds at least the
	// required role in the company, apperrors.ErrForbidden when the role is
	// insufficient, apperrors.ErrNotFound when the user is not a member.
	AuthorizeUserAction(ctx context.Context, userID, companyID string, required domain.UserCompanyRole) error
}

// CompanyReaderSvc defines read operations on companies.
type CompanyReaderSvc interface {
	GetCompanyByID(ctx context.Context, companyID, requestingUserID string) (*domain.Company, error)
	ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error)
}

// CompanyWriterSvc defines write operations on companies.
type CompanyWriterSvc interface {
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)
	AddMember(ctx context.Context, companyID string, req dto.AddMemberRequest, requestingUserID string) error
}

// CompanySvcFacade combines all company-related service interfaces.
type CompanySvcFacade interface {
	CompanyAuthorizerSvc
	CompanyReaderSvc
	CompanyWriterSvc
}
