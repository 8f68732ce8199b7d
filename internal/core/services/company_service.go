package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/core/ports"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

// companyService provides tenant management and membership authorization.
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
	clock       ports.Clock
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, clock ports.Clock) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo: companyRepo,
		clock:       clock,
	}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// roleRank orders roles for the at-least comparison in AuthorizeUserAction.
func roleRank(role domain.UserCompanyRole) int {
	switch role {
	case domain.RoleAdmin:
		return 3
	case domain.RoleMember:
		return 2
	case domain.RoleReadOnly:
		return 1
	default:
		return 0
	}
}

// AuthorizeUserAction implements portssvc.CompanyAuthorizerSvc.
func (s *companyService) AuthorizeUserAction(ctx context.Context, userID, companyID string, required domain.UserCompanyRole) error {
	membership, err := s.companyRepo.FindUserCompanyRole(ctx, userID, companyID)
	if err != nil {
		return err // ErrNotFound when not a member
	}
	if roleRank(membership.Role) < roleRank(required) {
		return fmt.Errorf("%w: role %s is insufficient", apperrors.ErrForbidden, membership.Role)
	}
	return nil
}

// CreateCompany registers a new company and makes the creator its admin.
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	now := s.clock.Now()
	fiscalStart := req.FiscalYearStartMonth
	if fiscalStart == 0 {
		fiscalStart = 1
	}

	company := domain.Company{
		CompanyID:            uuid.NewString(),
		Name:                 req.Name,
		DefaultCurrencyCode:  req.DefaultCurrencyCode,
		FiscalYearStartMonth: fiscalStart,
		IsActive:             true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	membership := domain.UserCompany{
		UserID:    creatorUserID,
		CompanyID: company.CompanyID,
		Role:      domain.RoleAdmin,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company, membership); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("company_name", req.Name))
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	s.LogInfo(ctx, "Company created", slog.String("company_id", company.CompanyID))
	return &company, nil
}

// GetCompanyByID returns a company the requesting user is a member of.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID, requestingUserID string) (*domain.Company, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.companyRepo.FindCompanyByID(ctx, companyID)
}

// ListUserCompanies lists the companies the user belongs to.
func (s *companyService) ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	return s.companyRepo.ListCompaniesByUser(ctx, userID)
}

// AddMember links a user to the company; only admins may do this.
func (s *companyService) AddMember(ctx context.Context, companyID string, req dto.AddMemberRequest, requestingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	now := s.clock.Now()
	membership := domain.UserCompany{
		UserID:    req.UserID,
		CompanyID: companyID,
		Role:      domain.UserCompanyRole(req.Role),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if err := s.companyRepo.SaveUserCompanyRole(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add member", slog.String("company_id", companyID), slog.String("member_user_id", req.UserID))
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}
