package dto

import "github.com/finbooks/bookkeeping_app/internal/core/domain"

// CreateCompanyRequest defines the payload for registering a company.
type CreateCompanyRequest struct {
	Name                 string `json:"name" binding:"required"`
	DefaultCurrencyCode  string `json:"defaultCurrencyCode" binding:"required,len=3"`
	FiscalYearStartMonth int    `json:"fiscalYearStartMonth" binding:"omitempty,min=1,max=12"`
}

// AddMemberRequest links a user to a company with a role.
type AddMemberRequest struct {
	UserID string `json:"userID" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=ADMIN MEMBER READ_ONLY"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID            string `json:"companyID"`
	Name                 string `json:"name"`
	DefaultCurrencyCode  string `json:"defaultCurrencyCode"`
	FiscalYearStartMonth int    `json:"fiscalYearStartMonth"`
}

// ToCompanyResponse converts a domain.Company to its response DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:            c.CompanyID,
		Name:                 c.Name,
		DefaultCurrencyCode:  c.DefaultCurrencyCode,
		FiscalYearStartMonth: c.FiscalYearStartMonth,
	}
}
