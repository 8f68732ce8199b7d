package domain

// UserCompanyRole defines the role a user holds within a company.
type UserCompanyRole string

const (
	RoleAdmin    UserCompanyRole = "ADMIN"
	RoleMember   UserCompanyRole = "MEMBER"
	RoleReadOnly UserCompanyRole = "READ_ONLY"
)

// CanWrite reports whether the role allows mutating operations.
func (r UserCompanyRole) CanWrite() bool {
	return r == RoleAdmin || r == RoleMember
}

// Company is the tenant boundary: every account, document, payment and budget
// belongs to exactly one company.
type Company struct {
	CompanyID           string `json:"companyID"` // Primary Key (UUID)
	Name                string `json:"name"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode"` // ISO 4217
	FiscalYearStartMonth int   `json:"fiscalYearStartMonth"` // 1..12, default 1
	IsActive            bool   `json:"isActive"`
	AuditFields
}

// UserCompany links a user to a company with a role.
type UserCompany struct {
	UserID    string          `json:"userID"`
	CompanyID string          `json:"companyID"`
	Role      UserCompanyRole `json:"role"`
	AuditFields
}
