package domain

// User is an authenticated principal. Authentication itself (token issuance,
// password policy) is the auth layer's concern; services only consume the
// user ID for audit fields and membership checks.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
