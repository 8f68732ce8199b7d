package domain

// Customer is a party invoiced by a company.
type Customer struct {
	CustomerID string `json:"customerID"` // Primary Key (UUID)
	CompanyID  string `json:"companyID"`  // FK -> companies.company_id (Not Null)
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// Vendor is a party a company purchases from via purchase orders.
type Vendor struct {
	VendorID  string `json:"vendorID"` // Primary Key (UUID)
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}
