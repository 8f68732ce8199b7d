package dto

import "github.com/finbooks/bookkeeping_app/internal/core/domain"

// CreatePartyRequest defines the shared payload for customers and vendors.
type CreatePartyRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdatePartyRequest defines the mutable fields of a customer or vendor.
type UpdatePartyRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// PartyResponse defines the data returned for a customer or vendor.
type PartyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	IsActive bool   `json:"isActive"`
}

// ToCustomerResponse converts a domain.Customer.
func ToCustomerResponse(c *domain.Customer) PartyResponse {
	return PartyResponse{ID: c.CustomerID, Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address, IsActive: c.IsActive}
}

// ToVendorResponse converts a domain.Vendor.
func ToVendorResponse(v *domain.Vendor) PartyResponse {
	return PartyResponse{ID: v.VendorID, Name: v.Name, Email: v.Email, Phone: v.Phone, Address: v.Address, IsActive: v.IsActive}
}
