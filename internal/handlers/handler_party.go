package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

// customerHandler handles customer CRUD.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(customerService portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: customerService}
}

func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := rg.Group("/companies/:companyID/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:customerID", h.getCustomer)
		customers.PUT("/:customerID", h.updateCustomer)
		customers.DELETE("/:customerID", h.deactivateCustomer)
	}
}

// createCustomer godoc
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param customer body dto.CreatePartyRequest true "New customer"
// @Success 201 {object} dto.PartyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /companies/{companyID}/customers [post]
// @Security BearerAuth
func (h *customerHandler) createCustomer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePartyRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), c.Param("companyID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create customer")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {array} dto.PartyResponse
// @Failure 403 {object} ErrorResponse
// @Router /companies/{companyID}/customers [get]
// @Security BearerAuth
func (h *customerHandler) listCustomers(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), c.Param("companyID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list customers")
		return
	}

	responses := make([]dto.PartyResponse, len(customers))
	for i := range customers {
		responses[i] = dto.ToCustomerResponse(&customers[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getCustomer godoc
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param companyID path string true "Company ID"
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.PartyResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/customers/{customerID} [get]
// @Security BearerAuth
func (h *customerHandler) getCustomer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), c.Param("companyID"), c.Param("customerID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// updateCustomer godoc
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param customerID path string true "Customer ID"
// @Param customer body dto.UpdatePartyRequest true "Fields to update"
// @Success 200 {object} dto.PartyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/customers/{customerID} [put]
// @Security BearerAuth
func (h *customerHandler) updateCustomer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdatePartyRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("companyID"), c.Param("customerID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// deactivateCustomer godoc
// @Summary Deactivate a customer
// @Description Admin only
// @Tags customers
// @Param companyID path string true "Company ID"
// @Param customerID path string true "Customer ID"
// @Success 204 "Customer deactivated"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/customers/{customerID} [delete]
// @Security BearerAuth
func (h *customerHandler) deactivateCustomer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.customerService.DeactivateCustomer(c.Request.Context(), c.Param("companyID"), c.Param("customerID"), userID); err != nil {
		respondServiceError(c, err, "Failed to deactivate customer")
		return
	}
	c.Status(http.StatusNoContent)
}

// vendorHandler handles vendor CRUD.
type vendorHandler struct {
	vendorService portssvc.VendorSvcFacade
}

func newVendorHandler(vendorService portssvc.VendorSvcFacade) *vendorHandler {
	return &vendorHandler{vendorService: vendorService}
}

func registerVendorRoutes(rg *gin.RouterGroup, vendorService portssvc.VendorSvcFacade) {
	h := newVendorHandler(vendorService)

	vendors := rg.Group("/companies/:companyID/vendors")
	{
		vendors.POST("", h.createVendor)
		vendors.GET("", h.listVendors)
		vendors.GET("/:vendorID", h.getVendor)
		vendors.PUT("/:vendorID", h.updateVendor)
		vendors.DELETE("/:vendorID", h.deactivateVendor)
	}
}

// createVendor godoc
// @Summary Create a vendor
// @Tags vendors
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param vendor body dto.CreatePartyRequest true "New vendor"
// @Success 201 {object} dto.PartyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /companies/{companyID}/vendors [post]
// @Security BearerAuth
func (h *vendorHandler) createVendor(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePartyRequest
	if !bindJSON(c, &req) {
		return
	}

	vendor, err := h.vendorService.CreateVendor(c.Request.Context(), c.Param("companyID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create vendor")
		return
	}
	c.JSON(http.StatusCreated, dto.ToVendorResponse(vendor))
}

// listVendors godoc
// @Summary List vendors
// @Tags vendors
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {array} dto.PartyResponse
// @Failure 403 {object} ErrorResponse
// @Router /companies/{companyID}/vendors [get]
// @Security BearerAuth
func (h *vendorHandler) listVendors(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	vendors, err := h.vendorService.ListVendors(c.Request.Context(), c.Param("companyID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list vendors")
		return
	}

	responses := make([]dto.PartyResponse, len(vendors))
	for i := range vendors {
		responses[i] = dto.ToVendorResponse(&vendors[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getVendor godoc
// @Summary Get a vendor
// @Tags vendors
// @Produce json
// @Param companyID path string true "Company ID"
// @Param vendorID path string true "Vendor ID"
// @Success 200 {object} dto.PartyResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/vendors/{vendorID} [get]
// @Security BearerAuth
func (h *vendorHandler) getVendor(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	vendor, err := h.vendorService.GetVendorByID(c.Request.Context(), c.Param("companyID"), c.Param("vendorID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve vendor")
		return
	}
	c.JSON(http.StatusOK, dto.ToVendorResponse(vendor))
}

// updateVendor godoc
// @Summary Update a vendor
// @Tags vendors
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param vendorID path string true "Vendor ID"
// @Param vendor body dto.UpdatePartyRequest true "Fields to update"
// @Success 200 {object} dto.PartyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/vendors/{vendorID} [put]
// @Security BearerAuth
func (h *vendorHandler) updateVendor(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdatePartyRequest
	if !bindJSON(c, &req) {
		return
	}

	vendor, err := h.vendorService.UpdateVendor(c.Request.Context(), c.Param("companyID"), c.Param("vendorID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update vendor")
		return
	}
	c.JSON(http.StatusOK, dto.ToVendorResponse(vendor))
}

// deactivateVendor godoc
// @Summary Deactivate a vendor
// @Description Admin only
// @Tags vendors
// @Param companyID path string true "Company ID"
// @Param vendorID path string true "Vendor ID"
// @Success 204 "Vendor deactivated"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/vendors/{vendorID} [delete]
// @Security BearerAuth
func (h *vendorHandler) deactivateVendor(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.vendorService.DeactivateVendor(c.Request.Context(), c.Param("companyID"), c.Param("vendorID"), userID); err != nil {
		respondServiceError(c, err, "Failed to deactivate vendor")
		return
	}
	c.Status(http.StatusNoContent)
}
