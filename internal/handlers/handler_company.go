package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
	"github.com/finbooks/bookkeeping_app/internal/middleware"
)

// companyHandler handles company registration and membership.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

func newCompanyHandler(companyService portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{companyService: companyService}
}

func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := newCompanyHandler(companyService)

	companies := rg.Group("/companies")
	{
		companies.POST("", h.createCompany)
		companies.GET("", h.listCompanies)
		companies.GET("/:companyID", h.getCompany)
		companies.POST("/:companyID/members", h.addMember)
	}
}

// createCompany godoc
// @Summary Register a company
// @Description Creates a company and makes the caller its admin
// @Tags companies
// @Accept json
// @Produce json
// @Param company body dto.CreateCompanyRequest true "New company"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} ErrorResponse
// @Router /companies [post]
// @Security BearerAuth
func (h *companyHandler) createCompany(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create company")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Company created", slog.String("company_id", company.CompanyID))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// listCompanies godoc
// @Summary List companies the caller belongs to
// @Tags companies
// @Produce json
// @Success 200 {array} dto.CompanyResponse
// @Router /companies [get]
// @Security BearerAuth
func (h *companyHandler) listCompanies(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	companies, err := h.companyService.ListUserCompanies(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list companies")
		return
	}

	responses := make([]dto.CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = dto.ToCompanyResponse(&companies[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID} [get]
// @Security BearerAuth
func (h *companyHandler) getCompany(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), c.Param("companyID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// addMember godoc
// @Summary Add or update a company member
// @Description Grants a user a role in the company; admin only
// @Tags companies
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param member body dto.AddMemberRequest true "Member and role"
// @Success 204 "Member added"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /companies/{companyID}/members [post]
// @Security BearerAuth
func (h *companyHandler) addMember(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.companyService.AddMember(c.Request.Context(), c.Param("companyID"), req, userID); err != nil {
		respondServiceError(c, err, "Failed to add member")
		return
	}
	c.Status(http.StatusNoContent)
}
