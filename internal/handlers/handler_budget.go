package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
	"github.com/finbooks/bookkeeping_app/internal/middleware"
)

// budgetHandler handles budgets and the variance report.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(budgetService portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: budgetService}
}

func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/companies/:companyID/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/:budgetID", h.getBudget)
		budgets.PUT("/:budgetID/lines", h.updateBudgetLines)
		budgets.DELETE("/:budgetID", h.deleteBudget)
		budgets.GET("/:budgetID/variance", h.varianceReport)
	}
}

// createBudget godoc
// @Summary Create a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param budget body dto.CreateBudgetRequest true "Budget and category lines"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} ErrorResponse "Duplicate category or invalid period"
// @Failure 403 {object} ErrorResponse
// @Router /companies/{companyID}/budgets [post]
// @Security BearerAuth
func (h *budgetHandler) createBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateBudgetRequest
	if !bindJSON(c, &req) {
		return
	}

	budget, lines, err := h.budgetService.CreateBudget(c.Request.Context(), c.Param("companyID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create budget")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Budget created", slog.String("budget_id", budget.BudgetID))
	c.JSON(http.StatusCreated, dto.ToBudgetResponse(budget, lines))
}

// listBudgets godoc
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {array} dto.BudgetResponse
// @Failure 403 {object} ErrorResponse
// @Router /companies/{companyID}/budgets [get]
// @Security BearerAuth
func (h *budgetHandler) listBudgets(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), c.Param("companyID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list budgets")
		return
	}

	responses := make([]dto.BudgetResponse, len(budgets))
	for i := range budgets {
		responses[i] = dto.ToBudgetResponse(&budgets[i], nil)
	}
	c.JSON(http.StatusOK, responses)
}

// getBudget godoc
// @Summary Get a budget with its lines
// @Tags budgets
// @Produce json
// @Param companyID path string true "Company ID"
// @Param budgetID path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/budgets/{budgetID} [get]
// @Security BearerAuth
func (h *budgetHandler) getBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	budget, lines, err := h.budgetService.GetBudget(c.Request.Context(), c.Param("companyID"), c.Param("budgetID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve budget")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget, lines))
}

// updateBudgetLines godoc
// @Summary Replace a budget's category lines
// @Tags budgets
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param budgetID path string true "Budget ID"
// @Param lines body dto.UpdateBudgetLinesRequest true "Replacement lines"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/budgets/{budgetID}/lines [put]
// @Security BearerAuth
func (h *budgetHandler) updateBudgetLines(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateBudgetLinesRequest
	if !bindJSON(c, &req) {
		return
	}

	budget, lines, err := h.budgetService.UpdateBudgetLines(c.Request.Context(), c.Param("companyID"), c.Param("budgetID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update budget lines")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget, lines))
}

// deleteBudget godoc
// @Summary Delete a budget
// @Description Admin only
// @Tags budgets
// @Param companyID path string true "Company ID"
// @Param budgetID path string true "Budget ID"
// @Success 204 "Budget deleted"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/budgets/{budgetID} [delete]
// @Security BearerAuth
func (h *budgetHandler) deleteBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), c.Param("companyID"), c.Param("budgetID"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete budget")
		return
	}
	c.Status(http.StatusNoContent)
}

// varianceReport godoc
// @Summary Budget variance report
// @Description Compares budgeted amounts per category against posted expense actuals over the budget period
// @Tags budgets
// @Produce json
// @Param companyID path string true "Company ID"
// @Param budgetID path string true "Budget ID"
// @Success 200 {object} dto.VarianceReportResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/budgets/{budgetID}/variance [get]
// @Security BearerAuth
func (h *budgetHandler) varianceReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	companyID := c.Param("companyID")
	budgetID := c.Param("budgetID")

	budget, _, err := h.budgetService.GetBudget(c.Request.Context(), companyID, budgetID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve budget")
		return
	}

	rows, err := h.budgetService.VarianceReport(c.Request.Context(), companyID, budgetID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to compute variance report")
		return
	}

	c.JSON(http.StatusOK, dto.VarianceReportResponse{
		BudgetID:    budget.BudgetID,
		PeriodStart: budget.PeriodStart,
		PeriodEnd:   budget.PeriodEnd,
		Rows:        dto.ToVarianceRows(rows),
	})
}
