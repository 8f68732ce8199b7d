package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
	"github.com/finbooks/bookkeeping_app/internal/middleware"
)

// paymentHandler handles payment recording and allocation.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(paymentService portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: paymentService}
}

func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/companies/:companyID/payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:paymentID", h.getPayment)
		payments.DELETE("/:paymentID", h.deletePayment)
	}
}

// createPayment godoc
// @Summary Record a customer payment with allocations
// @Description Allocations must sum to the payment amount within a cent; settled invoices flip to PAID
// @Tags payments
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param payment body dto.CreatePaymentRequest true "Payment and allocations"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse "Allocation mismatch, overpayment or wrong target"
// @Failure 403 {object} ErrorResponse
// @Router /companies/{companyID}/payments [post]
// @Security BearerAuth
func (h *paymentHandler) createPayment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, allocations, err := h.paymentService.CreatePayment(c.Request.Context(), c.Param("companyID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to record payment")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.Int("allocations", len(allocations)),
	)
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment, allocations))
}

// listPayments godoc
// @Summary List payments
// @Tags payments
// @Produce json
// @Param companyID path string true "Company ID"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 403 {object} ErrorResponse
// @Router /companies/{companyID}/payments [get]
// @Security BearerAuth
func (h *paymentHandler) listPayments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	limit, nextToken := pageParams(c)

	payments, next, err := h.paymentService.ListPayments(c.Request.Context(), c.Param("companyID"), limit, nextToken, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list payments")
		return
	}

	resp := dto.ListPaymentsResponse{NextToken: next}
	for i := range payments {
		resp.Payments = append(resp.Payments, dto.ToPaymentResponse(&payments[i], nil))
	}
	c.JSON(http.StatusOK, resp)
}

// getPayment godoc
// @Summary Get a payment with its allocations
// @Tags payments
// @Produce json
// @Param companyID path string true "Company ID"
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/payments/{paymentID} [get]
// @Security BearerAuth
func (h *paymentHandler) getPayment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	payment, allocations, err := h.paymentService.GetPaymentWithAllocations(c.Request.Context(), c.Param("companyID"), c.Param("paymentID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment, allocations))
}

// deletePayment godoc
// @Summary Delete a payment
// @Description Reverses every allocation's effect on its invoice, then removes the payment
// @Tags payments
// @Param companyID path string true "Company ID"
// @Param paymentID path string true "Payment ID"
// @Success 204 "Payment deleted"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/payments/{paymentID} [delete]
// @Security BearerAuth
func (h *paymentHandler) deletePayment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.paymentService.DeletePayment(c.Request.Context(), c.Param("companyID"), c.Param("paymentID"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete payment")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Payment deleted", slog.String("payment_id", c.Param("paymentID")))
	c.Status(http.StatusNoContent)
}
