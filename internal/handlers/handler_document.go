package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
	"github.com/finbooks/bookkeeping_app/internal/middleware"
)

// documentHandler handles invoices, quotes and purchase orders. The three
// types share one aggregate, so create and list are registered per type while
// reads and edits go through the shared /documents routes.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(documentService portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: documentService}
}

func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	company := rg.Group("/companies/:companyID")
	{
		company.POST("/invoices", h.createTyped(domain.DocInvoice))
		company.GET("/invoices", h.listTyped(domain.DocInvoice))
		company.POST("/quotes", h.createTyped(domain.DocQuote))
		company.GET("/quotes", h.listTyped(domain.DocQuote))
		company.POST("/quotes/:documentID/convert", h.convertQuote)
		company.POST("/purchase-orders", h.createTyped(domain.DocPurchaseOrder))
		company.GET("/purchase-orders", h.listTyped(domain.DocPurchaseOrder))

		company.GET("/documents/:documentID", h.getDocument)
		company.PUT("/documents/:documentID/lines", h.updateLines)
		company.PATCH("/documents/:documentID/status", h.updateStatus)
	}
}

// createTyped godoc
// @Summary Create an invoice, quote or purchase order
// @Description Computes per-line and document totals from the submitted line items and assigns a sequential document number
// @Tags documents
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param document body dto.CreateDocumentRequest true "Document and line items"
// @Success 201 {object} dto.GetDocumentResponse
// @Failure 400 {object} ErrorResponse "Invalid line items or missing party"
// @Failure 403 {object} ErrorResponse
// @Router /companies/{companyID}/invoices [post]
// @Security BearerAuth
func (h *documentHandler) createTyped(docType domain.DocumentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}
		var req dto.CreateDocumentRequest
		if !bindJSON(c, &req) {
			return
		}

		doc, lines, err := h.documentService.CreateDocument(c.Request.Context(), c.Param("companyID"), docType, req, userID)
		if err != nil {
			respondServiceError(c, err, "Failed to create document")
			return
		}

		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Document created",
			slog.String("document_id", doc.DocumentID),
			slog.String("document_number", doc.DocumentNumber),
		)
		c.JSON(http.StatusCreated, dto.GetDocumentResponse{
			Document:  dto.ToDocumentResponse(doc, time.Now()),
			LineItems: dto.ToLineItemResponses(lines),
		})
	}
}

// listTyped godoc
// @Summary List documents of one type
// @Tags documents
// @Produce json
// @Param companyID path string true "Company ID"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 403 {object} ErrorResponse
// @Router /companies/{companyID}/invoices [get]
// @Security BearerAuth
func (h *documentHandler) listTyped(docType domain.DocumentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}
		limit, nextToken := pageParams(c)

		docs, next, err := h.documentService.ListDocuments(c.Request.Context(), c.Param("companyID"), docType, limit, nextToken, userID)
		if err != nil {
			respondServiceError(c, err, "Failed to list documents")
			return
		}

		now := time.Now()
		resp := dto.ListDocumentsResponse{NextToken: next}
		for i := range docs {
			resp.Documents = append(resp.Documents, dto.ToDocumentResponse(&docs[i], now))
		}
		c.JSON(http.StatusOK, resp)
	}
}

// getDocument godoc
// @Summary Get a document with its line items
// @Tags documents
// @Produce json
// @Param companyID path string true "Company ID"
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.GetDocumentResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/documents/{documentID} [get]
// @Security BearerAuth
func (h *documentHandler) getDocument(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	doc, lines, err := h.documentService.GetDocument(c.Request.Context(), c.Param("companyID"), c.Param("documentID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve document")
		return
	}

	c.JSON(http.StatusOK, dto.GetDocumentResponse{
		Document:  dto.ToDocumentResponse(doc, time.Now()),
		LineItems: dto.ToLineItemResponses(lines),
	})
}

// updateLines godoc
// @Summary Replace a document's line items
// @Description Replaces the full line list and recomputes all totals; rejected for documents in a terminal status
// @Tags documents
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param documentID path string true "Document ID"
// @Param lines body dto.UpdateDocumentLinesRequest true "Replacement lines"
// @Success 200 {object} dto.GetDocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/documents/{documentID}/lines [put]
// @Security BearerAuth
func (h *documentHandler) updateLines(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateDocumentLinesRequest
	if !bindJSON(c, &req) {
		return
	}

	doc, lines, err := h.documentService.UpdateDocumentLines(c.Request.Context(), c.Param("companyID"), c.Param("documentID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update document lines")
		return
	}

	c.JSON(http.StatusOK, dto.GetDocumentResponse{
		Document:  dto.ToDocumentResponse(doc, time.Now()),
		LineItems: dto.ToLineItemResponses(lines),
	})
}

// updateStatus godoc
// @Summary Transition a document's status
// @Description Applies a lifecycle transition; PAID is reserved for the payment engine
// @Tags documents
// @Accept json
// @Param companyID path string true "Company ID"
// @Param documentID path string true "Document ID"
// @Param status body dto.UpdateDocumentStatusRequest true "Target status"
// @Success 204 "Status updated"
// @Failure 400 {object} ErrorResponse "Status not valid for the document type"
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/documents/{documentID}/status [patch]
// @Security BearerAuth
func (h *documentHandler) updateStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateDocumentStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.documentService.UpdateDocumentStatus(c.Request.Context(), c.Param("companyID"), c.Param("documentID"), domain.DocumentStatus(req.Status), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update document status")
		return
	}
	c.Status(http.StatusNoContent)
}

// convertQuote godoc
// @Summary Convert an accepted quote into a draft invoice
// @Tags documents
// @Produce json
// @Param companyID path string true "Company ID"
// @Param documentID path string true "Quote ID"
// @Success 201 {object} dto.GetDocumentResponse "The new invoice"
// @Failure 400 {object} ErrorResponse "Quote is not in ACCEPTED status"
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/quotes/{documentID}/convert [post]
// @Security BearerAuth
func (h *documentHandler) convertQuote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	invoice, lines, err := h.documentService.ConvertQuoteToInvoice(c.Request.Context(), c.Param("companyID"), c.Param("documentID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to convert quote")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Quote converted to invoice",
		slog.String("quote_id", c.Param("documentID")),
		slog.String("invoice_id", invoice.DocumentID),
	)
	c.JSON(http.StatusCreated, dto.GetDocumentResponse{
		Document:  dto.ToDocumentResponse(invoice, time.Now()),
		LineItems: dto.ToLineItemResponses(lines),
	})
}
