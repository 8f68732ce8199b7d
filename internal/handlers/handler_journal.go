package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
	"github.com/finbooks/bookkeeping_app/internal/middleware"
)

// journalHandler handles journal entry requests.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/companies/:companyID/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.POST("/:entryID/reverse", h.reverseEntry)
	}
}

// pageParams reads the optional limit and nextToken query parameters shared
// by the cursor-paginated list endpoints.
func pageParams(c *gin.Context) (int, *string) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	var nextToken *string
	if raw := c.Query("nextToken"); raw != "" {
		nextToken = &raw
	}
	return limit, nextToken
}

// createEntry godoc
// @Summary Post a journal entry
// @Description Validates the entry through the posting engine and persists entry, lines and balance updates atomically
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entry body dto.CreateJournalEntryRequest true "Entry and lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse "Unbalanced entry, unknown account or invalid lines"
// @Failure 403 {object} ErrorResponse
// @Router /companies/{companyID}/journal-entries [post]
// @Security BearerAuth
func (h *journalHandler) createEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateJournalEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), c.Param("companyID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to post journal entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
	)
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Returns a page of entries newest first with an opaque cursor
// @Tags journal-entries
// @Produce json
// @Param companyID path string true "Company ID"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 403 {object} ErrorResponse
// @Router /companies/{companyID}/journal-entries [get]
// @Security BearerAuth
func (h *journalHandler) listEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	limit, nextToken := pageParams(c)

	entries, next, err := h.journalService.ListEntries(c.Request.Context(), c.Param("companyID"), limit, nextToken, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list journal entries")
		return
	}

	resp := dto.ListJournalEntriesResponse{NextToken: next}
	for i := range entries {
		resp.Entries = append(resp.Entries, dto.ToJournalEntryResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags journal-entries
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.GetJournalEntryResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/journal-entries/{entryID} [get]
// @Security BearerAuth
func (h *journalHandler) getEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, lines, err := h.journalService.GetEntryWithLines(c.Request.Context(), c.Param("companyID"), c.Param("entryID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.GetJournalEntryResponse{
		Entry: dto.ToJournalEntryResponse(entry),
		Lines: dto.ToTransactionLineResponses(lines),
	})
}

// reverseEntry godoc
// @Summary Reverse a posted journal entry
// @Description Posts a mirror-image entry and marks the original REVERSED
// @Tags journal-entries
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entryID path string true "Entry ID"
// @Success 201 {object} dto.JournalEntryResponse "The reversing entry"
// @Failure 400 {object} ErrorResponse "Entry is not in POSTED status"
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/journal-entries/{entryID}/reverse [post]
// @Security BearerAuth
func (h *journalHandler) reverseEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), c.Param("companyID"), c.Param("entryID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to reverse journal entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal entry reversed",
		slog.String("original_entry_id", c.Param("entryID")),
		slog.String("reversing_entry_id", reversal.EntryID),
	)
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}
