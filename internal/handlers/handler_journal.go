package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/middleware"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService     portssvc.JournalSvcFacade
	autoPostingService portssvc.AutoPostingSvc
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade, aps portssvc.AutoPostingSvc) *journalHandler {
	return &journalHandler{
		journalService:     js,
		autoPostingService: aps,
	}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, autoPostingService portssvc.AutoPostingSvc) {
	h := newJournalHandler(journalService, autoPostingService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:id", h.getJournal)
		journals.PUT("/:id", h.updateJournal)
		journals.DELETE("/:id", h.deleteJournal)
		journals.POST("/:id/post", h.postJournal)
		journals.POST("/:id/reverse", h.reverseJournal)
	}

	rg.POST("/auto-postings/replay", h.replayAutoPosting)
}

// createJournal godoc
// @Summary Create a journal entry
// @Description Stores a balanced journal as DRAFT, or posts it immediately when "post" is true.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalRequest true "Journal with its lines"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse "Unbalanced, inactive account or invalid lines"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Failed to create journal"
// @Security BearerAuth
// @Router /accounting/journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.Int("line_count", len(req.Transactions)), slog.Bool("post", req.Post))

	journal, err := h.journalService.CreateJournal(c.Request.Context(), req, creatorUserID)
	if err != nil {
		handleServiceError(c, logger, err, "create journal")
		return
	}

	logger.Info("Journal created", slog.String("journal_id", journal.JournalID), slog.String("status", string(journal.Status)))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// getJournal godoc
// @Summary Get a journal entry with its lines
// @Tags journals
// @Produce  json
// @Param   id path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Journal not found"
// @Security BearerAuth
// @Router /accounting/journals/{id} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("journal_id", journalID))

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), journalID, userID)
	if err != nil {
		handleServiceError(c, logger, err, "retrieve journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journal entries
// @Description Newest first, cursor paginated.
// @Tags journals
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Param status query string false "Filter by status" Enums(DRAFT, POSTED, REVERSED)
// @Param sourceType query string false "Filter by source type"
// @Param fromDate query string false "First journal date (YYYY-MM-DD)"
// @Param toDate query string false "Last journal date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounting/journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.ListJournalsParams
	if !bindQuery(c, logger, &params) {
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), params, userID)
	if err != nil {
		handleServiceError(c, logger, err, "list journals")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateJournal godoc
// @Summary Replace a draft journal
// @Description Posted and reversed journals are immutable.
// @Tags journals
// @Accept json
// @Produce json
// @Param id path string true "Journal ID"
// @Param journal body dto.UpdateJournalRequest true "New header and lines"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Journal is not a draft"
// @Security BearerAuth
// @Router /accounting/journals/{id} [put]
func (h *journalHandler) updateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.UpdateJournalRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	logger = logger.With(slog.String("journal_id", journalID))

	journal, err := h.journalService.UpdateDraftJournal(c.Request.Context(), journalID, req, userID)
	if err != nil {
		handleServiceError(c, logger, err, "update journal")
		return
	}

	logger.Info("Draft journal updated")
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// deleteJournal godoc
// @Summary Delete a draft journal
// @Tags journals
// @Param id path string true "Journal ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Journal is not a draft"
// @Security BearerAuth
// @Router /accounting/journals/{id} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("journal_id", journalID))

	if err := h.journalService.DeleteDraftJournal(c.Request.Context(), journalID, userID); err != nil {
		handleServiceError(c, logger, err, "delete journal")
		return
	}

	logger.Info("Draft journal deleted")
	c.Status(http.StatusNoContent)
}

// postJournal godoc
// @Summary Post a draft journal
// @Description Revalidates the journal, updates account balances and stamps running balances on its lines.
// @Tags journals
// @Produce json
// @Param id path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse "Journal no longer valid"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Journal is not a draft"
// @Security BearerAuth
// @Router /accounting/journals/{id}/post [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("journal_id", journalID))

	journal, err := h.journalService.PostJournal(c.Request.Context(), journalID, userID)
	if err != nil {
		handleServiceError(c, logger, err, "post journal")
		return
	}

	logger.Info("Journal posted", slog.String("journal_number", journal.JournalNumber))
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// reverseJournal godoc
// @Summary Reverse a posted journal
// @Description Creates and posts a mirror journal and marks the original REVERSED.
// @Tags journals
// @Accept json
// @Produce json
// @Param id path string true "Journal ID"
// @Param reversal body dto.ReverseJournalRequest true "Reason and optional date"
// @Success 201 {object} dto.JournalResponse "The reversing journal"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Journal is not posted or is itself a reversal"
// @Security BearerAuth
// @Router /accounting/journals/{id}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.ReverseJournalRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	logger = logger.With(slog.String("journal_id", journalID))

	reversal, err := h.journalService.ReverseJournal(c.Request.Context(), journalID, req, userID)
	if err != nil {
		handleServiceError(c, logger, err, "reverse journal")
		return
	}

	logger.Info("Journal reversed", slog.String("reversal_journal_id", reversal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(reversal))
}

// replayAutoPosting godoc
// @Summary Rebuild the automatic journal of a business record
// @Description Re-dispatches the posting for a payment, purchase, salary, invoice or sale cost. A no-op when the journal already exists.
// @Tags journals
// @Accept json
// @Produce json
// @Param replay body dto.ReplayAutoPostingRequest true "Source record"
// @Success 200 {object} dto.ReplayAutoPostingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Source record not found"
// @Failure 409 {object} ErrorResponse "Source record not in a postable state"
// @Security BearerAuth
// @Router /accounting/auto-postings/replay [post]
func (h *journalHandler) replayAutoPosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.ReplayAutoPostingRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	logger = logger.With(slog.String("source_type", string(req.SourceType)), slog.String("source_id", req.SourceID))

	journal, created, err := h.autoPostingService.Replay(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, logger, err, "replay auto-posting")
		return
	}

	resp := dto.ReplayAutoPostingResponse{Created: created}
	if journal != nil {
		jr := dto.ToJournalResponse(journal)
		resp.Journal = &jr
	}
	logger.Info("Auto-posting replayed", slog.Bool("created", created))
	c.JSON(http.StatusOK, resp)
}
