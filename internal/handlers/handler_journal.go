package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/propbooks/propbooks_backend/internal/core/ports/services"
	"github.com/propbooks/propbooks_backend/internal/dto"
	"github.com/propbooks/propbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journals, posting,
// reversals and reallocations.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// registerJournalRoutes registers routes related to journals. Reallocations
// are registered here as well since they post through the same engine.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

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

	rg.POST("/reallocations", h.reallocateEntry)
}

// createJournal godoc
// @Summary Create a draft journal
// @Description Creates a balanced draft journal with its entries. Drafts affect no balances until posted.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalRequest true "Journal and entries"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Missing actor identity"
// @Failure 500 {object} map[string]string "Failed to create journal"
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to create journal",
		slog.String("journal_type", string(req.JournalType)),
		slog.Int("entry_count", len(req.Entries)),
	)

	journal, entries, err := h.journalService.CreateJournal(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, "Failed to create journal", err)
		return
	}

	logger.Info("Journal created successfully",
		slog.String("journal_id", journal.JournalID),
		slog.String("journal_number", journal.JournalNumber),
	)
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal, entries))
}

// listJournals godoc
// @Summary List journals
// @Description Retrieves a token-paginated list of journals with their entries, optionally filtered by status and type
// @Tags journals
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from a previous page"
// @Param   status query string false "Filter by status" Enums(DRAFT, POSTED, REVERSED)
// @Param   type query string false "Filter by journal type" Enums(GENERAL, SALES, RECEIPTS, PAYMENTS, ADJUSTMENT, REVERSAL)
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list journals"
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, "Failed to list journals", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getJournal godoc
// @Summary Get a journal by ID
// @Description Retrieves a journal and its entries
// @Tags journals
// @Produce  json
// @Param   id path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal"
// @Router /journals/{id} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	journal, entries, err := h.journalService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		respondError(c, logger, "Failed to retrieve journal", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal, entries))
}

// updateJournal godoc
// @Summary Update a draft journal
// @Description Updates a draft journal's header and, when given, replaces its entries. Non-draft journals are rejected.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   id path string true "Journal ID"
// @Param   journal body dto.UpdateJournalRequest true "Fields to update"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Missing actor identity"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal is not a draft"
// @Failure 500 {object} map[string]string "Failed to update journal"
// @Router /journals/{id} [put]
func (h *journalHandler) updateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("journal_id", journalID))
	journal, entries, err := h.journalService.UpdateDraftJournal(c.Request.Context(), journalID, req, actorID)
	if err != nil {
		respondError(c, logger, "Failed to update journal", err)
		return
	}

	logger.Info("Journal updated successfully")
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal, entries))
}

// deleteJournal godoc
// @Summary Delete a draft journal
// @Description Deletes a draft journal and its entries. Posted journals can only be reversed.
// @Tags journals
// @Produce  json
// @Param   id path string true "Journal ID"
// @Success 204 "Journal deleted"
// @Failure 401 {object} map[string]string "Missing actor identity"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal is not a draft"
// @Failure 500 {object} map[string]string "Failed to delete journal"
// @Router /journals/{id} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.journalService.DeleteDraftJournal(c.Request.Context(), journalID, actorID); err != nil {
		respondError(c, logger, "Failed to delete journal", err)
		return
	}

	logger.Info("Journal deleted successfully", slog.String("journal_id", journalID))
	c.Status(http.StatusNoContent)
}

// postJournal godoc
// @Summary Post a draft journal
// @Description Posts a draft journal atomically: entries become permanent, account balances move and general ledger rows are written
// @Tags journals
// @Produce  json
// @Param   id path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} map[string]string "Missing actor identity"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal is not a draft, or account locks could not be acquired"
// @Failure 500 {object} map[string]string "Failed to post journal"
// @Router /journals/{id}/post [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("journal_id", journalID))
	journal, err := h.journalService.PostJournal(c.Request.Context(), journalID, actorID)
	if err != nil {
		respondError(c, logger, "Failed to post journal", err)
		return
	}

	logger.Info("Journal posted successfully", slog.String("journal_number", journal.JournalNumber))
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal, nil))
}

// reverseJournal godoc
// @Summary Reverse a posted journal
// @Description Creates and posts a reversal journal mirroring the original's entries with debit and credit swapped, then marks the original REVERSED
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   id path string true "Journal ID"
// @Param   reversal body dto.ReverseJournalRequest true "Reversal reason"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid input format or missing reason"
// @Failure 401 {object} map[string]string "Missing actor identity"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal is not posted or is itself a reversal"
// @Failure 500 {object} map[string]string "Failed to reverse journal"
// @Router /journals/{id}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	var req dto.ReverseJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("journal_id", journalID))
	reversal, err := h.journalService.ReverseJournal(c.Request.Context(), journalID, req.Reason, actorID)
	if err != nil {
		respondError(c, logger, "Failed to reverse journal", err)
		return
	}

	logger.Info("Journal reversed successfully", slog.String("reversal_journal_id", reversal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(reversal, nil))
}

// reallocateEntry godoc
// @Summary Reallocate a posted entry
// @Description Moves an amount from a posted entry's account to another account through a two-line adjustment journal
// @Tags reallocations
// @Accept  json
// @Produce  json
// @Param   reallocation body dto.ReallocateEntryRequest true "Reallocation details"
// @Success 201 {object} dto.ReallocationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Missing actor identity"
// @Failure 404 {object} map[string]string "Source entry not found"
// @Failure 409 {object} map[string]string "Source journal is not posted"
// @Failure 500 {object} map[string]string "Failed to reallocate entry"
// @Router /reallocations [post]
func (h *journalHandler) reallocateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReallocateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReallocateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to reallocate entry",
		slog.String("source_entry_id", req.SourceEntryID),
		slog.String("to_account_id", req.ToAccountID),
	)

	reallocation, err := h.journalService.ReallocateEntry(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, "Failed to reallocate entry", err)
		return
	}

	logger.Info("Entry reallocated successfully",
		slog.String("reallocation_id", reallocation.ReallocationID),
		slog.String("adjustment_id", reallocation.AdjustmentID),
	)
	c.JSON(http.StatusCreated, dto.ToReallocationResponse(reallocation))
}
