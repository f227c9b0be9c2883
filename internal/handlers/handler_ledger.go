package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/propbooks/propbooks_backend/internal/core/ports/services"
	"github.com/propbooks/propbooks_backend/internal/dto"
	"github.com/propbooks/propbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for browsing the general ledger.
type ledgerHandler struct {
	reportingService portssvc.ReportingService
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(rs portssvc.ReportingService) *ledgerHandler {
	return &ledgerHandler{
		reportingService: rs,
	}
}

// registerLedgerRoutes registers the general ledger browsing route.
func registerLedgerRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newLedgerHandler(reportingService)

	rg.GET("/ledger", h.listLedger)
}

// listLedger godoc
// @Summary Browse the general ledger
// @Description Retrieves a token-paginated view of general ledger rows, filterable by account, journal, source document and date range
// @Tags ledger
// @Produce json
// @Param accountID query string false "Filter by account ID"
// @Param journalID query string false "Filter by journal ID"
// @Param sourceType query string false "Filter by source document type"
// @Param sourceID query string false "Filter by source document ID"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListLedgerResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list ledger rows"
// @Router /ledger [get]
func (h *ledgerHandler) listLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.reportingService.ListLedger(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, "Failed to list ledger rows", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
