package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/propbooks/propbooks_backend/internal/core/ports/services"
	"github.com/propbooks/propbooks_backend/internal/dto"
	"github.com/propbooks/propbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// auditHandler handles HTTP requests for browsing the audit trail.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

// newAuditHandler creates a new auditHandler.
func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{
		auditService: as,
	}
}

// registerAuditRoutes registers the audit trail browsing route.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	rg.GET("/audit-trail", h.listAuditTrail)
}

// listAuditTrail godoc
// @Summary Browse the audit trail
// @Description Retrieves a token-paginated list of audit records for an entity or an actor, newest first. One of the two filters is required.
// @Tags audit
// @Produce json
// @Param entityType query string false "Entity type, paired with entityID"
// @Param entityID query string false "Entity ID, paired with entityType"
// @Param actorID query string false "Actor ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListAuditTrailResponse
// @Failure 400 {object} map[string]string "Missing or mismatched filters"
// @Failure 500 {object} map[string]string "Failed to list audit records"
// @Router /audit-trail [get]
func (h *auditHandler) listAuditTrail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAuditTrailParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListAuditTrail", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.auditService.ListAuditTrail(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, "Failed to list audit records", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
