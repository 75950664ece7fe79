package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// AuditHandler exposes the audit trail.
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// GetAuditLogs lists the most recent mutations.
// @Summary     List audit entries
// @Description Newest first. resource_type narrows to one kind of record.
// @Tags        audit
// @Produce     json
// @Security    BearerAuth
// @Param       resource_type query string false "category, transaction, budget, loan or debt"
// @Param       limit         query int    false "Maximum entries (default 50, max 200)"
// @Success     200 {object} map[string]interface{} "Audit entries"
// @Failure     400 {object} ErrorResponse "Invalid limit"
// @Router      /audit [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	limit, err := parseIntQuery(c, "limit", 50)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.auditService.Recent(c.Query("resource_type"), limit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
