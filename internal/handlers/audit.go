package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskbridge/taskbridge-api/internal/repository"
)

// AuditHandler serves the administrative action log.
type AuditHandler struct {
	auditRepo repository.AuditLogRepository
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditRepo repository.AuditLogRepository) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo}
}

// ListLogs returns all audit entries, newest first (admin only).
func (h *AuditHandler) ListLogs(c *gin.Context) {
	logs, err := h.auditRepo.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
