package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskbridge/taskbridge-api/internal/errors"
	"github.com/taskbridge/taskbridge-api/internal/middleware"
	"github.com/taskbridge/taskbridge-api/internal/services"
)

// AnalyticsHandler serves platform-wide and per-manager statistics.
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetDashboard returns platform-wide metrics (admin only).
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.analyticsService.Dashboard()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetFinance returns the calling manager's earnings summary.
func (h *AnalyticsHandler) GetFinance(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	stats, err := h.analyticsService.Finance(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
