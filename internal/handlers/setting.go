package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskbridge/taskbridge-api/internal/errors"
	"github.com/taskbridge/taskbridge-api/internal/middleware"
	"github.com/taskbridge/taskbridge-api/internal/services"
)

// SettingHandler exposes platform settings. The public subset is readable
// without a session; full reads need a session and writes need an admin.
type SettingHandler struct {
	settingsService *services.SettingsService
	authService     *services.AuthService
}

// NewSettingHandler creates a new SettingHandler
func NewSettingHandler(settingsService *services.SettingsService, authService *services.AuthService) *SettingHandler {
	return &SettingHandler{
		settingsService: settingsService,
		authService:     authService,
	}
}

// PublicSettings returns the public subset as a key/value map.
func (h *SettingHandler) PublicSettings(c *gin.Context) {
	settings, err := h.settingsService.Public()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// AllSettings returns every setting with its visibility.
func (h *SettingHandler) AllSettings(c *gin.Context) {
	settings, err := h.settingsService.All()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// SetSetting writes one setting value (admin only).
func (h *SettingHandler) SetSetting(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	actor, err := h.authService.GetUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	type SettingRequest struct {
		Key   string `json:"key" binding:"required"`
		Value string `json:"value" binding:"required"`
	}
	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	setting, err := h.settingsService.Set(actor.Email, req.Key, req.Value)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, setting)
}
