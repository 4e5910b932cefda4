package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskbridge/taskbridge-api/internal/dto"
	apierrors "github.com/taskbridge/taskbridge-api/internal/errors"
	"github.com/taskbridge/taskbridge-api/internal/middleware"
	"github.com/taskbridge/taskbridge-api/internal/models"
	"github.com/taskbridge/taskbridge-api/internal/services"
)

// UserHandler handles user directory and administration endpoints.
type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// ListUsers returns all accounts, optionally filtered by role.
func (h *UserHandler) ListUsers(c *gin.Context) {
	var role *models.Role
	if raw := c.Query("role"); raw != "" {
		r := models.Role(raw)
		if !r.Valid() {
			apierrors.BadRequest(c, "Invalid role filter")
			return
		}
		role = &r
	}

	users, err := h.userService.List(role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": dto.ToUserDTOs(users)})
}

// SetAvailability updates the caller's own availability flag and status line.
func (h *UserHandler) SetAvailability(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type AvailabilityRequest struct {
		Available          *bool   `json:"available"`
		AvailabilityStatus *string `json:"availabilityStatus"`
	}
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.SetAvailability(userID, req.Available, req.AvailabilityStatus)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser removes an account (admin only).
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	targetID, ok := h.userID(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(actor.Email, targetID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// ChangeRole updates a user's role (admin only).
func (h *UserHandler) ChangeRole(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	targetID, ok := h.userID(c)
	if !ok {
		return
	}

	type RoleRequest struct {
		Role models.Role `json:"role" binding:"required"`
	}
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.ChangeRole(actor.Email, targetID, req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ToggleStatus flips a user between suspended and active (admin only).
func (h *UserHandler) ToggleStatus(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	targetID, ok := h.userID(c)
	if !ok {
		return
	}

	user, err := h.userService.ToggleSuspension(actor.Email, targetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func (h *UserHandler) actor(c *gin.Context) (*models.User, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return nil, false
	}
	actor, err := h.authService.GetUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	return actor, true
}

func (h *UserHandler) userID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return 0, false
	}
	return id, true
}
