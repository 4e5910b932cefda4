package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskbridge/taskbridge-api/internal/errors"
	"github.com/taskbridge/taskbridge-api/internal/services"
)

// respondServiceError maps domain errors onto the HTTP error envelope.
// Authorization failures stay generic so callers cannot probe for the
// existence of resources they may not see.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var transitionErr *services.InvalidTransitionError

	switch {
	case errors.As(err, &validationErr):
		apierrors.BadRequest(c, validationErr.Message)
	case errors.As(err, &transitionErr):
		apierrors.InvalidTransition(c, transitionErr.Error())
	case errors.Is(err, services.ErrTaskAlreadyClaimed):
		apierrors.Conflict(c, "Task already taken")
	case errors.Is(err, services.ErrNotPermitted),
		errors.Is(err, services.ErrAccountSuspended):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNotificationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidOTP),
		errors.Is(err, services.ErrExpiredOTP):
		apierrors.Unauthorized(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
