package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskbridge/taskbridge-api/internal/constants"
	apierrors "github.com/taskbridge/taskbridge-api/internal/errors"
	"github.com/taskbridge/taskbridge-api/internal/models"
	"github.com/taskbridge/taskbridge-api/internal/utils"
)

// RequireAuth validates the bearer token and stores the caller's identity
// in the request context.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		userID, role, err := utils.ParseToken(jwtSecret, tokenString)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyUserRole, role)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Must run after
// RequireAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetUserRole(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "")
		c.Abort()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUserRole retrieves the current user role from context
func GetUserRole(c *gin.Context) (models.Role, bool) {
	value, exists := c.Get(constants.ContextKeyUserRole)
	if !exists {
		return "", false
	}

	role, ok := value.(models.Role)
	if !ok {
		return "", false
	}
	return role, true
}
