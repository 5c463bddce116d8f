package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velorashop/velora_backend/internal/core/domain"
	portssvc "github.com/velorashop/velora_backend/internal/core/ports/services"
)

// RequirePermission creates a Gin middleware handler that gates a route on
// one (resource, action) tuple. Grants are resolved fresh on every request,
// so revocations apply immediately.
func RequirePermission(permSvc portssvc.PermissionSvcFacade, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			logger.Warn("Permission check without authenticated user")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		allowed, err := permSvc.HasPermission(c.Request.Context(), userID, resource, action)
		if err != nil {
			logger.Error("Permission check failed", "error", err, "resource", resource, "action", action)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check permissions"})
			return
		}
		if !allowed {
			logger.Warn("Permission denied", "resource", resource, "action", action)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}

// RequireRole creates a Gin middleware handler that gates a route on the
// built-in role enum carried in the token claims.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		roleStr, ok := GetUserRoleFromContext(c)
		if !ok {
			logger.Warn("Role check without authenticated user")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		for _, role := range roles {
			if domain.Role(roleStr) == role {
				c.Next()
				return
			}
		}

		logger.Warn("Role denied", "role", roleStr)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	}
}
