package middleware

import (
	"net/http"
	"strings"

	"servicesales-pro/internal/auth"
	"servicesales-pro/internal/database"
	"servicesales-pro/internal/models"
	"servicesales-pro/internal/permissions"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks if the user has a valid JWT token
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Token comes in the "Authorization" header as "Bearer <token>"
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer"})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// Store employee info in the context for the next handler to use
		c.Set("employeeID", claims.EmployeeID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RequirePermission guards a route group with one capability flag. The
// caller's role is resolved against the current role definitions, so a
// permission revoked in settings takes effect on the next request - no
// re-login needed. A role with no definition resolves to an empty set.
func RequirePermission(perm models.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			c.Abort()
			return
		}
		role, ok := roleValue.(models.Role)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			c.Abort()
			return
		}

		var defs []models.RoleDefinition
		if err := database.DB.Find(&defs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load role definitions"})
			c.Abort()
			return
		}

		if !permissions.For(role, defs).Has(perm) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			c.Abort()
			return
		}
		c.Next()
	}
}
