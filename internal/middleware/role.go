package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorhub/internal/pkg/response"
)

// RequireRole ensures that the authenticated user has the specified role.
// Admins pass every role check.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if role.(string) != requiredRole && role.(string) != "admin" {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc { return RequireRole("admin") }

func TutorOnly() gin.HandlerFunc { return RequireRole("tutor") }

func StudentOnly() gin.HandlerFunc { return RequireRole("student") }
