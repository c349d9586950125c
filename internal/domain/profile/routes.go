package profile

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers auth endpoints that require no token.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

// RegisterRoutes registers profile endpoints under the protected group.
// adminOnly guards the user-management endpoints.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, adminOnly gin.HandlerFunc) {
	r.GET("/me", h.Me)

	users := r.Group("/users")
	{
		users.GET("", adminOnly, h.ListUsers)
		users.PATCH("/:id", h.UpdateUser)
		users.DELETE("/:id", adminOnly, h.DeleteUser)
	}
}
