package feedback

import "github.com/gin-gonic/gin"

// RegisterRoutes registers feedback thread routes under the protected group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	repos := r.Group("/repositories/:id/feedback")
	{
		repos.POST("", h.Append)
		repos.GET("", h.List)
		repos.GET("/ws", h.WebSocket)
	}
}
