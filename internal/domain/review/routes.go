package review

import "github.com/gin-gonic/gin"

// RegisterRoutes registers review record routes under the protected group.
// Records are created by the lifecycle engine, never through a route.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, adminOnly gin.HandlerFunc) {
	repos := r.Group("/repositories")
	{
		repos.GET("/mine", h.ListMine)
		repos.GET("/:id", h.GetRecord)
		repos.PATCH("/:id/status", h.UpdateStatus)
		repos.POST("/:id/files", h.AttachFile)
		repos.GET("/:id/files", h.ListFiles)
		repos.DELETE("/:id/files/:file_id", h.RemoveFile)
	}

	r.POST("/admin/users/:id/purge", adminOnly, h.PurgeUser)
}
