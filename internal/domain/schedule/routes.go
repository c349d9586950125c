package schedule

import "github.com/gin-gonic/gin"

// RegisterRoutes registers slot lifecycle routes under the protected group.
// tutorOnly/studentOnly are role guards from the middleware package.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, tutorOnly, studentOnly gin.HandlerFunc) {
	slots := r.Group("/slots")
	{
		slots.POST("", tutorOnly, h.PublishSlot)
		slots.GET("/mine", tutorOnly, h.MySlots)
		slots.GET("/:id", h.GetSlot)
		slots.POST("/:id/request", studentOnly, h.RequestSlot)
		slots.POST("/:id/respond", tutorOnly, h.RespondToRequest)
		slots.POST("/:id/cancel", tutorOnly, h.CancelSlot)
	}

	r.GET("/tutors/:id/availability", h.TutorAvailability)
	r.GET("/sessions/mine", studentOnly, h.MySessions)
}
