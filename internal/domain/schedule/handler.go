package schedule

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tutorhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) PublishSlot(c *gin.Context) {
	var req PublishSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	slot, err := h.service.PublishSlot(c.Request.Context(), c.GetInt64("user_id"), req.StartTime, req.EndTime)
	if err != nil {
		switch err {
		case ErrInvalidInterval:
			response.Error(c, http.StatusBadRequest, "INVALID_INTERVAL", "Slot must start before it ends and not in the past")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to publish slot")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"slot": slot})
}

func (h *Handler) RequestSlot(c *gin.Context) {
	var req RequestSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	slot, err := h.service.RequestSlot(c.Request.Context(), c.Param("id"), c.GetInt64("user_id"), req.Title, req.Description)
	if err != nil {
		switch err {
		case ErrSlotUnavailable:
			response.Error(c, http.StatusConflict, "SLOT_UNAVAILABLE", "Slot is no longer available")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Slot not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to request slot")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slot": slot})
}

func (h *Handler) RespondToRequest(c *gin.Context) {
	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	slot, err := h.service.RespondToRequest(c.Request.Context(), c.Param("id"), c.GetInt64("user_id"), *req.Accept)
	if err != nil {
		switch err {
		case ErrRequestNotPending:
			response.Error(c, http.StatusConflict, "REQUEST_NOT_PENDING", "Request has already been handled")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this slot")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Slot not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to respond to request")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slot": slot})
}

func (h *Handler) CancelSlot(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	slot, err := h.service.CancelSlot(c.Request.Context(), c.Param("id"), c.GetInt64("user_id"), req.Reason)
	if err != nil {
		switch err {
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this slot")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Slot not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel slot")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slot": slot})
}

func (h *Handler) GetSlot(c *gin.Context) {
	slot, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Slot not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load slot")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slot": slot})
}

// TutorAvailability lists a tutor's open slots, earliest first.
func (h *Handler) TutorAvailability(c *gin.Context) {
	tutorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tutor ID")
		return
	}

	slots, err := h.service.ListAvailability(c.Request.Context(), tutorID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

// MySlots lists the acting tutor's slots, optionally filtered by ?status=.
func (h *Handler) MySlots(c *gin.Context) {
	status := Status(c.Query("status"))
	slots, err := h.service.ListForTutor(c.Request.Context(), c.GetInt64("user_id"), status)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load slots")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

// MySessions lists the acting student's requested and booked slots.
func (h *Handler) MySessions(c *gin.Context) {
	slots, err := h.service.ListForStudent(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load sessions")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}
