package feedback

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorhub/internal/pkg/response"
)

type AppendRequest struct {
	Message string `json:"message" binding:"required"`
}

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) Append(c *gin.Context) {
	var req AppendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := h.service.Append(c.Request.Context(), c.Param("id"), c.GetInt64("user_id"), req.Message)
	if err != nil {
		switch err {
		case ErrEmptyMessage:
			response.Error(c, http.StatusBadRequest, "EMPTY_MESSAGE", "Message must not be empty")
		case ErrRecordNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review record not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not a party to this record")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to append feedback")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"feedback": m})
}

func (h *Handler) List(c *gin.Context) {
	msgs, err := h.service.List(
		c.Request.Context(),
		c.Param("id"),
		c.GetInt64("user_id"),
		c.GetString("role") == "admin",
	)
	if err != nil {
		switch err {
		case ErrRecordNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review record not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not a party to this record")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load feedback")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"feedback": msgs})
}
