package review

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tutorhub/internal/pkg/response"
)

const maxUploadSize = 50 * 1024 * 1024 // 50 MB

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func actor(c *gin.Context) (int64, bool) {
	return c.GetInt64("user_id"), c.GetString("role") == "admin"
}

func (h *Handler) GetRecord(c *gin.Context) {
	actorID, isAdmin := actor(c)
	d, err := h.service.GetDetails(c.Request.Context(), c.Param("id"), actorID, isAdmin)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review record not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not a party to this record")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load record")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"repository": d})
}

func (h *Handler) ListMine(c *gin.Context) {
	recs, err := h.service.ListForUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list records")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"repositories": recs})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actorID, isAdmin := actor(c)
	rec, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), actorID, isAdmin, RecordStatus(req.Status))
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review record not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not a party to this record")
		case ErrInvalidStatus:
			response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown record status")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update status")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"repository": rec})
}

func (h *Handler) AttachFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing file field")
		return
	}
	if fileHeader.Size > maxUploadSize {
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the maximum allowed size")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read upload")
		return
	}
	defer src.Close()

	actorID, isAdmin := actor(c)
	f, err := h.service.AttachFile(
		c.Request.Context(),
		c.Param("id"),
		actorID,
		isAdmin,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		src,
	)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review record not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not a party to this record")
		case ErrEmptyFile:
			response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "File is empty")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to attach file")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"file": f})
}

func (h *Handler) ListFiles(c *gin.Context) {
	actorID, isAdmin := actor(c)
	files, err := h.service.ListFiles(c.Request.Context(), c.Param("id"), actorID, isAdmin)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review record not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not a party to this record")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list files")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"files": files})
}

func (h *Handler) RemoveFile(c *gin.Context) {
	actorID, isAdmin := actor(c)
	err := h.service.RemoveFile(c.Request.Context(), c.Param("file_id"), actorID, isAdmin)
	if err != nil {
		switch err {
		case ErrFileNotFound, ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not a party to this record")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to remove file")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// PurgeUser is the admin "clear history" action: all slots, records, feedback
// and files referencing the user are removed. Blob failures degrade the run
// to partial, they do not fail it.
func (h *Handler) PurgeUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	report, err := h.service.PurgeForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Purge failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"report": report, "partial": report.Partial()})
}
