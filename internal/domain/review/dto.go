package review

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=submitted reviewed approved rejected"`
}
