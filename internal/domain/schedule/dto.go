package schedule

import "time"

type PublishSlotRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type RequestSlotRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type RespondRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}
