package schedule

import "time"

// Status is the lifecycle state of a bookable slot. The strings are stored
// as-is in the status column.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusBooked    Status = "booked"
	StatusCanceled  Status = "canceled"
)

// Slot is a tutor-published bookable time interval. A slot is owned by its
// tutor; the student reference is set when a request claims it.
type Slot struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	TutorID      int64     `gorm:"column:tutor_id" json:"tutor_id"`
	StudentID    *int64    `gorm:"column:student_id" json:"student_id,omitempty"`
	StartTime    time.Time `gorm:"column:start_time" json:"start_time"`
	EndTime      time.Time `gorm:"column:end_time" json:"end_time"`
	Status       Status    `gorm:"column:status" json:"status"`
	Title        *string   `gorm:"column:title" json:"title,omitempty"`
	Description  *string   `gorm:"column:description" json:"description,omitempty"`
	CancelReason *string   `gorm:"column:cancel_reason" json:"cancel_reason,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Slot) TableName() string { return "calendar_events" }
