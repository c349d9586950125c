package review

import "time"

// RecordStatus is the review workflow state of a record.
type RecordStatus string

const (
	StatusSubmitted RecordStatus = "submitted"
	StatusReviewed  RecordStatus = "reviewed"
	StatusApproved  RecordStatus = "approved"
	StatusRejected  RecordStatus = "rejected"
)

func ValidStatus(s RecordStatus) bool {
	switch s {
	case StatusSubmitted, StatusReviewed, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Record is the one-to-one companion of a booked slot: the artifact both
// parties attach feedback and files to. booking_id carries a unique
// constraint, which is what makes creation idempotent under retries.
type Record struct {
	ID          string       `gorm:"column:id;primaryKey" json:"id"`
	BookingID   string       `gorm:"column:booking_id;uniqueIndex" json:"booking_id"`
	StudentID   int64        `gorm:"column:student_id" json:"student_id"`
	TutorID     int64        `gorm:"column:tutor_id" json:"tutor_id"`
	Title       string       `gorm:"column:title" json:"title"`
	Description string       `gorm:"column:description" json:"description"`
	Status      RecordStatus `gorm:"column:status" json:"status"`
	CreatedAt   time.Time    `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"column:updated_at" json:"updated_at"`
}

func (Record) TableName() string { return "repositories" }

// RecordDetails is the read model for the record detail screen: the record
// plus both parties' display names and the originating slot's time window.
type RecordDetails struct {
	Record
	StudentName string    `gorm:"column:student_name" json:"student_name"`
	TutorName   string    `gorm:"column:tutor_name" json:"tutor_name"`
	SlotStart   time.Time `gorm:"column:slot_start" json:"slot_start"`
	SlotEnd     time.Time `gorm:"column:slot_end" json:"slot_end"`
	SlotStatus  string    `gorm:"column:slot_status" json:"slot_status"`
}

// File is metadata for a document attached to a record. The content itself
// lives in blob storage under StoragePath.
type File struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	RepositoryID string    `gorm:"column:repository_id" json:"repository_id"`
	FileName     string    `gorm:"column:file_name" json:"file_name"`
	FileSize     int64     `gorm:"column:file_size" json:"file_size"`
	FileType     string    `gorm:"column:file_type" json:"file_type"`
	FileURL      string    `gorm:"column:file_url" json:"file_url"`
	StoragePath  string    `gorm:"column:storage_path" json:"-"`
	UploadedBy   int64     `gorm:"column:uploaded_by" json:"uploaded_by"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (File) TableName() string { return "repository_files" }
