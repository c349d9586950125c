package feedback

import "time"

// AuthorRole tags which side of the session wrote a message.
type AuthorRole string

const (
	RoleTutor   AuthorRole = "tutor"
	RoleStudent AuthorRole = "student"
)

// Message is one entry in a review record's thread. Messages are append-only:
// never edited, never deleted outside retention cleanup. The serial id breaks
// ties when two messages share a creation timestamp.
type Message struct {
	ID           int64      `gorm:"column:id;primaryKey" json:"id"`
	RepositoryID string     `gorm:"column:repository_id" json:"repository_id"`
	AuthorID     int64      `gorm:"column:author_id" json:"author_id"`
	AuthorRole   AuthorRole `gorm:"column:author_role" json:"author_role"`
	Text         string     `gorm:"column:message" json:"message"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`

	// Joined from profiles (populated by repo reads).
	AuthorName string `gorm:"->;-:migration;column:author_name" json:"author_name,omitempty"`
}

func (Message) TableName() string { return "repository_feedback" }
