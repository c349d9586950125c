package feedback

import (
	"context"

	"gorm.io/gorm"
)

// Repository handles all DB operations for the feedback thread.
type Repository interface {
	Create(ctx context.Context, m *Message) error
	// ListByRecord returns the full thread ordered by creation time
	// ascending, ties broken by insertion order.
	ListByRecord(ctx context.Context, recordID string) ([]Message, error)
	DeleteByRecord(ctx context.Context, recordID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) ListByRecord(ctx context.Context, recordID string) ([]Message, error) {
	var msgs []Message
	err := r.db.WithContext(ctx).
		Model(&Message{}).
		Select("repository_feedback.*, author.name AS author_name").
		Joins("JOIN profiles author ON author.id = repository_feedback.author_id").
		Where("repository_feedback.repository_id = ?", recordID).
		Order("repository_feedback.created_at ASC, repository_feedback.id ASC").
		Find(&msgs).Error
	return msgs, err
}

func (r *repository) DeleteByRecord(ctx context.Context, recordID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("repository_id = ?", recordID).
		Delete(&Message{})
	return res.RowsAffected, res.Error
}
