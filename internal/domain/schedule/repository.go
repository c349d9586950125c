package schedule

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository handles all DB operations for slots. Every status mutation is a
// conditional update keyed on the expected current status; the boolean result
// reports whether the update matched a row. That conditional write is the only
// concurrency control the slot lifecycle needs.
type Repository interface {
	Create(ctx context.Context, s *Slot) error
	GetByID(ctx context.Context, id string) (*Slot, error)
	ListByTutor(ctx context.Context, tutorID int64, status Status) ([]Slot, error)
	ListByStudent(ctx context.Context, studentID int64) ([]Slot, error)

	// Claim atomically moves an available slot to pending and assigns the
	// student. Returns false when the slot was not available anymore.
	Claim(ctx context.Context, slotID string, studentID int64, title, description string) (bool, error)

	// UpdateStatusIf applies from->to only when the slot is currently in
	// from. Returns false when the conditional update matched no row.
	UpdateStatusIf(ctx context.Context, slotID string, from, to Status, reason string) (bool, error)

	// CancelOwned cancels a slot owned by tutorID unless it is already
	// canceled. Returns false when nothing was updated.
	CancelOwned(ctx context.Context, slotID string, tutorID int64, reason string) (bool, error)

	// DeleteByID and DeleteByUser physically remove rows. Only the retention
	// purge path uses them; normal cancellation is a status change.
	DeleteByID(ctx context.Context, id string) (int64, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Slot) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Slot, error) {
	var s Slot
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) ListByTutor(ctx context.Context, tutorID int64, status Status) ([]Slot, error) {
	q := r.db.WithContext(ctx).Where("tutor_id = ?", tutorID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var slots []Slot
	err := q.Order("start_time ASC").Find(&slots).Error
	return slots, err
}

func (r *repository) ListByStudent(ctx context.Context, studentID int64) ([]Slot, error) {
	var slots []Slot
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("start_time ASC").
		Find(&slots).Error
	return slots, err
}

func (r *repository) Claim(ctx context.Context, slotID string, studentID int64, title, description string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Slot{}).
		Where("id = ? AND status = ?", slotID, StatusAvailable).
		Updates(map[string]any{
			"status":      StatusPending,
			"student_id":  studentID,
			"title":       nullIfEmpty(title),
			"description": nullIfEmpty(description),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) UpdateStatusIf(ctx context.Context, slotID string, from, to Status, reason string) (bool, error) {
	updates := map[string]any{"status": to}
	if reason != "" {
		updates["cancel_reason"] = reason
	}

	res := r.db.WithContext(ctx).
		Model(&Slot{}).
		Where("id = ? AND status = ?", slotID, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) CancelOwned(ctx context.Context, slotID string, tutorID int64, reason string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Slot{}).
		Where("id = ? AND tutor_id = ? AND status <> ?", slotID, tutorID, StatusCanceled).
		Updates(map[string]any{
			"status":        StatusCanceled,
			"cancel_reason": nullIfEmpty(reason),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) DeleteByID(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Slot{})
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("tutor_id = ? OR student_id = ?", userID, userID).
		Delete(&Slot{})
	return res.RowsAffected, res.Error
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
