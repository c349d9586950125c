package review

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository handles all DB operations for review records and their file
// metadata.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	GetByBooking(ctx context.Context, bookingID string) (*Record, error)
	GetDetails(ctx context.Context, id string) (*RecordDetails, error)
	ListByUser(ctx context.Context, userID int64) ([]Record, error)
	UpdateStatus(ctx context.Context, id string, status RecordStatus) error
	Delete(ctx context.Context, id string) (int64, error)

	CreateFile(ctx context.Context, f *File) error
	GetFile(ctx context.Context, id string) (*File, error)
	ListFiles(ctx context.Context, recordID string) ([]File, error)
	DeleteFile(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) GetByBooking(ctx context.Context, bookingID string) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) GetDetails(ctx context.Context, id string) (*RecordDetails, error) {
	var d RecordDetails
	err := r.db.WithContext(ctx).
		Model(&Record{}).
		Select(`repositories.*,
			student.name AS student_name,
			tutor.name AS tutor_name,
			ev.start_time AS slot_start,
			ev.end_time AS slot_end,
			ev.status AS slot_status`).
		Joins("JOIN profiles student ON student.id = repositories.student_id").
		Joins("JOIN profiles tutor ON tutor.id = repositories.tutor_id").
		Joins("JOIN calendar_events ev ON ev.id = repositories.booking_id").
		Where("repositories.id = ?", id).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int64) ([]Record, error) {
	var recs []Record
	err := r.db.WithContext(ctx).
		Where("student_id = ? OR tutor_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&recs).Error
	return recs, err
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status RecordStatus) error {
	res := r.db.WithContext(ctx).
		Model(&Record{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Record{})
	return res.RowsAffected, res.Error
}

func (r *repository) CreateFile(ctx context.Context, f *File) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) GetFile(ctx context.Context, id string) (*File, error) {
	var f File
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) ListFiles(ctx context.Context, recordID string) ([]File, error) {
	var files []File
	err := r.db.WithContext(ctx).
		Where("repository_id = ?", recordID).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}

func (r *repository) DeleteFile(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&File{})
	return res.RowsAffected, res.Error
}
