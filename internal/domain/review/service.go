package review

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tutorhub/internal/database"
)

// BlobStore is the out-of-band file storage. Implemented by internal/storage.
type BlobStore interface {
	Put(ctx context.Context, path string, r io.Reader, size int64) (url string, err error)
	Delete(ctx context.Context, path string) error
}

// FeedbackPurger removes a record's feedback thread during retention cleanup.
// Implemented by the feedback repository.
type FeedbackPurger interface {
	DeleteByRecord(ctx context.Context, recordID string) (int64, error)
}

// SlotPurger removes slot rows during retention cleanup. Implemented by the
// schedule repository.
type SlotPurger interface {
	DeleteByID(ctx context.Context, id string) (int64, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}

// Service manages review records, their attached files, and retention
// cleanup.
type Service struct {
	records  Repository
	blobs    BlobStore
	feedback FeedbackPurger
	slots    SlotPurger
	log      *zap.Logger
}

func NewService(records Repository, blobs BlobStore, feedback FeedbackPurger, slots SlotPurger, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{records: records, blobs: blobs, feedback: feedback, slots: slots, log: log}
}

// CreateForBooking materializes the review record for an accepted booking.
// Called only from the lifecycle engine's acceptance path. The unique
// constraint on booking_id makes this idempotent: a retried acceptance gets
// the existing record back instead of an error.
func (s *Service) CreateForBooking(ctx context.Context, slotID string, studentID, tutorID int64, title, description string) (string, error) {
	if title == "" {
		title = fmt.Sprintf("Session %s", time.Now().Format("2006-01-02"))
	}

	rec := &Record{
		ID:          uuid.New().String(),
		BookingID:   slotID,
		StudentID:   studentID,
		TutorID:     tutorID,
		Title:       title,
		Description: description,
		Status:      StatusSubmitted,
	}

	if err := s.records.Create(ctx, rec); err != nil {
		if database.IsUniqueViolation(err) {
			existing, getErr := s.records.GetByBooking(ctx, slotID)
			if getErr != nil {
				return "", getErr
			}
			return existing.ID, nil
		}
		return "", err
	}
	return rec.ID, nil
}

// GetDetails returns the record joined with party names and the slot window.
// Only the record's parties or an admin may read it.
func (s *Service) GetDetails(ctx context.Context, id string, actorID int64, isAdmin bool) (*RecordDetails, error) {
	d, err := s.records.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && d.StudentID != actorID && d.TutorID != actorID {
		return nil, ErrForbidden
	}
	return d, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]Record, error) {
	return s.records.ListByUser(ctx, userID)
}

// GetParties resolves a record's student/tutor pair. The feedback service
// uses it for authorization.
func (s *Service) GetParties(ctx context.Context, recordID string) (int64, int64, error) {
	rec, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return 0, 0, err
	}
	return rec.StudentID, rec.TutorID, nil
}

// UpdateStatus moves a record through the review workflow.
func (s *Service) UpdateStatus(ctx context.Context, id string, actorID int64, isAdmin bool, status RecordStatus) (*Record, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && rec.StudentID != actorID && rec.TutorID != actorID {
		return nil, ErrForbidden
	}

	if err := s.records.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	rec.Status = status
	return rec, nil
}

// AttachFile stores the blob first, then records the metadata. A metadata
// failure rolls the blob back so storage never holds unreferenced content on
// this path.
func (s *Service) AttachFile(ctx context.Context, recordID string, uploaderID int64, isAdmin bool, fileName, mimeType string, size int64, content io.Reader) (*File, error) {
	if size <= 0 {
		return nil, ErrEmptyFile
	}

	rec, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && rec.StudentID != uploaderID && rec.TutorID != uploaderID {
		return nil, ErrForbidden
	}

	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	path := blobPath(recordID, fileName)
	url, err := s.blobs.Put(ctx, path, content, size)
	if err != nil {
		return nil, err
	}

	f := &File{
		ID:           uuid.New().String(),
		RepositoryID: recordID,
		FileName:     fileName,
		FileSize:     size,
		FileType:     mimeType,
		FileURL:      url,
		StoragePath:  path,
		UploadedBy:   uploaderID,
	}

	if err := s.records.CreateFile(ctx, f); err != nil {
		_ = s.blobs.Delete(ctx, path)
		return nil, err
	}
	return f, nil
}

func (s *Service) ListFiles(ctx context.Context, recordID string, actorID int64, isAdmin bool) ([]File, error) {
	rec, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && rec.StudentID != actorID && rec.TutorID != actorID {
		return nil, ErrForbidden
	}
	return s.records.ListFiles(ctx, recordID)
}

// RemoveFile deletes the blob, then the metadata. A failed blob delete is
// logged and the metadata is still removed; retention cleanup reconciles the
// orphaned blob later.
func (s *Service) RemoveFile(ctx context.Context, fileID string, actorID int64, isAdmin bool) error {
	f, err := s.records.GetFile(ctx, fileID)
	if err != nil {
		return err
	}

	rec, err := s.records.GetByID(ctx, f.RepositoryID)
	if err != nil {
		return err
	}
	if !isAdmin && rec.StudentID != actorID && rec.TutorID != actorID {
		return ErrForbidden
	}

	if err := s.blobs.Delete(ctx, f.StoragePath); err != nil {
		s.log.Warn("blob delete failed, removing metadata anyway",
			zap.String("file_id", f.ID),
			zap.String("path", f.StoragePath),
			zap.Error(err))
	}

	_, err = s.records.DeleteFile(ctx, fileID)
	return err
}

// PurgeReport summarizes a retention purge. BlobFailures holds storage paths
// whose blobs could not be deleted; those runs are partial, not failed.
type PurgeReport struct {
	Records      int64    `json:"records"`
	Slots        int64    `json:"slots"`
	Files        int64    `json:"files"`
	Messages     int64    `json:"messages"`
	BlobFailures []string `json:"blob_failures,omitempty"`
}

func (p *PurgeReport) Partial() bool { return len(p.BlobFailures) > 0 }

// PurgeForUser removes every record, file, feedback message and slot
// referencing the user. Children go before parents: blobs, then file rows,
// then feedback, then the record, then the owning slot. An interrupted run
// can be retried without orphaning blob references; every step tolerates
// already-deleted rows.
func (s *Service) PurgeForUser(ctx context.Context, userID int64) (*PurgeReport, error) {
	report := &PurgeReport{}

	records, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		files, err := s.records.ListFiles(ctx, rec.ID)
		if err != nil {
			return report, err
		}
		for _, f := range files {
			if err := s.blobs.Delete(ctx, f.StoragePath); err != nil {
				report.BlobFailures = append(report.BlobFailures, f.StoragePath)
				s.log.Warn("purge: blob delete failed",
					zap.String("path", f.StoragePath),
					zap.Error(err))
			}
			n, err := s.records.DeleteFile(ctx, f.ID)
			if err != nil {
				return report, err
			}
			report.Files += n
		}

		n, err := s.feedback.DeleteByRecord(ctx, rec.ID)
		if err != nil {
			return report, err
		}
		report.Messages += n

		n, err = s.records.Delete(ctx, rec.ID)
		if err != nil {
			return report, err
		}
		report.Records += n

		n, err = s.slots.DeleteByID(ctx, rec.BookingID)
		if err != nil {
			return report, err
		}
		report.Slots += n
	}

	// Slots that never reached a review record still reference the user.
	n, err := s.slots.DeleteByUser(ctx, userID)
	if err != nil {
		return report, err
	}
	report.Slots += n

	if report.Partial() {
		s.log.Warn("purge completed with blob failures",
			zap.Int64("user_id", userID),
			zap.Strings("paths", report.BlobFailures))
	} else {
		s.log.Info("purge completed",
			zap.Int64("user_id", userID),
			zap.Int64("records", report.Records),
			zap.Int64("slots", report.Slots))
	}
	return report, nil
}

// blobPath builds the storage key: record id / timestamp-random.ext.
func blobPath(recordID, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("%s/%d-%06d%s", recordID, time.Now().UnixMilli(), rand.Intn(1000000), ext)
}
