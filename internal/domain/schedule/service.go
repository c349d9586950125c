package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewRecorder materializes the companion review record when a booking is
// accepted. Implemented by the review service; creation is idempotent per
// slot, so the acceptance path may safely be retried.
type ReviewRecorder interface {
	CreateForBooking(ctx context.Context, slotID string, studentID, tutorID int64, title, description string) (string, error)
}

// Service is the session lifecycle engine: it decides which transitions are
// legal, applies them through conditional updates, and triggers review record
// creation on acceptance.
type Service struct {
	slots   Repository
	records ReviewRecorder
	log     *zap.Logger
}

func NewService(slots Repository, records ReviewRecorder, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{slots: slots, records: records, log: log}
}

// PublishSlot creates a new available slot for the tutor. The interval must
// be well ordered and must not start in the past.
func (s *Service) PublishSlot(ctx context.Context, tutorID int64, start, end time.Time) (*Slot, error) {
	if !start.Before(end) || start.Before(time.Now()) {
		return nil, ErrInvalidInterval
	}

	slot := &Slot{
		ID:        uuid.New().String(),
		TutorID:   tutorID,
		StartTime: start,
		EndTime:   end,
		Status:    StatusAvailable,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// RequestSlot claims an available slot for the student. The claim is a
// conditional update keyed on (id, status=available): of two concurrent
// requesters exactly one wins, the other gets ErrSlotUnavailable.
func (s *Service) RequestSlot(ctx context.Context, slotID string, studentID int64, title, description string) (*Slot, error) {
	claimed, err := s.slots.Claim(ctx, slotID, studentID, strings.TrimSpace(title), strings.TrimSpace(description))
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrSlotUnavailable
	}
	return s.slots.GetByID(ctx, slotID)
}

// RespondToRequest accepts or rejects a pending request. The status update is
// applied first; the review record is created only when the conditional
// update succeeded, so a stale or duplicate response can never spawn one.
func (s *Service) RespondToRequest(ctx context.Context, slotID string, tutorID int64, accept bool) (*Slot, error) {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.TutorID != tutorID {
		return nil, ErrForbidden
	}

	op := OpReject
	reason := "rejected"
	if accept {
		op = OpAccept
		reason = ""
	}

	next, ok := Next(op, StatusPending)
	if !ok {
		return nil, ErrRequestNotPending
	}

	applied, err := s.slots.UpdateStatusIf(ctx, slotID, StatusPending, next, reason)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrRequestNotPending
	}

	updated, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	if SpawnsReviewRecord(op) {
		recordID, err := s.records.CreateForBooking(
			ctx,
			updated.ID,
			deref(updated.StudentID),
			updated.TutorID,
			derefStr(updated.Title),
			derefStr(updated.Description),
		)
		if err != nil {
			return nil, err
		}
		s.log.Info("review record created for booking",
			zap.String("slot_id", updated.ID),
			zap.String("record_id", recordID))
	}

	return updated, nil
}

// CancelSlot cancels a slot owned by the acting tutor. Canceling an already
// canceled slot is an idempotent no-op.
func (s *Service) CancelSlot(ctx context.Context, slotID string, actingTutorID int64, reason string) (*Slot, error) {
	applied, err := s.slots.CancelOwned(ctx, slotID, actingTutorID, strings.TrimSpace(reason))
	if err != nil {
		return nil, err
	}

	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.TutorID != actingTutorID {
		return nil, ErrForbidden
	}
	if !applied && slot.Status != StatusCanceled {
		// Should not happen: the conditional update only skips canceled rows.
		return nil, ErrSlotUnavailable
	}
	return slot, nil
}

// ListAvailability returns a tutor's open slots ordered by start time.
func (s *Service) ListAvailability(ctx context.Context, tutorID int64) ([]Slot, error) {
	return s.slots.ListByTutor(ctx, tutorID, StatusAvailable)
}

// ListForTutor returns the tutor's slots, optionally filtered by status.
func (s *Service) ListForTutor(ctx context.Context, tutorID int64, status Status) ([]Slot, error) {
	return s.slots.ListByTutor(ctx, tutorID, status)
}

// ListForStudent returns slots the student has requested or booked.
func (s *Service) ListForStudent(ctx context.Context, studentID int64) ([]Slot, error) {
	return s.slots.ListByStudent(ctx, studentID)
}

func (s *Service) GetByID(ctx context.Context, slotID string) (*Slot, error) {
	return s.slots.GetByID(ctx, slotID)
}

func deref(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
