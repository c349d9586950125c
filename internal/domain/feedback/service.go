package feedback

import (
	"context"
	"errors"
	"strings"

	"tutorhub/internal/domain/review"
)

// RecordDirectory resolves a review record's parties for authorization.
// Implemented by the review service; a missing record is reported as
// review.ErrNotFound, anything else is a storage failure.
type RecordDirectory interface {
	GetParties(ctx context.Context, recordID string) (studentID, tutorID int64, err error)
}

// Broadcaster pushes new messages to connected clients. Implemented by the
// WebSocket hub; nil disables push.
type Broadcaster interface {
	BroadcastMessage(recordID string, m *Message)
}

// Service is the append-only feedback thread attached to a review record.
type Service struct {
	messages Repository
	records  RecordDirectory
	hub      Broadcaster
}

func NewService(messages Repository, records RecordDirectory, hub Broadcaster) *Service {
	return &Service{messages: messages, records: records, hub: hub}
}

// Append adds a message to the thread. Whitespace-only text is rejected.
// Only the record's parties may write; the author role is derived from which
// side of the record the author is.
func (s *Service) Append(ctx context.Context, recordID string, authorID int64, text string) (*Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	studentID, tutorID, err := s.records.GetParties(ctx, recordID)
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	var role AuthorRole
	switch authorID {
	case tutorID:
		role = RoleTutor
	case studentID:
		role = RoleStudent
	default:
		return nil, ErrForbidden
	}

	m := &Message{
		RepositoryID: recordID,
		AuthorID:     authorID,
		AuthorRole:   role,
		Text:         text,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastMessage(recordID, m)
	}
	return m, nil
}

// List returns the whole thread, oldest first. The read is restartable; the
// client may re-fetch freely.
func (s *Service) List(ctx context.Context, recordID string, actorID int64, isAdmin bool) ([]Message, error) {
	studentID, tutorID, err := s.records.GetParties(ctx, recordID)
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	if !isAdmin && actorID != studentID && actorID != tutorID {
		return nil, ErrForbidden
	}
	return s.messages.ListByRecord(ctx, recordID)
}
