package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func ptr[T any](v T) *T { return &v }

type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) Create(ctx context.Context, s *Slot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSlotRepository) GetByID(ctx context.Context, id string) (*Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Slot), args.Error(1)
}

func (m *MockSlotRepository) ListByTutor(ctx context.Context, tutorID int64, status Status) ([]Slot, error) {
	args := m.Called(ctx, tutorID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Slot), args.Error(1)
}

func (m *MockSlotRepository) ListByStudent(ctx context.Context, studentID int64) ([]Slot, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Slot), args.Error(1)
}

func (m *MockSlotRepository) Claim(ctx context.Context, slotID string, studentID int64, title, description string) (bool, error) {
	args := m.Called(ctx, slotID, studentID, title, description)
	return args.Bool(0), args.Error(1)
}

func (m *MockSlotRepository) UpdateStatusIf(ctx context.Context, slotID string, from, to Status, reason string) (bool, error) {
	args := m.Called(ctx, slotID, from, to, reason)
	return args.Bool(0), args.Error(1)
}

func (m *MockSlotRepository) CancelOwned(ctx context.Context, slotID string, tutorID int64, reason string) (bool, error) {
	args := m.Called(ctx, slotID, tutorID, reason)
	return args.Bool(0), args.Error(1)
}

func (m *MockSlotRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSlotRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockReviewRecorder struct {
	mock.Mock
}

func (m *MockReviewRecorder) CreateForBooking(ctx context.Context, slotID string, studentID, tutorID int64, title, description string) (string, error) {
	args := m.Called(ctx, slotID, studentID, tutorID, title, description)
	return args.String(0), args.Error(1)
}

func TestService_PublishSlot_Success(t *testing.T) {
	slots := new(MockSlotRepository)
	slots.On("Create", mock.Anything, mock.Anything).Return(nil)
	service := NewService(slots, new(MockReviewRecorder), nil)

	start := time.Now().Add(24 * time.Hour)
	slot, err := service.PublishSlot(context.Background(), 7, start, start.Add(time.Hour))

	assert.NoError(t, err)
	assert.NotEmpty(t, slot.ID)
	assert.Equal(t, int64(7), slot.TutorID)
	assert.Equal(t, StatusAvailable, slot.Status)
	slots.AssertExpectations(t)
}

func TestService_PublishSlot_InvalidInterval(t *testing.T) {
	service := NewService(new(MockSlotRepository), new(MockReviewRecorder), nil)
	start := time.Now().Add(24 * time.Hour)

	// end before start
	_, err := service.PublishSlot(context.Background(), 7, start, start.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// zero-length
	_, err = service.PublishSlot(context.Background(), 7, start, start)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// in the past
	past := time.Now().Add(-2 * time.Hour)
	_, err = service.PublishSlot(context.Background(), 7, past, past.Add(time.Hour))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestService_RequestSlot_Success(t *testing.T) {
	slots := new(MockSlotRepository)
	slots.On("Claim", mock.Anything, "slot-1", int64(42), "Algebra", "").Return(true, nil)
	slots.On("GetByID", mock.Anything, "slot-1").Return(&Slot{
		ID:        "slot-1",
		TutorID:   7,
		StudentID: ptr(int64(42)),
		Status:    StatusPending,
	}, nil)
	service := NewService(slots, new(MockReviewRecorder), nil)

	slot, err := service.RequestSlot(context.Background(), "slot-1", 42, " Algebra ", "")

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, slot.Status)
	assert.Equal(t, int64(42), *slot.StudentID)
}

func TestService_RequestSlot_LostRace(t *testing.T) {
	slots := new(MockSlotRepository)
	slots.On("Claim", mock.Anything, "slot-1", int64(43), "", "").Return(false, nil)
	service := NewService(slots, new(MockReviewRecorder), nil)

	_, err := service.RequestSlot(context.Background(), "slot-1", 43, "", "")

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	slots.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_RespondToRequest_AcceptCreatesRecord(t *testing.T) {
	pending := &Slot{
		ID:        "slot-1",
		TutorID:   7,
		StudentID: ptr(int64(42)),
		Status:    StatusPending,
		Title:     ptr("Algebra"),
	}
	booked := *pending
	booked.Status = StatusBooked

	slots := new(MockSlotRepository)
	slots.On("GetByID", mock.Anything, "slot-1").Return(pending, nil).Once()
	slots.On("UpdateStatusIf", mock.Anything, "slot-1", StatusPending, StatusBooked, "").Return(true, nil)
	slots.On("GetByID", mock.Anything, "slot-1").Return(&booked, nil).Once()

	records := new(MockReviewRecorder)
	records.On("CreateForBooking", mock.Anything, "slot-1", int64(42), int64(7), "Algebra", "").
		Return("rec-1", nil)

	service := NewService(slots, records, nil)
	slot, err := service.RespondToRequest(context.Background(), "slot-1", 7, true)

	assert.NoError(t, err)
	assert.Equal(t, StatusBooked, slot.Status)
	records.AssertExpectations(t)
}

func TestService_RespondToRequest_RejectNeverCreatesRecord(t *testing.T) {
	pending := &Slot{
		ID:        "slot-1",
		TutorID:   7,
		StudentID: ptr(int64(42)),
		Status:    StatusPending,
	}
	canceled := *pending
	canceled.Status = StatusCanceled

	slots := new(MockSlotRepository)
	slots.On("GetByID", mock.Anything, "slot-1").Return(pending, nil).Once()
	slots.On("UpdateStatusIf", mock.Anything, "slot-1", StatusPending, StatusCanceled, "rejected").Return(true, nil)
	slots.On("GetByID", mock.Anything, "slot-1").Return(&canceled, nil).Once()

	records := new(MockReviewRecorder)
	service := NewService(slots, records, nil)

	slot, err := service.RespondToRequest(context.Background(), "slot-1", 7, false)

	assert.NoError(t, err)
	assert.Equal(t, StatusCanceled, slot.Status)
	records.AssertNotCalled(t, "CreateForBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_RespondToRequest_DoubleAccept(t *testing.T) {
	booked := &Slot{ID: "slot-1", TutorID: 7, Status: StatusBooked}

	slots := new(MockSlotRepository)
	slots.On("GetByID", mock.Anything, "slot-1").Return(booked, nil)
	slots.On("UpdateStatusIf", mock.Anything, "slot-1", StatusPending, StatusBooked, "").Return(false, nil)

	records := new(MockReviewRecorder)
	service := NewService(slots, records, nil)

	_, err := service.RespondToRequest(context.Background(), "slot-1", 7, true)

	assert.ErrorIs(t, err, ErrRequestNotPending)
	records.AssertNotCalled(t, "CreateForBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_RespondToRequest_WrongTutor(t *testing.T) {
	slots := new(MockSlotRepository)
	slots.On("GetByID", mock.Anything, "slot-1").Return(&Slot{ID: "slot-1", TutorID: 7, Status: StatusPending}, nil)
	service := NewService(slots, new(MockReviewRecorder), nil)

	_, err := service.RespondToRequest(context.Background(), "slot-1", 8, true)

	assert.ErrorIs(t, err, ErrForbidden)
	slots.AssertNotCalled(t, "UpdateStatusIf", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CancelSlot_Booked(t *testing.T) {
	slots := new(MockSlotRepository)
	slots.On("CancelOwned", mock.Anything, "slot-1", int64(7), "sick").Return(true, nil)
	slots.On("GetByID", mock.Anything, "slot-1").Return(&Slot{
		ID:           "slot-1",
		TutorID:      7,
		Status:       StatusCanceled,
		CancelReason: ptr("sick"),
	}, nil)
	service := NewService(slots, new(MockReviewRecorder), nil)

	slot, err := service.CancelSlot(context.Background(), "slot-1", 7, "sick")

	assert.NoError(t, err)
	assert.Equal(t, StatusCanceled, slot.Status)
	assert.Equal(t, "sick", *slot.CancelReason)
}

func TestService_CancelSlot_AlreadyCanceledIsNoOp(t *testing.T) {
	slots := new(MockSlotRepository)
	slots.On("CancelOwned", mock.Anything, "slot-1", int64(7), "").Return(false, nil)
	slots.On("GetByID", mock.Anything, "slot-1").Return(&Slot{ID: "slot-1", TutorID: 7, Status: StatusCanceled}, nil)
	service := NewService(slots, new(MockReviewRecorder), nil)

	slot, err := service.CancelSlot(context.Background(), "slot-1", 7, "")

	assert.NoError(t, err)
	assert.Equal(t, StatusCanceled, slot.Status)
}

func TestService_CancelSlot_NotOwner(t *testing.T) {
	slots := new(MockSlotRepository)
	slots.On("CancelOwned", mock.Anything, "slot-1", int64(9), "").Return(false, nil)
	slots.On("GetByID", mock.Anything, "slot-1").Return(&Slot{ID: "slot-1", TutorID: 7, Status: StatusBooked}, nil)
	service := NewService(slots, new(MockReviewRecorder), nil)

	_, err := service.CancelSlot(context.Background(), "slot-1", 9, "")

	assert.ErrorIs(t, err, ErrForbidden)
}
