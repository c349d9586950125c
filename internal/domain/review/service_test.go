package review

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) Create(ctx context.Context, rec *Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecordRepository) GetByID(ctx context.Context, id string) (*Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Record), args.Error(1)
}

func (m *MockRecordRepository) GetByBooking(ctx context.Context, bookingID string) (*Record, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Record), args.Error(1)
}

func (m *MockRecordRepository) GetDetails(ctx context.Context, id string) (*RecordDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RecordDetails), args.Error(1)
}

func (m *MockRecordRepository) ListByUser(ctx context.Context, userID int64) ([]Record, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Record), args.Error(1)
}

func (m *MockRecordRepository) UpdateStatus(ctx context.Context, id string, status RecordStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRecordRepository) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordRepository) CreateFile(ctx context.Context, f *File) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockRecordRepository) GetFile(ctx context.Context, id string) (*File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*File), args.Error(1)
}

func (m *MockRecordRepository) ListFiles(ctx context.Context, recordID string) ([]File, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]File), args.Error(1)
}

func (m *MockRecordRepository) DeleteFile(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, path string, r io.Reader, size int64) (string, error) {
	args := m.Called(ctx, path, r, size)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

type MockFeedbackPurger struct {
	mock.Mock
}

func (m *MockFeedbackPurger) DeleteByRecord(ctx context.Context, recordID string) (int64, error) {
	args := m.Called(ctx, recordID)
	return args.Get(0).(int64), args.Error(1)
}

type MockSlotPurger struct {
	mock.Mock
}

func (m *MockSlotPurger) DeleteByID(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSlotPurger) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(records *MockRecordRepository, blobs *MockBlobStore, feedback *MockFeedbackPurger, slots *MockSlotPurger) *Service {
	return NewService(records, blobs, feedback, slots, nil)
}

func TestService_CreateForBooking_Success(t *testing.T) {
	records := new(MockRecordRepository)
	records.On("Create", mock.Anything, mock.MatchedBy(func(rec *Record) bool {
		return rec.BookingID == "slot-1" &&
			rec.StudentID == 42 &&
			rec.TutorID == 7 &&
			rec.Title == "Algebra" &&
			rec.Status == StatusSubmitted
	})).Return(nil)

	service := newTestService(records, new(MockBlobStore), new(MockFeedbackPurger), new(MockSlotPurger))

	id, err := service.CreateForBooking(context.Background(), "slot-1", 42, 7, "Algebra", "intro")

	assert.NoError(t, err)
	assert.NotEmpty(t, id)
	records.AssertExpectations(t)
}

func TestService_CreateForBooking_DefaultTitle(t *testing.T) {
	records := new(MockRecordRepository)
	records.On("Create", mock.Anything, mock.MatchedBy(func(rec *Record) bool {
		return strings.HasPrefix(rec.Title, "Session ")
	})).Return(nil)

	service := newTestService(records, new(MockBlobStore), new(MockFeedbackPurger), new(MockSlotPurger))

	_, err := service.CreateForBooking(context.Background(), "slot-1", 42, 7, "", "")
	assert.NoError(t, err)
	records.AssertExpectations(t)
}

func TestService_CreateForBooking_DuplicateReturnsExisting(t *testing.T) {
	dupErr := errors.New(`ERROR: duplicate key value violates unique constraint "repositories_booking_id_key" (SQLSTATE 23505)`)

	records := new(MockRecordRepository)
	records.On("Create", mock.Anything, mock.Anything).Return(dupErr)
	records.On("GetByBooking", mock.Anything, "slot-1").Return(&Record{ID: "rec-existing", BookingID: "slot-1"}, nil)

	service := newTestService(records, new(MockBlobStore), new(MockFeedbackPurger), new(MockSlotPurger))

	id, err := service.CreateForBooking(context.Background(), "slot-1", 42, 7, "Algebra", "")

	assert.NoError(t, err)
	assert.Equal(t, "rec-existing", id)
}

func TestService_UpdateStatus_PartyOnly(t *testing.T) {
	records := new(MockRecordRepository)
	records.On("GetByID", mock.Anything, "rec-1").Return(&Record{ID: "rec-1", StudentID: 42, TutorID: 7}, nil)

	service := newTestService(records, new(MockBlobStore), new(MockFeedbackPurger), new(MockSlotPurger))

	_, err := service.UpdateStatus(context.Background(), "rec-1", 99, false, StatusApproved)
	assert.ErrorIs(t, err, ErrForbidden)
	records.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateStatus_InvalidStatus(t *testing.T) {
	service := newTestService(new(MockRecordRepository), new(MockBlobStore), new(MockFeedbackPurger), new(MockSlotPurger))

	_, err := service.UpdateStatus(context.Background(), "rec-1", 42, false, RecordStatus("archived"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_AttachFile_RollsBackBlobOnMetadataError(t *testing.T) {
	records := new(MockRecordRepository)
	records.On("GetByID", mock.Anything, "rec-1").Return(&Record{ID: "rec-1", StudentID: 42, TutorID: 7}, nil)
	records.On("CreateFile", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	blobs := new(MockBlobStore)
	blobs.On("Put", mock.Anything, mock.Anything, mock.Anything, int64(3)).Return("/static/uploads/x", nil)
	blobs.On("Delete", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(records, blobs, new(MockFeedbackPurger), new(MockSlotPurger))

	_, err := service.AttachFile(context.Background(), "rec-1", 42, false, "notes.pdf", "application/pdf", 3, strings.NewReader("abc"))

	assert.Error(t, err)
	blobs.AssertCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_AttachFile_EmptyFile(t *testing.T) {
	service := newTestService(new(MockRecordRepository), new(MockBlobStore), new(MockFeedbackPurger), new(MockSlotPurger))

	_, err := service.AttachFile(context.Background(), "rec-1", 42, false, "empty.txt", "text/plain", 0, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestService_RemoveFile_ToleratesBlobFailure(t *testing.T) {
	records := new(MockRecordRepository)
	records.On("GetFile", mock.Anything, "file-1").Return(&File{ID: "file-1", RepositoryID: "rec-1", StoragePath: "rec-1/a.pdf"}, nil)
	records.On("GetByID", mock.Anything, "rec-1").Return(&Record{ID: "rec-1", StudentID: 42, TutorID: 7}, nil)
	records.On("DeleteFile", mock.Anything, "file-1").Return(int64(1), nil)

	blobs := new(MockBlobStore)
	blobs.On("Delete", mock.Anything, "rec-1/a.pdf").Return(errors.New("disk error"))

	service := newTestService(records, blobs, new(MockFeedbackPurger), new(MockSlotPurger))

	err := service.RemoveFile(context.Background(), "file-1", 42, false)

	assert.NoError(t, err)
	records.AssertCalled(t, "DeleteFile", mock.Anything, "file-1")
}

func TestService_PurgeForUser_FullCleanup(t *testing.T) {
	records := new(MockRecordRepository)
	records.On("ListByUser", mock.Anything, int64(42)).Return([]Record{
		{ID: "rec-1", BookingID: "slot-1", StudentID: 42, TutorID: 7},
	}, nil)
	records.On("ListFiles", mock.Anything, "rec-1").Return([]File{
		{ID: "file-1", RepositoryID: "rec-1", StoragePath: "rec-1/a.pdf"},
		{ID: "file-2", RepositoryID: "rec-1", StoragePath: "rec-1/b.png"},
	}, nil)
	records.On("DeleteFile", mock.Anything, "file-1").Return(int64(1), nil)
	records.On("DeleteFile", mock.Anything, "file-2").Return(int64(1), nil)
	records.On("Delete", mock.Anything, "rec-1").Return(int64(1), nil)

	blobs := new(MockBlobStore)
	blobs.On("Delete", mock.Anything, "rec-1/a.pdf").Return(nil)
	blobs.On("Delete", mock.Anything, "rec-1/b.png").Return(nil)

	feedback := new(MockFeedbackPurger)
	feedback.On("DeleteByRecord", mock.Anything, "rec-1").Return(int64(3), nil)

	slots := new(MockSlotPurger)
	slots.On("DeleteByID", mock.Anything, "slot-1").Return(int64(1), nil)
	slots.On("DeleteByUser", mock.Anything, int64(42)).Return(int64(2), nil)

	service := newTestService(records, blobs, feedback, slots)

	report, err := service.PurgeForUser(context.Background(), 42)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), report.Records)
	assert.Equal(t, int64(3), report.Slots)
	assert.Equal(t, int64(2), report.Files)
	assert.Equal(t, int64(3), report.Messages)
	assert.False(t, report.Partial())
	records.AssertExpectations(t)
	slots.AssertExpectations(t)
}

func TestService_PurgeForUser_BlobFailureIsPartialNotFatal(t *testing.T) {
	records := new(MockRecordRepository)
	records.On("ListByUser", mock.Anything, int64(42)).Return([]Record{
		{ID: "rec-1", BookingID: "slot-1", StudentID: 42, TutorID: 7},
	}, nil)
	records.On("ListFiles", mock.Anything, "rec-1").Return([]File{
		{ID: "file-1", RepositoryID: "rec-1", StoragePath: "rec-1/a.pdf"},
	}, nil)
	records.On("DeleteFile", mock.Anything, "file-1").Return(int64(1), nil)
	records.On("Delete", mock.Anything, "rec-1").Return(int64(1), nil)

	blobs := new(MockBlobStore)
	blobs.On("Delete", mock.Anything, "rec-1/a.pdf").Return(errors.New("disk error"))

	feedback := new(MockFeedbackPurger)
	feedback.On("DeleteByRecord", mock.Anything, "rec-1").Return(int64(0), nil)

	slots := new(MockSlotPurger)
	slots.On("DeleteByID", mock.Anything, "slot-1").Return(int64(1), nil)
	slots.On("DeleteByUser", mock.Anything, int64(42)).Return(int64(0), nil)

	service := newTestService(records, blobs, feedback, slots)

	report, err := service.PurgeForUser(context.Background(), 42)

	assert.NoError(t, err)
	assert.True(t, report.Partial())
	assert.Equal(t, []string{"rec-1/a.pdf"}, report.BlobFailures)
	// metadata still removed despite the blob failure
	assert.Equal(t, int64(1), report.Files)
	assert.Equal(t, int64(1), report.Records)
}

func TestService_GetDetails_AdminBypassesPartyCheck(t *testing.T) {
	records := new(MockRecordRepository)
	records.On("GetDetails", mock.Anything, "rec-1").Return(&RecordDetails{
		Record: Record{ID: "rec-1", StudentID: 42, TutorID: 7},
	}, nil)

	service := newTestService(records, new(MockBlobStore), new(MockFeedbackPurger), new(MockSlotPurger))

	d, err := service.GetDetails(context.Background(), "rec-1", 12345, true)
	assert.NoError(t, err)
	assert.Equal(t, "rec-1", d.ID)

	_, err = service.GetDetails(context.Background(), "rec-1", 12345, false)
	assert.ErrorIs(t, err, ErrForbidden)
}
