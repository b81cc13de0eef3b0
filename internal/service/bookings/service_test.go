package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/broker/bookingevents"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
)

/* ==================== MOCKS ==================== */

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetAllocationsByBookingIDs(ctx context.Context, ids []int64) ([]*domain.EquipmentAllocation, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.EquipmentAllocation), args.Error(1)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCache struct{ invalidations int }

func (c *fakeCache) Invalidate(context.Context) { c.invalidations++ }

type fakePublisher struct {
	events   []bookingevents.EventType
	bookings []*domain.Booking
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, eventType bookingevents.EventType, booking *domain.Booking) error {
	p.events = append(p.events, eventType)
	p.bookings = append(p.bookings, booking)
	return p.err
}

type fakeMetrics struct{ outcomes []string }

func (m *fakeMetrics) ObserveAdmission(_, outcome string) { m.outcomes = append(m.outcomes, outcome) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

/* ==================== HELPERS ==================== */

type fixture struct {
	repo    *MockBookingRepository
	cache   *fakeCache
	events  *fakePublisher
	metrics *fakeMetrics
	svc     *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:    &MockBookingRepository{},
		cache:   &fakeCache{},
		events:  &fakePublisher{},
		metrics: &fakeMetrics{},
	}
	f.svc = NewService(f.repo, fakeTxManager{}, f.cache, f.events, f.metrics, nopLogger{})
	return f
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func booking(id int64, organizer string) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		Title:     "Planning",
		Organizer: organizer,
		RoomID:    ptr.Ptr(int64(1)),
		StartTime: at(9, 0),
		EndTime:   at(10, 0),
		Attendees: 3,
	}
}

/* ==================== TESTS ==================== */

func TestGetByID_WithAllocations(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(7)).Return(booking(7, "alice"), nil)
	f.repo.On("GetAllocationsByBookingIDs", mock.Anything, []int64{7}).Return([]*domain.EquipmentAllocation{
		{ID: 1, BookingID: 7, EquipmentID: 10, Quantity: 2, StartTime: at(9, 0), EndTime: at(9, 30)},
	}, nil)

	resp, err := f.svc.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Organizer)
	require.Len(t, resp.Allocations, 1)
	assert.Equal(t, int64(10), resp.Allocations[0].EquipmentID)
	assert.Equal(t, at(9, 30), resp.Allocations[0].EndTime)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(7)).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := f.svc.GetByID(context.Background(), 7)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, admission.ErrNotFound)
}

func TestList_MineFiltersByCaller(t *testing.T) {
	f := newFixture()
	from := at(8, 0)
	bookings := []*domain.Booking{booking(1, "alice"), booking(2, "alice")}

	f.repo.On("List", mock.Anything, mock.MatchedBy(func(filter domain.BookingsFilter) bool {
		return filter.Organizer != nil && *filter.Organizer == "alice" &&
			filter.From != nil && filter.From.Equal(from) && filter.To == nil
	})).Return(bookings, nil)
	f.repo.On("GetAllocationsByBookingIDs", mock.Anything, []int64{1, 2}).Return([]*domain.EquipmentAllocation{
		{ID: 3, BookingID: 2, EquipmentID: 10, Quantity: 1, StartTime: at(9, 0), EndTime: at(10, 0)},
	}, nil)

	resp, err := f.svc.List(context.Background(), &models.ListBookingsRequest{UserID: "alice", Mine: true, From: &from})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.Empty(t, resp.Bookings[0].Allocations)
	assert.Len(t, resp.Bookings[1].Allocations, 1)
}

func TestList_EmptyResult(t *testing.T) {
	f := newFixture()
	f.repo.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)

	resp, err := f.svc.List(context.Background(), &models.ListBookingsRequest{UserID: "alice"})

	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)
	f.repo.AssertNotCalled(t, "GetAllocationsByBookingIDs", mock.Anything, mock.Anything)
}

func TestList_InvalidPeriod(t *testing.T) {
	f := newFixture()
	from, to := at(10, 0), at(9, 0)

	_, err := f.svc.List(context.Background(), &models.ListBookingsRequest{UserID: "alice", From: &from, To: &to})

	assert.ErrorIs(t, err, ErrInvalidInput)
	f.repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestWithdraw_ByOrganizer(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(7)).Return(booking(7, "alice"), nil)
	f.repo.On("GetAllocationsByBookingIDs", mock.Anything, []int64{7}).Return([]*domain.EquipmentAllocation{
		{ID: 1, BookingID: 7, EquipmentID: 10, Quantity: 2, StartTime: at(9, 0), EndTime: at(10, 0)},
	}, nil)
	f.repo.On("Delete", mock.Anything, int64(7)).Return(nil)

	err := f.svc.Withdraw(context.Background(), 7, &models.WithdrawBookingRequest{UserID: "alice"})

	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.invalidations)
	assert.Equal(t, []bookingevents.EventType{bookingevents.EventWithdrawn}, f.events.events)
	assert.Len(t, f.events.bookings[0].Allocations, 1)
	assert.Equal(t, []string{metrics.OutcomeAdmitted}, f.metrics.outcomes)
	f.repo.AssertExpectations(t)
}

func TestWithdraw_ByAdmin(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(7)).Return(booking(7, "alice"), nil)
	f.repo.On("GetAllocationsByBookingIDs", mock.Anything, []int64{7}).Return([]*domain.EquipmentAllocation{}, nil)
	f.repo.On("Delete", mock.Anything, int64(7)).Return(nil)

	err := f.svc.Withdraw(context.Background(), 7, &models.WithdrawBookingRequest{UserID: "root", IsAdmin: true})

	require.NoError(t, err)
}

func TestWithdraw_AccessDenied(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(7)).Return(booking(7, "alice"), nil)

	err := f.svc.Withdraw(context.Background(), 7, &models.WithdrawBookingRequest{UserID: "mallory"})

	assert.ErrorIs(t, err, ErrAccessDenied)
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	assert.Zero(t, f.cache.invalidations)
	assert.Empty(t, f.events.events)
	assert.Equal(t, []string{metrics.OutcomeForbidden}, f.metrics.outcomes)
}

func TestWithdraw_NotFound(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(7)).Return(nil, bookingRepo.ErrBookingNotFound)

	err := f.svc.Withdraw(context.Background(), 7, &models.WithdrawBookingRequest{UserID: "alice"})

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Equal(t, []string{metrics.OutcomeNotFound}, f.metrics.outcomes)
}

func TestWithdraw_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture()
	f.events.err = errors.New("broker unavailable")
	f.repo.On("GetByID", mock.Anything, int64(7)).Return(booking(7, "alice"), nil)
	f.repo.On("GetAllocationsByBookingIDs", mock.Anything, []int64{7}).Return([]*domain.EquipmentAllocation{}, nil)
	f.repo.On("Delete", mock.Anything, int64(7)).Return(nil)

	err := f.svc.Withdraw(context.Background(), 7, &models.WithdrawBookingRequest{UserID: "alice"})

	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.invalidations)
}

func TestWithdraw_RepositoryError(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(7)).Return(booking(7, "alice"), nil)
	f.repo.On("GetAllocationsByBookingIDs", mock.Anything, []int64{7}).Return([]*domain.EquipmentAllocation{}, nil)
	f.repo.On("Delete", mock.Anything, int64(7)).Return(errors.New("connection reset"))

	err := f.svc.Withdraw(context.Background(), 7, &models.WithdrawBookingRequest{UserID: "alice"})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, f.cache.invalidations)
	assert.Equal(t, []string{metrics.OutcomeError}, f.metrics.outcomes)
}
