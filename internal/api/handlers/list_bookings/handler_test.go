package list_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingListResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *MockBookingService, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithUser(req.Context(), "alice", false))
	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, req)
	return w
}

func TestHandle_ParsesFilter(t *testing.T) {
	svc := &MockBookingService{}
	svc.On("List", mock.Anything, mock.MatchedBy(func(r *models.ListBookingsRequest) bool {
		return r.UserID == "alice" && r.Mine &&
			r.RoomID != nil && *r.RoomID == 3 &&
			r.From != nil && r.From.Equal(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)) &&
			r.To == nil && r.Organizer == nil
	})).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1}}}, nil)

	w := serve(svc, "/api/v1/bookings?roomId=3&mine=true&from=2026-03-02T08:00:00Z")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bookings":[{"id":1`)
	svc.AssertExpectations(t)
}

func TestHandle_InvalidParams(t *testing.T) {
	for _, target := range []string{
		"/api/v1/bookings?roomId=abc",
		"/api/v1/bookings?from=yesterday",
		"/api/v1/bookings?mine=perhaps",
	} {
		svc := &MockBookingService{}

		w := serve(svc, target)

		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	}
}

func TestHandle_InvalidPeriodFromService(t *testing.T) {
	svc := &MockBookingService{}
	svc.On("List", mock.Anything, mock.Anything).Return(nil, bookings.ErrInvalidInput)

	w := serve(svc, "/api/v1/bookings?from=2026-03-02T10:00:00Z&to=2026-03-02T09:00:00Z")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
