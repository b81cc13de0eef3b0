package withdraw_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Withdraw(ctx context.Context, bookingID int64, req *models.WithdrawBookingRequest) error {
	return m.Called(ctx, bookingID, req).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		isAdmin    bool
		err        error
		wantStatus int
	}{
		{"organizer", false, nil, http.StatusNoContent},
		{"admin", true, nil, http.StatusNoContent},
		{"not found", false, bookings.ErrBookingNotFound, http.StatusNotFound},
		{"access denied", false, bookings.ErrAccessDenied, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockBookingService{}
			svc.On("Withdraw", mock.Anything, int64(7), &models.WithdrawBookingRequest{
				UserID: "alice", IsAdmin: tt.isAdmin,
			}).Return(tt.err)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/7", nil)
			req = mux.SetURLVars(req, map[string]string{"bookingId": "7"})
			req = req.WithContext(middleware.WithUser(req.Context(), "alice", tt.isAdmin))
			w := httptest.NewRecorder()

			NewHandler(svc, nopLogger{}).Handle(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
