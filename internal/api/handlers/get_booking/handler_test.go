package get_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		bookingID  string
		result     *models.BookingResponse
		err        error
		wantStatus int
	}{
		{"found", "7", &models.BookingResponse{ID: 7, Title: "Planning"}, nil, http.StatusOK},
		{"not found", "7", nil, bookings.ErrBookingNotFound, http.StatusNotFound},
		{"internal", "7", nil, errors.New("db down"), http.StatusInternalServerError},
		{"invalid id", "-1", nil, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockBookingService{}
			svc.On("GetByID", mock.Anything, int64(7)).Return(tt.result, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+tt.bookingID, nil)
			req = mux.SetURLVars(req, map[string]string{"bookingId": tt.bookingID})
			w := httptest.NewRecorder()

			NewHandler(svc, nopLogger{}).Handle(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"title":"Planning"`)
			}
		})
	}
}
