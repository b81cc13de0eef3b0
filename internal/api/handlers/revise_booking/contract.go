package revise_booking

import (
	"context"

	reviseBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/revise_booking"
)

type ReviseBookingUseCase interface {
	Execute(ctx context.Context, req *reviseBooking.Request) (*reviseBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
