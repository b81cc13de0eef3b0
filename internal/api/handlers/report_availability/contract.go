package report_availability

import (
	"context"

	reportAvailability "github.com/m04kA/SMC-RoomBookingService/internal/usecase/report_availability"
)

type ReportAvailabilityUseCase interface {
	Execute(ctx context.Context, req *reportAvailability.Request) (*reportAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
