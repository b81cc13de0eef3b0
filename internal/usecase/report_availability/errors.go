package report_availability

import (
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
)

var (
	// ErrInvalidInput возвращается при некорректном окне отчёта
	ErrInvalidInput = fmt.Errorf("%w: report_availability: invalid input data", admission.ErrInvalidArgument)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: report_availability", admission.ErrInternal)
)
