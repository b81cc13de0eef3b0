package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: bookings.service: booking not found", admission.ErrNotFound)

	// ErrAccessDenied возвращается, когда отменить бронирование пытается не организатор и не администратор
	ErrAccessDenied = errors.New("bookings.service: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: bookings.service: invalid input data", admission.ErrInvalidArgument)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: bookings.service", admission.ErrInternal)
)
