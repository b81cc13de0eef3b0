package revise_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: revise_booking: invalid input data", admission.ErrInvalidArgument)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: revise_booking: booking not found", admission.ErrNotFound)

	// ErrForbidden возвращается, когда изменить бронирование пытается не организатор и не администратор
	ErrForbidden = errors.New("revise_booking: only the organizer or an administrator may revise the booking")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: revise_booking", admission.ErrInternal)
)
