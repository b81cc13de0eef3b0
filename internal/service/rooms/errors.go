package rooms

import (
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
)

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = fmt.Errorf("%w: rooms.service: room not found", admission.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: rooms.service: invalid input data", admission.ErrInvalidArgument)

	// ErrCapacityBelowBookings возвращается при уменьшении вместимости ниже числа участников существующего бронирования
	ErrCapacityBelowBookings = fmt.Errorf("%w: rooms.service: capacity is below attendees of an existing booking", admission.ErrInvalidArgument)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: rooms.service", admission.ErrInternal)
)
