package admit_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: admit_booking: invalid input data", admission.ErrInvalidArgument)

	// ErrOrganizerNotFound возвращается, когда организатор не зарегистрирован
	ErrOrganizerNotFound = fmt.Errorf("%w: admit_booking: organizer not found", admission.ErrNotFound)

	// ErrForbidden возвращается, когда пользователь бронирует от имени другого организатора без прав администратора
	ErrForbidden = errors.New("admit_booking: only administrators may book on behalf of another organizer")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: admit_booking", admission.ErrInternal)
)
