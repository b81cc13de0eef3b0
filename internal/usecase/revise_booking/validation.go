package revise_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Actor) == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	// Комнаты с неположительным ID не существует
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: id=%d", admission.ErrRoomNotFound, req.RoomID)
	}

	if utf8.RuneCountInString(strings.TrimSpace(req.Title)) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}

	if req.Attendees < 0 {
		return fmt.Errorf("%w: attendees must not be negative", ErrInvalidInput)
	}
	if req.Attendees > domain.MaxQuantity {
		return fmt.Errorf("%w: attendees must be at most %d", ErrInvalidInput, domain.MaxQuantity)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	return nil
}
