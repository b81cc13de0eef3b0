package admission

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Категории ошибок допуска. Конкретные ошибки оборачивают одну из них.
var (
	ErrInvalidArgument      = errors.New("admission: invalid argument")
	ErrNotFound             = errors.New("admission: not found")
	ErrConflict             = errors.New("admission: room conflict")
	ErrInsufficientCapacity = errors.New("admission: insufficient equipment capacity")
	ErrInternal             = errors.New("admission: internal error")
)

var (
	ErrRoomNotFound      = fmt.Errorf("%w: room not found", ErrNotFound)
	ErrEquipmentNotFound = fmt.Errorf("%w: equipment not found", ErrNotFound)

	ErrInvalidWindow     = fmt.Errorf("%w: start time must be before end time", ErrInvalidArgument)
	ErrCapacityExceeded  = fmt.Errorf("%w: attendees exceed room capacity", ErrInvalidArgument)
	ErrInvalidAllocation = fmt.Errorf("%w: invalid equipment allocation", ErrInvalidArgument)
)

// RoomConflictError бронирование пересекается с существующими бронированиями комнаты.
// Conflicts пуст, если конфликт обнаружен базой данных при фиксации.
type RoomConflictError struct {
	RoomID    int64
	Window    domain.Interval
	Conflicts []*domain.Booking
}

func (e *RoomConflictError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "room %d is already booked within %s", e.RoomID, e.Window)

	for i, b := range e.Conflicts {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "conflicts with booking %d from %s", b.ID, b.Window())
	}

	return sb.String()
}

func (e *RoomConflictError) Unwrap() error {
	return ErrConflict
}

// CapacityError запрошенное количество мобильного оборудования превышает свободный запас
type CapacityError struct {
	EquipmentID int64
	Window      domain.Interval
	Requested   int
	Reserved    int
	Total       int
}

// Available число свободных единиц на интервале
func (e *CapacityError) Available() int {
	if available := e.Total - e.Reserved; available > 0 {
		return available
	}
	return 0
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("equipment %d: requested %d, available %d of %d within %s",
		e.EquipmentID, e.Requested, e.Available(), e.Total, e.Window)
}

func (e *CapacityError) Unwrap() error {
	return ErrInsufficientCapacity
}
