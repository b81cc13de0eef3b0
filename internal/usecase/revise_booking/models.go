package revise_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
)

// Request модель запроса на изменение бронирования.
// Окно, комната и число участников задаются целиком.
type Request struct {
	BookingID    int64
	Actor        string
	ActorIsAdmin bool

	Title     string // пусто - название не меняется
	RoomID    int64
	StartTime time.Time
	EndTime   time.Time
	Attendees int

	// nil - текущие выделения сохраняются и проверяются заново; пустой слайс снимает все выделения
	Allocations []admission.AllocationRequest
}

// Response модель ответа с изменённым бронированием
type Response struct {
	Booking          *domain.Booking
	SkippedEquipment []domain.FixedEquipment
}
