package admit_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor        string // идентификатор пользователя, выполняющего запрос
	ActorIsAdmin bool

	Organizer   string // пусто - организатором становится Actor
	Title       string
	RoomID      int64
	StartTime   time.Time
	EndTime     time.Time
	Attendees   int
	Allocations []admission.AllocationRequest
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking

	// Запрошенное стационарное оборудование: уже закреплено за комнатой и не выделялось
	SkippedEquipment []domain.FixedEquipment
}
