package admission

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// AllocationRequest запрос на выделение мобильного оборудования.
// Нулевые StartTime и EndTime означают интервал бронирования.
type AllocationRequest struct {
	EquipmentID int64
	Quantity    int
	StartTime   time.Time
	EndTime     time.Time
}

// Candidate проверяемое состояние бронирования
type Candidate struct {
	RoomID      int64
	Window      domain.Interval
	Attendees   int
	Allocations []AllocationRequest

	// ExcludeBookingID исключает прежнее состояние изменяемого бронирования из проверок
	ExcludeBookingID *int64
}

// Decision результат успешной проверки
type Decision struct {
	Room        *domain.Room
	Window      domain.Interval
	Allocations []domain.PooledEquipment // сохраняются вместе с бронированием
	Skipped     []domain.FixedEquipment  // стационарное оборудование, не выделяется
}
