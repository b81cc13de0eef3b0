package report_availability

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модель запроса отчёта о доступности на окне [Start, End)
type Request struct {
	Start time.Time
	End   time.Time
}

// Response модель ответа: по одной записи на каждую единицу мобильного оборудования
type Response struct {
	Window domain.Interval
	Items  []domain.EquipmentAvailability
	Cached bool
}
