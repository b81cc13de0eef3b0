package revise_booking

import (
	"time"

	admitHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/admit_booking"
	reviseBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/revise_booking"
)

// ReviseBookingRequest HTTP request model.
// Отсутствующий equipment сохраняет текущие выделения, пустой список удаляет их.
type ReviseBookingRequest struct {
	Title     string                           `json:"title,omitempty"`
	RoomID    int64                            `json:"roomId"`
	StartTime time.Time                        `json:"startTime"`
	EndTime   time.Time                        `json:"endTime"`
	Attendees int                              `json:"attendees"`
	Equipment *[]admitHandler.EquipmentRequest `json:"equipment,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReviseBookingRequest) ToUseCaseRequest(bookingID int64, actor string, isAdmin bool) *reviseBooking.Request {
	req := &reviseBooking.Request{
		BookingID:    bookingID,
		Actor:        actor,
		ActorIsAdmin: isAdmin,
		Title:        r.Title,
		RoomID:       r.RoomID,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Attendees:    r.Attendees,
	}

	if r.Equipment != nil {
		req.Allocations = admitHandler.ToAllocationRequests(*r.Equipment)
	}

	return req
}
