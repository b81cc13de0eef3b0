package bookingevents

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// EventType тип события бронирования
type EventType string

const (
	EventAdmitted  EventType = "booking.admitted"
	EventRevised   EventType = "booking.revised"
	EventWithdrawn EventType = "booking.withdrawn"
)

// Event событие жизненного цикла бронирования.
// Потребители: сервис напоминаний и почтовые уведомления.
type Event struct {
	EventID    string          `json:"event_id"`
	Type       EventType       `json:"type"`
	Booking    BookingSnapshot `json:"booking"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// BookingSnapshot состояние бронирования на момент события
type BookingSnapshot struct {
	ID          int64                `json:"id"`
	Title       string               `json:"title"`
	Organizer   string               `json:"organizer"`
	RoomID      *int64               `json:"room_id,omitempty"`
	StartTime   time.Time            `json:"start_time"`
	EndTime     time.Time            `json:"end_time"`
	Attendees   int                  `json:"attendees"`
	Allocations []AllocationSnapshot `json:"allocations,omitempty"`
}

type AllocationSnapshot struct {
	EquipmentID int64     `json:"equipment_id"`
	Quantity    int       `json:"quantity"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// NewEvent создает событие с новым идентификатором
func NewEvent(eventType EventType, booking *domain.Booking, now time.Time) Event {
	snapshot := BookingSnapshot{
		ID:        booking.ID,
		Title:     booking.Title,
		Organizer: booking.Organizer,
		RoomID:    booking.RoomID,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Attendees: booking.Attendees,
	}
	for _, a := range booking.Allocations {
		snapshot.Allocations = append(snapshot.Allocations, AllocationSnapshot{
			EquipmentID: a.EquipmentID,
			Quantity:    a.Quantity,
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
		})
	}

	return Event{
		EventID:    uuid.NewString(),
		Type:       eventType,
		Booking:    snapshot,
		OccurredAt: now.UTC(),
	}
}
