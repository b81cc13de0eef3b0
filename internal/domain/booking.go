package domain

import "time"

// Booking бронирование комнаты на интервал [StartTime, EndTime)
type Booking struct {
	ID        int64
	Title     string
	Organizer string // идентификатор пользователя-организатора
	RoomID    *int64 // nil, если комната была удалена
	StartTime time.Time
	EndTime   time.Time
	Attendees int

	Allocations []*EquipmentAllocation

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window возвращает интервал бронирования
func (b *Booking) Window() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// IsOrganizedBy true, если identity является организатором
func (b *Booking) IsOrganizedBy(identity string) bool {
	return identity != "" && b.Organizer == identity
}

// EquipmentAllocation резерв единиц мобильного оборудования для бронирования.
// Интервал выделения не зависит от интервала бронирования.
type EquipmentAllocation struct {
	ID          int64
	BookingID   int64
	EquipmentID int64
	Quantity    int
	StartTime   time.Time
	EndTime     time.Time
}

// Window возвращает интервал выделения
func (a *EquipmentAllocation) Window() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}

// AllocationFromPooled строит запись выделения из варианта PooledEquipment
func AllocationFromPooled(bookingID int64, p PooledEquipment) *EquipmentAllocation {
	return &EquipmentAllocation{
		BookingID:   bookingID,
		EquipmentID: p.EquipmentID,
		Quantity:    p.Quantity,
		StartTime:   p.Window.Start,
		EndTime:     p.Window.End,
	}
}

// BookingsFilter фильтр списка бронирований
type BookingsFilter struct {
	RoomID    *int64     // только бронирования комнаты
	Organizer *string    // только бронирования организатора
	From      *time.Time // бронирования, заканчивающиеся после From
	To        *time.Time // бронирования, начинающиеся до To
}
