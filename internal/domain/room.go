package domain

import "time"

// Room переговорная комната с эксклюзивным использованием
type Room struct {
	ID       int64
	Name     string
	Capacity int // максимальное число участников одновременно

	// Оборудование, постоянно закреплённое за комнатой (без временного измерения)
	Fixtures []FixedEquipment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fits true, если комната вмещает указанное число участников
func (r *Room) Fits(attendees int) bool {
	return attendees <= r.Capacity
}
