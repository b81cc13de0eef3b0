package admission

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// EquipmentRepository интерфейс репозитория оборудования
type EquipmentRepository interface {
	LockByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Equipment, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetOverlappingByRoom(ctx context.Context, roomID int64, window domain.Interval, excludeID *int64) ([]*domain.Booking, error)
	GetOverlappingAllocations(ctx context.Context, equipmentID int64, window domain.Interval, excludeBookingID *int64) ([]*domain.EquipmentAllocation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
