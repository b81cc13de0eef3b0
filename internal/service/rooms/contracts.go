package rooms

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id int64) error
	GetFixtures(ctx context.Context, roomIDs []int64) (map[int64][]domain.FixedEquipment, error)
	ReplaceFixtures(ctx context.Context, roomID int64, fixtures []domain.FixedEquipment) error
	DeleteFixtures(ctx context.Context, roomID int64) error
}

// EquipmentRepository интерфейс репозитория оборудования
type EquipmentRepository interface {
	LockByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Equipment, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	MaxAttendeesByRoom(ctx context.Context, roomID int64) (int, error)
	DetachRoom(ctx context.Context, roomID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
