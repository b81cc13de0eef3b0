package equipment

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// EquipmentRepository интерфейс репозитория оборудования
type EquipmentRepository interface {
	Create(ctx context.Context, item *domain.Equipment) (*domain.Equipment, error)
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	List(ctx context.Context, mobile *bool) ([]*domain.Equipment, error)
	Update(ctx context.Context, item *domain.Equipment) error
	Delete(ctx context.Context, id int64) error
	CountFixtures(ctx context.Context, id int64) (int, error)
	CountAllocations(ctx context.Context, id int64) (int, error)
}

// AllocationRepository интерфейс репозитория выделений оборудования
type AllocationRepository interface {
	GetAllocationsByEquipment(ctx context.Context, equipmentID int64) ([]*domain.EquipmentAllocation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache сброс кэша отчётов о доступности
type AvailabilityCache interface {
	Invalidate(ctx context.Context)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
