package report_availability

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// EquipmentRepository интерфейс репозитория оборудования
type EquipmentRepository interface {
	List(ctx context.Context, mobile *bool) ([]*domain.Equipment, error)
}

// AllocationRepository интерфейс репозитория выделений оборудования
type AllocationRepository interface {
	GetAllocationsInWindow(ctx context.Context, window domain.Interval) ([]*domain.EquipmentAllocation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache кэш отчётов о доступности
type AvailabilityCache interface {
	Lookup(ctx context.Context, window domain.Interval) ([]domain.EquipmentAvailability, int64, bool)
	Store(ctx context.Context, generation int64, window domain.Interval, report []domain.EquipmentAvailability)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
