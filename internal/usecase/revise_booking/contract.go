package revise_booking

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/broker/bookingevents"
	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetAllocationsByBookingIDs(ctx context.Context, bookingIDs []int64) ([]*domain.EquipmentAllocation, error)
	Update(ctx context.Context, booking *domain.Booking) error
	DeleteAllocations(ctx context.Context, bookingID int64) error
	CreateAllocations(ctx context.Context, bookingID int64, allocations []*domain.EquipmentAllocation) error
}

// Validator проверка допуска бронирования
type Validator interface {
	Validate(ctx context.Context, c *admission.Candidate) (*admission.Decision, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache сброс кэша отчётов о доступности
type AvailabilityCache interface {
	Invalidate(ctx context.Context)
}

// EventPublisher публикация событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, eventType bookingevents.EventType, booking *domain.Booking) error
}

// MetricsRecorder учёт исходов допуска
type MetricsRecorder interface {
	ObserveAdmission(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
