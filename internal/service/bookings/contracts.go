package bookings

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/broker/bookingevents"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	GetAllocationsByBookingIDs(ctx context.Context, bookingIDs []int64) ([]*domain.EquipmentAllocation, error)
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache сброс кэша отчётов о доступности
type AvailabilityCache interface {
	Invalidate(ctx context.Context)
}

// EventPublisher публикация событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, eventType bookingevents.EventType, booking *domain.Booking) error
}

// MetricsRecorder учёт исходов операций над бронированиями
type MetricsRecorder interface {
	ObserveAdmission(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
