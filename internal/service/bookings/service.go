package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/broker/bookingevents"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
)

const withdrawOperation = "withdraw"

// Service сервис для чтения и отзыва бронирований
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	cache       AvailabilityCache
	events      EventPublisher
	metrics     MetricsRecorder
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	cache AvailabilityCache,
	events EventPublisher,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		cache:       cache,
		events:      events,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID вместе с выделениями оборудования
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	var booking *domain.Booking
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		return s.attachAllocations(txCtx, []*domain.Booking{booking})
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с фильтрацией по комнате, организатору и периоду
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for user=%s, room=%v, mine=%t", req.UserID, req.RoomID, req.Mine)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("List: invalid period from=%s to=%s", req.From.Format(domain.TimeFormat), req.To.Format(domain.TimeFormat))
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	var bookings []*domain.Booking
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		bookings, err = s.bookingRepo.List(txCtx, req.ToDomainFilter())
		if err != nil {
			return err
		}
		return s.attachAllocations(txCtx, bookings)
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Withdraw удаляет бронирование вместе с его выделениями.
// Отозвать бронирование может только организатор или администратор.
func (s *Service) Withdraw(ctx context.Context, bookingID int64, req *models.WithdrawBookingRequest) error {
	s.logger.Info("Withdraw: withdrawing booking id=%d by user=%s", bookingID, req.UserID)

	if bookingID <= 0 {
		s.metrics.ObserveAdmission(withdrawOperation, metrics.OutcomeInvalidArgument)
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	var withdrawn *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return err
		}

		if !booking.IsOrganizedBy(req.UserID) && !req.IsAdmin {
			return ErrAccessDenied
		}

		if err := s.attachAllocations(txCtx, []*domain.Booking{booking}); err != nil {
			return err
		}

		if err := s.bookingRepo.Delete(txCtx, bookingID); err != nil {
			return err
		}

		withdrawn = booking
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("Withdraw: booking id=%d not found", bookingID)
			s.metrics.ObserveAdmission(withdrawOperation, metrics.OutcomeNotFound)
			return ErrBookingNotFound
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("Withdraw: access denied for user=%s to booking id=%d", req.UserID, bookingID)
			s.metrics.ObserveAdmission(withdrawOperation, metrics.OutcomeForbidden)
			return ErrAccessDenied
		default:
			s.logger.Error("Withdraw: repository error for booking id=%d: %v", bookingID, err)
			s.metrics.ObserveAdmission(withdrawOperation, metrics.OutcomeError)
			return fmt.Errorf("%w: Withdraw - repository error: %w", ErrInternal, err)
		}
	}

	s.metrics.ObserveAdmission(withdrawOperation, metrics.OutcomeAdmitted)
	s.logger.Info("Withdraw: successfully withdrew booking id=%d", bookingID)

	s.cache.Invalidate(ctx)
	if err := s.events.Publish(ctx, bookingevents.EventWithdrawn, withdrawn); err != nil {
		s.logger.Error("Withdraw: failed to publish event for booking id=%d: %v", bookingID, err)
	}

	return nil
}

// Вспомогательные методы

// attachAllocations загружает выделения одним запросом и раскладывает их по бронированиям
func (s *Service) attachAllocations(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(bookings))
	byID := make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
		byID[b.ID] = b
		b.Allocations = []*domain.EquipmentAllocation{}
	}

	allocations, err := s.bookingRepo.GetAllocationsByBookingIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, a := range allocations {
		if b, ok := byID[a.BookingID]; ok {
			b.Allocations = append(b.Allocations, a)
		}
	}

	return nil
}
