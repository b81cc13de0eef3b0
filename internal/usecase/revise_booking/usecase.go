package revise_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/broker/bookingevents"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
)

const operation = "revise"

// UseCase use case для изменения бронирования
type UseCase struct {
	bookingRepo BookingRepository
	validator   Validator
	txManager   TransactionManager
	cache       AvailabilityCache
	events      EventPublisher
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	validator Validator,
	txManager TransactionManager,
	cache AvailabilityCache,
	events EventPublisher,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		validator:   validator,
		txManager:   txManager,
		cache:       cache,
		events:      events,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute проверяет новое состояние бронирования, исключая его прежнее состояние
// из проверок занятости, и заменяет бронирование вместе с выделениями
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReviseBooking: actor=%s, booking=%d, room=%d, window=%s-%s, attendees=%d",
		req.Actor, req.BookingID, req.RoomID, req.StartTime.Format(domain.TimeFormat),
		req.EndTime.Format(domain.TimeFormat), req.Attendees)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReviseBooking: validation failed: %v", err)
		uc.metrics.ObserveAdmission(operation, outcome(err))
		return nil, err
	}

	window := domain.NewInterval(req.StartTime, req.EndTime)

	var (
		result  *domain.Booking
		skipped []domain.FixedEquipment
	)

	// 2. Проверка и замена в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: id=%d", ErrBookingNotFound, req.BookingID)
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if !booking.IsOrganizedBy(req.Actor) && !req.ActorIsAdmin {
			return ErrForbidden
		}

		requests := req.Allocations
		if requests == nil {
			current, err := uc.bookingRepo.GetAllocationsByBookingIDs(txCtx, []int64{booking.ID})
			if err != nil {
				return fmt.Errorf("%w: failed to get allocations: %w", ErrInternal, err)
			}
			requests = toRequests(current)
		}

		decision, err := uc.validator.Validate(txCtx, &admission.Candidate{
			RoomID:           req.RoomID,
			Window:           window,
			Attendees:        req.Attendees,
			Allocations:      requests,
			ExcludeBookingID: &booking.ID,
		})
		if err != nil {
			return err
		}

		roomID := decision.Room.ID
		if title := strings.TrimSpace(req.Title); title != "" {
			booking.Title = title
		}
		booking.RoomID = &roomID
		booking.StartTime = decision.Window.Start
		booking.EndTime = decision.Window.End
		booking.Attendees = req.Attendees

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		if err := uc.bookingRepo.DeleteAllocations(txCtx, booking.ID); err != nil {
			return fmt.Errorf("%w: failed to delete allocations: %w", ErrInternal, err)
		}

		allocations := make([]*domain.EquipmentAllocation, 0, len(decision.Allocations))
		for _, p := range decision.Allocations {
			allocations = append(allocations, domain.AllocationFromPooled(booking.ID, p))
		}

		if err := uc.bookingRepo.CreateAllocations(txCtx, booking.ID, allocations); err != nil {
			return fmt.Errorf("%w: failed to create allocations: %w", ErrInternal, err)
		}

		booking.Allocations = allocations
		result = booking
		skipped = decision.Skipped
		return nil
	})

	err = admission.ResolveTxError(err, req.RoomID, window)
	uc.metrics.ObserveAdmission(operation, outcome(err))

	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			uc.logger.Warn("ReviseBooking: user %s may not revise booking id=%d", req.Actor, req.BookingID)
		case admission.Outcome(err) == metrics.OutcomeError:
			uc.logger.Error("ReviseBooking: failed to revise booking id=%d: %v", req.BookingID, err)
			if !errors.Is(err, admission.ErrInternal) {
				err = fmt.Errorf("%w: %w", ErrInternal, err)
			}
		default:
			uc.logger.Warn("ReviseBooking: revision of booking id=%d rejected: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.logger.Info("ReviseBooking: successfully revised booking id=%d", result.ID)

	// 3. Побочные эффекты после фиксации
	uc.cache.Invalidate(ctx)
	if err := uc.events.Publish(ctx, bookingevents.EventRevised, result); err != nil {
		uc.logger.Error("ReviseBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return &Response{Booking: result, SkippedEquipment: skipped}, nil
}

// toRequests превращает сохранённые выделения в запросы с их собственными интервалами
func toRequests(allocations []*domain.EquipmentAllocation) []admission.AllocationRequest {
	requests := make([]admission.AllocationRequest, 0, len(allocations))
	for _, a := range allocations {
		requests = append(requests, admission.AllocationRequest{
			EquipmentID: a.EquipmentID,
			Quantity:    a.Quantity,
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
		})
	}
	return requests
}

func outcome(err error) string {
	if errors.Is(err, ErrForbidden) {
		return metrics.OutcomeForbidden
	}
	return admission.Outcome(err)
}
