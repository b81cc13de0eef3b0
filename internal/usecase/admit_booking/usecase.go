package admit_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/broker/bookingevents"
	userClient "github.com/m04kA/SMC-RoomBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
)

const operation = "admit"

// UseCase use case для допуска нового бронирования
type UseCase struct {
	bookingRepo BookingRepository
	validator   Validator
	users       UserDirectory
	txManager   TransactionManager
	cache       AvailabilityCache
	events      EventPublisher
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case.
// users может быть nil: тогда организатор от имени администратора не проверяется.
func NewUseCase(
	bookingRepo BookingRepository,
	validator Validator,
	users UserDirectory,
	txManager TransactionManager,
	cache AvailabilityCache,
	events EventPublisher,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		validator:   validator,
		users:       users,
		txManager:   txManager,
		cache:       cache,
		events:      events,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute проверяет и сохраняет бронирование вместе с выделениями оборудования.
// Проверка и запись выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AdmitBooking: actor=%s, room=%d, window=%s-%s, attendees=%d, allocations=%d",
		req.Actor, req.RoomID, req.StartTime.Format(domain.TimeFormat), req.EndTime.Format(domain.TimeFormat),
		req.Attendees, len(req.Allocations))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AdmitBooking: validation failed: %v", err)
		uc.metrics.ObserveAdmission(operation, outcome(err))
		return nil, err
	}

	// 2. Определяем организатора
	organizer, err := uc.resolveOrganizer(ctx, req)
	if err != nil {
		uc.metrics.ObserveAdmission(operation, outcome(err))
		return nil, err
	}

	window := domain.NewInterval(req.StartTime, req.EndTime)

	var (
		result  *domain.Booking
		skipped []domain.FixedEquipment
	)

	// 3. Проверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		decision, err := uc.validator.Validate(txCtx, &admission.Candidate{
			RoomID:      req.RoomID,
			Window:      window,
			Attendees:   req.Attendees,
			Allocations: req.Allocations,
		})
		if err != nil {
			return err
		}

		roomID := decision.Room.ID
		booking := &domain.Booking{
			Title:     strings.TrimSpace(req.Title),
			Organizer: organizer,
			RoomID:    &roomID,
			StartTime: decision.Window.Start,
			EndTime:   decision.Window.End,
			Attendees: req.Attendees,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		allocations := make([]*domain.EquipmentAllocation, 0, len(decision.Allocations))
		for _, p := range decision.Allocations {
			allocations = append(allocations, domain.AllocationFromPooled(created.ID, p))
		}

		if err := uc.bookingRepo.CreateAllocations(txCtx, created.ID, allocations); err != nil {
			return fmt.Errorf("%w: failed to create allocations: %w", ErrInternal, err)
		}

		created.Allocations = allocations
		result = created
		skipped = decision.Skipped
		return nil
	})

	err = admission.ResolveTxError(err, req.RoomID, window)
	uc.metrics.ObserveAdmission(operation, outcome(err))

	if err != nil {
		if admission.Outcome(err) != metrics.OutcomeError {
			uc.logger.Warn("AdmitBooking: booking rejected: %v", err)
			return nil, err
		}
		uc.logger.Error("AdmitBooking: failed to admit booking: %v", err)
		if !errors.Is(err, admission.ErrInternal) {
			err = fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("AdmitBooking: successfully admitted booking id=%d", result.ID)

	// 4. Побочные эффекты после фиксации
	uc.cache.Invalidate(ctx)
	if err := uc.events.Publish(ctx, bookingevents.EventAdmitted, result); err != nil {
		uc.logger.Error("AdmitBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return &Response{Booking: result, SkippedEquipment: skipped}, nil
}

// resolveOrganizer определяет организатора: по умолчанию это автор запроса,
// администратор может указать другого пользователя
func (uc *UseCase) resolveOrganizer(ctx context.Context, req *Request) (string, error) {
	organizer := strings.TrimSpace(req.Organizer)
	if organizer == "" || organizer == req.Actor {
		return req.Actor, nil
	}

	if !req.ActorIsAdmin {
		uc.logger.Warn("AdmitBooking: user %s tried to book on behalf of %s", req.Actor, organizer)
		return "", ErrForbidden
	}

	if uc.users == nil {
		return organizer, nil
	}

	err := uc.users.VerifyUser(ctx, organizer)
	switch {
	case err == nil:
		return organizer, nil
	case errors.Is(err, userClient.ErrUserNotFound):
		uc.logger.Warn("AdmitBooking: organizer %s not found", organizer)
		return "", fmt.Errorf("%w: %s", ErrOrganizerNotFound, organizer)
	case errors.Is(err, userClient.ErrServiceDegraded):
		uc.logger.Warn("AdmitBooking: organizer %s not verified, user service unavailable", organizer)
		return organizer, nil
	default:
		uc.logger.Error("AdmitBooking: failed to verify organizer %s: %v", organizer, err)
		return "", fmt.Errorf("%w: failed to verify organizer: %w", ErrInternal, err)
	}
}

func outcome(err error) string {
	if errors.Is(err, ErrForbidden) {
		return metrics.OutcomeForbidden
	}
	return admission.Outcome(err)
}
