package admission

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/pgerr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

// ResolveTxError приводит ошибку сериализуемой транзакции допуска к категории.
// Нарушение ограничения исключения и исчерпанные повторы означают,
// что конкурирующее бронирование комнаты зафиксировано раньше.
func ResolveTxError(err error, roomID int64, window domain.Interval) error {
	if err == nil {
		return nil
	}

	var conflict *RoomConflictError
	var capacity *CapacityError
	switch {
	case errors.As(err, &conflict), errors.As(err, &capacity):
		return err
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrNotFound):
		return err
	case pgerr.IsExclusionViolation(err), errors.Is(err, txmanager.ErrRetriesExhausted):
		return &RoomConflictError{RoomID: roomID, Window: window}
	case pgerr.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: referenced room or equipment no longer exists", ErrNotFound)
	case pgerr.IsCheckViolation(err):
		return fmt.Errorf("%w: rejected by storage constraint", ErrInvalidArgument)
	}

	return err
}

// Outcome метка исхода допуска для метрик
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeAdmitted
	case errors.Is(err, ErrInvalidArgument):
		return metrics.OutcomeInvalidArgument
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, ErrInsufficientCapacity):
		return metrics.OutcomeInsufficientCapacity
	}
	return metrics.OutcomeError
}
