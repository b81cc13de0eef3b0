package report_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
)

// UseCase use case отчёта о доступности мобильного оборудования.
// Только чтение: результат может устареть сразу после фиксации другого бронирования.
type UseCase struct {
	equipmentRepo  EquipmentRepository
	allocationRepo AllocationRepository
	txManager      TransactionManager
	cache          AvailabilityCache
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	equipmentRepo EquipmentRepository,
	allocationRepo AllocationRepository,
	txManager TransactionManager,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		equipmentRepo:  equipmentRepo,
		allocationRepo: allocationRepo,
		txManager:      txManager,
		cache:          cache,
		logger:         logger,
	}
}

// Execute строит отчёт о доступности на окне
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	window := domain.NewInterval(req.Start, req.End)

	uc.logger.Info("ReportAvailability: window=%s", window)

	// 1. Валидация окна
	if req.Start.IsZero() || req.End.IsZero() {
		uc.logger.Warn("ReportAvailability: start and end are required")
		return nil, fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !window.IsValid() {
		uc.logger.Warn("ReportAvailability: invalid window %s", window)
		return nil, fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	// 2. Кэш
	cached, generation, ok := uc.cache.Lookup(ctx, window)
	if ok {
		return &Response{Window: window, Items: cached, Cached: true}, nil
	}

	// 3. Оборудование и выделения читаются из одного снимка
	var items []domain.EquipmentAvailability
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		equipment, err := uc.equipmentRepo.List(txCtx, ptr.Ptr(true))
		if err != nil {
			return fmt.Errorf("%w: failed to list mobile equipment: %w", ErrInternal, err)
		}

		allocations, err := uc.allocationRepo.GetAllocationsInWindow(txCtx, window)
		if err != nil {
			return fmt.Errorf("%w: failed to get allocations: %w", ErrInternal, err)
		}

		items = domain.ComputeAvailability(equipment, allocations, window)
		return nil
	})
	if err != nil {
		uc.logger.Error("ReportAvailability: %v", err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil, err
	}

	uc.cache.Store(ctx, generation, window, items)

	return &Response{Window: window, Items: items}, nil
}
