package equipment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	equipmentRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/equipment"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/equipment/models"
)

// Service сервис для управления оборудованием
type Service struct {
	equipmentRepo  EquipmentRepository
	allocationRepo AllocationRepository
	txManager      TransactionManager
	cache          AvailabilityCache
	logger         Logger
}

// NewService создает новый экземпляр сервиса оборудования
func NewService(
	equipmentRepo EquipmentRepository,
	allocationRepo AllocationRepository,
	txManager TransactionManager,
	cache AvailabilityCache,
	logger Logger,
) *Service {
	return &Service{
		equipmentRepo:  equipmentRepo,
		allocationRepo: allocationRepo,
		txManager:      txManager,
		cache:          cache,
		logger:         logger,
	}
}

// Create создает единицу учёта оборудования
func (s *Service) Create(ctx context.Context, req *models.CreateEquipmentRequest) (*models.EquipmentResponse, error) {
	s.logger.Info("Create: creating equipment name=%q, quantity=%d, mobile=%t", req.Name, req.Quantity, req.Mobile)

	item := req.ToDomainEquipment()
	if err := validateEquipmentData(item); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.equipmentRepo.Create(ctx, item)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	if created.Mobile {
		s.cache.Invalidate(ctx)
	}

	s.logger.Info("Create: successfully created equipment id=%d", created.ID)
	return models.FromDomainEquipment(created), nil
}

// GetByID получает оборудование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.EquipmentResponse, error) {
	s.logger.Info("GetByID: fetching equipment id=%d", id)

	item, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			s.logger.Warn("GetByID: equipment id=%d not found", id)
			return nil, ErrEquipmentNotFound
		}
		s.logger.Error("GetByID: repository error for equipment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainEquipment(item), nil
}

// List получает оборудование, опционально только мобильное или только закрепляемое
func (s *Service) List(ctx context.Context, mobile *bool) (*models.EquipmentListResponse, error) {
	s.logger.Info("List: fetching equipment, mobile=%v", mobile)

	items, err := s.equipmentRepo.List(ctx, mobile)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d items", len(items))
	return models.FromDomainEquipmentList(items), nil
}

// Update обновляет оборудование с заблокированной строкой.
// Запас мобильного оборудования нельзя опустить ниже пикового одновременного использования,
// мобильность нельзя сменить, пока на оборудование есть ссылки.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateEquipmentRequest) (*models.EquipmentResponse, error) {
	s.logger.Info("Update: updating equipment id=%d", id)

	var item *domain.Equipment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		item, err = s.equipmentRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		wasMobile := item.Mobile
		req.ApplyToEquipment(item)

		if err := validateEquipmentData(item); err != nil {
			return err
		}

		if item.Mobile != wasMobile {
			if err := s.checkUnreferenced(txCtx, id, wasMobile); err != nil {
				return err
			}
		}

		if item.Mobile && req.Quantity != nil {
			allocations, err := s.allocationRepo.GetAllocationsByEquipment(txCtx, id)
			if err != nil {
				return err
			}
			if peak := domain.PeakUsage(allocations); item.Quantity < peak {
				return fmt.Errorf("%w: quantity %d, peak usage %d", ErrStockBelowUsage, item.Quantity, peak)
			}
		}

		return s.equipmentRepo.Update(txCtx, item)
	})
	if err != nil {
		switch {
		case errors.Is(err, equipmentRepo.ErrEquipmentNotFound):
			s.logger.Warn("Update: equipment id=%d not found", id)
			return nil, ErrEquipmentNotFound
		case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrEquipmentInUse), errors.Is(err, ErrStockBelowUsage):
			s.logger.Warn("Update: equipment id=%d rejected: %v", id, err)
			return nil, err
		default:
			s.logger.Error("Update: repository error for equipment id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}
	}

	s.cache.Invalidate(ctx)

	s.logger.Info("Update: successfully updated equipment id=%d", id)
	return models.FromDomainEquipment(item), nil
}

// Delete удаляет оборудование вместе с закреплениями и выделениями
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting equipment id=%d", id)

	if err := s.equipmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			s.logger.Warn("Delete: equipment id=%d not found", id)
			return ErrEquipmentNotFound
		}
		s.logger.Error("Delete: repository error for equipment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.cache.Invalidate(ctx)

	s.logger.Info("Delete: successfully deleted equipment id=%d", id)
	return nil
}

// Вспомогательные методы

// checkUnreferenced проверяет отсутствие ссылок, зависящих от прежней мобильности
func (s *Service) checkUnreferenced(ctx context.Context, id int64, wasMobile bool) error {
	var (
		count int
		err   error
		what  string
	)
	if wasMobile {
		count, err = s.equipmentRepo.CountAllocations(ctx, id)
		what = "allocations"
	} else {
		count, err = s.equipmentRepo.CountFixtures(ctx, id)
		what = "room fixtures"
	}
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d %s reference equipment %d", ErrEquipmentInUse, count, what, id)
	}
	return nil
}

// validateEquipmentData валидирует параметры оборудования
func validateEquipmentData(item *domain.Equipment) error {
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(item.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if len(item.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	if item.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative", ErrInvalidInput)
	}
	if item.Quantity > domain.MaxQuantity {
		return fmt.Errorf("%w: quantity must be at most %d", ErrInvalidInput, domain.MaxQuantity)
	}
	return nil
}
