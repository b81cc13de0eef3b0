package rooms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"
)

// Service сервис для управления комнатами и закреплённым оборудованием
type Service struct {
	roomRepo      RoomRepository
	equipmentRepo EquipmentRepository
	bookingRepo   BookingRepository
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса комнат
func NewService(
	roomRepo RoomRepository,
	equipmentRepo EquipmentRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		roomRepo:      roomRepo,
		equipmentRepo: equipmentRepo,
		bookingRepo:   bookingRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// Create создает комнату с закреплённым оборудованием.
// Несуществующее и мобильное оборудование не закрепляется.
func (s *Service) Create(ctx context.Context, req *models.CreateRoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("Create: creating room name=%q, capacity=%d, fixtures=%d", req.Name, req.Capacity, len(req.Fixtures))

	// 1. Валидируем входные данные
	if err := validateRoomData(req.Name, req.Capacity); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}
	if err := validateFixtures(req.Fixtures); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	room := &domain.Room{
		Name:     strings.TrimSpace(req.Name),
		Capacity: req.Capacity,
	}

	// 2. Создаем комнату и закрепляем оборудование в одной транзакции
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.roomRepo.Create(txCtx, room); err != nil {
			return err
		}

		fixtures, err := s.resolveFixtures(txCtx, room.ID, req.Fixtures)
		if err != nil {
			return err
		}

		if err := s.roomRepo.ReplaceFixtures(txCtx, room.ID, fixtures); err != nil {
			return err
		}

		room.Fixtures = fixtures
		return nil
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created room id=%d", room.ID)
	return models.FromDomainRoom(room), nil
}

// GetByID получает комнату с закреплённым оборудованием
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RoomResponse, error) {
	s.logger.Info("GetByID: fetching room id=%d", id)

	var room *domain.Room
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		room, err = s.roomRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		return s.attachFixtures(txCtx, []*domain.Room{room})
	})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("GetByID: room id=%d not found", id)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetByID: repository error for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched room id=%d", id)
	return models.FromDomainRoom(room), nil
}

// List получает все комнаты
func (s *Service) List(ctx context.Context) (*models.RoomListResponse, error) {
	s.logger.Info("List: fetching rooms")

	var rooms []*domain.Room
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		rooms, err = s.roomRepo.List(txCtx)
		if err != nil {
			return err
		}
		return s.attachFixtures(txCtx, rooms)
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d rooms", len(rooms))
	return models.FromDomainRoomList(rooms), nil
}

// Update обновляет комнату.
// Вместимость нельзя опустить ниже числа участников существующего бронирования комнаты.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateRoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("Update: updating room id=%d", id)

	if req.Fixtures != nil {
		if err := validateFixtures(*req.Fixtures); err != nil {
			s.logger.Warn("Update: validation failed for room id=%d: %v", id, err)
			return nil, err
		}
	}

	var room *domain.Room
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Блокируем комнату: конкурентные бронирования ждут обновления
		var err error
		room, err = s.roomRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		previousCapacity := room.Capacity
		req.ApplyToRoom(room)
		room.Name = strings.TrimSpace(room.Name)

		// 2. Валидируем обновленные данные
		if err := validateRoomData(room.Name, room.Capacity); err != nil {
			return err
		}

		if room.Capacity < previousCapacity {
			maxAttendees, err := s.bookingRepo.MaxAttendeesByRoom(txCtx, id)
			if err != nil {
				return err
			}
			if maxAttendees > room.Capacity {
				return fmt.Errorf("%w: capacity %d, booked attendees %d", ErrCapacityBelowBookings, room.Capacity, maxAttendees)
			}
		}

		// 3. Обновляем комнату и при необходимости набор оборудования
		if err := s.roomRepo.Update(txCtx, room); err != nil {
			return err
		}

		if req.Fixtures == nil {
			return s.attachFixtures(txCtx, []*domain.Room{room})
		}

		fixtures, err := s.resolveFixtures(txCtx, room.ID, *req.Fixtures)
		if err != nil {
			return err
		}
		if err := s.roomRepo.ReplaceFixtures(txCtx, room.ID, fixtures); err != nil {
			return err
		}
		room.Fixtures = fixtures
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, roomRepo.ErrRoomNotFound):
			s.logger.Warn("Update: room id=%d not found", id)
			return nil, ErrRoomNotFound
		case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrCapacityBelowBookings):
			s.logger.Warn("Update: validation failed for room id=%d: %v", id, err)
			return nil, err
		default:
			s.logger.Error("Update: repository error for room id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}
	}

	s.logger.Info("Update: successfully updated room id=%d", id)
	return models.FromDomainRoom(room), nil
}

// Delete удаляет комнату. Бронирования комнаты сохраняются без ссылки на неё.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting room id=%d", id)

	var detached int64
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.roomRepo.GetByID(txCtx, id); err != nil {
			return err
		}

		var err error
		detached, err = s.bookingRepo.DetachRoom(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.roomRepo.DeleteFixtures(txCtx, id); err != nil {
			return err
		}

		return s.roomRepo.Delete(txCtx, id)
	})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("Delete: room id=%d not found", id)
			return ErrRoomNotFound
		}
		s.logger.Error("Delete: repository error for room id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted room id=%d, detached %d bookings", id, detached)
	return nil
}

// Вспомогательные методы

// resolveFixtures оставляет только существующее немобильное оборудование
func (s *Service) resolveFixtures(ctx context.Context, roomID int64, requests []models.FixtureRequest) ([]domain.FixedEquipment, error) {
	if len(requests) == 0 {
		return []domain.FixedEquipment{}, nil
	}

	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.EquipmentID)
	}

	items, err := s.equipmentRepo.LockByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	quantities := make(map[int64]int, len(requests))
	for _, r := range requests {
		item, ok := items[r.EquipmentID]
		if !ok {
			s.logger.Warn("resolveFixtures: equipment id=%d not found, skipped for room id=%d", r.EquipmentID, roomID)
			continue
		}
		if item.Kind() != domain.KindFixed {
			s.logger.Warn("resolveFixtures: equipment id=%d is mobile, skipped for room id=%d", r.EquipmentID, roomID)
			continue
		}
		quantities[r.EquipmentID] += r.Quantity
	}

	fixtures := make([]domain.FixedEquipment, 0, len(quantities))
	for equipmentID, quantity := range quantities {
		fixtures = append(fixtures, domain.FixedEquipment{
			RoomID:      roomID,
			EquipmentID: equipmentID,
			Name:        items[equipmentID].Name,
			Quantity:    quantity,
		})
	}
	sort.Slice(fixtures, func(i, j int) bool { return fixtures[i].EquipmentID < fixtures[j].EquipmentID })

	return fixtures, nil
}

// attachFixtures загружает закреплённое оборудование одним запросом
func (s *Service) attachFixtures(ctx context.Context, rooms []*domain.Room) error {
	if len(rooms) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}

	fixtures, err := s.roomRepo.GetFixtures(ctx, ids)
	if err != nil {
		return err
	}

	for _, r := range rooms {
		r.Fixtures = fixtures[r.ID]
		if r.Fixtures == nil {
			r.Fixtures = []domain.FixedEquipment{}
		}
	}

	return nil
}

// validateRoomData валидирует параметры комнаты
func validateRoomData(name string, capacity int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if capacity < 0 {
		return fmt.Errorf("%w: capacity must be non-negative", ErrInvalidInput)
	}
	if capacity > domain.MaxQuantity {
		return fmt.Errorf("%w: capacity must be at most %d", ErrInvalidInput, domain.MaxQuantity)
	}
	return nil
}

// validateFixtures валидирует закрепляемое оборудование
func validateFixtures(fixtures []models.FixtureRequest) error {
	totals := make(map[int64]int, len(fixtures))
	for i, f := range fixtures {
		if f.EquipmentID <= 0 {
			return fmt.Errorf("%w: fixtures[%d]: equipmentId must be positive", ErrInvalidInput, i)
		}
		if f.Quantity < domain.MinAllocationQuantity {
			return fmt.Errorf("%w: fixtures[%d]: quantity must be at least %d", ErrInvalidInput, i, domain.MinAllocationQuantity)
		}
		if f.Quantity > domain.MaxQuantity {
			return fmt.Errorf("%w: fixtures[%d]: quantity must be at most %d", ErrInvalidInput, i, domain.MaxQuantity)
		}
		// Повторы одного оборудования суммируются
		totals[f.EquipmentID] += f.Quantity
		if totals[f.EquipmentID] > domain.MaxQuantity {
			return fmt.Errorf("%w: fixtures: total quantity of equipment %d must be at most %d", ErrInvalidInput, f.EquipmentID, domain.MaxQuantity)
		}
	}
	return nil
}
