package admission

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
)

// Validator проверяет кандидата на бронирование.
// Должен вызываться внутри транзакции, в которой затем сохраняется бронирование:
// строки комнаты и оборудования блокируются до фиксации.
type Validator struct {
	rooms     RoomRepository
	equipment EquipmentRepository
	exclusive *RoomExclusivityChecker
	pool      *EquipmentPoolChecker
	logger    Logger
}

// NewValidator создает валидатор допуска бронирований
func NewValidator(rooms RoomRepository, equipment EquipmentRepository, bookings BookingRepository, logger Logger) *Validator {
	return &Validator{
		rooms:     rooms,
		equipment: equipment,
		exclusive: NewRoomExclusivityChecker(bookings),
		pool:      NewEquipmentPoolChecker(bookings),
		logger:    logger,
	}
}

// Validate проверяет кандидата. Первое нарушение прерывает проверку:
//  1. комната существует
//  2. начало раньше конца
//  3. участники помещаются в комнату
//  4. комната свободна на интервале
//  5. для каждого запрошенного оборудования хватает запаса
func (v *Validator) Validate(ctx context.Context, c *Candidate) (*Decision, error) {
	window := domain.NewInterval(c.Window.Start, c.Window.End)

	room, err := v.rooms.GetByID(ctx, c.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrRoomNotFound, c.RoomID)
		}
		return nil, fmt.Errorf("%w: Validate - get room: %w", ErrInternal, err)
	}

	if !window.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWindow, window)
	}

	if !room.Fits(c.Attendees) {
		return nil, fmt.Errorf("%w: %d attendees, room %d holds %d", ErrCapacityExceeded, c.Attendees, room.ID, room.Capacity)
	}

	conflicts, err := v.exclusive.Conflicts(ctx, room.ID, window, c.ExcludeBookingID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &RoomConflictError{RoomID: room.ID, Window: window, Conflicts: conflicts}
	}

	decision := &Decision{
		Room:        room,
		Window:      window,
		Allocations: make([]domain.PooledEquipment, 0, len(c.Allocations)),
		Skipped:     make([]domain.FixedEquipment, 0),
	}

	if len(c.Allocations) == 0 {
		return decision, nil
	}

	items, err := v.equipment.LockByIDs(ctx, equipmentIDs(c.Allocations))
	if err != nil {
		return nil, fmt.Errorf("%w: Validate - lock equipment: %w", ErrInternal, err)
	}

	for i, req := range c.Allocations {
		allocWindow, err := allocationWindow(req, i, window)
		if err != nil {
			return nil, err
		}

		use, err := v.pool.Check(ctx, items[req.EquipmentID], req.Quantity, allocWindow, c.ExcludeBookingID, decision.Allocations)
		if err != nil {
			if errors.Is(err, ErrEquipmentNotFound) {
				return nil, fmt.Errorf("%w: id=%d", err, req.EquipmentID)
			}
			return nil, err
		}

		switch u := use.(type) {
		case domain.PooledEquipment:
			decision.Allocations = append(decision.Allocations, u)
		case domain.FixedEquipment:
			u.RoomID = room.ID
			decision.Skipped = append(decision.Skipped, u)
			v.logger.Info("Validate: equipment id=%d is not mobile, skipping allocation", u.EquipmentID)
		}
	}

	return decision, nil
}

// allocationWindow проверяет i-е выделение и возвращает его интервал.
// Выделение без времени наследует интервал бронирования.
func allocationWindow(req AllocationRequest, i int, bookingWindow domain.Interval) (domain.Interval, error) {
	if req.EquipmentID <= 0 {
		return domain.Interval{}, fmt.Errorf("%w: allocation #%d: equipmentId must be positive", ErrInvalidAllocation, i+1)
	}
	if req.Quantity < domain.MinAllocationQuantity {
		return domain.Interval{}, fmt.Errorf("%w: allocation #%d: quantity must be at least %d", ErrInvalidAllocation, i+1, domain.MinAllocationQuantity)
	}
	if req.Quantity > domain.MaxQuantity {
		return domain.Interval{}, fmt.Errorf("%w: allocation #%d: quantity must be at most %d", ErrInvalidAllocation, i+1, domain.MaxQuantity)
	}

	w := domain.NewInterval(req.StartTime, req.EndTime)
	if req.StartTime.IsZero() && req.EndTime.IsZero() {
		w = bookingWindow
	}
	if !w.IsValid() {
		return domain.Interval{}, fmt.Errorf("%w: allocation #%d: start time must be before end time", ErrInvalidAllocation, i+1)
	}

	return w, nil
}

// equipmentIDs уникальные ID оборудования по возрастанию
func equipmentIDs(requests []AllocationRequest) []int64 {
	seen := make(map[int64]struct{}, len(requests))
	ids := make([]int64, 0, len(requests))
	for _, req := range requests {
		if _, ok := seen[req.EquipmentID]; ok {
			continue
		}
		seen[req.EquipmentID] = struct{}{}
		ids = append(ids, req.EquipmentID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
