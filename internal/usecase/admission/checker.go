package admission

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// RoomExclusivityChecker ищет бронирования комнаты, пересекающие интервал
type RoomExclusivityChecker struct {
	bookings BookingRepository
}

func NewRoomExclusivityChecker(bookings BookingRepository) *RoomExclusivityChecker {
	return &RoomExclusivityChecker{bookings: bookings}
}

// Conflicts возвращает все пересекающиеся бронирования комнаты, кроме excludeBookingID
func (c *RoomExclusivityChecker) Conflicts(ctx context.Context, roomID int64, window domain.Interval, excludeBookingID *int64) ([]*domain.Booking, error) {
	overlapping, err := c.bookings.GetOverlappingByRoom(ctx, roomID, window, excludeBookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: Conflicts - get overlapping bookings: %w", ErrInternal, err)
	}

	// Выборку хранилища дополнительно фильтруем доменным предикатом
	conflicts := make([]*domain.Booking, 0, len(overlapping))
	for _, b := range overlapping {
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		if window.Overlaps(b.Window()) {
			conflicts = append(conflicts, b)
		}
	}

	return conflicts, nil
}

// EquipmentPoolChecker проверяет запас мобильного оборудования на интервале
type EquipmentPoolChecker struct {
	bookings BookingRepository
}

func NewEquipmentPoolChecker(bookings BookingRepository) *EquipmentPoolChecker {
	return &EquipmentPoolChecker{bookings: bookings}
}

// Check классифицирует запрос и для мобильного оборудования проверяет запас.
// item == nil означает, что оборудование не найдено.
// pending - уже принятые выделения того же бронирования, они учитываются в сумме.
// Стационарное оборудование возвращается как FixedEquipment без проверки по времени.
func (c *EquipmentPoolChecker) Check(
	ctx context.Context,
	item *domain.Equipment,
	quantity int,
	window domain.Interval,
	excludeBookingID *int64,
	pending []domain.PooledEquipment,
) (domain.EquipmentUse, error) {
	if item == nil {
		return nil, ErrEquipmentNotFound
	}

	use := domain.ClassifyUse(item, quantity, window)

	pooled, ok := use.(domain.PooledEquipment)
	if !ok {
		return use, nil
	}

	others, err := c.bookings.GetOverlappingAllocations(ctx, item.ID, window, excludeBookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: Check - get overlapping allocations: %w", ErrInternal, err)
	}

	reserved := domain.ReservedQuantity(others, window)
	for _, p := range pending {
		if p.EquipmentID == item.ID && p.Window.Overlaps(window) {
			reserved += p.Quantity
		}
	}

	// Сравнение без сложения: сумма reserved+requested может переполниться
	if pooled.Quantity > item.Quantity-reserved {
		return nil, &CapacityError{
			EquipmentID: item.ID,
			Window:      window,
			Requested:   pooled.Quantity,
			Reserved:    reserved,
			Total:       item.Quantity,
		}
	}

	return pooled, nil
}
