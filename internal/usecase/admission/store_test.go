package admission

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
)

// memStore хранилище в памяти, повторяющее выборки репозиториев
type memStore struct {
	rooms       map[int64]*domain.Room
	equipment   map[int64]*domain.Equipment
	bookings    []*domain.Booking
	allocations []*domain.EquipmentAllocation

	lockedIDs []int64
}

func newMemStore() *memStore {
	return &memStore{
		rooms:     make(map[int64]*domain.Room),
		equipment: make(map[int64]*domain.Equipment),
	}
}

func (s *memStore) addRoom(id int64, capacity int) {
	s.rooms[id] = &domain.Room{ID: id, Name: "Room", Capacity: capacity}
}

func (s *memStore) addEquipment(id int64, quantity int, mobile bool) {
	s.equipment[id] = &domain.Equipment{ID: id, Name: "Item", Quantity: quantity, Mobile: mobile}
}

func (s *memStore) addBooking(id, roomID int64, start, end time.Time, allocations ...*domain.EquipmentAllocation) {
	room := roomID
	s.bookings = append(s.bookings, &domain.Booking{ID: id, RoomID: &room, StartTime: start, EndTime: end})
	for _, a := range allocations {
		a.BookingID = id
		s.allocations = append(s.allocations, a)
	}
}

func (s *memStore) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	room, ok := s.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return room, nil
}

func (s *memStore) LockByIDs(_ context.Context, ids []int64) (map[int64]*domain.Equipment, error) {
	s.lockedIDs = append(s.lockedIDs, ids...)
	result := make(map[int64]*domain.Equipment)
	for _, id := range ids {
		if item, ok := s.equipment[id]; ok {
			result[id] = item
		}
	}
	return result, nil
}

func (s *memStore) GetOverlappingByRoom(_ context.Context, roomID int64, window domain.Interval, excludeID *int64) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range s.bookings {
		if b.RoomID == nil || *b.RoomID != roomID {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if window.Overlaps(b.Window()) {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (s *memStore) GetOverlappingAllocations(_ context.Context, equipmentID int64, window domain.Interval, excludeBookingID *int64) ([]*domain.EquipmentAllocation, error) {
	var result []*domain.EquipmentAllocation
	for _, a := range s.allocations {
		if a.EquipmentID != equipmentID {
			continue
		}
		if excludeBookingID != nil && a.BookingID == *excludeBookingID {
			continue
		}
		if window.Overlaps(a.Window()) {
			result = append(result, a)
		}
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func window(startHour, startMinute, endHour, endMinute int) domain.Interval {
	return domain.Interval{Start: at(startHour, startMinute), End: at(endHour, endMinute)}
}

func newTestValidator(store *memStore) *Validator {
	return NewValidator(store, store, store, nopLogger{})
}
