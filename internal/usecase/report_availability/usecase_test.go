package report_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/cache/availability"
	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
)

type fakeStore struct {
	equipment   []*domain.Equipment
	allocations []*domain.EquipmentAllocation
	reads       int
	err         error
}

func (s *fakeStore) List(_ context.Context, mobile *bool) ([]*domain.Equipment, error) {
	s.reads++
	if s.err != nil {
		return nil, s.err
	}
	var result []*domain.Equipment
	for _, e := range s.equipment {
		if mobile == nil || e.Mobile == *mobile {
			result = append(result, e)
		}
	}
	return result, nil
}

func (s *fakeStore) GetAllocationsInWindow(_ context.Context, window domain.Interval) ([]*domain.EquipmentAllocation, error) {
	var result []*domain.EquipmentAllocation
	for _, a := range s.allocations {
		if window.Overlaps(a.Window()) {
			result = append(result, a)
		}
	}
	return result, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func setup(t *testing.T, store *fakeStore) (*UseCase, *availability.Cache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := availability.NewCache(client, "", time.Minute, nopLogger{})
	return NewUseCase(store, store, fakeTxManager{}, cache, nopLogger{}), cache
}

// Проектор (2 шт.) занят целиком 09:00-10:00, колонки и доска не затронуты
func scenarioStore() *fakeStore {
	return &fakeStore{
		equipment: []*domain.Equipment{
			{ID: 1, Name: "Projector", Quantity: 2, Mobile: true},
			{ID: 2, Name: "Speaker", Quantity: 3, Mobile: true},
			{ID: 3, Name: "Whiteboard", Quantity: 1, Mobile: false},
		},
		allocations: []*domain.EquipmentAllocation{
			{BookingID: 1, EquipmentID: 1, Quantity: 2, StartTime: at(9, 0), EndTime: at(10, 0)},
		},
	}
}

func TestExecute_ReportsReservedAndAvailable(t *testing.T) {
	uc, _ := setup(t, scenarioStore())

	resp, err := uc.Execute(context.Background(), &Request{Start: at(9, 0), End: at(10, 0)})

	require.NoError(t, err)
	assert.Equal(t, []domain.EquipmentAvailability{
		{EquipmentID: 1, Name: "Projector", Total: 2, Reserved: 2, Available: 0},
		{EquipmentID: 2, Name: "Speaker", Total: 3, Reserved: 0, Available: 3},
	}, resp.Items)
	assert.False(t, resp.Cached)
}

func TestExecute_RepeatedReportIsIdenticalAndCached(t *testing.T) {
	store := scenarioStore()
	uc, _ := setup(t, store)
	req := &Request{Start: at(9, 0), End: at(10, 0)}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Items, second.Items)
	assert.True(t, second.Cached)
	assert.Equal(t, 1, store.reads)
}

func TestExecute_InvalidationForcesRecompute(t *testing.T) {
	store := scenarioStore()
	uc, cache := setup(t, store)
	req := &Request{Start: at(10, 0), End: at(11, 0)}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Items[0].Available)

	store.allocations = append(store.allocations, &domain.EquipmentAllocation{
		BookingID: 2, EquipmentID: 1, Quantity: 1, StartTime: at(10, 0), EndTime: at(10, 30),
	})
	cache.Invalidate(context.Background())

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, second.Cached)
	assert.Equal(t, 1, second.Items[0].Available)
}

func TestExecute_InvalidWindow(t *testing.T) {
	uc, _ := setup(t, scenarioStore())

	_, err := uc.Execute(context.Background(), &Request{Start: at(10, 0), End: at(10, 0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, admission.ErrInvalidArgument)

	_, err = uc.Execute(context.Background(), &Request{Start: at(10, 0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_StorageFailure(t *testing.T) {
	store := scenarioStore()
	store.err = errors.New("db down")
	uc, _ := setup(t, store)

	_, err := uc.Execute(context.Background(), &Request{Start: at(9, 0), End: at(10, 0)})

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, admission.ErrInternal)
}
