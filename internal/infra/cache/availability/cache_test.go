package availability

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func setupCache(t *testing.T) (*miniredis.Miniredis, *Cache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewCache(client, "", time.Minute, nopLogger{})
}

var (
	window = domain.Interval{
		Start: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
	report = []domain.EquipmentAvailability{
		{EquipmentID: 1, Name: "Projector", Total: 2, Reserved: 2, Available: 0},
	}
)

func TestCache_StoreAndLookup(t *testing.T) {
	mr, cache := setupCache(t)
	ctx := context.Background()

	_, generation, hit := cache.Lookup(ctx, window)
	require.False(t, hit)
	assert.Equal(t, int64(0), generation)

	cache.Store(ctx, generation, window, report)

	cached, _, hit := cache.Lookup(ctx, window)
	require.True(t, hit)
	assert.Equal(t, report, cached)

	key := "availability:g0:1772442000:1772445600"
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))
}

func TestCache_InvalidateHidesStoredReports(t *testing.T) {
	_, cache := setupCache(t)
	ctx := context.Background()

	cache.Store(ctx, 0, window, report)
	cache.Invalidate(ctx)

	_, generation, hit := cache.Lookup(ctx, window)
	assert.False(t, hit)
	assert.Equal(t, int64(1), generation)
}

func TestCache_StaleGenerationIsNeverServed(t *testing.T) {
	_, cache := setupCache(t)
	ctx := context.Background()

	_, generation, _ := cache.Lookup(ctx, window)
	cache.Invalidate(ctx) // запись зафиксирована, пока отчёт считался
	cache.Store(ctx, generation, window, report)

	_, _, hit := cache.Lookup(ctx, window)
	assert.False(t, hit)
}

func TestCache_DisabledWithoutClient(t *testing.T) {
	cache := NewCache(nil, "", 0, nopLogger{})
	ctx := context.Background()

	cache.Store(ctx, 0, window, report)
	cache.Invalidate(ctx)

	_, _, hit := cache.Lookup(ctx, window)
	assert.False(t, hit)
	assert.False(t, cache.Enabled())
}

func TestCache_RedisDownIsAMiss(t *testing.T) {
	mr, cache := setupCache(t)
	mr.Close()

	_, _, hit := cache.Lookup(context.Background(), window)
	assert.False(t, hit)
}
