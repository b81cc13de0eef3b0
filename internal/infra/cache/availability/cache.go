// Package availability кэширует отчёты о доступности мобильного оборудования в Redis.
//
// Ключ отчёта включает номер поколения. Любая запись, меняющая выделения или запас
// оборудования, увеличивает поколение, и все ранее сохранённые отчёты перестают читаться.
package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

const (
	DefaultPrefix = "availability"
	DefaultTTL    = 5 * time.Minute
)

// Cache кэш отчётов о доступности. Нулевой клиент отключает кэширование.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger Logger
}

// NewCache создает кэш отчётов. client может быть nil.
func NewCache(client *redis.Client, prefix string, ttl time.Duration, logger Logger) *Cache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

// Enabled true, если кэш подключён к Redis
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Lookup ищет отчёт для окна. Возвращает текущее поколение, под которым
// нужно сохранить свежий отчёт при промахе.
func (c *Cache) Lookup(ctx context.Context, window domain.Interval) ([]domain.EquipmentAvailability, int64, bool) {
	if !c.Enabled() {
		return nil, 0, false
	}

	generation, err := c.generation(ctx)
	if err != nil {
		c.logger.Warn("availability cache: read generation: %v", err)
		return nil, 0, false
	}

	payload, err := c.client.Get(ctx, c.reportKey(generation, window)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, generation, false
	}
	if err != nil {
		c.logger.Warn("availability cache: get report: %v", err)
		return nil, generation, false
	}

	var report []domain.EquipmentAvailability
	if err := json.Unmarshal(payload, &report); err != nil {
		c.logger.Warn("availability cache: decode report: %v", err)
		return nil, generation, false
	}

	return report, generation, true
}

// Store сохраняет отчёт под указанным поколением
func (c *Cache) Store(ctx context.Context, generation int64, window domain.Interval, report []domain.EquipmentAvailability) {
	if !c.Enabled() {
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		c.logger.Warn("availability cache: encode report: %v", err)
		return
	}

	if err := c.client.Set(ctx, c.reportKey(generation, window), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("availability cache: set report: %v", err)
	}
}

// Invalidate делает все сохранённые отчёты недоступными
func (c *Cache) Invalidate(ctx context.Context) {
	if !c.Enabled() {
		return
	}

	if err := c.client.Incr(ctx, c.generationKey()).Err(); err != nil {
		c.logger.Warn("availability cache: bump generation: %v", err)
	}
}

func (c *Cache) generation(ctx context.Context) (int64, error) {
	raw, err := c.client.Get(ctx, c.generationKey()).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

func (c *Cache) generationKey() string {
	return c.prefix + ":generation"
}

func (c *Cache) reportKey(generation int64, window domain.Interval) string {
	return fmt.Sprintf("%s:g%d:%d:%d", c.prefix, generation, window.Start.Unix(), window.End.Unix())
}
