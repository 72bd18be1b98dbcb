package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
)

const keyPrefix = "availability:merchant_settings:"

// Cache read-through кэш нормализованных настроек мерчанта в Redis.
// Внутри транзакции кэш не используется: транзакционные сценарии читают снимок БД.
// Ошибки Redis не пробрасываются, запрос уходит в источник.
type Cache struct {
	source Source
	client redis.Cmdable
	ttl    time.Duration
	logger Logger
}

// NewCache создает кэш. client == nil отключает кэширование.
func NewCache(source Source, client redis.Cmdable, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		source: source,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetSettings возвращает настройки из кэша или из источника
func (c *Cache) GetSettings(ctx context.Context, merchantID int64) (*domain.MerchantSettings, error) {
	if c.client == nil || dbmetrics.IsInTransaction(ctx) {
		return c.source.GetSettings(ctx, merchantID)
	}

	key := cacheKey(merchantID)

	if cached, ok := c.read(ctx, key); ok {
		return cached, nil
	}

	settings, err := c.source.GetSettings(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	c.write(ctx, key, settings)
	return settings, nil
}

func (c *Cache) read(ctx context.Context, key string) (*domain.MerchantSettings, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("SettingsCache: failed to read key=%s: %v", key, err)
		}
		return nil, false
	}

	var settings domain.MerchantSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		c.logger.Warn("SettingsCache: corrupted value for key=%s: %v", key, err)
		return nil, false
	}
	return &settings, true
}

func (c *Cache) write(ctx context.Context, key string, settings *domain.MerchantSettings) {
	data, err := json.Marshal(settings)
	if err != nil {
		c.logger.Warn("SettingsCache: failed to encode key=%s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("SettingsCache: failed to write key=%s: %v", key, err)
	}
}

func cacheKey(merchantID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, merchantID)
}
