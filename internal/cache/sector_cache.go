package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/warehouse-rental/internal/domain"
)

const availableSectorsKey = "sectores:disponibles"

// SectorCache keeps the available-sector listing in Redis with a short TTL.
// Misses and Redis failures fall through to the repository; every sector
// state write invalidates the entry.
type SectorCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSectorCache builds the cache. A nil client disables caching.
func NewSectorCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SectorCache {
	return &SectorCache{client: client, ttl: ttl, logger: logger}
}

// GetAvailable returns the cached listing and whether it was present.
func (c *SectorCache) GetAvailable(ctx context.Context) ([]domain.Sector, bool) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return nil, false
	}
	raw, err := c.client.Get(ctx, availableSectorsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("sector cache get failed", zap.Error(err))
		}
		return nil, false
	}
	var sectors []domain.Sector
	if err := json.Unmarshal(raw, &sectors); err != nil {
		c.logger.Debug("sector cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return sectors, true
}

// SetAvailable stores the listing.
func (c *SectorCache) SetAvailable(ctx context.Context, sectors []domain.Sector) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(sectors)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, availableSectorsKey, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("sector cache set failed", zap.Error(err))
	}
}

// Invalidate drops the cached listing.
func (c *SectorCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, availableSectorsKey).Err(); err != nil {
		c.logger.Debug("sector cache invalidate failed", zap.Error(err))
	}
}
