// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pb2106/MethaX/internal/feature/marketdata/domain/entity"
	"github.com/pb2106/MethaX/internal/feature/marketdata/usecase"
)

// CachingCandleRepository decorates a CandleRepository with Redis caching.
// Candle listings are cached until the timeframe's next bar opens; writes
// invalidate the affected series. A nil Redis client turns the decorator
// into a transparent pass-through.
type CachingCandleRepository struct {
	inner     usecase.CandleRepository
	rdb       *redis.Client
	maxTTL    time.Duration
	namespace string
	now       func() time.Time
}

var _ usecase.CandleRepository = (*CachingCandleRepository)(nil)

// NewCachingCandleRepository decorates a CandleRepository with Redis caching.
// maxTTL caps the bar-aligned TTL; if it is 0 it defaults to 5 minutes. If
// namespace is empty, it uses "candles".
func NewCachingCandleRepository(rdb *redis.Client, maxTTL time.Duration, inner usecase.CandleRepository, namespace string) *CachingCandleRepository {
	if maxTTL <= 0 {
		maxTTL = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "candles"
	}
	return &CachingCandleRepository{
		inner:     inner,
		rdb:       rdb,
		maxTTL:    maxTTL,
		namespace: namespace,
		now:       time.Now,
	}
}

// Upsert writes through to the store and invalidates the candle's series.
func (c *CachingCandleRepository) Upsert(ctx context.Context, candle entity.Candle) (bool, error) {
	created, err := c.inner.Upsert(ctx, candle)
	if err != nil {
		return false, err
	}
	if c.rdb != nil {
		// Best effort: don't fail the write if cache deletion fails
		_ = c.deleteByPattern(ctx, c.cacheKeyPrefix(candle.Symbol, candle.Timeframe)+"*")
	}
	return created, nil
}

// UpsertBatch writes through to the store and invalidates every touched
// series.
func (c *CachingCandleRepository) UpsertBatch(ctx context.Context, candles []entity.Candle) (int64, error) {
	inserted, err := c.inner.UpsertBatch(ctx, candles)
	if err != nil {
		return 0, err
	}
	if c.rdb == nil || len(candles) == 0 {
		return inserted, nil
	}

	// Invalidate affected cache entries (keys per symbol+timeframe)
	seen := map[string]struct{}{}
	for _, cd := range candles {
		prefix := c.cacheKeyPrefix(cd.Symbol, cd.Timeframe)
		if _, ok := seen[prefix]; ok {
			continue
		}
		seen[prefix] = struct{}{}
		_ = c.deleteByPattern(ctx, prefix+"*") // Best effort: don't fail if cache deletion fails
	}
	return inserted, nil
}

// Latest retrieves candles, checking cache first then falling back to the
// database.
func (c *CachingCandleRepository) Latest(ctx context.Context, symbol string, timeframe entity.Timeframe, limit int) ([]entity.Candle, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Latest(ctx, symbol, timeframe, limit)
	}

	key := c.cacheKey(symbol, timeframe, limit)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Candle
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.Latest(ctx, symbol, timeframe, limit)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		ttl := TTLUntilNextBar(timeframe, c.now())
		if ttl > c.maxTTL {
			ttl = c.maxTTL
		}
		_ = c.rdb.Set(ctx, key, b, ttl).Err()
	}

	return out, nil
}

// Count always hits the store; the ingest availability check must not see
// stale totals.
func (c *CachingCandleRepository) Count(ctx context.Context, symbol string, timeframe entity.Timeframe) (int64, error) {
	return c.inner.Count(ctx, symbol, timeframe)
}

// MostRecent always hits the store; the spot fallback chain needs the
// freshest close.
func (c *CachingCandleRepository) MostRecent(ctx context.Context, symbol string) (*entity.Candle, error) {
	return c.inner.MostRecent(ctx, symbol)
}

// cacheKey generates a cache key for a specific query.
func (c *CachingCandleRepository) cacheKey(symbol string, timeframe entity.Timeframe, limit int) string {
	return fmt.Sprintf("%s:%s:%s:%d",
		c.namespace,
		safe(symbol),
		safe(string(timeframe)),
		limit,
	)
}

// cacheKeyPrefix generates a prefix for invalidating related cache entries.
func (c *CachingCandleRepository) cacheKeyPrefix(symbol string, timeframe entity.Timeframe) string {
	return fmt.Sprintf("%s:%s:%s:",
		c.namespace,
		safe(symbol),
		safe(string(timeframe)),
	)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingCandleRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
