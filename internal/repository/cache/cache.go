package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gotomicro/ego/core/elog"
)

// defaultOpTimeout bounds every backend call.
const (
	defaultOpTimeout = 500 * time.Millisecond
	clearTimeout     = 5 * time.Second
)

// Cache is the advisory read-through cache. Backend failures are logged and
// turned into misses or no-ops, so callers always fall back to the store.
type Cache struct {
	backend   Backend
	opTimeout time.Duration
	logger    *elog.Component
}

func NewCache(backend Backend) *Cache {
	return &Cache{
		backend:   backend,
		opTimeout: defaultOpTimeout,
		logger:    elog.DefaultLogger.With(elog.String("component", "cache")),
	}
}

// Get decodes the cached value into dst. It reports false on a miss or any failure.
func (c *Cache) Get(ctx context.Context, key string, dst any) bool {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()
	val, err := c.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			c.logger.Warn("读取缓存失败", elog.String("key", key), elog.FieldErr(err))
		}
		return false
	}
	if err = json.Unmarshal(val, dst); err != nil {
		c.logger.Warn("缓存数据无法解析", elog.String("key", key), elog.FieldErr(err))
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, val any, ttl time.Duration) {
	data, err := json.Marshal(val)
	if err != nil {
		c.logger.Warn("缓存数据无法序列化", elog.String("key", key), elog.FieldErr(err))
		return
	}
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()
	if err = c.backend.Set(ctx, key, data, ttl); err != nil {
		c.logger.Warn("写入缓存失败", elog.String("key", key), elog.FieldErr(err))
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()
	if err := c.backend.Delete(ctx, keys...); err != nil {
		c.logger.Warn("删除缓存失败", elog.Any("keys", keys), elog.FieldErr(err))
	}
}

// ClearMatching removes every key matching the glob pattern. It returns 0 on failure.
func (c *Cache) ClearMatching(ctx context.Context, pattern string) int {
	ctx, cancel := context.WithTimeout(ctx, clearTimeout)
	defer cancel()
	n, err := c.backend.DeleteMatching(ctx, pattern)
	if err != nil {
		c.logger.Warn("按模式清理缓存失败", elog.String("pattern", pattern), elog.Int("removed", n), elog.FieldErr(err))
	}
	return n
}

// ClearPatterns runs ClearMatching for each pattern and sums the results.
func (c *Cache) ClearPatterns(ctx context.Context, patterns ...string) int {
	total := 0
	for _, p := range patterns {
		total += c.ClearMatching(ctx, p)
	}
	return total
}

// InvalidateUser drops every per-user read view of userID.
func (c *Cache) InvalidateUser(ctx context.Context, userID int64) int {
	return c.ClearPatterns(ctx, UserPatterns(userID)...)
}

// GetOrCompute returns the cached value for key, or calls compute once,
// caches its result and returns it. A compute error is returned as is and
// nothing is cached. Concurrent misses may each call compute.
func GetOrCompute[T any](ctx context.Context, c *Cache, key string, ttl time.Duration,
	compute func(ctx context.Context) (T, error),
) (T, error) {
	var cached T
	if c.Get(ctx, key, &cached) {
		return cached, nil
	}
	val, err := compute(ctx)
	if err != nil {
		return val, err
	}
	c.Set(ctx, key, val, ttl)
	return val, nil
}
