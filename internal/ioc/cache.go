package ioc

import (
	"time"

	"gitee.com/flycash/shift-handover/internal/pkg/idempotent"
	"gitee.com/flycash/shift-handover/internal/repository/cache"
	"gitee.com/flycash/shift-handover/internal/repository/cache/local"
	rediscache "gitee.com/flycash/shift-handover/internal/repository/cache/redis"
	"github.com/gotomicro/ego/core/econf"
	ca "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	backendRedis = "redis"
	backendLocal = "local"

	alertMarkerPrefix = "handover:"
)

type cacheConfig struct {
	// Backend redis 或 local，默认 redis
	Backend         string        `yaml:"backend"`
	CleanupInterval time.Duration `yaml:"cleanupInterval"`
}

func loadCacheConfig() cacheConfig {
	var cfg cacheConfig
	err := econf.UnmarshalKey("cache", &cfg)
	if err != nil {
		panic(err)
	}
	if cfg.Backend == "" {
		cfg.Backend = backendRedis
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 10 * time.Minute
	}
	return cfg
}

// InitCache 读视图缓存。单实例部署可以用本地缓存
func InitCache(rdb redis.Cmdable) *cache.Cache {
	cfg := loadCacheConfig()
	switch cfg.Backend {
	case backendLocal:
		return cache.NewCache(local.NewCache(ca.New(cache.ConfigTTL, cfg.CleanupInterval)))
	case backendRedis:
		return cache.NewCache(rediscache.NewCache(rdb))
	default:
		panic("未知的缓存类型: " + cfg.Backend)
	}
}

// InitAlertMarker SLA 告警去重标记，和缓存用同一种存储
func InitAlertMarker(rdb redis.Cmdable) idempotent.IdempotencyService {
	cfg := loadCacheConfig()
	if cfg.Backend == backendLocal {
		return idempotent.NewLocalService()
	}
	return idempotent.NewRedisService(rdb, alertMarkerPrefix)
}
