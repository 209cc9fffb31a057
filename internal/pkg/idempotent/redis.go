package idempotent

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ IdempotencyService = (*RedisService)(nil)

type RedisService struct {
	client redis.Cmdable
	prefix string
}

func NewRedisService(client redis.Cmdable, prefix string) *RedisService {
	return &RedisService{client: client, prefix: prefix}
}

func (s *RedisService) MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, s.prefix+key, time.Now().UnixMilli(), ttl).Result()
}

func (s *RedisService) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.prefix+key).Result()
	return n > 0, err
}
