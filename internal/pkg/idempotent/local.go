package idempotent

import (
	"context"
	"time"

	ca "github.com/patrickmn/go-cache"
)

var _ IdempotencyService = (*LocalService)(nil)

// LocalService keeps markers in process memory.
type LocalService struct {
	c *ca.Cache
}

func NewLocalService() *LocalService {
	return &LocalService{c: ca.New(time.Hour, 10*time.Minute)}
}

func (s *LocalService) MarkOnce(_ context.Context, key string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = ca.NoExpiration
	}
	// Add fails when the key is already present and unexpired
	return s.c.Add(key, struct{}{}, ttl) == nil, nil
}

func (s *LocalService) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s.c.Get(key)
	return ok, nil
}
