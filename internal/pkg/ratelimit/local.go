package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var _ Limiter = (*LocalLimiter)(nil)

// LocalLimiter 单机令牌桶，每个 key 一个桶
type LocalLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewLocalLimiter interval 内最多放行 n 个请求
func NewLocalLimiter(interval time.Duration, n int) *LocalLimiter {
	return &LocalLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(interval / time.Duration(n)),
		burst:    n,
	}
}

func (l *LocalLimiter) Limit(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = lim
	}
	l.mu.Unlock()
	return !lim.Allow(), nil
}
