package ratelimit

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	//go:embed lua/slide_window.lua
	slidingWindowScript string

	_ Limiter = (*RedisSlidingWindowLimiter)(nil)
)

type RedisSlidingWindowLimiter struct {
	cmd       redis.Cmdable
	interval  time.Duration
	rate      int
	keyPrefix string
	seq       atomic.Uint64
}

// NewRedisSlidingWindowLimiter 创建一个基于Redis的滑动窗口限流器，interval 内最多放行 rate 个请求
func NewRedisSlidingWindowLimiter(cmd redis.Cmdable, interval time.Duration, rate int) *RedisSlidingWindowLimiter {
	return &RedisSlidingWindowLimiter{
		cmd:       cmd,
		interval:  interval,
		rate:      rate,
		keyPrefix: "ratelimit:",
	}
}

func (r *RedisSlidingWindowLimiter) Limit(ctx context.Context, key string) (bool, error) {
	now := time.Now().UnixMilli()
	// 同一毫秒内的多个请求需要不同的 member
	member := strconv.FormatInt(now, 10) + ":" + strconv.FormatUint(r.seq.Add(1), 10)
	return r.cmd.Eval(ctx, slidingWindowScript,
		[]string{r.windowKey(key)},
		r.interval.Milliseconds(),
		r.rate,
		now,
		member,
	).Bool()
}

func (r *RedisSlidingWindowLimiter) windowKey(key string) string {
	return fmt.Sprintf("%swindow:%s", r.keyPrefix, key)
}
