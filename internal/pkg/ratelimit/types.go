package ratelimit

import "context"

// Limiter 限流器
//
//go:generate mockgen -source=./types.go -destination=./mocks/limiter.mock.go -package=limitmocks Limiter
type Limiter interface {
	// Limit 返回 true 表示本次请求应该被限流
	Limit(ctx context.Context, key string) (bool, error)
}
