package idempotent

import (
	"context"
	"time"
)

// IdempotencyService records one-shot markers.
//
//go:generate mockgen -source=./type.go -destination=./mocks/idempotent.mock.go -package=idempotentmocks IdempotencyService
type IdempotencyService interface {
	// MarkOnce sets key for ttl. It reports true only for the caller that created it.
	MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Exists reports whether key is currently marked.
	Exists(ctx context.Context, key string) (bool, error)
}
