package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestHook_ProcessHook(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	h := NewMetricsHook(reg, "test")

	ok := h.ProcessHook(func(context.Context, redis.Cmder) error { return nil })
	miss := h.ProcessHook(func(context.Context, redis.Cmder) error { return redis.Nil })
	fail := h.ProcessHook(func(context.Context, redis.Cmder) error { return errors.New("conn reset") })

	ctx := t.Context()
	cmd := redis.NewStringCmd(ctx, "get", "k")
	_ = ok(ctx, cmd)
	_ = miss(ctx, cmd)
	_ = fail(ctx, cmd)

	assert.InDelta(t, 2, testutil.ToFloat64(h.commands.WithLabelValues("get", statusSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(h.commands.WithLabelValues("get", statusError)), 0)
}

func TestNewMetricsHook_RegisterTwice(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	first := NewMetricsHook(reg, "test")
	second := NewMetricsHook(reg, "test")
	assert.Same(t, first.commands, second.commands)
}
