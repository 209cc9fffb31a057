package cache_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitee.com/flycash/shift-handover/internal/repository/cache"
	"gitee.com/flycash/shift-handover/internal/repository/cache/local"
)

// downBackend simulates an unreachable cache server.
type downBackend struct{}

var errDown = errors.New("connection refused")

func (downBackend) Get(context.Context, string) ([]byte, error) { return nil, errDown }
func (downBackend) Set(context.Context, string, []byte, time.Duration) error {
	return errDown
}
func (downBackend) Delete(context.Context, ...string) error { return errDown }
func (downBackend) DeleteMatching(context.Context, string) (int, error) {
	return 0, errDown
}

type view struct {
	Open int `json:"open"`
}

func TestGetOrCompute_BackendDown(t *testing.T) {
	t.Parallel()

	c := cache.NewCache(downBackend{})
	var calls atomic.Int32
	compute := func(context.Context) (view, error) {
		calls.Add(1)
		return view{Open: 3}, nil
	}
	for i := 0; i < 3; i++ {
		got, err := cache.GetOrCompute(context.Background(), c, "dashboard:1:false:", time.Minute, compute)
		require.NoError(t, err)
		assert.Equal(t, view{Open: 3}, got)
	}
	assert.Equal(t, int32(3), calls.Load())
	assert.Zero(t, c.ClearMatching(context.Background(), "dashboard:*"))
	c.Delete(context.Background(), "x")
}

func TestGetOrCompute_CachesResult(t *testing.T) {
	t.Parallel()

	c := cache.NewCache(local.NewDefaultCache())
	var calls atomic.Int32
	compute := func(context.Context) (view, error) {
		calls.Add(1)
		return view{Open: int(calls.Load())}, nil
	}
	ctx := context.Background()
	first, err := cache.GetOrCompute(ctx, c, "k", time.Minute, compute)
	require.NoError(t, err)
	second, err := cache.GetOrCompute(ctx, c, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetOrCompute_ComputeError(t *testing.T) {
	t.Parallel()

	c := cache.NewCache(local.NewDefaultCache())
	boom := errors.New("store down")
	ctx := context.Background()
	_, err := cache.GetOrCompute(ctx, c, "k", time.Minute, func(context.Context) (view, error) {
		return view{}, boom
	})
	assert.ErrorIs(t, err, boom)
	var v view
	assert.False(t, c.Get(ctx, "k", &v))
}

func TestCache_InvalidateUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewCache(local.NewDefaultCache())
	c.Set(ctx, cache.DashboardKey(42, false, "UTI"), view{Open: 1}, time.Minute)
	c.Set(ctx, cache.ListingKey(42, 20), []int{1}, time.Minute)
	c.Set(ctx, cache.NotificationsKey(42, 10), []int{1}, time.Minute)
	c.Set(ctx, cache.DashboardKey(7, true, "UTI"), view{Open: 2}, time.Minute)

	assert.Equal(t, 3, c.InvalidateUser(ctx, 42))
	var v view
	assert.False(t, c.Get(ctx, cache.DashboardKey(42, false, "UTI"), &v))
	assert.True(t, c.Get(ctx, cache.DashboardKey(7, true, "UTI"), &v))
	assert.Equal(t, 2, v.Open)
}

func TestCache_UndecodableValueIsAMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := local.NewDefaultCache()
	require.NoError(t, backend.Set(ctx, "k", []byte("not json"), time.Minute))
	c := cache.NewCache(backend)
	var v view
	assert.False(t, c.Get(ctx, "k", &v))
}
