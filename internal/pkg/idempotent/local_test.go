package idempotent

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalService_MarkOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewLocalService()

	ok, err := s.MarkOnce(ctx, "sla:1:100", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.MarkOnce(ctx, "sla:1:100", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	exists, err := s.Exists(ctx, "sla:1:100")
	require.NoError(t, err)
	assert.True(t, exists)

	// a new deadline is a new crossing
	ok, err = s.MarkOnce(ctx, "sla:1:200", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalService_Expires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewLocalService()
	ok, _ := s.MarkOnce(ctx, "k", 20*time.Millisecond)
	assert.True(t, ok)
	time.Sleep(50 * time.Millisecond)
	ok, _ = s.MarkOnce(ctx, "k", time.Minute)
	assert.True(t, ok)
}

func TestLocalService_Concurrent(t *testing.T) {
	t.Parallel()

	s := NewLocalService()
	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := s.MarkOnce(context.Background(), "same", time.Minute); ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), winners.Load())
}
