package loopjob

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceSemaphore(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		max      int
		acquire  int
		release  int
		wantFree bool
	}{
		{name: "单槽位被占用", max: 1, acquire: 1, wantFree: false},
		{name: "释放后可再次获取", max: 1, acquire: 1, release: 1, wantFree: true},
		{name: "未满", max: 3, acquire: 2, wantFree: true},
		{name: "多余的释放不增加槽位", max: 2, acquire: 2, release: 5, wantFree: true},
		{name: "非法上限按 1 处理", max: 0, acquire: 1, wantFree: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx := t.Context()
			s := NewResourceSemaphore(tc.max)
			for i := 0; i < tc.acquire; i++ {
				require.NoError(t, s.Acquire(ctx))
			}
			for i := 0; i < tc.release; i++ {
				require.NoError(t, s.Release(ctx))
			}
			err := s.Acquire(ctx)
			if tc.wantFree {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrExceedLimit))
		})
	}
}

func TestResourceSemaphore_Concurrent(t *testing.T) {
	t.Parallel()

	s := NewResourceSemaphore(3)
	var (
		wg       sync.WaitGroup
		rejected atomic.Int32
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Acquire(t.Context()); err != nil {
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(5), rejected.Load())
}

func TestResourceSemaphore_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	err := NewResourceSemaphore(1).Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
