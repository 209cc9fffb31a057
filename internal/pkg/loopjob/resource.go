package loopjob

import (
	"context"

	"github.com/pkg/errors"
)

// ResourceSemaphore 限制同一种任务在本进程内同时执行的数量。
// Acquire 不排队，槽位满了立即返回 ErrExceedLimit
type ResourceSemaphore interface {
	Acquire(ctx context.Context) error
	Release(ctx context.Context) error
}

var ErrExceedLimit = errors.New("并发任务数超出限制")

type slotSemaphore struct {
	slots chan struct{}
}

func NewResourceSemaphore(maxCount int) ResourceSemaphore {
	if maxCount < 1 {
		maxCount = 1
	}
	return &slotSemaphore{slots: make(chan struct{}, maxCount)}
}

func (s *slotSemaphore) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case s.slots <- struct{}{}:
		return nil
	default:
		return errors.WithMessagef(ErrExceedLimit, "上限 %d", cap(s.slots))
	}
}

// Release 多余的释放直接忽略
func (s *slotSemaphore) Release(context.Context) error {
	select {
	case <-s.slots:
	default:
	}
	return nil
}
