package loopjob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"github.com/meoying/dlock-go"
)

const (
	defaultTimeout = time.Second * 3
	// lockTimeout 长于 dlock-go 自带的加锁重试（100ms 起指数退避到 1s，共 10 次），
	// 重试耗尽时返回的是最后一次的真实错误
	lockTimeout = time.Second * 15
)

var (
	// ErrLockHeld 锁被其他实例持有，本次执行直接跳过
	ErrLockHeld = errors.New("分布式锁被其他实例持有")
	// ErrLockUnavailable 锁服务本身不可用，例如 Redis 连不上
	ErrLockUnavailable = errors.New("分布式锁服务不可用")
)

// DistributedOnce 保证同一时刻多个实例中只有一个在执行 biz。
// 没抢到锁的实例不会等待，而是放弃本轮。
type DistributedOnce struct {
	dclient dlock.Client
	key     string
	ttl     time.Duration
	// lockTimeout 抢锁的总时长
	lockTimeout time.Duration
	logger      *elog.Component
}

func NewDistributedOnce(dclient dlock.Client, key string, ttl time.Duration) *DistributedOnce {
	return &DistributedOnce{
		dclient:     dclient,
		key:         key,
		ttl:         ttl,
		lockTimeout: lockTimeout,
		logger:      elog.DefaultLogger.With(elog.String("key", key)),
	}
}

// Run 抢锁并执行 biz。执行期间后台续约，续约失败会取消 biz 的 ctx。
func (o *DistributedOnce) Run(ctx context.Context, biz func(ctx context.Context) error) error {
	lock, err := o.dclient.NewLock(ctx, o.key, o.ttl)
	if err != nil {
		return fmt.Errorf("%w: 初始化分布式锁失败: %w", ErrLockUnavailable, err)
	}

	lockCtx, cancel := context.WithTimeout(ctx, o.lockTimeout)
	err = lock.Lock(lockCtx)
	cancel()
	switch {
	case err == nil:
	case errors.Is(err, dlock.ErrLocked):
		o.logger.Info("锁被其他实例持有，跳过本轮", elog.FieldErr(err))
		return fmt.Errorf("%w: %w", ErrLockHeld, err)
	default:
		o.logger.Error("加分布式锁失败", elog.FieldErr(err))
		return fmt.Errorf("%w: %w", ErrLockUnavailable, err)
	}

	defer func() {
		// ctx 可能已经被取消，释放锁要脱离它
		unCtx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		//nolint:contextcheck // 原始 ctx 可能已被取消，但仍需尝试解锁
		unErr := lock.Unlock(unCtx)
		cancel()
		if unErr != nil {
			o.logger.Error("释放分布式锁失败", elog.FieldErr(unErr))
		}
	}()

	bizCtx, bizCancel := context.WithCancel(ctx)
	defer bizCancel()
	done := make(chan struct{})
	defer close(done)
	go o.refreshLoop(bizCtx, bizCancel, lock, done)

	return biz(bizCtx)
}

func (o *DistributedOnce) refreshLoop(ctx context.Context, cancel context.CancelFunc, lock dlock.Lock, done <-chan struct{}) {
	interval := o.ttl / 3
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			refCtx, refCancel := context.WithTimeout(ctx, defaultTimeout)
			err := lock.Refresh(refCtx)
			refCancel()
			if err != nil {
				o.logger.Error("分布式锁续约失败，中断任务", elog.FieldErr(err))
				cancel()
				return
			}
		}
	}
}
