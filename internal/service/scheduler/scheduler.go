package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gitee.com/flycash/shift-handover/internal/errs"
	"gitee.com/flycash/shift-handover/internal/pkg/loopjob"
	"gitee.com/flycash/shift-handover/internal/pkg/retry"
	"github.com/gofrs/uuid"
	"github.com/gotomicro/ego/core/elog"
	"github.com/meoying/dlock-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultHardLimit = 30 * time.Minute
	defaultLockTTL   = time.Minute
	lockKeyPrefix    = "handover:job:"
)

// Job 一个周期任务
type Job struct {
	Name  string
	Spec  string
	Retry retry.Config
	Run   func(ctx context.Context) error
}

type JobConfig struct {
	Spec     string        `yaml:"spec"`
	Retry    *retry.Config `yaml:"retry"`
	Disabled bool          `yaml:"disabled"`
}

type Config struct {
	// HardLimit 超过后取消任务，记为超时
	HardLimit time.Duration `yaml:"hardLimit"`
	// SoftLimit 超过后只告警，默认为 HardLimit 的 5/6
	SoftLimit time.Duration `yaml:"softLimit"`
	LockTTL   time.Duration `yaml:"lockTTL"`
	// Jobs 按任务名覆盖默认配置
	Jobs map[string]JobConfig `yaml:"jobs"`
}

type job struct {
	Job
	sem  loopjob.ResourceSemaphore
	once *loopjob.DistributedOnce
}

// Scheduler 按 cron 表达式触发任务。同一种任务同一时刻最多跑一个：
// 进程内用信号量，多实例之间用分布式锁
type Scheduler struct {
	cron    *cron.Cron
	jobs    map[string]*job
	names   []string
	cfg     Config
	metrics *jobMetrics
	tracer  trace.Tracer

	baseCtx context.Context
	cancel  context.CancelFunc
	running sync.WaitGroup

	logger *elog.Component
}

// NewScheduler dclient 为 nil 时不使用分布式锁
func NewScheduler(dclient dlock.Client, reg prometheus.Registerer, cfg Config, jobs ...Job) (*Scheduler, error) {
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = defaultHardLimit
	}
	if cfg.SoftLimit <= 0 || cfg.SoftLimit >= cfg.HardLimit {
		cfg.SoftLimit = cfg.HardLimit * 5 / 6
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaultLockTTL
	}
	logger := elog.DefaultLogger.With(elog.String("component", "scheduler"))
	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger{logger: logger}),
		cron.SkipIfStillRunning(cronLogger{logger: logger}),
	))
	baseCtx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:    c,
		jobs:    make(map[string]*job, len(jobs)),
		cfg:     cfg,
		metrics: newJobMetrics(reg),
		tracer:  otel.Tracer("gitee.com/flycash/shift-handover/internal/service/scheduler"),
		baseCtx: baseCtx,
		cancel:  cancel,
		logger:  logger,
	}
	for _, j := range jobs {
		if override, ok := cfg.Jobs[j.Name]; ok {
			if override.Disabled {
				logger.Info("任务已禁用", elog.String("job", j.Name))
				continue
			}
			if override.Spec != "" {
				j.Spec = override.Spec
			}
			if override.Retry != nil {
				j.Retry = *override.Retry
			}
		}
		if err := s.add(dclient, j); err != nil {
			cancel()
			return nil, err
		}
	}
	return s, nil
}

func (s *Scheduler) add(dclient dlock.Client, j Job) error {
	if j.Name == "" || j.Run == nil {
		return fmt.Errorf("%w: job name and func are required", errs.ErrInvalidParameter)
	}
	if _, ok := s.jobs[j.Name]; ok {
		return fmt.Errorf("%w: duplicate job %s", errs.ErrInvalidParameter, j.Name)
	}
	// 先校验重试配置，避免运行时才发现
	if _, err := retry.NewRetry(j.Retry); err != nil {
		return fmt.Errorf("%w: job %s: %w", errs.ErrInvalidParameter, j.Name, err)
	}
	entry := &job{Job: j, sem: loopjob.NewResourceSemaphore(1)}
	if dclient != nil {
		entry.once = loopjob.NewDistributedOnce(dclient, lockKeyPrefix+j.Name, s.cfg.LockTTL)
	}
	if j.Spec != "" {
		_, err := s.cron.AddFunc(j.Spec, func() {
			if err := s.run(s.baseCtx, entry); err != nil {
				s.logger.Error("定时任务执行失败", elog.String("job", j.Name), elog.FieldErr(err))
			}
		})
		if err != nil {
			return fmt.Errorf("%w: job %s spec %q: %w", errs.ErrInvalidParameter, j.Name, j.Spec, err)
		}
	}
	s.jobs[j.Name] = entry
	s.names = append(s.names, j.Name)
	return nil
}

// Names 已注册的任务名，按注册顺序
func (s *Scheduler) Names() []string {
	return append([]string(nil), s.names...)
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("调度器已启动", elog.Any("jobs", s.names))
}

// RunOnce 立即同步执行一次，和定时触发共享并发控制
func (s *Scheduler) RunOnce(ctx context.Context, name string) error {
	j, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("%w: %s", errs.ErrUnknownJob, name)
	}
	return s.run(ctx, j)
}

// Stop 停止触发新任务并等待执行中的任务结束。ctx 到期后会取消执行中的任务
func (s *Scheduler) Stop(ctx context.Context) error {
	cronCtx := s.cron.Stop()
	done := make(chan struct{})
	go func() {
		<-cronCtx.Done()
		s.running.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.cancel()
		s.logger.Info("调度器已停止")
		return nil
	case <-ctx.Done():
		s.cancel()
		s.logger.Warn("等待任务结束超时，已取消执行中的任务", elog.FieldErr(ctx.Err()))
		return ctx.Err()
	}
}

func (s *Scheduler) run(ctx context.Context, j *job) (err error) {
	if err = j.sem.Acquire(ctx); err != nil {
		s.metrics.observe(j.Name, resultSkipped, 0)
		return fmt.Errorf("%w: %s", errs.ErrJobRunning, j.Name)
	}
	s.running.Add(1)
	defer func() {
		_ = j.sem.Release(ctx)
		s.running.Done()
	}()

	runID := newRunID()
	logger := s.logger.With(elog.String("job", j.Name), elog.String("runID", runID))
	ctx, span := s.tracer.Start(ctx, "job."+j.Name, trace.WithAttributes(
		attribute.String("job.name", j.Name),
		attribute.String("job.run_id", runID),
	))
	defer span.End()

	ctx, cancel := context.WithTimeoutCause(ctx, s.cfg.HardLimit, errs.ErrJobTimeout)
	defer cancel()
	soft := time.AfterFunc(s.cfg.SoftLimit, func() {
		logger.Warn("任务执行时间过长", elog.Duration("softLimit", s.cfg.SoftLimit))
	})
	defer soft.Stop()

	start := time.Now()
	logger.Info("开始执行任务")
	err = s.execute(ctx, j)
	result := resultSuccess
	switch {
	case err == nil:
	case errors.Is(err, loopjob.ErrLockHeld):
		result = resultSkipped
		err = nil
	case errors.Is(context.Cause(ctx), errs.ErrJobTimeout):
		result = resultTimeout
		err = fmt.Errorf("%w: %s after %s: %w", errs.ErrJobTimeout, j.Name, s.cfg.HardLimit, err)
	default:
		result = resultFailure
	}
	elapsed := time.Since(start)
	s.metrics.observe(j.Name, result, elapsed.Seconds())
	span.SetAttributes(attribute.String("job.result", result))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("任务执行失败", elog.String("result", result), elog.Duration("elapsed", elapsed), elog.FieldErr(err))
		return err
	}
	logger.Info("任务执行结束", elog.String("result", result), elog.Duration("elapsed", elapsed))
	return nil
}

// execute 带重试执行，每次尝试都重新抢分布式锁
func (s *Scheduler) execute(ctx context.Context, j *job) error {
	strategy, err := retry.NewRetry(j.Retry)
	if err != nil {
		return err
	}
	return retry.Do(ctx, strategy, retryable, func(ctx context.Context) error {
		if j.once == nil {
			return j.Run(ctx)
		}
		return j.once.Run(ctx, j.Run)
	})
}

// retryable 锁被别人持有、参数错误和取消不重试，锁服务不可用要重试
func retryable(err error) bool {
	if errors.Is(err, loopjob.ErrLockHeld) {
		return false
	}
	if errors.Is(err, loopjob.ErrLockUnavailable) {
		return true
	}
	return !errors.Is(err, errs.ErrInvalidParameter) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

func newRunID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return id.String()
}

// cronLogger 把 cron 的日志接到 elog
type cronLogger struct {
	logger *elog.Component
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info(msg, elog.Any("kv", keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, elog.Any("kv", keysAndValues), elog.FieldErr(err))
}
