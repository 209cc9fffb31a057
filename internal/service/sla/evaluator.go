package sla

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/pkg/idempotent"
	"gitee.com/flycash/shift-handover/internal/repository"
	"gitee.com/flycash/shift-handover/internal/service/config"
	"gitee.com/flycash/shift-handover/internal/service/notification"
	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

const (
	defaultLeadMinutes = 30
	defaultConcurrency = 8
	overdueScanLimit   = 200
	// 逾期提醒的去重标记保留时间，超过后会再提醒一次
	overdueMarkerTTL = 7 * 24 * time.Hour
	excerptLen       = 50
)

// Report 一次评估的结果
type Report struct {
	Skipped  bool
	DueSoon  int
	Overdue  int
	Notified int
	// Suppressed 因去重标记被跳过的待办数
	Suppressed int
}

// Evaluator 扫描临近或超过截止时间的待办并发出提醒
//
//go:generate mockgen -source=./evaluator.go -destination=./mocks/evaluator.mock.go -package=slamocks Evaluator
type Evaluator interface {
	Evaluate(ctx context.Context) (Report, error)
}

type Config struct {
	// Concurrency 同时处理的待办数
	Concurrency int `yaml:"concurrency"`
}

type evaluator struct {
	repo        repository.PendingTaskRepository
	userRepo    repository.UserRepository
	configSvc   config.Service
	notifier    notification.Service
	marker      idempotent.IdempotencyService
	concurrency int
	now         func() time.Time
	logger      *elog.Component
}

func NewEvaluator(
	repo repository.PendingTaskRepository,
	userRepo repository.UserRepository,
	configSvc config.Service,
	notifier notification.Service,
	marker idempotent.IdempotencyService,
	cfg Config,
) Evaluator {
	return newEvaluator(repo, userRepo, configSvc, notifier, marker, cfg, time.Now)
}

func newEvaluator(
	repo repository.PendingTaskRepository,
	userRepo repository.UserRepository,
	configSvc config.Service,
	notifier notification.Service,
	marker idempotent.IdempotencyService,
	cfg Config,
	now func() time.Time,
) *evaluator {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &evaluator{
		repo:        repo,
		userRepo:    userRepo,
		configSvc:   configSvc,
		notifier:    notifier,
		marker:      marker,
		concurrency: concurrency,
		now:         now,
		logger:      elog.DefaultLogger.With(elog.String("component", "sla_evaluator")),
	}
}

// alertKind 区分临近和逾期两类提醒
type alertKind int

const (
	alertDueSoon alertKind = iota
	alertOverdue
)

// Evaluate 不修改待办本身。已经发出的提醒不会回滚，失败汇总后返回给调度器重试
func (e *evaluator) Evaluate(ctx context.Context) (Report, error) {
	if !e.configSvc.GetBool(ctx, domain.ConfigAlertEnabled, true) {
		e.logger.Info("SLA提醒已关闭，跳过本轮评估")
		return Report{Skipped: true}, nil
	}
	now := e.now()
	lead := e.configSvc.GetInt(ctx, domain.ConfigAlertLeadMinutes, defaultLeadMinutes)
	if lead <= 0 {
		lead = defaultLeadMinutes
	}
	alertOnce := e.configSvc.GetBool(ctx, domain.ConfigAlertOnce, false)
	alertOverdueOn := e.configSvc.GetBool(ctx, domain.ConfigAlertOverdue, false)

	dueSoon, err := e.repo.FindDueBetween(ctx, now, now.Add(time.Duration(lead)*time.Minute))
	if err != nil {
		return Report{}, fmt.Errorf("查询临近截止的待办失败: %w", err)
	}
	var overdue []domain.PendingTask
	if alertOverdueOn {
		overdue, err = e.repo.FindOverdue(ctx, now, overdueScanLimit)
		if err != nil {
			return Report{}, fmt.Errorf("查询逾期待办失败: %w", err)
		}
	}
	report := Report{DueSoon: len(dueSoon), Overdue: len(overdue)}
	if len(dueSoon) == 0 && len(overdue) == 0 {
		return report, nil
	}

	managers, err := e.managersFor(ctx, dueSoon, overdue)
	if err != nil {
		return report, err
	}

	var (
		mu   sync.Mutex
		errs *multierror.Error
	)
	record := func(notified int, suppressed bool, err error) {
		mu.Lock()
		defer mu.Unlock()
		report.Notified += notified
		if suppressed {
			report.Suppressed++
		}
		if err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	var eg errgroup.Group
	eg.SetLimit(e.concurrency)
	submit := func(task domain.PendingTask, kind alertKind, dedup bool) {
		eg.Go(func() error {
			// 只在两条待办之间响应取消
			if ctx.Err() != nil {
				record(0, false, ctx.Err())
				return nil
			}
			n, suppressed, err := e.alert(ctx, now, task, kind, dedup, managers)
			record(n, suppressed, err)
			return nil
		})
	}
	for _, task := range dueSoon {
		submit(task, alertDueSoon, alertOnce)
	}
	for _, task := range overdue {
		submit(task, alertOverdue, true)
	}
	_ = eg.Wait()

	e.logger.Info("SLA评估完成",
		elog.Int("dueSoon", report.DueSoon),
		elog.Int("overdue", report.Overdue),
		elog.Int("notified", report.Notified),
		elog.Int("suppressed", report.Suppressed))
	return report, errs.ErrorOrNil()
}

// managersFor 只有存在紧急待办时才查询主管
func (e *evaluator) managersFor(ctx context.Context, groups ...[]domain.PendingTask) ([]domain.User, error) {
	for _, tasks := range groups {
		for _, t := range tasks {
			if t.Priority != domain.PriorityCritical {
				continue
			}
			managers, err := e.userRepo.FindActiveByRole(ctx, domain.RoleManager)
			if err != nil {
				return nil, fmt.Errorf("查询主管失败: %w", err)
			}
			return managers, nil
		}
	}
	return nil, nil
}

// alert 给一条待办发提醒，返回发出的站内通知数以及是否被去重跳过
func (e *evaluator) alert(ctx context.Context, now time.Time, task domain.PendingTask, kind alertKind,
	dedup bool, managers []domain.User,
) (int, bool, error) {
	if dedup {
		first, err := e.marker.MarkOnce(ctx, markerKey(task, kind), markerTTL(task, kind, now))
		if err != nil {
			// 标记不可用时宁可重复提醒
			e.logger.Warn("写入提醒标记失败", elog.Any("taskID", task.ID), elog.FieldErr(err))
		} else if !first {
			return 0, true, nil
		}
	}

	var errs *multierror.Error
	notified := 0
	responsible, err := e.userRepo.GetByID(ctx, task.ResponsibleID)
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("查询负责人 %d 失败: %w", task.ResponsibleID, err))
	} else if _, err = e.notifier.NotifyUser(ctx, responsible, responsibleMessage(task, kind, now)); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("通知负责人失败 task=%d: %w", task.ID, err))
	} else {
		notified++
	}

	if task.Priority == domain.PriorityCritical {
		msg := managerMessage(task, kind, now)
		for _, m := range managers {
			if _, err = e.notifier.NotifyUser(ctx, m, msg); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("通知主管 %d 失败 task=%d: %w", m.ID, task.ID, err))
				continue
			}
			notified++
		}
	}
	return notified, false, errs.ErrorOrNil()
}

// markerKey 截止时间变了就是一次新的跨越
func markerKey(task domain.PendingTask, kind alertKind) string {
	prefix := "sla:due"
	if kind == alertOverdue {
		prefix = "sla:overdue"
	}
	return fmt.Sprintf("%s:%d:%d", prefix, task.ID, task.Deadline.UnixMilli())
}

func markerTTL(task domain.PendingTask, kind alertKind, now time.Time) time.Duration {
	if kind == alertOverdue {
		return overdueMarkerTTL
	}
	// 过了截止时间就不会再被选中，多留一分钟即可
	return task.Deadline.Sub(now) + time.Minute
}

func responsibleMessage(task domain.PendingTask, kind alertKind, now time.Time) notification.Message {
	if kind == alertOverdue {
		return notification.Message{
			TaskID:  task.ID,
			Type:    domain.InAppTypeSLAOverdue,
			Title:   "SLA Vencido",
			Message: fmt.Sprintf("Pendência \"%s...\" está atrasada há %d minutos", excerpt(task.Description), minutesBetween(task.Deadline, now)),
			Link:    taskLink(task.ID),
		}
	}
	return notification.Message{
		TaskID:  task.ID,
		Type:    domain.InAppTypeSLADueSoon,
		Title:   "SLA Vencendo",
		Message: fmt.Sprintf("Pendência \"%s...\" vence em %d minutos", excerpt(task.Description), minutesBetween(now, task.Deadline)),
		Link:    taskLink(task.ID),
	}
}

func managerMessage(task domain.PendingTask, kind alertKind, now time.Time) notification.Message {
	if kind == alertOverdue {
		return notification.Message{
			TaskID:  task.ID,
			Type:    domain.InAppTypeSLAOverdue,
			Title:   "SLA Crítico Vencido",
			Message: fmt.Sprintf("Pendência crítica atrasada há %d minutos", minutesBetween(task.Deadline, now)),
			Link:    taskLink(task.ID),
		}
	}
	return notification.Message{
		TaskID:  task.ID,
		Type:    domain.InAppTypeSLACriticalDueSoon,
		Title:   "SLA Crítico Vencendo",
		Message: fmt.Sprintf("Pendência crítica vence em %d minutos", minutesBetween(now, task.Deadline)),
		Link:    taskLink(task.ID),
	}
}

func minutesBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Minutes()))
}

func excerpt(desc string) string {
	r := []rune(desc)
	if len(r) > excerptLen {
		r = r[:excerptLen]
	}
	return string(r)
}

func taskLink(taskID uint64) string {
	return "/pendencias/" + strconv.FormatUint(taskID, 10)
}
