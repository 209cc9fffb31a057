package maintenance

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/repository"
	"gitee.com/flycash/shift-handover/internal/repository/cache"
	"gitee.com/flycash/shift-handover/internal/service/config"
	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"
)

const (
	DefaultNotificationRetentionDays = 30
	DefaultAuditRetentionDays        = 90
	DefaultResolvedTaskRetentionDays = 365
	defaultBatchSize                 = 1000
)

// PrunedNamespaces prune_cache 清理的读视图
var PrunedNamespaces = []string{
	cache.NamespaceDashboard,
	cache.NamespaceNotifications,
	cache.NamespaceListing,
	cache.NamespaceReport,
}

type Config struct {
	NotificationRetentionDays int          `yaml:"notificationRetentionDays"`
	AuditRetentionDays        int          `yaml:"auditRetentionDays"`
	ResolvedTaskRetentionDays int          `yaml:"resolvedTaskRetentionDays"`
	BatchSize                 int          `yaml:"batchSize"`
	Backup                    BackupConfig `yaml:"backup"`
}

// Service 定期维护任务
//
//go:generate mockgen -source=./maintenance.go -destination=./mocks/maintenance.mock.go -package=maintenancemocks Service
type Service interface {
	// PurgeOldNotifications 删除发送时间早于保留期的外发记录
	PurgeOldNotifications(ctx context.Context, retentionDays int) (int64, error)
	PurgeOldAudit(ctx context.Context, retentionDays int) (int64, error)
	// PurgeResolvedTasks 删除已完成或已取消且长期未更新的待办，连同其未投递的通知
	PurgeResolvedTasks(ctx context.Context, retentionDays int) (int64, error)
	// RetentionPurge 按配置的保留期依次执行三种清理，错误汇总返回
	RetentionPurge(ctx context.Context) error
	PruneCache(ctx context.Context) int
	// ScheduledBackup 备份关闭时返回空路径
	ScheduledBackup(ctx context.Context) (string, error)
}

type service struct {
	notificationRepo repository.NotificationRepository
	auditRepo        repository.AuditRepository
	taskRepo         repository.PendingTaskRepository
	cache            *cache.Cache
	configSvc        config.Service
	backups          *backupStore
	cfg              Config
	now              func() time.Time
	logger           *elog.Component
}

func NewService(
	notificationRepo repository.NotificationRepository,
	auditRepo repository.AuditRepository,
	taskRepo repository.PendingTaskRepository,
	c *cache.Cache,
	configSvc config.Service,
	dumper Dumper,
	cfg Config,
) Service {
	return newService(notificationRepo, auditRepo, taskRepo, c, configSvc, dumper, cfg, time.Now)
}

func newService(
	notificationRepo repository.NotificationRepository,
	auditRepo repository.AuditRepository,
	taskRepo repository.PendingTaskRepository,
	c *cache.Cache,
	configSvc config.Service,
	dumper Dumper,
	cfg Config,
	now func() time.Time,
) *service {
	if cfg.NotificationRetentionDays <= 0 {
		cfg.NotificationRetentionDays = DefaultNotificationRetentionDays
	}
	if cfg.AuditRetentionDays <= 0 {
		cfg.AuditRetentionDays = DefaultAuditRetentionDays
	}
	if cfg.ResolvedTaskRetentionDays <= 0 {
		cfg.ResolvedTaskRetentionDays = DefaultResolvedTaskRetentionDays
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &service{
		notificationRepo: notificationRepo,
		auditRepo:        auditRepo,
		taskRepo:         taskRepo,
		cache:            c,
		configSvc:        configSvc,
		backups:          newBackupStore(cfg.Backup, dumper),
		cfg:              cfg,
		now:              now,
		logger:           elog.DefaultLogger.With(elog.String("component", "maintenance")),
	}
}

func (s *service) cutoff(retentionDays int) (time.Time, error) {
	if retentionDays <= 0 {
		return time.Time{}, fmt.Errorf("保留天数必须大于0: %d", retentionDays)
	}
	return s.now().AddDate(0, 0, -retentionDays), nil
}

func (s *service) PurgeOldNotifications(ctx context.Context, retentionDays int) (int64, error) {
	cutoff, err := s.cutoff(retentionDays)
	if err != nil {
		return 0, err
	}
	n, err := s.notificationRepo.DeleteSentBefore(ctx, cutoff, s.cfg.BatchSize)
	s.logger.Info("清理历史通知", elog.Int64("deleted", n), elog.String("cutoff", cutoff.Format(time.DateTime)), elog.FieldErr(err))
	return n, err
}

func (s *service) PurgeOldAudit(ctx context.Context, retentionDays int) (int64, error) {
	cutoff, err := s.cutoff(retentionDays)
	if err != nil {
		return 0, err
	}
	n, err := s.auditRepo.DeleteBefore(ctx, cutoff, s.cfg.BatchSize)
	s.logger.Info("清理历史审计", elog.Int64("deleted", n), elog.String("cutoff", cutoff.Format(time.DateTime)), elog.FieldErr(err))
	return n, err
}

func (s *service) PurgeResolvedTasks(ctx context.Context, retentionDays int) (int64, error) {
	cutoff, err := s.cutoff(retentionDays)
	if err != nil {
		return 0, err
	}
	var total int64
	for {
		// 每批一个事务，批次之间才响应取消
		n, err := s.taskRepo.DeleteResolvedBefore(ctx, cutoff, s.cfg.BatchSize)
		total += n
		if err != nil {
			return total, err
		}
		if n < int64(s.cfg.BatchSize) {
			break
		}
		if ctx.Err() != nil {
			return total, ctx.Err()
		}
	}
	if total > 0 {
		s.cache.ClearPatterns(ctx,
			cache.NamespacePattern(cache.NamespaceDashboard),
			cache.NamespacePattern(cache.NamespaceListing))
	}
	s.logger.Info("清理已结束待办", elog.Int64("deleted", total), elog.String("cutoff", cutoff.Format(time.DateTime)))
	return total, nil
}

func (s *service) RetentionPurge(ctx context.Context) error {
	var errs *multierror.Error
	if _, err := s.PurgeOldNotifications(ctx, s.cfg.NotificationRetentionDays); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("清理通知: %w", err))
	}
	if _, err := s.PurgeOldAudit(ctx, s.cfg.AuditRetentionDays); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("清理审计: %w", err))
	}
	if _, err := s.PurgeResolvedTasks(ctx, s.cfg.ResolvedTaskRetentionDays); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("清理待办: %w", err))
	}
	return errs.ErrorOrNil()
}

func (s *service) PruneCache(ctx context.Context) int {
	patterns := make([]string, 0, len(PrunedNamespaces))
	for _, ns := range PrunedNamespaces {
		patterns = append(patterns, cache.NamespacePattern(ns))
	}
	n := s.cache.ClearPatterns(ctx, patterns...)
	s.logger.Info("清理缓存", elog.Int("removed", n))
	return n
}

func (s *service) ScheduledBackup(ctx context.Context) (string, error) {
	if !s.configSvc.GetBool(ctx, domain.ConfigBackupEnabled, true) {
		s.logger.Info("自动备份已关闭")
		return "", nil
	}
	path, err := s.backups.create(ctx, s.now())
	if err != nil {
		s.logger.Error("自动备份失败", elog.FieldErr(err))
		return "", err
	}
	removed, err := s.backups.rotate()
	if err != nil {
		// 备份本身已经成功
		s.logger.Warn("轮转旧备份失败", elog.FieldErr(err))
	}
	s.logger.Info("自动备份完成", elog.String("file", path), elog.Int("removed", len(removed)))
	return path, nil
}
