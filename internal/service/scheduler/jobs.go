package scheduler

import (
	"context"
	"time"

	"gitee.com/flycash/shift-handover/internal/pkg/retry"
	"gitee.com/flycash/shift-handover/internal/service/maintenance"
	"gitee.com/flycash/shift-handover/internal/service/notification"
	"gitee.com/flycash/shift-handover/internal/service/sla"
)

const (
	JobSLAEvaluator           = "sla_evaluator"
	JobNotificationDispatcher = "notification_dispatcher"
	JobCachePrune             = "cache_prune"
	JobBackup                 = "backup"
	JobRetentionPurge         = "retention_purge"
)

// DefaultJobs 系统的全部周期任务
func DefaultJobs(
	evaluator sla.Evaluator,
	notifier notification.Service,
	maint maintenance.Service,
	batchLimit int,
) []Job {
	return []Job{
		{
			Name:  JobSLAEvaluator,
			Spec:  "@every 15m",
			Retry: retry.Fixed(time.Minute, 3),
			Run: func(ctx context.Context) error {
				_, err := evaluator.Evaluate(ctx)
				return err
			},
		},
		{
			Name:  JobNotificationDispatcher,
			Spec:  "@every 5m",
			Retry: retry.Fixed(time.Minute, 3),
			Run: func(ctx context.Context) error {
				_, err := notifier.DeliverPending(ctx, batchLimit)
				return err
			},
		},
		{
			Name:  JobCachePrune,
			Spec:  "0 */6 * * *",
			Retry: retry.Fixed(5*time.Minute, 2),
			Run: func(ctx context.Context) error {
				maint.PruneCache(ctx)
				return nil
			},
		},
		{
			Name:  JobBackup,
			Spec:  "0 2 * * *",
			Retry: retry.Fixed(time.Hour, 2),
			Run: func(ctx context.Context) error {
				_, err := maint.ScheduledBackup(ctx)
				return err
			},
		},
		{
			Name:  JobRetentionPurge,
			Spec:  "0 3 * * 1",
			Retry: retry.Fixed(time.Hour, 2),
			Run:   maint.RetentionPurge,
		},
	}
}
