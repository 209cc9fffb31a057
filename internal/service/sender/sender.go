package sender

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	"gitee.com/flycash/shift-handover/internal/repository"
	"gitee.com/flycash/shift-handover/internal/service/channel"
	"github.com/gotomicro/ego/core/elog"
)

const (
	defaultSendTimeout   = 10 * time.Second
	defaultCommitTimeout = 30 * time.Second
)

// NotificationSender 通知发送接口
//
//go:generate mockgen -source=./sender.go -destination=./mocks/sender.mock.go -package=sendermocks NotificationSender
type NotificationSender interface {
	// Send 按给定顺序逐条投递，然后在一个事务里提交整批结果。
	// ctx 只在两条记录之间检查，取消后剩余记录留给下一轮
	Send(ctx context.Context, notifications []domain.Notification) (domain.DeliveryReport, error)
}

type Config struct {
	SendTimeout time.Duration `yaml:"sendTimeout"`
}

// sender 通知发送器实现
type sender struct {
	repo              repository.NotificationRepository
	channelDispatcher channel.Channel
	sendTimeout       time.Duration
	now               func() time.Time
	logger            *elog.Component
}

// NewSender 创建通知发送器
func NewSender(
	repo repository.NotificationRepository,
	channelDispatcher channel.Channel,
	cfg Config,
) NotificationSender {
	return newSender(repo, channelDispatcher, cfg, time.Now)
}

func newSender(repo repository.NotificationRepository, ch channel.Channel, cfg Config, now func() time.Time) *sender {
	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &sender{
		repo:              repo,
		channelDispatcher: ch,
		sendTimeout:       timeout,
		now:               now,
		logger:            elog.DefaultLogger.With(elog.String("component", "sender")),
	}
}

func (d *sender) Send(ctx context.Context, notifications []domain.Notification) (domain.DeliveryReport, error) {
	report := domain.DeliveryReport{Selected: len(notifications)}
	results := make([]repository.DeliveryResult, 0, len(notifications))
	for i := range notifications {
		if ctx.Err() != nil {
			report.Interrupted = true
			d.logger.Warn("投递被取消，剩余记录留到下一轮",
				elog.Int("processed", i),
				elog.Int("selected", len(notifications)))
			break
		}
		n := notifications[i]
		if !n.Deliverable() {
			continue
		}
		from := n.Attempts
		resp, err := d.sendOne(ctx, n)
		now := d.now()
		if err != nil {
			n.MarkAttemptFailed(now)
			d.logger.Warn("投递失败",
				elog.Any("notificationID", n.ID),
				elog.String("channel", n.Channel.String()),
				elog.Int("attempts", n.Attempts),
				elog.FieldErr(err))
			if n.Status == domain.SendStatusFailed {
				report.Failed++
			} else {
				report.Retrying++
			}
		} else {
			n.MarkSent(now)
			report.Sent++
		}
		results = append(results, repository.DeliveryResult{
			Notification: n,
			FromAttempts: from,
			Provider:     resp.Provider,
		})
	}

	if len(results) == 0 {
		return report, nil
	}
	// 已经发出去的结果必须落库，不受外层取消影响
	commitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultCommitTimeout)
	defer cancel()
	if _, err := d.repo.SaveDeliveryResults(commitCtx, results); err != nil {
		d.logger.Error("批量更新投递状态失败", elog.Int("count", len(results)), elog.FieldErr(err))
		return report, fmt.Errorf("批量更新投递状态失败: %w", err)
	}
	return report, nil
}

// sendOne 单条发送。发送过程中不响应外层取消，只受自己的超时约束；panic 记为失败
func (d *sender) sendOne(ctx context.Context, n domain.Notification) (resp domain.SendResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", errs.ErrSendNotificationFailed, r)
		}
	}()
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.sendTimeout)
	defer cancel()
	return d.channelDispatcher.Send(sendCtx, n)
}
