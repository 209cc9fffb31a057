package console

import (
	"context"

	"gitee.com/flycash/shift-handover/internal/domain"
	"github.com/gotomicro/ego/core/elog"
)

// Provider 把通知写到日志里。push 和站内渠道没有外部网关时使用
type Provider struct {
	name   string
	logger *elog.Component
}

func NewProvider(name string) *Provider {
	return &Provider{
		name:   name,
		logger: elog.DefaultLogger.With(elog.String("provider", name)),
	}
}

func (p *Provider) Send(_ context.Context, notification domain.Notification) (domain.SendResponse, error) {
	p.logger.Info("发送通知",
		elog.Any("id", notification.ID),
		elog.String("channel", notification.Channel.String()),
		elog.String("destination", notification.Destination),
		elog.String("title", notification.Payload.Title))
	return domain.SendResponse{
		NotificationID: notification.ID,
		Status:         domain.SendStatusSent,
		Provider:       p.name,
	}, nil
}
