package channel

import (
	"context"
	"errors"
	"fmt"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	"gitee.com/flycash/shift-handover/internal/pkg/ratelimit"
	"gitee.com/flycash/shift-handover/internal/service/provider"
	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"
)

// baseChannel 依次尝试选择器给出的供应商，直到有一个成功
type baseChannel struct {
	name    domain.Channel
	builder provider.SelectorBuilder
	limiter ratelimit.Limiter
	logger  *elog.Component
}

// NewChannel limiter 可以为 nil，表示不限流
func NewChannel(name domain.Channel, builder provider.SelectorBuilder, limiter ratelimit.Limiter) Channel {
	return &baseChannel{
		name:    name,
		builder: builder,
		limiter: limiter,
		logger:  elog.DefaultLogger.With(elog.String("channel", name.String())),
	}
}

func (s *baseChannel) Send(ctx context.Context, notification domain.Notification) (domain.SendResponse, error) {
	if s.limiter != nil {
		limited, err := s.limiter.Limit(ctx, s.name.String())
		if err != nil {
			// 限流器不可用时放行
			s.logger.Warn("限流器异常，放行本次发送", elog.FieldErr(err))
		} else if limited {
			return domain.SendResponse{}, fmt.Errorf("%w: %w: %s", errs.ErrSendNotificationFailed, errs.ErrRateLimited, s.name)
		}
	}

	selector, err := s.builder.Build()
	if err != nil {
		return domain.SendResponse{}, fmt.Errorf("%w: %w", errs.ErrSendNotificationFailed, err)
	}

	var sendErrs *multierror.Error
	for {
		// 获取供应商
		p, err1 := selector.Next(ctx, notification)
		if err1 != nil {
			if errors.Is(err1, errs.ErrNoAvailableProvider) && sendErrs != nil {
				return domain.SendResponse{}, fmt.Errorf("%w: %w", errs.ErrSendNotificationFailed, sendErrs.ErrorOrNil())
			}
			return domain.SendResponse{}, fmt.Errorf("%w: %w", errs.ErrSendNotificationFailed, err1)
		}

		resp, err2 := p.Send(ctx, notification)
		if err2 == nil {
			return resp, nil
		}
		sendErrs = multierror.Append(sendErrs, err2)
		if ctx.Err() != nil {
			// 超时了就不再切换供应商
			return domain.SendResponse{}, fmt.Errorf("%w: %w", errs.ErrSendNotificationFailed, sendErrs.ErrorOrNil())
		}
		s.logger.Warn("供应商发送失败，切换下一个", elog.Any("notificationID", notification.ID), elog.FieldErr(err2))
	}
}
