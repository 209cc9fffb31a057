package tracing

import (
	"context"
	"strconv"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/service/provider"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ provider.Provider = (*Provider)(nil)

// Provider 为供应商实现添加链路追踪的装饰器
type Provider struct {
	name     string
	provider provider.Provider
	tracer   trace.Tracer
}

func NewProvider(name string, p provider.Provider) *Provider {
	return &Provider{
		name:     name,
		provider: p,
		tracer:   otel.Tracer("shift-handover/provider"),
	}
}

func (p *Provider) Send(ctx context.Context, notification domain.Notification) (domain.SendResponse, error) {
	ctx, span := p.tracer.Start(ctx, "Provider.Send",
		trace.WithAttributes(
			attribute.String("provider", p.name),
			attribute.String("notification.id", strconv.FormatUint(notification.ID, 10)),
			attribute.String("notification.task_id", strconv.FormatUint(notification.TaskID, 10)),
			attribute.String("notification.channel", notification.Channel.String()),
			attribute.Int("notification.attempts", notification.Attempts),
		))
	defer span.End()

	response, err := p.provider.Send(ctx, notification)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.String("notification.status", string(response.Status)))
	}
	return response, err
}
