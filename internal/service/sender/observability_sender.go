package sender

import (
	"context"

	"gitee.com/flycash/shift-handover/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ NotificationSender = (*ObservabilitySender)(nil)

// ObservabilitySender 为批量投递添加链路追踪的装饰器
type ObservabilitySender struct {
	sender NotificationSender
	tracer trace.Tracer
}

// NewObservabilitySender 创建一个新的带有链路追踪的发送器
func NewObservabilitySender(sender NotificationSender) *ObservabilitySender {
	return &ObservabilitySender{
		sender: sender,
		tracer: otel.Tracer("shift-handover/sender"),
	}
}

func (o *ObservabilitySender) Send(ctx context.Context, notifications []domain.Notification) (domain.DeliveryReport, error) {
	ctx, span := o.tracer.Start(ctx, "NotificationSender.Send",
		trace.WithAttributes(attribute.Int("notification.count", len(notifications))))
	defer span.End()

	report, err := o.sender.Send(ctx, notifications)
	span.SetAttributes(
		attribute.Int("notification.sent", report.Sent),
		attribute.Int("notification.retrying", report.Retrying),
		attribute.Int("notification.failed", report.Failed),
		attribute.Bool("notification.interrupted", report.Interrupted),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return report, err
}
