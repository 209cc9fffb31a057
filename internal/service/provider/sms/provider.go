package sms

import (
	"context"
	"fmt"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	"gitee.com/flycash/shift-handover/internal/service/provider"
	"gitee.com/flycash/shift-handover/internal/service/provider/sms/client"
)

// Config 短信签名和模板。Templates 以通知类型为 key，找不到时用 DefaultTemplateID
type Config struct {
	SignName          string            `yaml:"signName"`
	DefaultTemplateID string            `yaml:"defaultTemplateId"`
	Templates         map[string]string `yaml:"templates"`
}

func (c Config) templateID(typ string) string {
	if id, ok := c.Templates[typ]; ok {
		return id
	}
	return c.DefaultTemplateID
}

// smsProvider SMS供应商
type smsProvider struct {
	name   string
	cfg    Config
	client client.Client
}

// NewSMSProvider SMS供应商
func NewSMSProvider(name string, cfg Config, c client.Client) provider.Provider {
	return &smsProvider{
		name:   name,
		cfg:    cfg,
		client: c,
	}
}

// Send 发送短信
func (p *smsProvider) Send(ctx context.Context, notification domain.Notification) (domain.SendResponse, error) {
	if err := ctx.Err(); err != nil {
		return domain.SendResponse{}, fmt.Errorf("%w: %w", errs.ErrSendNotificationFailed, err)
	}
	params := notification.Payload.Params
	if len(params) == 0 {
		params = map[string]string{"message": notification.Payload.Message}
	}

	req := client.SendReq{
		PhoneNumbers:  []string{notification.Destination},
		SignName:      p.cfg.SignName,
		TemplateID:    p.cfg.templateID(notification.Payload.Type),
		TemplateParam: params,
	}
	// SDK 不接收 ctx，只能靠客户端自身的超时收尾，这里不再等待
	type result struct {
		resp client.SendResp
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := p.client.Send(req)
		done <- result{resp: resp, err: err}
	}()
	var resp client.SendResp
	select {
	case <-ctx.Done():
		return domain.SendResponse{}, fmt.Errorf("%w: %s: %w", errs.ErrSendNotificationFailed, p.name, ctx.Err())
	case r := <-done:
		if r.err != nil {
			return domain.SendResponse{}, fmt.Errorf("%w: %w", errs.ErrSendNotificationFailed, r.err)
		}
		resp = r.resp
	}
	if len(resp.PhoneNumbers) == 0 {
		return domain.SendResponse{}, fmt.Errorf("%w: %s 没有返回发送状态", errs.ErrSendNotificationFailed, p.name)
	}

	for _, status := range resp.PhoneNumbers {
		if status.Code != client.OK {
			return domain.SendResponse{}, fmt.Errorf("%w: Code = %s, Message = %s", errs.ErrSendNotificationFailed, status.Code, status.Message)
		}
	}

	return domain.SendResponse{
		NotificationID: notification.ID,
		Status:         domain.SendStatusSent,
		Provider:       p.name,
	}, nil
}
