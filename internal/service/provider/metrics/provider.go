// Package metrics 为供应商实现添加指标收集的装饰器
package metrics

import (
	"context"
	"errors"
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/service/provider"
	"github.com/prometheus/client_golang/prometheus"
)

var _ provider.Provider = (*Provider)(nil)

// Collectors 所有供应商共用一组指标，用 provider 标签区分
type Collectors struct {
	sendDuration *prometheus.HistogramVec
	sendTotal    *prometheus.CounterVec
}

func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		sendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "handover",
			Name:      "provider_send_duration_seconds",
			Help:      "供应商发送通知耗时（秒）",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider", "channel", "status"}),
		sendTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "handover",
			Name:      "provider_send_total",
			Help:      "供应商发送通知次数",
		}, []string{"provider", "channel", "status"}),
	}
	for _, col := range []prometheus.Collector{c.sendDuration, c.sendTotal} {
		if err := reg.Register(col); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				panic(err)
			}
		}
	}
	return c
}

// Provider 为供应商实现添加指标收集的装饰器
type Provider struct {
	provider provider.Provider
	c        *Collectors
	name     string
}

func NewProvider(name string, p provider.Provider, c *Collectors) *Provider {
	return &Provider{
		provider: p,
		c:        c,
		name:     name,
	}
}

func (p *Provider) Send(ctx context.Context, notification domain.Notification) (domain.SendResponse, error) {
	start := time.Now()
	response, err := p.provider.Send(ctx, notification)
	status := string(domain.SendStatusSent)
	if err != nil {
		status = string(domain.SendStatusFailed)
	}
	channel := notification.Channel.String()
	p.c.sendTotal.WithLabelValues(p.name, channel, status).Inc()
	p.c.sendDuration.WithLabelValues(p.name, channel, status).Observe(time.Since(start).Seconds())
	return response, err
}
