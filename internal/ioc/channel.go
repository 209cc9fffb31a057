package ioc

import (
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/pkg/ratelimit"
	"gitee.com/flycash/shift-handover/internal/service/channel"
	"gitee.com/flycash/shift-handover/internal/service/provider"
	"gitee.com/flycash/shift-handover/internal/service/provider/console"
	"gitee.com/flycash/shift-handover/internal/service/provider/email"
	"gitee.com/flycash/shift-handover/internal/service/provider/metrics"
	"gitee.com/flycash/shift-handover/internal/service/provider/sequential"
	"gitee.com/flycash/shift-handover/internal/service/provider/sms"
	"gitee.com/flycash/shift-handover/internal/service/provider/tracing"
	"github.com/gotomicro/ego/core/econf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

type rateLimitConfig struct {
	// Distributed 为 true 时多实例共享 Redis 滑动窗口
	Distributed bool          `yaml:"distributed"`
	Interval    time.Duration `yaml:"interval"`
	// Rates 每个渠道在 Interval 内最多发送几条，没有配置的渠道不限流
	Rates map[string]int `yaml:"rates"`
}

func InitEmailProvider() *email.Provider {
	var cfg email.Config
	err := econf.UnmarshalKey("email", &cfg)
	if err != nil {
		panic(err)
	}
	return email.NewProvider(cfg)
}

// InitChannel 组装所有渠道。每个供应商都带上链路追踪和指标
func InitChannel(
	rdb redis.Cmdable,
	reg prometheus.Registerer,
	smsClients []SMSClient,
	emailProvider *email.Provider,
) channel.Channel {
	var cfg rateLimitConfig
	err := econf.UnmarshalKey("dispatcher.rateLimit", &cfg)
	if err != nil {
		panic(err)
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	collectors := metrics.NewCollectors(reg)
	decorate := func(name string, p provider.Provider) provider.Provider {
		return metrics.NewProvider(name, tracing.NewProvider(name, p), collectors)
	}
	limiter := func(ch domain.Channel) ratelimit.Limiter {
		rate, ok := cfg.Rates[ch.String()]
		if !ok || rate <= 0 {
			return nil
		}
		if cfg.Distributed {
			return ratelimit.NewRedisSlidingWindowLimiter(rdb, cfg.Interval, rate)
		}
		return ratelimit.NewLocalLimiter(cfg.Interval, rate)
	}

	smsProviders := make([]provider.Provider, 0, len(smsClients))
	for _, c := range smsClients {
		smsProviders = append(smsProviders, decorate(c.Name, sms.NewSMSProvider(c.Name, c.Config, c.Client)))
	}
	single := func(name string, p provider.Provider) *sequential.SelectorBuilder {
		return sequential.NewSelectorBuilder([]provider.Provider{decorate(name, p)})
	}

	return channel.NewDispatcher(map[domain.Channel]channel.Channel{
		domain.ChannelSMS: channel.NewChannel(domain.ChannelSMS,
			sequential.NewSelectorBuilder(smsProviders), limiter(domain.ChannelSMS)),
		domain.ChannelEmail: channel.NewChannel(domain.ChannelEmail,
			single("smtp", emailProvider), limiter(domain.ChannelEmail)),
		domain.ChannelPush: channel.NewChannel(domain.ChannelPush,
			single("push-log", console.NewProvider("push-log")), limiter(domain.ChannelPush)),
		domain.ChannelInApp: channel.NewChannel(domain.ChannelInApp,
			single("in-app-log", console.NewProvider("in-app-log")), limiter(domain.ChannelInApp)),
	})
}

func InitPrometheusRegisterer() prometheus.Registerer {
	return prometheus.DefaultRegisterer
}
