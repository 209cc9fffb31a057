package metrics

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Hook 实现了 redis.Hook，记录命令数、耗时和建连结果
type Hook struct {
	commands    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	pipelines   *prometheus.CounterVec
	connections *prometheus.CounterVec
}

// NewMetricsHook registers the collectors on reg. Registering twice reuses the existing collectors.
func NewMetricsHook(reg prometheus.Registerer, namespace string) *Hook {
	h := &Hook{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "commands_total",
			Help:      "Redis commands executed, by command and result",
		}, []string{"command", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "command_duration_seconds",
			Help:      "Redis command latency",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"command"}),
		pipelines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "pipelines_total",
			Help:      "Redis pipelines executed, by result",
		}, []string{"status"}),
		connections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "connections_total",
			Help:      "Redis connections dialed, by result",
		}, []string{"status"}),
	}
	h.commands = register(reg, h.commands)
	h.duration = register(reg, h.duration)
	h.pipelines = register(reg, h.pipelines)
	h.connections = register(reg, h.connections)
	return h
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (h *Hook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		h.duration.WithLabelValues(cmd.Name()).Observe(time.Since(start).Seconds())
		h.commands.WithLabelValues(cmd.Name(), status(err)).Inc()
		return err
	}
}

func (h *Hook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if len(cmds) == 0 {
			return err
		}
		st := status(err)
		for _, cmd := range cmds {
			if s := status(cmd.Err()); s == statusError {
				st = statusError
			}
		}
		h.pipelines.WithLabelValues(st).Inc()
		return err
	}
}

func (h *Hook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		h.connections.WithLabelValues(status(err)).Inc()
		return conn, err
	}
}

// redis.Nil 是缓存未命中，不算错误
func status(err error) string {
	if err != nil && !errors.Is(err, redis.Nil) {
		return statusError
	}
	return statusSuccess
}

// WithMetrics 为 Redis 客户端挂上指标钩子
func WithMetrics(client *redis.Client, namespace string) *redis.Client {
	client.AddHook(NewMetricsHook(prometheus.DefaultRegisterer, namespace))
	return client
}
