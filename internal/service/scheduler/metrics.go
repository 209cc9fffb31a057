package scheduler

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
	resultTimeout = "timeout"
	resultSkipped = "skipped"
)

type jobMetrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newJobMetrics(reg prometheus.Registerer) *jobMetrics {
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "handover_job_runs_total",
		Help: "定时任务执行次数",
	}, []string{"job", "result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "handover_job_duration_seconds",
		Help:    "定时任务执行耗时",
		Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900, 1800},
	}, []string{"job"})
	if reg == nil {
		return &jobMetrics{runs: runs, duration: duration}
	}
	return &jobMetrics{
		runs:     register(reg, runs),
		duration: register(reg, duration),
	}
}

// register 重复注册时复用已有的 collector
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

func (m *jobMetrics) observe(job, result string, seconds float64) {
	m.runs.WithLabelValues(job, result).Inc()
	if result != resultSkipped {
		m.duration.WithLabelValues(job).Observe(seconds)
	}
}
