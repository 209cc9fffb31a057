package ioc

import (
	"gitee.com/flycash/shift-handover/internal/service/maintenance"
	"gitee.com/flycash/shift-handover/internal/service/notification"
	"gitee.com/flycash/shift-handover/internal/service/scheduler"
	"gitee.com/flycash/shift-handover/internal/service/sla"
	"github.com/gotomicro/ego/core/econf"
	"github.com/meoying/dlock-go"
	"github.com/prometheus/client_golang/prometheus"
)

func InitScheduler(
	dclient dlock.Client,
	reg prometheus.Registerer,
	evaluator sla.Evaluator,
	notifier notification.Service,
	maint maintenance.Service,
	batchLimit int,
) *scheduler.Scheduler {
	var cfg scheduler.Config
	err := econf.UnmarshalKey("scheduler", &cfg)
	if err != nil {
		panic(err)
	}
	s, err := scheduler.NewScheduler(dclient, reg, cfg,
		scheduler.DefaultJobs(evaluator, notifier, maint, batchLimit)...)
	if err != nil {
		panic(err)
	}
	return s
}
