package ioc

import (
	"gitee.com/flycash/shift-handover/internal/service/config"
	"gitee.com/flycash/shift-handover/internal/service/maintenance"
	"gitee.com/flycash/shift-handover/internal/service/notification"
	"gitee.com/flycash/shift-handover/internal/service/scheduler"
	"gitee.com/flycash/shift-handover/internal/service/task"
	"github.com/ego-component/egorm"
	"github.com/redis/go-redis/v9"
)

// App 进程里的全部组件，由 wire 组装
type App struct {
	DB           *egorm.Component
	Redis        *redis.Client
	Scheduler    *scheduler.Scheduler
	Config       config.Service
	Tasks        task.Service
	Notification notification.Service
	Maintenance  maintenance.Service
}
