//go:build wireinject

package ioc

import (
	"gitee.com/flycash/shift-handover/internal/ioc"
	"gitee.com/flycash/shift-handover/internal/repository"
	"gitee.com/flycash/shift-handover/internal/repository/dao"
	auditsvc "gitee.com/flycash/shift-handover/internal/service/audit"
	configsvc "gitee.com/flycash/shift-handover/internal/service/config"
	"gitee.com/flycash/shift-handover/internal/service/maintenance"
	notificationsvc "gitee.com/flycash/shift-handover/internal/service/notification"
	"gitee.com/flycash/shift-handover/internal/service/sla"
	tasksvc "gitee.com/flycash/shift-handover/internal/service/task"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

var (
	BaseSet = wire.NewSet(
		ioc.InitDB,
		ioc.InitDistributedLock,
		ioc.InitIDGenerator,
		ioc.InitRedisClient,
		ioc.InitPrometheusRegisterer,
		ioc.InitCache,
		ioc.InitAlertMarker,

		wire.Bind(new(redis.Cmdable), new(*redis.Client)),
	)
	auditSvcSet = wire.NewSet(
		auditsvc.NewRecorder,
		repository.NewAuditRepository,
		dao.NewAuditDAO,
		// HMAC 密钥
		ioc.InitAuditConfig,
	)
	configSvcSet = wire.NewSet(
		configsvc.NewService,
		repository.NewConfigRepository,
		dao.NewConfigDAO,
	)
	senderSvcSet = wire.NewSet(
		ioc.InitSMSClients,
		ioc.InitEmailProvider,
		ioc.InitChannel,
		ioc.InitSenderConfig,
		ioc.InitSender,
	)
	notificationSvcSet = wire.NewSet(
		notificationsvc.NewService,
		repository.NewNotificationRepository,
		dao.NewNotificationDAO,
		repository.NewInAppNotificationRepository,
		dao.NewInAppNotificationDAO,
	)
	taskSvcSet = wire.NewSet(
		tasksvc.NewService,
		repository.NewPendingTaskRepository,
		dao.NewPendingTaskDAO,
		repository.NewUserRepository,
		dao.NewUserDAO,
	)
	slaSvcSet = wire.NewSet(
		sla.NewEvaluator,
		ioc.InitEvaluatorConfig,
	)
	maintenanceSvcSet = wire.NewSet(
		maintenance.NewService,
		ioc.InitMaintenanceConfig,
		ioc.InitDumper,
	)
	schedulerSet = wire.NewSet(
		ioc.InitScheduler,
		ioc.InitDispatchBatchLimit,
	)
)

func InitApp() *ioc.App {
	wire.Build(
		// 基础设施
		BaseSet,

		// 配置与审计
		auditSvcSet,
		configSvcSet,

		// 通知
		senderSvcSet,
		notificationSvcSet,

		// 待办
		taskSvcSet,

		// 定时任务
		slaSvcSet,
		maintenanceSvcSet,
		schedulerSet,

		wire.Struct(new(ioc.App), "*"),
	)
	return new(ioc.App)
}
