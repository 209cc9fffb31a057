package ioc

import (
	"net"
	"strconv"

	"gitee.com/flycash/shift-handover/internal/repository"
	"gitee.com/flycash/shift-handover/internal/service/audit"
	"gitee.com/flycash/shift-handover/internal/service/channel"
	"gitee.com/flycash/shift-handover/internal/service/maintenance"
	"gitee.com/flycash/shift-handover/internal/service/sender"
	"gitee.com/flycash/shift-handover/internal/service/sla"
	"github.com/go-sql-driver/mysql"
	"github.com/gotomicro/ego/core/econf"
)

func InitAuditConfig() audit.Config {
	var cfg audit.Config
	err := econf.UnmarshalKey("audit", &cfg)
	if err != nil {
		panic(err)
	}
	return cfg
}

func InitSenderConfig() sender.Config {
	var cfg sender.Config
	err := econf.UnmarshalKey("dispatcher", &cfg)
	if err != nil {
		panic(err)
	}
	return cfg
}

// InitSender 带指标和追踪的发送器
func InitSender(repo repository.NotificationRepository, ch channel.Channel, cfg sender.Config) sender.NotificationSender {
	return sender.NewObservabilitySender(sender.NewSender(repo, ch, cfg))
}

func InitEvaluatorConfig() sla.Config {
	var cfg sla.Config
	err := econf.UnmarshalKey("evaluator", &cfg)
	if err != nil {
		panic(err)
	}
	return cfg
}

// InitMaintenanceConfig 备份的连接信息没有单独配置时从 mysql.dsn 里解析
func InitMaintenanceConfig() maintenance.Config {
	var cfg maintenance.Config
	err := econf.UnmarshalKey("maintenance", &cfg)
	if err != nil {
		panic(err)
	}
	err = econf.UnmarshalKey("backup", &cfg.Backup)
	if err != nil {
		panic(err)
	}
	if cfg.Backup.Database != "" {
		return cfg
	}
	dsn, err := mysql.ParseDSN(econf.GetString("mysql.dsn"))
	if err != nil {
		panic(err)
	}
	cfg.Backup.Database = dsn.DBName
	cfg.Backup.User = dsn.User
	cfg.Backup.Password = dsn.Passwd
	if host, port, err := net.SplitHostPort(dsn.Addr); err == nil {
		cfg.Backup.Host = host
		cfg.Backup.Port, _ = strconv.Atoi(port)
	}
	return cfg
}

func InitDumper(cfg maintenance.Config) maintenance.Dumper {
	return maintenance.NewMySQLDumper(cfg.Backup)
}

func InitDispatchBatchLimit() int {
	n := econf.GetInt("dispatcher.batchSize")
	if n <= 0 {
		return 50
	}
	return n
}
