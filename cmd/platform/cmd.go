package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitee.com/flycash/shift-handover/cmd/platform/ioc"
	baseioc "gitee.com/flycash/shift-handover/internal/ioc"
	"gitee.com/flycash/shift-handover/internal/repository/dao"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

const defaultMetricsAddr = ":9090"

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "platform",
		Short:         "交接班待办的 SLA 监控与通知",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadConfig(configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.yaml", "配置文件路径")

	jobs := &cobra.Command{Use: "jobs", Short: "定时任务"}
	jobs.AddCommand(newJobsRunCmd(), newJobsListCmd())
	cfg := &cobra.Command{Use: "config", Short: "业务配置"}
	cfg.AddCommand(newConfigSeedCmd())
	root.AddCommand(newServeCmd(), jobs, cfg, newMigrateCmd())
	return root
}

func loadConfig(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("打开配置文件失败: %w", err)
	}
	defer f.Close()
	return econf.LoadFromReader(f, yaml.Unmarshal)
}

func newServeCmd() *cobra.Command {
	var shutdownTimeout time.Duration
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动调度器和指标端点",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app := ioc.InitApp()
			addr := econf.GetString("metrics.addr")
			if addr == "" {
				addr = defaultMetricsAddr
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
			serveErr := make(chan error, 1)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
			}()

			app.Scheduler.Start()
			elog.DefaultLogger.Info("服务已启动", elog.String("metrics", addr))

			var err error
			select {
			case <-ctx.Done():
				elog.DefaultLogger.Info("收到退出信号，开始关闭")
			case err = <-serveErr:
				elog.DefaultLogger.Error("指标端点异常退出", elog.FieldErr(err))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if er := app.Scheduler.Stop(shutdownCtx); er != nil {
				err = errors.Join(err, er)
			}
			if er := server.Shutdown(shutdownCtx); er != nil {
				err = errors.Join(err, er)
			}
			if er := app.Redis.Close(); er != nil {
				elog.DefaultLogger.Warn("关闭 Redis 连接失败", elog.FieldErr(er))
			}
			return err
		},
	}
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", time.Minute, "等待执行中任务结束的最长时间")
	return cmd
}

func newJobsRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <name>",
		Short: "立即执行一次指定任务",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ioc.InitApp()
			return app.Scheduler.RunOnce(cmd.Context(), args[0])
		},
	}
}

func newJobsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出已注册的任务",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := ioc.InitApp()
			for _, name := range app.Scheduler.Names() {
				cmd.Println(name)
			}
			return nil
		},
	}
}

func newConfigSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "写入缺失的默认业务配置",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := ioc.InitApp()
			n, err := app.Config.SeedDefaults(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("写入 %d 项默认配置\n", n)
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "建表",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return dao.InitTables(baseioc.InitDB())
		},
	}
}
