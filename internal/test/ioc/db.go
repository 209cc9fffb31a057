package ioc

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/shift-handover/internal/repository/dao"
	"github.com/ecodeclub/ekit/retry"
	"github.com/ego-component/egorm"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// e2e 测试库
const testDSN = "root:root@tcp(localhost:13316)/handover?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=True&loc=Local&timeout=1s&readTimeout=3s&writeTimeout=3s&multiStatements=true"

// waitForPing 容器刚启动时 MySQL 还不能连，按指数退避重试
func waitForPing(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	strategy, err := retry.NewExponentialBackoffRetryStrategy(time.Second, 10*time.Second, 10)
	if err != nil {
		return err
	}
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = sqlDB.PingContext(ctx)
		cancel()
		if err == nil {
			return nil
		}
		next, ok := strategy.Next()
		if !ok {
			return fmt.Errorf("测试数据库一直不可用: %w", err)
		}
		time.Sleep(next)
	}
}

func InitDB() *egorm.Component {
	db, err := gorm.Open(mysql.Open(testDSN), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Warn),
		DisableAutomaticPing: true,
	})
	if err != nil {
		panic(fmt.Errorf("数据库连接失败: %w", err))
	}
	if err = waitForPing(db); err != nil {
		panic(err)
	}
	return db
}

// InitDBAndTables 连接测试库并建表
func InitDBAndTables() *egorm.Component {
	db := InitDB()
	if err := dao.InitTables(db); err != nil {
		panic(err)
	}
	return db
}
