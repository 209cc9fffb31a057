package dao

import (
	"time"

	"github.com/ego-component/egorm"
)

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(
		&PendingTask{},
		&Notification{},
		&InAppNotification{},
		&AuditEntry{},
		&Config{},
		&User{},
	)
}

// stamp 调用方没有带时间戳时用当前时间
func stamp(ctime, utime int64) (int64, int64) {
	now := time.Now().UnixMilli()
	if ctime <= 0 {
		ctime = now
	}
	if utime <= 0 {
		utime = now
	}
	return ctime, utime
}
