package dao

import (
	"context"
	"database/sql"

	"github.com/ego-component/egorm"
)

// InAppNotification 站内通知表
type InAppNotification struct {
	ID      uint64        `gorm:"primaryKey;comment:'sonyflake id'"`
	UserID  int64         `gorm:"type:BIGINT;NOT NULL;index:idx_user_read_ctime,priority:1"`
	Type    string        `gorm:"type:VARCHAR(64);NOT NULL"`
	Title   string        `gorm:"type:VARCHAR(255);NOT NULL"`
	Message string        `gorm:"type:TEXT;NOT NULL"`
	Link    string        `gorm:"type:VARCHAR(512)"`
	IsRead  bool          `gorm:"NOT NULL;DEFAULT:false;index:idx_user_read_ctime,priority:2"`
	ReadAt  sql.NullInt64 `gorm:"comment:'unix ms'"`
	Ctime   int64         `gorm:"index:idx_user_read_ctime,priority:3"`
}

func (InAppNotification) TableName() string {
	return "in_app_notifications"
}

type InAppNotificationDAO interface {
	Create(ctx context.Context, data InAppNotification) (InAppNotification, error)
	GetByID(ctx context.Context, id uint64) (InAppNotification, error)
	// ListByUser returns the newest notifications first.
	ListByUser(ctx context.Context, userID int64, limit int, unreadOnly bool) ([]InAppNotification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	// MarkRead only touches an unread row owned by userID. It returns the affected row count.
	MarkRead(ctx context.Context, id uint64, userID int64, readAt int64) (int64, error)
}

type inAppNotificationDAO struct {
	db *egorm.Component
}

func NewInAppNotificationDAO(db *egorm.Component) InAppNotificationDAO {
	return &inAppNotificationDAO{db: db}
}

func (d *inAppNotificationDAO) Create(ctx context.Context, data InAppNotification) (InAppNotification, error) {
	data.Ctime, _ = stamp(data.Ctime, 0)
	data.IsRead = false
	data.ReadAt = sql.NullInt64{}
	err := d.db.WithContext(ctx).Create(&data).Error
	return data, err
}

func (d *inAppNotificationDAO) GetByID(ctx context.Context, id uint64) (InAppNotification, error) {
	var n InAppNotification
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&n).Error
	return n, err
}

func (d *inAppNotificationDAO) ListByUser(ctx context.Context, userID int64, limit int, unreadOnly bool) ([]InAppNotification, error) {
	var res []InAppNotification
	query := d.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	err := query.Order("ctime DESC, id DESC").Limit(limit).Find(&res).Error
	return res, err
}

func (d *inAppNotificationDAO) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var cnt int64
	err := d.db.WithContext(ctx).Model(&InAppNotification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&cnt).Error
	return cnt, err
}

func (d *inAppNotificationDAO) MarkRead(ctx context.Context, id uint64, userID int64, readAt int64) (int64, error) {
	res := d.db.WithContext(ctx).Model(&InAppNotification{}).
		Where("id = ? AND user_id = ? AND is_read = ?", id, userID, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": readAt,
		})
	return res.RowsAffected, res.Error
}
