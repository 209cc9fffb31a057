package dao

import (
	"context"
	"database/sql"

	pkgdao "gitee.com/flycash/shift-handover/internal/pkg/dao"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

const (
	notificationStatusPending = "pending"
	notificationStatusSent    = "sent"
)

// Notification 投递记录表
type Notification struct {
	ID          uint64         `gorm:"primaryKey;comment:'sonyflake id'"`
	TaskID      uint64         `gorm:"index:idx_task;comment:'0 when not tied to a pending task'"`
	Channel     string         `gorm:"type:VARCHAR(16);NOT NULL"`
	Destination string         `gorm:"type:VARCHAR(255);NOT NULL"`
	Payload     pkgdao.JSON    `gorm:"type:JSON"`
	Status      string         `gorm:"type:VARCHAR(16);NOT NULL;DEFAULT:'pending';index:idx_status_attempts_ctime,priority:1"`
	Attempts    int            `gorm:"type:INT;NOT NULL;DEFAULT:0;index:idx_status_attempts_ctime,priority:2"`
	SentAt      sql.NullInt64  `gorm:"index:idx_sent_at;comment:'unix ms'"`
	Ctime       int64          `gorm:"index:idx_status_attempts_ctime,priority:3"`
	Utime       int64
	Provider    sql.NullString `gorm:"type:VARCHAR(64);comment:'provider that delivered it'"`
}

func (Notification) TableName() string {
	return "notifications"
}

// DeliveryUpdate moves one row from FromAttempts to the new state.
type DeliveryUpdate struct {
	ID           uint64
	FromAttempts int
	Status       string
	Attempts     int
	SentAt       int64
	Provider     string
	Utime        int64
}

type NotificationDAO interface {
	Create(ctx context.Context, data Notification) (Notification, error)
	BatchCreate(ctx context.Context, data []Notification) ([]Notification, error)
	GetByID(ctx context.Context, id uint64) (Notification, error)
	// FindDeliverable returns pending rows under the attempt cap, oldest first.
	FindDeliverable(ctx context.Context, limit, maxAttempts int) ([]Notification, error)
	// BatchUpdateDelivery applies the updates in one transaction. A row whose
	// attempts changed since it was read is left alone.
	BatchUpdateDelivery(ctx context.Context, updates []DeliveryUpdate) (int64, error)
	DeleteSentBefore(ctx context.Context, cutoff int64, batchSize int) (int64, error)
}

type notificationDAO struct {
	db *egorm.Component
}

// NewNotificationDAO 创建投递记录DAO实例
func NewNotificationDAO(db *egorm.Component) NotificationDAO {
	return &notificationDAO{db: db}
}

func (d *notificationDAO) Create(ctx context.Context, data Notification) (Notification, error) {
	data.Ctime, data.Utime = stamp(data.Ctime, data.Utime)
	if data.Status == "" {
		data.Status = notificationStatusPending
	}
	err := d.db.WithContext(ctx).Create(&data).Error
	return data, err
}

func (d *notificationDAO) BatchCreate(ctx context.Context, data []Notification) ([]Notification, error) {
	if len(data) == 0 {
		return []Notification{}, nil
	}
	const batchSize = 100
	for i := range data {
		data[i].Ctime, data[i].Utime = stamp(data[i].Ctime, data[i].Utime)
		if data[i].Status == "" {
			data[i].Status = notificationStatusPending
		}
	}
	err := d.db.WithContext(ctx).CreateInBatches(data, batchSize).Error
	return data, err
}

func (d *notificationDAO) GetByID(ctx context.Context, id uint64) (Notification, error) {
	var n Notification
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&n).Error
	return n, err
}

func (d *notificationDAO) FindDeliverable(ctx context.Context, limit, maxAttempts int) ([]Notification, error) {
	var res []Notification
	err := d.db.WithContext(ctx).
		Where("status = ? AND attempts < ?", notificationStatusPending, maxAttempts).
		Order("ctime ASC, id ASC").
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *notificationDAO) BatchUpdateDelivery(ctx context.Context, updates []DeliveryUpdate) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	var affected int64
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			values := map[string]any{
				"status":   u.Status,
				"attempts": u.Attempts,
				"utime":    u.Utime,
			}
			if u.Status == notificationStatusSent {
				values["sent_at"] = u.SentAt
				values["provider"] = sql.NullString{String: u.Provider, Valid: u.Provider != ""}
			}
			res := tx.Model(&Notification{}).
				Where("id = ? AND status = ? AND attempts = ?", u.ID, notificationStatusPending, u.FromAttempts).
				Updates(values)
			if res.Error != nil {
				return res.Error
			}
			affected += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (d *notificationDAO) DeleteSentBefore(ctx context.Context, cutoff int64, batchSize int) (int64, error) {
	var total int64
	for {
		res := d.db.WithContext(ctx).
			Where("sent_at IS NOT NULL AND sent_at < ?", cutoff).
			Limit(batchSize).
			Delete(&Notification{})
		if res.Error != nil {
			return total, res.Error
		}
		total += res.RowsAffected
		if res.RowsAffected < int64(batchSize) {
			return total, nil
		}
		if ctx.Err() != nil {
			return total, ctx.Err()
		}
	}
}
