package dao

import (
	"context"

	pkgdao "gitee.com/flycash/shift-handover/internal/pkg/dao"
	"github.com/ego-component/egorm"
)

// AuditEntry 审计日志表，只追加
type AuditEntry struct {
	ID         uint64      `gorm:"primaryKey;comment:'sonyflake id'"`
	ObjectKind string      `gorm:"type:VARCHAR(64);NOT NULL;index:idx_object,priority:1"`
	ObjectID   string      `gorm:"type:VARCHAR(64);NOT NULL;index:idx_object,priority:2"`
	Action     string      `gorm:"type:VARCHAR(16);NOT NULL"`
	Before     pkgdao.JSON `gorm:"type:JSON"`
	After      pkgdao.JSON `gorm:"type:JSON"`
	ActorID    int64       `gorm:"type:BIGINT;NOT NULL"`
	Timestamp  int64       `gorm:"NOT NULL;index:idx_object,priority:3;index:idx_timestamp;comment:'unix ms'"`
	Hash       string      `gorm:"type:CHAR(64);NOT NULL"`
}

func (AuditEntry) TableName() string {
	return "audit_entries"
}

// AuditDAO has no update method. Rows leave the table only through the retention purge.
type AuditDAO interface {
	Insert(ctx context.Context, entry AuditEntry) error
	ListByObject(ctx context.Context, kind, id string) ([]AuditEntry, error)
	DeleteBefore(ctx context.Context, cutoff int64, batchSize int) (int64, error)
}

type auditDAO struct {
	db *egorm.Component
}

func NewAuditDAO(db *egorm.Component) AuditDAO {
	return &auditDAO{db: db}
}

func (d *auditDAO) Insert(ctx context.Context, entry AuditEntry) error {
	return d.db.WithContext(ctx).Create(&entry).Error
}

func (d *auditDAO) ListByObject(ctx context.Context, kind, id string) ([]AuditEntry, error) {
	var res []AuditEntry
	err := d.db.WithContext(ctx).
		Where("object_kind = ? AND object_id = ?", kind, id).
		Order("timestamp ASC, id ASC").
		Find(&res).Error
	return res, err
}

func (d *auditDAO) DeleteBefore(ctx context.Context, cutoff int64, batchSize int) (int64, error) {
	var total int64
	for {
		res := d.db.WithContext(ctx).
			Where("timestamp < ?", cutoff).
			Limit(batchSize).
			Delete(&AuditEntry{})
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
