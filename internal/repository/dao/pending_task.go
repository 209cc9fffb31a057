package dao

import (
	"context"
	"database/sql"
	"fmt"

	"gitee.com/flycash/shift-handover/internal/errs"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

// PendingTask 待办事项表
type PendingTask struct {
	ID             uint64         `gorm:"primaryKey;comment:'sonyflake id'"`
	HandoverID     int64          `gorm:"type:BIGINT;NOT NULL;index:idx_handover;comment:'parent handover record'"`
	Description    string         `gorm:"type:TEXT;NOT NULL"`
	ResponsibleID  int64          `gorm:"type:BIGINT;NOT NULL;index:idx_responsible_status,priority:1"`
	Deadline       int64          `gorm:"type:BIGINT;NOT NULL;index:idx_status_deadline,priority:2;comment:'unix ms'"`
	Status         string         `gorm:"type:VARCHAR(16);NOT NULL;index:idx_status_deadline,priority:1;index:idx_responsible_status,priority:2"`
	Priority       string         `gorm:"type:VARCHAR(16);NOT NULL"`
	BlockingReason sql.NullString `gorm:"type:TEXT"`
	SLAMinutes     sql.NullInt64  `gorm:"column:sla_minutes"`
	Version        int            `gorm:"type:INT;NOT NULL;DEFAULT:1;comment:'CAS version'"`
	Ctime          int64
	Utime          int64
}

func (PendingTask) TableName() string {
	return "pending_tasks"
}

type PendingTaskDAO interface {
	// CreateWithAudit inserts the task and its audit row in one transaction.
	CreateWithAudit(ctx context.Context, task PendingTask, audit AuditEntry) (PendingTask, error)
	// UpdateWithAudit writes the mutable fields when the stored version still
	// matches task.Version, and the audit row, in one transaction.
	UpdateWithAudit(ctx context.Context, task PendingTask, audit AuditEntry) error
	GetByID(ctx context.Context, id uint64) (PendingTask, error)
	// FindDueBetween returns tasks with from < deadline <= to.
	FindDueBetween(ctx context.Context, from, to int64, statuses []string) ([]PendingTask, error)
	// FindOverdue returns tasks with deadline <= now.
	FindOverdue(ctx context.Context, now int64, statuses []string, limit int) ([]PendingTask, error)
	ListByResponsible(ctx context.Context, responsibleID int64, limit int) ([]PendingTask, error)
	// CountByStatus counts all tasks when responsibleID is 0.
	CountByStatus(ctx context.Context, responsibleID int64) (map[string]int64, error)
	// DeleteResolvedBefore removes resolved tasks last touched before cutoff
	// together with their undelivered notifications.
	DeleteResolvedBefore(ctx context.Context, cutoff int64, statuses []string, batchSize int) (int64, error)
}

type pendingTaskDAO struct {
	db *egorm.Component
}

func NewPendingTaskDAO(db *egorm.Component) PendingTaskDAO {
	return &pendingTaskDAO{db: db}
}

func (d *pendingTaskDAO) CreateWithAudit(ctx context.Context, task PendingTask, audit AuditEntry) (PendingTask, error) {
	task.Ctime, task.Utime = stamp(task.Ctime, task.Utime)
	task.Version = 1
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		if err := tx.Create(&audit).Error; err != nil {
			return fmt.Errorf("%w: %w", errs.ErrIntegrityFailure, err)
		}
		return nil
	})
	return task, err
}

func (d *pendingTaskDAO) UpdateWithAudit(ctx context.Context, task PendingTask, audit AuditEntry) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&PendingTask{}).
			Where("id = ? AND version = ?", task.ID, task.Version).
			Updates(map[string]any{
				"description":     task.Description,
				"status":          task.Status,
				"priority":        task.Priority,
				"blocking_reason": task.BlockingReason,
				"version":         gorm.Expr("version + 1"),
				"utime":           task.Utime,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected < 1 {
			return fmt.Errorf("%w: id %d", errs.ErrTaskVersionMismatch, task.ID)
		}
		if err := tx.Create(&audit).Error; err != nil {
			return fmt.Errorf("%w: %w", errs.ErrIntegrityFailure, err)
		}
		return nil
	})
}

func (d *pendingTaskDAO) GetByID(ctx context.Context, id uint64) (PendingTask, error) {
	var task PendingTask
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	return task, err
}

func (d *pendingTaskDAO) FindDueBetween(ctx context.Context, from, to int64, statuses []string) ([]PendingTask, error) {
	var tasks []PendingTask
	err := d.db.WithContext(ctx).
		Where("status IN ? AND deadline > ? AND deadline <= ?", statuses, from, to).
		Order("deadline ASC").
		Find(&tasks).Error
	return tasks, err
}

func (d *pendingTaskDAO) FindOverdue(ctx context.Context, now int64, statuses []string, limit int) ([]PendingTask, error) {
	var tasks []PendingTask
	err := d.db.WithContext(ctx).
		Where("status IN ? AND deadline <= ?", statuses, now).
		Order("deadline ASC").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

func (d *pendingTaskDAO) ListByResponsible(ctx context.Context, responsibleID int64, limit int) ([]PendingTask, error) {
	var tasks []PendingTask
	err := d.db.WithContext(ctx).
		Where("responsible_id = ?", responsibleID).
		Order("deadline ASC").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

func (d *pendingTaskDAO) CountByStatus(ctx context.Context, responsibleID int64) (map[string]int64, error) {
	type row struct {
		Status string
		Cnt    int64
	}
	var rows []row
	query := d.db.WithContext(ctx).Model(&PendingTask{}).Select("status, COUNT(*) AS cnt")
	if responsibleID > 0 {
		query = query.Where("responsible_id = ?", responsibleID)
	}
	if err := query.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	res := make(map[string]int64, len(rows))
	for _, r := range rows {
		res[r.Status] = r.Cnt
	}
	return res, nil
}

func (d *pendingTaskDAO) DeleteResolvedBefore(ctx context.Context, cutoff int64, statuses []string, batchSize int) (int64, error) {
	var deleted int64
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint64
		err := tx.Model(&PendingTask{}).
			Where("status IN ? AND utime < ?", statuses, cutoff).
			Limit(batchSize).
			Pluck("id", &ids).Error
		if err != nil || len(ids) == 0 {
			return err
		}
		err = tx.Where("task_id IN ? AND status = ?", ids, notificationStatusPending).
			Delete(&Notification{}).Error
		if err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&PendingTask{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}
