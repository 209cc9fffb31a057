package repository

import (
	"context"
	"database/sql"
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	"gitee.com/flycash/shift-handover/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

// PendingTaskRepository 待办仓储接口
//
//go:generate mockgen -source=./pending_task.go -destination=./mocks/pending_task.mock.go -package=repomocks PendingTaskRepository
type PendingTaskRepository interface {
	// Create stores the task and its audit entry atomically.
	Create(ctx context.Context, task domain.PendingTask, audit domain.AuditEntry) (domain.PendingTask, error)
	// Update stores the task if task.Version is still current, with its audit entry.
	Update(ctx context.Context, task domain.PendingTask, audit domain.AuditEntry) error
	GetByID(ctx context.Context, id uint64) (domain.PendingTask, error)
	// FindDueBetween returns active tasks with from < deadline <= to.
	FindDueBetween(ctx context.Context, from, to time.Time) ([]domain.PendingTask, error)
	FindOverdue(ctx context.Context, now time.Time, limit int) ([]domain.PendingTask, error)
	ListByResponsible(ctx context.Context, responsibleID int64, limit int) ([]domain.PendingTask, error)
	CountByStatus(ctx context.Context, responsibleID int64) (map[domain.TaskStatus]int64, error)
	DeleteResolvedBefore(ctx context.Context, cutoff time.Time, batchSize int) (int64, error)
}

type pendingTaskRepository struct {
	dao dao.PendingTaskDAO
}

func NewPendingTaskRepository(d dao.PendingTaskDAO) PendingTaskRepository {
	return &pendingTaskRepository{dao: d}
}

func (r *pendingTaskRepository) Create(ctx context.Context, task domain.PendingTask, audit domain.AuditEntry) (domain.PendingTask, error) {
	entity, err := r.dao.CreateWithAudit(ctx, r.toEntity(task), toAuditEntity(audit))
	if err != nil {
		return domain.PendingTask{}, storeError(err, errs.ErrTaskNotFound)
	}
	return r.toDomain(entity), nil
}

func (r *pendingTaskRepository) Update(ctx context.Context, task domain.PendingTask, audit domain.AuditEntry) error {
	return storeError(r.dao.UpdateWithAudit(ctx, r.toEntity(task), toAuditEntity(audit)), errs.ErrTaskNotFound)
}

func (r *pendingTaskRepository) GetByID(ctx context.Context, id uint64) (domain.PendingTask, error) {
	entity, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.PendingTask{}, storeError(err, errs.ErrTaskNotFound)
	}
	return r.toDomain(entity), nil
}

func (r *pendingTaskRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]domain.PendingTask, error) {
	entities, err := r.dao.FindDueBetween(ctx, from.UnixMilli(), to.UnixMilli(), activeStatuses())
	if err != nil {
		return nil, storeError(err, errs.ErrTaskNotFound)
	}
	return slice.Map(entities, func(_ int, src dao.PendingTask) domain.PendingTask {
		return r.toDomain(src)
	}), nil
}

func (r *pendingTaskRepository) FindOverdue(ctx context.Context, now time.Time, limit int) ([]domain.PendingTask, error) {
	entities, err := r.dao.FindOverdue(ctx, now.UnixMilli(), activeStatuses(), limit)
	if err != nil {
		return nil, storeError(err, errs.ErrTaskNotFound)
	}
	return slice.Map(entities, func(_ int, src dao.PendingTask) domain.PendingTask {
		return r.toDomain(src)
	}), nil
}

func (r *pendingTaskRepository) ListByResponsible(ctx context.Context, responsibleID int64, limit int) ([]domain.PendingTask, error) {
	entities, err := r.dao.ListByResponsible(ctx, responsibleID, limit)
	if err != nil {
		return nil, storeError(err, errs.ErrTaskNotFound)
	}
	return slice.Map(entities, func(_ int, src dao.PendingTask) domain.PendingTask {
		return r.toDomain(src)
	}), nil
}

func (r *pendingTaskRepository) CountByStatus(ctx context.Context, responsibleID int64) (map[domain.TaskStatus]int64, error) {
	counts, err := r.dao.CountByStatus(ctx, responsibleID)
	if err != nil {
		return nil, storeError(err, errs.ErrTaskNotFound)
	}
	res := make(map[domain.TaskStatus]int64, len(counts))
	for status, cnt := range counts {
		res[domain.TaskStatus(status)] = cnt
	}
	return res, nil
}

func (r *pendingTaskRepository) DeleteResolvedBefore(ctx context.Context, cutoff time.Time, batchSize int) (int64, error) {
	resolved := []string{string(domain.TaskStatusDone), string(domain.TaskStatusCancelled)}
	n, err := r.dao.DeleteResolvedBefore(ctx, cutoff.UnixMilli(), resolved, batchSize)
	return n, storeError(err, errs.ErrTaskNotFound)
}

func activeStatuses() []string {
	return slice.Map(domain.ActiveTaskStatuses, func(_ int, src domain.TaskStatus) string {
		return string(src)
	})
}

func (r *pendingTaskRepository) toEntity(t domain.PendingTask) dao.PendingTask {
	return dao.PendingTask{
		ID:            t.ID,
		HandoverID:    t.HandoverID,
		Description:   t.Description,
		ResponsibleID: t.ResponsibleID,
		Deadline:      t.Deadline.UnixMilli(),
		Status:        string(t.Status),
		Priority:      string(t.Priority),
		BlockingReason: sql.NullString{
			String: t.BlockingReason,
			Valid:  t.BlockingReason != "",
		},
		SLAMinutes: sql.NullInt64{
			Int64: int64(t.SLAMinutes),
			Valid: t.SLAMinutes > 0,
		},
		Version: t.Version,
		Ctime:   toMillis(t.Ctime),
		Utime:   toMillis(t.Utime),
	}
}

func (r *pendingTaskRepository) toDomain(e dao.PendingTask) domain.PendingTask {
	return domain.PendingTask{
		ID:             e.ID,
		HandoverID:     e.HandoverID,
		Description:    e.Description,
		ResponsibleID:  e.ResponsibleID,
		Deadline:       time.UnixMilli(e.Deadline),
		Status:         domain.TaskStatus(e.Status),
		Priority:       domain.Priority(e.Priority),
		BlockingReason: e.BlockingReason.String,
		SLAMinutes:     int(e.SLAMinutes.Int64),
		Version:        e.Version,
		Ctime:          fromMillis(e.Ctime),
		Utime:          fromMillis(e.Utime),
	}
}
