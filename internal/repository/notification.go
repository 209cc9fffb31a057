package repository

import (
	"context"
	"database/sql"
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	pkgdao "gitee.com/flycash/shift-handover/internal/pkg/dao"
	"gitee.com/flycash/shift-handover/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
)

// DeliveryResult pairs the outcome of one attempt with the attempt count
// the row had when it was selected.
type DeliveryResult struct {
	Notification domain.Notification
	FromAttempts int
	Provider     string
}

// NotificationRepository 投递记录仓储接口
//
//go:generate mockgen -source=./notification.go -destination=./mocks/notification.mock.go -package=repomocks NotificationRepository
type NotificationRepository interface {
	Create(ctx context.Context, n domain.Notification) (domain.Notification, error)
	BatchCreate(ctx context.Context, ns []domain.Notification) ([]domain.Notification, error)
	GetByID(ctx context.Context, id uint64) (domain.Notification, error)
	// FindDeliverable returns up to limit pending rows under the attempt cap in creation order.
	FindDeliverable(ctx context.Context, limit int) ([]domain.Notification, error)
	// SaveDeliveryResults commits one batch of outcomes in a single transaction.
	SaveDeliveryResults(ctx context.Context, results []DeliveryResult) (int64, error)
	DeleteSentBefore(ctx context.Context, cutoff time.Time, batchSize int) (int64, error)
}

type notificationRepository struct {
	dao    dao.NotificationDAO
	logger *elog.Component
}

// NewNotificationRepository 创建投递记录仓储实例
func NewNotificationRepository(d dao.NotificationDAO) NotificationRepository {
	return &notificationRepository{
		dao:    d,
		logger: elog.DefaultLogger,
	}
}

func (r *notificationRepository) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	entity, err := r.toEntity(n)
	if err != nil {
		return domain.Notification{}, err
	}
	entity, err = r.dao.Create(ctx, entity)
	if err != nil {
		return domain.Notification{}, storeError(err, errs.ErrNotFound)
	}
	return r.toDomain(entity), nil
}

func (r *notificationRepository) BatchCreate(ctx context.Context, ns []domain.Notification) ([]domain.Notification, error) {
	entities := make([]dao.Notification, 0, len(ns))
	for _, n := range ns {
		e, err := r.toEntity(n)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	created, err := r.dao.BatchCreate(ctx, entities)
	if err != nil {
		return nil, storeError(err, errs.ErrNotFound)
	}
	return slice.Map(created, func(_ int, src dao.Notification) domain.Notification {
		return r.toDomain(src)
	}), nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id uint64) (domain.Notification, error) {
	entity, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Notification{}, storeError(err, errs.ErrNotFound)
	}
	return r.toDomain(entity), nil
}

func (r *notificationRepository) FindDeliverable(ctx context.Context, limit int) ([]domain.Notification, error) {
	entities, err := r.dao.FindDeliverable(ctx, limit, domain.MaxDeliveryAttempts)
	if err != nil {
		return nil, storeError(err, errs.ErrNotFound)
	}
	return slice.Map(entities, func(_ int, src dao.Notification) domain.Notification {
		return r.toDomain(src)
	}), nil
}

func (r *notificationRepository) SaveDeliveryResults(ctx context.Context, results []DeliveryResult) (int64, error) {
	updates := slice.Map(results, func(_ int, src DeliveryResult) dao.DeliveryUpdate {
		return dao.DeliveryUpdate{
			ID:           src.Notification.ID,
			FromAttempts: src.FromAttempts,
			Status:       string(src.Notification.Status),
			Attempts:     src.Notification.Attempts,
			SentAt:       toMillis(src.Notification.SentAt),
			Provider:     src.Provider,
			Utime:        toMillis(src.Notification.Utime),
		}
	})
	n, err := r.dao.BatchUpdateDelivery(ctx, updates)
	if err != nil {
		return 0, storeError(err, errs.ErrNotFound)
	}
	if n < int64(len(updates)) {
		r.logger.Warn("部分投递结果未写入，记录已被其他任务推进",
			elog.Int("expected", len(updates)),
			elog.Int64("affected", n))
	}
	return n, nil
}

func (r *notificationRepository) DeleteSentBefore(ctx context.Context, cutoff time.Time, batchSize int) (int64, error) {
	n, err := r.dao.DeleteSentBefore(ctx, cutoff.UnixMilli(), batchSize)
	return n, storeError(err, errs.ErrNotFound)
}

func (r *notificationRepository) toEntity(n domain.Notification) (dao.Notification, error) {
	payload, err := pkgdao.NewJSON(n.Payload)
	if err != nil {
		return dao.Notification{}, err
	}
	return dao.Notification{
		ID:          n.ID,
		TaskID:      n.TaskID,
		Channel:     string(n.Channel),
		Destination: n.Destination,
		Payload:     payload,
		Status:      string(n.Status),
		Attempts:    n.Attempts,
		SentAt: sql.NullInt64{
			Int64: toMillis(n.SentAt),
			Valid: !n.SentAt.IsZero(),
		},
		Ctime: toMillis(n.Ctime),
		Utime: toMillis(n.Utime),
	}, nil
}

func (r *notificationRepository) toDomain(e dao.Notification) domain.Notification {
	var payload domain.Payload
	if err := e.Payload.Unmarshal(&payload); err != nil {
		r.logger.Error("投递记录载荷无法解析", elog.Any("id", e.ID), elog.FieldErr(err))
	}
	return domain.Notification{
		ID:          e.ID,
		TaskID:      e.TaskID,
		Channel:     domain.Channel(e.Channel),
		Destination: e.Destination,
		Payload:     payload,
		Status:      domain.SendStatus(e.Status),
		Attempts:    e.Attempts,
		SentAt:      fromMillis(e.SentAt.Int64),
		Ctime:       fromMillis(e.Ctime),
		Utime:       fromMillis(e.Utime),
	}
}
