package repository

import (
	"context"
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	"gitee.com/flycash/shift-handover/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

// InAppNotificationRepository 站内通知仓储接口
//
//go:generate mockgen -source=./in_app_notification.go -destination=./mocks/in_app_notification.mock.go -package=repomocks InAppNotificationRepository
type InAppNotificationRepository interface {
	Create(ctx context.Context, n domain.InAppNotification) (domain.InAppNotification, error)
	GetByID(ctx context.Context, id uint64) (domain.InAppNotification, error)
	ListByUser(ctx context.Context, userID int64, limit int, unreadOnly bool) ([]domain.InAppNotification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	// MarkRead reports false when the row was already read.
	MarkRead(ctx context.Context, id uint64, userID int64, readAt time.Time) (bool, error)
}

type inAppNotificationRepository struct {
	dao dao.InAppNotificationDAO
}

func NewInAppNotificationRepository(d dao.InAppNotificationDAO) InAppNotificationRepository {
	return &inAppNotificationRepository{dao: d}
}

func (r *inAppNotificationRepository) Create(ctx context.Context, n domain.InAppNotification) (domain.InAppNotification, error) {
	entity, err := r.dao.Create(ctx, dao.InAppNotification{
		ID:      n.ID,
		UserID:  n.UserID,
		Type:    n.Type,
		Title:   n.Title,
		Message: n.Message,
		Link:    n.Link,
		Ctime:   toMillis(n.Ctime),
	})
	if err != nil {
		return domain.InAppNotification{}, storeError(err, errs.ErrInAppNotificationNotFound)
	}
	return r.toDomain(entity), nil
}

func (r *inAppNotificationRepository) GetByID(ctx context.Context, id uint64) (domain.InAppNotification, error) {
	entity, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.InAppNotification{}, storeError(err, errs.ErrInAppNotificationNotFound)
	}
	return r.toDomain(entity), nil
}

func (r *inAppNotificationRepository) ListByUser(ctx context.Context, userID int64, limit int, unreadOnly bool) ([]domain.InAppNotification, error) {
	entities, err := r.dao.ListByUser(ctx, userID, limit, unreadOnly)
	if err != nil {
		return nil, storeError(err, errs.ErrInAppNotificationNotFound)
	}
	return slice.Map(entities, func(_ int, src dao.InAppNotification) domain.InAppNotification {
		return r.toDomain(src)
	}), nil
}

func (r *inAppNotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	cnt, err := r.dao.CountUnread(ctx, userID)
	return cnt, storeError(err, errs.ErrInAppNotificationNotFound)
}

func (r *inAppNotificationRepository) MarkRead(ctx context.Context, id uint64, userID int64, readAt time.Time) (bool, error) {
	affected, err := r.dao.MarkRead(ctx, id, userID, readAt.UnixMilli())
	if err != nil {
		return false, storeError(err, errs.ErrInAppNotificationNotFound)
	}
	return affected > 0, nil
}

func (r *inAppNotificationRepository) toDomain(e dao.InAppNotification) domain.InAppNotification {
	return domain.InAppNotification{
		ID:      e.ID,
		UserID:  e.UserID,
		Type:    e.Type,
		Title:   e.Title,
		Message: e.Message,
		Link:    e.Link,
		Read:    e.IsRead,
		ReadAt:  fromMillis(e.ReadAt.Int64),
		Ctime:   fromMillis(e.Ctime),
	}
}
