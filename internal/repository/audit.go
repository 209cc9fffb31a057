package repository

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	pkgdao "gitee.com/flycash/shift-handover/internal/pkg/dao"
	"gitee.com/flycash/shift-handover/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

// AuditRepository offers no way to change a stored entry.
//
//go:generate mockgen -source=./audit.go -destination=./mocks/audit.mock.go -package=repomocks AuditRepository
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
	ListByObject(ctx context.Context, kind, id string) ([]domain.AuditEntry, error)
	DeleteBefore(ctx context.Context, cutoff time.Time, batchSize int) (int64, error)
}

type auditRepository struct {
	dao dao.AuditDAO
}

func NewAuditRepository(d dao.AuditDAO) AuditRepository {
	return &auditRepository{dao: d}
}

func (r *auditRepository) Insert(ctx context.Context, entry domain.AuditEntry) error {
	if err := r.dao.Insert(ctx, toAuditEntity(entry)); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIntegrityFailure, err)
	}
	return nil
}

func (r *auditRepository) ListByObject(ctx context.Context, kind, id string) ([]domain.AuditEntry, error) {
	entities, err := r.dao.ListByObject(ctx, kind, id)
	if err != nil {
		return nil, storeError(err, errs.ErrNotFound)
	}
	return slice.Map(entities, func(_ int, src dao.AuditEntry) domain.AuditEntry {
		return toAuditDomain(src)
	}), nil
}

func (r *auditRepository) DeleteBefore(ctx context.Context, cutoff time.Time, batchSize int) (int64, error) {
	n, err := r.dao.DeleteBefore(ctx, cutoff.UnixMilli(), batchSize)
	return n, storeError(err, errs.ErrNotFound)
}

func toAuditEntity(e domain.AuditEntry) dao.AuditEntry {
	return dao.AuditEntry{
		ID:         e.ID,
		ObjectKind: e.ObjectKind,
		ObjectID:   e.ObjectID,
		Action:     string(e.Action),
		Before:     pkgdao.JSON(e.Before),
		After:      pkgdao.JSON(e.After),
		ActorID:    e.ActorID,
		Timestamp:  e.Timestamp.UnixMilli(),
		Hash:       e.Hash,
	}
}

func toAuditDomain(e dao.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		ID:         e.ID,
		ObjectKind: e.ObjectKind,
		ObjectID:   e.ObjectID,
		Action:     domain.AuditAction(e.Action),
		Before:     e.Before.Raw(),
		After:      e.After.Raw(),
		ActorID:    e.ActorID,
		Timestamp:  time.UnixMilli(e.Timestamp),
		Hash:       e.Hash,
	}
}
