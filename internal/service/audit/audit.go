package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	"gitee.com/flycash/shift-handover/internal/pkg/hash"
	id "gitee.com/flycash/shift-handover/internal/pkg/id_generator"
	"gitee.com/flycash/shift-handover/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

// Recorder 审计记录器，只追加不修改
//
//go:generate mockgen -source=./audit.go -destination=./mocks/audit.mock.go -package=auditmocks Recorder
type Recorder interface {
	// Build 生成带完整性哈希的审计条目但不落库，供调用方在自己的事务里写入
	Build(kind, objectID string, action domain.AuditAction, before, after any, actorID int64) (domain.AuditEntry, error)
	// Record 生成并独立写入一条审计条目
	Record(ctx context.Context, kind, objectID string, action domain.AuditAction, before, after any, actorID int64) (domain.AuditEntry, error)
	// Verify 重新计算哈希并比较
	Verify(entry domain.AuditEntry) bool
	List(ctx context.Context, kind, objectID string) ([]domain.AuditEntry, error)
}

type Config struct {
	// HMACKey 为空时退化为 SHA-256
	HMACKey string `yaml:"hmacKey"`
}

type recorder struct {
	repo   repository.AuditRepository
	idGen  id.Generator
	key    []byte
	now    func() time.Time
	logger *elog.Component
}

func NewRecorder(repo repository.AuditRepository, idGen id.Generator, cfg Config) Recorder {
	return newRecorder(repo, idGen, cfg, time.Now)
}

func newRecorder(repo repository.AuditRepository, idGen id.Generator, cfg Config, now func() time.Time) *recorder {
	return &recorder{
		repo:   repo,
		idGen:  idGen,
		key:    []byte(cfg.HMACKey),
		now:    now,
		logger: elog.DefaultLogger.With(elog.String("component", "audit")),
	}
}

func (r *recorder) Build(kind, objectID string, action domain.AuditAction, before, after any, actorID int64) (domain.AuditEntry, error) {
	if kind == "" || objectID == "" {
		return domain.AuditEntry{}, fmt.Errorf("%w: audit object kind and id are required", errs.ErrInvalidParameter)
	}
	if !action.IsValid() {
		return domain.AuditEntry{}, fmt.Errorf("%w: audit action = %q", errs.ErrInvalidParameter, action)
	}
	beforeRaw, err := snapshot(before)
	if err != nil {
		return domain.AuditEntry{}, err
	}
	afterRaw, err := snapshot(after)
	if err != nil {
		return domain.AuditEntry{}, err
	}
	entryID, err := r.idGen.NextID()
	if err != nil {
		return domain.AuditEntry{}, fmt.Errorf("%w: %w", errs.ErrIntegrityFailure, err)
	}
	entry := domain.AuditEntry{
		ID:         entryID,
		ObjectKind: kind,
		ObjectID:   objectID,
		Action:     action,
		Before:     beforeRaw,
		After:      afterRaw,
		ActorID:    actorID,
		// 存储精度是毫秒，哈希也按毫秒算
		Timestamp: r.now().Truncate(time.Millisecond),
	}
	entry.Hash, err = r.digest(entry)
	if err != nil {
		return domain.AuditEntry{}, err
	}
	return entry, nil
}

func (r *recorder) Record(ctx context.Context, kind, objectID string, action domain.AuditAction, before, after any, actorID int64) (domain.AuditEntry, error) {
	entry, err := r.Build(kind, objectID, action, before, after, actorID)
	if err != nil {
		return domain.AuditEntry{}, err
	}
	if err = r.repo.Insert(ctx, entry); err != nil {
		r.logger.Error("写入审计记录失败",
			elog.String("kind", kind),
			elog.String("objectID", objectID),
			elog.FieldErr(err))
		return domain.AuditEntry{}, err
	}
	return entry, nil
}

func (r *recorder) Verify(entry domain.AuditEntry) bool {
	got, err := r.digest(entry)
	if err != nil {
		return false
	}
	return hash.Equal(got, entry.Hash)
}

func (r *recorder) List(ctx context.Context, kind, objectID string) ([]domain.AuditEntry, error) {
	return r.repo.ListByObject(ctx, kind, objectID)
}

func (r *recorder) digest(e domain.AuditEntry) (string, error) {
	before, err := hash.CanonicalJSON(e.Before)
	if err != nil {
		return "", fmt.Errorf("%w: before: %w", errs.ErrIntegrityFailure, err)
	}
	after, err := hash.CanonicalJSON(e.After)
	if err != nil {
		return "", fmt.Errorf("%w: after: %w", errs.ErrIntegrityFailure, err)
	}
	return hash.Digest(r.key,
		[]byte(e.ObjectKind),
		[]byte(e.ObjectID),
		[]byte(e.Action),
		before,
		after,
		[]byte(strconv.FormatInt(e.ActorID, 10)),
		[]byte(strconv.FormatInt(e.Timestamp.UnixMilli(), 10)),
	), nil
}

// snapshot 把任意值转成规范化的 JSON，nil 表示没有快照
func snapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	var raw []byte
	switch val := v.(type) {
	case json.RawMessage:
		raw = val
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: snapshot: %w", errs.ErrInvalidParameter, err)
		}
		raw = b
	}
	canonical, err := hash.CanonicalJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: snapshot: %w", errs.ErrInvalidParameter, err)
	}
	return canonical, nil
}
