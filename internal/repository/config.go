package repository

import (
	"context"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	"gitee.com/flycash/shift-handover/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

// ConfigRepository 系统配置仓储接口
//
//go:generate mockgen -source=./config.go -destination=./mocks/config.mock.go -package=repomocks ConfigRepository
type ConfigRepository interface {
	Get(ctx context.Context, key string) (domain.ConfigEntry, error)
	List(ctx context.Context) ([]domain.ConfigEntry, error)
	Save(ctx context.Context, entry domain.ConfigEntry) error
	// SaveIfAbsent reports whether the entry was inserted.
	SaveIfAbsent(ctx context.Context, entry domain.ConfigEntry) (bool, error)
}

type configRepository struct {
	dao dao.ConfigDAO
}

// NewConfigRepository 创建配置仓库实例
func NewConfigRepository(d dao.ConfigDAO) ConfigRepository {
	return &configRepository{dao: d}
}

func (r *configRepository) Get(ctx context.Context, key string) (domain.ConfigEntry, error) {
	c, err := r.dao.Get(ctx, key)
	if err != nil {
		return domain.ConfigEntry{}, storeError(err, errs.ErrConfigNotFound)
	}
	return r.toDomain(c), nil
}

func (r *configRepository) List(ctx context.Context) ([]domain.ConfigEntry, error) {
	cs, err := r.dao.List(ctx)
	if err != nil {
		return nil, storeError(err, errs.ErrConfigNotFound)
	}
	return slice.Map(cs, func(_ int, src dao.Config) domain.ConfigEntry {
		return r.toDomain(src)
	}), nil
}

func (r *configRepository) Save(ctx context.Context, entry domain.ConfigEntry) error {
	_, err := r.dao.Upsert(ctx, r.toEntity(entry))
	return storeError(err, errs.ErrConfigNotFound)
}

func (r *configRepository) SaveIfAbsent(ctx context.Context, entry domain.ConfigEntry) (bool, error) {
	ok, err := r.dao.InsertIfAbsent(ctx, r.toEntity(entry))
	return ok, storeError(err, errs.ErrConfigNotFound)
}

func (r *configRepository) toEntity(e domain.ConfigEntry) dao.Config {
	return dao.Config{
		Key:         e.Key,
		Value:       e.Value,
		Type:        string(e.Type),
		Description: e.Description,
		Utime:       toMillis(e.Utime),
	}
}

func (r *configRepository) toDomain(c dao.Config) domain.ConfigEntry {
	return domain.ConfigEntry{
		Key:         c.Key,
		Value:       c.Value,
		Type:        domain.ConfigType(c.Type),
		Description: c.Description,
		Utime:       fromMillis(c.Utime),
	}
}
