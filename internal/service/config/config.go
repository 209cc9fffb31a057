package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	"gitee.com/flycash/shift-handover/internal/repository"
	"gitee.com/flycash/shift-handover/internal/repository/cache"
	"gitee.com/flycash/shift-handover/internal/service/audit"
	"github.com/gotomicro/ego/core/elog"
)

// Service 运行时业务配置。读取带缓存，读不到或解析失败时回落到默认值
//
//go:generate mockgen -source=./config.go -destination=./mocks/config.mock.go -package=configmocks Service
type Service interface {
	Get(ctx context.Context, key string) (domain.ConfigEntry, error)
	GetInt(ctx context.Context, key string, def int) int
	GetFloat(ctx context.Context, key string, def float64) float64
	GetBool(ctx context.Context, key string, def bool) bool
	GetString(ctx context.Context, key string, def string) string
	// GetJSON 解码到 dst，配置不存在时返回 ErrConfigNotFound
	GetJSON(ctx context.Context, key string, dst any) error
	// Set 按类型编码后写入，并记录审计
	Set(ctx context.Context, actorID int64, key string, value any, typ domain.ConfigType, description string) error
	List(ctx context.Context) ([]domain.ConfigEntry, error)
	// SeedDefaults 只写入缺失的默认配置，返回写入条数
	SeedDefaults(ctx context.Context) (int, error)
}

type service struct {
	repo     repository.ConfigRepository
	cache    *cache.Cache
	recorder audit.Recorder
	logger   *elog.Component
}

func NewService(repo repository.ConfigRepository, c *cache.Cache, recorder audit.Recorder) Service {
	return &service{
		repo:     repo,
		cache:    c,
		recorder: recorder,
		logger:   elog.DefaultLogger.With(elog.String("component", "config")),
	}
}

func (s *service) Get(ctx context.Context, key string) (domain.ConfigEntry, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.ConfigKey(key), cache.ConfigTTL,
		func(ctx context.Context) (domain.ConfigEntry, error) {
			return s.repo.Get(ctx, key)
		})
}

// typed 读取并按类型转换，任何失败都返回 false
func (s *service) typed(ctx context.Context, key string) (any, bool) {
	entry, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, errs.ErrConfigNotFound) {
			s.logger.Warn("读取配置失败，使用默认值", elog.String("key", key), elog.FieldErr(err))
		}
		return nil, false
	}
	v, err := entry.Typed()
	if err != nil {
		s.logger.Warn("配置值无法解析，使用默认值", elog.String("key", key), elog.FieldErr(err))
		return nil, false
	}
	return v, true
}

func (s *service) GetInt(ctx context.Context, key string, def int) int {
	v, ok := s.typed(ctx, key)
	if !ok {
		return def
	}
	switch val := v.(type) {
	case int:
		return val
	case float64:
		return int(val)
	default:
		s.logger.Warn("配置类型不是整数，使用默认值", elog.String("key", key))
		return def
	}
}

func (s *service) GetFloat(ctx context.Context, key string, def float64) float64 {
	v, ok := s.typed(ctx, key)
	if !ok {
		return def
	}
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	default:
		s.logger.Warn("配置类型不是数字，使用默认值", elog.String("key", key))
		return def
	}
}

func (s *service) GetBool(ctx context.Context, key string, def bool) bool {
	v, ok := s.typed(ctx, key)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		s.logger.Warn("配置类型不是布尔，使用默认值", elog.String("key", key))
		return def
	}
	return b
}

func (s *service) GetString(ctx context.Context, key string, def string) string {
	entry, err := s.Get(ctx, key)
	if err != nil {
		return def
	}
	return entry.Value
}

func (s *service) GetJSON(ctx context.Context, key string, dst any) error {
	entry, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err = json.Unmarshal([]byte(entry.Value), dst); err != nil {
		return fmt.Errorf("%w: %s is not json: %w", errs.ErrInvalidParameter, key, err)
	}
	return nil
}

func (s *service) Set(ctx context.Context, actorID int64, key string, value any, typ domain.ConfigType, description string) error {
	entry, err := domain.NewConfigEntry(key, value, typ, description)
	if err != nil {
		return err
	}
	var before any
	old, err := s.repo.Get(ctx, key)
	switch {
	case err == nil:
		before = old
	case errors.Is(err, errs.ErrConfigNotFound):
	default:
		return err
	}
	if err = s.repo.Save(ctx, entry); err != nil {
		return err
	}
	s.cache.Delete(ctx, cache.ConfigKey(key))

	action := domain.AuditActionUpdate
	if before == nil {
		action = domain.AuditActionCreate
	}
	_, err = s.recorder.Record(ctx, domain.ObjectConfig, key, action, before, entry, actorID)
	return err
}

func (s *service) List(ctx context.Context) ([]domain.ConfigEntry, error) {
	return s.repo.List(ctx)
}

func (s *service) SeedDefaults(ctx context.Context) (int, error) {
	inserted := 0
	for _, entry := range domain.DefaultConfigEntries() {
		ok, err := s.repo.SaveIfAbsent(ctx, entry)
		if err != nil {
			return inserted, err
		}
		if ok {
			inserted++
			s.cache.Delete(ctx, cache.ConfigKey(entry.Key))
		}
	}
	s.logger.Info("默认配置初始化完成", elog.Int("inserted", inserted))
	return inserted, nil
}
