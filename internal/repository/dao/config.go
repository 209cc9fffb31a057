package dao

import (
	"context"
	"errors"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm/clause"
)

// Config 系统配置表
type Config struct {
	Key         string `gorm:"column:config_key;primaryKey;type:VARCHAR(100)"`
	Value       string `gorm:"type:TEXT;NOT NULL"`
	Type        string `gorm:"type:VARCHAR(16);NOT NULL;DEFAULT:'string'"`
	Description string `gorm:"type:VARCHAR(255)"`
	Ctime       int64
	Utime       int64
}

func (Config) TableName() string {
	return "configs"
}

type ConfigDAO interface {
	Get(ctx context.Context, key string) (Config, error)
	List(ctx context.Context) ([]Config, error)
	// Upsert inserts the entry or overwrites value, type and description.
	Upsert(ctx context.Context, cfg Config) (Config, error)
	// InsertIfAbsent reports false when the key already exists.
	InsertIfAbsent(ctx context.Context, cfg Config) (bool, error)
}

type configDAO struct {
	db *egorm.Component
}

// NewConfigDAO 创建一个新的ConfigDAO实例
func NewConfigDAO(db *egorm.Component) ConfigDAO {
	return &configDAO{db: db}
}

func (d *configDAO) Get(ctx context.Context, key string) (Config, error) {
	var cfg Config
	err := d.db.WithContext(ctx).Where("config_key = ?", key).First(&cfg).Error
	return cfg, err
}

func (d *configDAO) List(ctx context.Context) ([]Config, error) {
	var res []Config
	err := d.db.WithContext(ctx).Order("config_key ASC").Find(&res).Error
	return res, err
}

func (d *configDAO) Upsert(ctx context.Context, cfg Config) (Config, error) {
	cfg.Ctime, cfg.Utime = stamp(cfg.Ctime, cfg.Utime)
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "type", "description", "utime"}),
	}).Create(&cfg).Error
	return cfg, err
}

func (d *configDAO) InsertIfAbsent(ctx context.Context, cfg Config) (bool, error) {
	cfg.Ctime, cfg.Utime = stamp(cfg.Ctime, cfg.Utime)
	err := d.db.WithContext(ctx).Create(&cfg).Error
	if err != nil {
		if isUniqueConstraintError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// isUniqueConstraintError 检查是否是唯一索引冲突错误
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	me := new(mysql.MySQLError)
	if ok := errors.As(err, &me); ok {
		const uniqueIndexErrNo uint16 = 1062
		return me.Number == uniqueIndexErrNo
	}
	return false
}
