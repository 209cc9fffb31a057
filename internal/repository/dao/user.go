package dao

import (
	"context"
	"fmt"

	pkgdao "gitee.com/flycash/shift-handover/internal/pkg/dao"
	"github.com/ego-component/egorm"
)

// User 用户表，只读取排班和通知需要的字段
type User struct {
	ID     int64       `gorm:"primaryKey;autoIncrement"`
	Name   string      `gorm:"type:VARCHAR(128);NOT NULL"`
	Email  string      `gorm:"type:VARCHAR(255)"`
	Phone  string      `gorm:"type:VARCHAR(32)"`
	Unit   string      `gorm:"type:VARCHAR(64);comment:'nursing unit'"`
	Roles  pkgdao.JSON `gorm:"type:JSON;comment:'[\"gestor\",\"supervisor\"]'"`
	Active bool        `gorm:"NOT NULL;DEFAULT:true;index:idx_active"`
	Ctime  int64
	Utime  int64
}

func (User) TableName() string {
	return "users"
}

type UserDAO interface {
	GetByID(ctx context.Context, id int64) (User, error)
	FindActiveByRole(ctx context.Context, role string) ([]User, error)
}

type userDAO struct {
	db *egorm.Component
}

func NewUserDAO(db *egorm.Component) UserDAO {
	return &userDAO{db: db}
}

func (d *userDAO) GetByID(ctx context.Context, id int64) (User, error) {
	var u User
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	return u, err
}

func (d *userDAO) FindActiveByRole(ctx context.Context, role string) ([]User, error) {
	var res []User
	err := d.db.WithContext(ctx).
		Where("active = ? AND JSON_CONTAINS(roles, ?)", true, fmt.Sprintf("%q", role)).
		Order("id ASC").
		Find(&res).Error
	return res, err
}
