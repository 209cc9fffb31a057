package repository

import (
	"context"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	"gitee.com/flycash/shift-handover/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
)

//go:generate mockgen -source=./user.go -destination=./mocks/user.mock.go -package=repomocks UserRepository
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)
	FindActiveByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
}

type userRepository struct {
	dao    dao.UserDAO
	logger *elog.Component
}

func NewUserRepository(d dao.UserDAO) UserRepository {
	return &userRepository{dao: d, logger: elog.DefaultLogger}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	u, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, storeError(err, errs.ErrUserNotFound)
	}
	return r.toDomain(u), nil
}

func (r *userRepository) FindActiveByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	us, err := r.dao.FindActiveByRole(ctx, string(role))
	if err != nil {
		return nil, storeError(err, errs.ErrUserNotFound)
	}
	return slice.Map(us, func(_ int, src dao.User) domain.User {
		return r.toDomain(src)
	}), nil
}

func (r *userRepository) toDomain(u dao.User) domain.User {
	var roles []domain.Role
	if err := u.Roles.Unmarshal(&roles); err != nil {
		r.logger.Error("用户角色无法解析", elog.Int64("userID", u.ID), elog.FieldErr(err))
	}
	return domain.User{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Phone:  u.Phone,
		Unit:   u.Unit,
		Roles:  roles,
		Active: u.Active,
	}
}
