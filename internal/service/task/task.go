package task

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	id "gitee.com/flycash/shift-handover/internal/pkg/id_generator"
	"gitee.com/flycash/shift-handover/internal/repository"
	"gitee.com/flycash/shift-handover/internal/repository/cache"
	"gitee.com/flycash/shift-handover/internal/service/audit"
	"gitee.com/flycash/shift-handover/internal/service/config"
	"gitee.com/flycash/shift-handover/internal/service/notification"
	"github.com/go-playground/validator/v10"
	"github.com/gotomicro/ego/core/elog"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// CreateRequest 新建待办。Deadline 为零值时按优先级的 SLA 推算
type CreateRequest struct {
	HandoverID    int64           `validate:"gt=0"`
	Description   string          `validate:"required,max=2000"`
	ResponsibleID int64           `validate:"gt=0"`
	Priority      domain.Priority `validate:"required,oneof=low medium high critical"`
	Deadline      time.Time
}

// Dashboard 按状态统计的待办数量
type Dashboard struct {
	Counts map[domain.TaskStatus]int64 `json:"counts"`
	Total  int64                       `json:"total"`
}

// Service 待办写路径与读视图
//
//go:generate mockgen -source=./task.go -destination=./mocks/task.mock.go -package=taskmocks Service
type Service interface {
	Create(ctx context.Context, actor domain.User, req CreateRequest) (domain.PendingTask, error)
	// Update 只有负责人或主管可以修改，截止时间不可改
	Update(ctx context.Context, actor domain.User, taskID uint64, u domain.TaskUpdate) (domain.PendingTask, error)
	Get(ctx context.Context, taskID uint64) (domain.PendingTask, error)
	ListByResponsible(ctx context.Context, userID int64, limit int) ([]domain.PendingTask, error)
	// Dashboard 主管看到全部待办，其他人只看自己的
	Dashboard(ctx context.Context, user domain.User) (Dashboard, error)
}

type service struct {
	repo      repository.PendingTaskRepository
	userRepo  repository.UserRepository
	recorder  audit.Recorder
	configSvc config.Service
	notifier  notification.Service
	cache     *cache.Cache
	idGen     id.Generator
	validate  *validator.Validate
	now       func() time.Time
	logger    *elog.Component
}

func NewService(
	repo repository.PendingTaskRepository,
	userRepo repository.UserRepository,
	recorder audit.Recorder,
	configSvc config.Service,
	notifier notification.Service,
	c *cache.Cache,
	idGen id.Generator,
) Service {
	return newService(repo, userRepo, recorder, configSvc, notifier, c, idGen, time.Now)
}

func newService(
	repo repository.PendingTaskRepository,
	userRepo repository.UserRepository,
	recorder audit.Recorder,
	configSvc config.Service,
	notifier notification.Service,
	c *cache.Cache,
	idGen id.Generator,
	now func() time.Time,
) *service {
	return &service{
		repo:      repo,
		userRepo:  userRepo,
		recorder:  recorder,
		configSvc: configSvc,
		notifier:  notifier,
		cache:     c,
		idGen:     idGen,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		now:       now,
		logger:    elog.DefaultLogger.With(elog.String("component", "task")),
	}
}

func (s *service) Create(ctx context.Context, actor domain.User, req CreateRequest) (domain.PendingTask, error) {
	req.Description = strings.TrimSpace(req.Description)
	if err := s.validate.Struct(req); err != nil {
		return domain.PendingTask{}, fmt.Errorf("%w: %w", errs.ErrInvalidParameter, err)
	}
	now := s.now()
	task := domain.PendingTask{
		HandoverID:    req.HandoverID,
		Description:   req.Description,
		ResponsibleID: req.ResponsibleID,
		Status:        domain.TaskStatusOpen,
		Priority:      req.Priority,
		Deadline:      req.Deadline,
		Ctime:         now,
		Utime:         now,
	}
	if task.Deadline.IsZero() {
		task.SLAMinutes = s.configSvc.GetInt(ctx, domain.SLAConfigKey(req.Priority), domain.DefaultSLAMinutes(req.Priority))
		task.Deadline = now.Add(time.Duration(task.SLAMinutes) * time.Minute)
	}
	taskID, err := s.idGen.NextID()
	if err != nil {
		return domain.PendingTask{}, fmt.Errorf("生成待办ID失败: %w", err)
	}
	task.ID = taskID

	entry, err := s.recorder.Build(domain.ObjectPendingTask, strconv.FormatUint(taskID, 10),
		domain.AuditActionCreate, nil, task, actor.ID)
	if err != nil {
		return domain.PendingTask{}, err
	}
	created, err := s.repo.Create(ctx, task, entry)
	if err != nil {
		return domain.PendingTask{}, err
	}
	s.invalidate(ctx)

	if created.Priority == domain.PriorityCritical {
		s.notifyCritical(ctx, actor, created)
	}
	return created, nil
}

// notifyCritical 通知所有在岗主管，以及不是创建者本人的负责人。失败只记日志，待办已经提交
func (s *service) notifyCritical(ctx context.Context, actor domain.User, task domain.PendingTask) {
	msg := notification.Message{
		TaskID:  task.ID,
		Type:    domain.InAppTypeCriticalTask,
		Title:   "Pendência Crítica",
		Message: fmt.Sprintf("Nova pendência crítica: %s", excerpt(task.Description)),
		Link:    taskLink(task.ID),
	}
	recipients := make(map[int64]domain.User)
	managers, err := s.userRepo.FindActiveByRole(ctx, domain.RoleManager)
	if err != nil {
		s.logger.Error("查询主管失败", elog.Any("taskID", task.ID), elog.FieldErr(err))
	}
	for _, m := range managers {
		recipients[m.ID] = m
	}
	if task.ResponsibleID != actor.ID {
		if _, ok := recipients[task.ResponsibleID]; !ok {
			responsible, err := s.userRepo.GetByID(ctx, task.ResponsibleID)
			if err != nil {
				s.logger.Error("查询负责人失败", elog.Any("taskID", task.ID), elog.FieldErr(err))
			} else {
				recipients[responsible.ID] = responsible
			}
		}
	}
	for _, u := range recipients {
		if _, err := s.notifier.NotifyUser(ctx, u, msg); err != nil {
			s.logger.Error("发送紧急待办通知失败",
				elog.Any("taskID", task.ID),
				elog.Int64("userID", u.ID),
				elog.FieldErr(err))
		}
	}
}

func (s *service) Update(ctx context.Context, actor domain.User, taskID uint64, u domain.TaskUpdate) (domain.PendingTask, error) {
	if u.IsEmpty() {
		return domain.PendingTask{}, fmt.Errorf("%w: nothing to update", errs.ErrInvalidParameter)
	}
	before, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return domain.PendingTask{}, err
	}
	if before.ResponsibleID != actor.ID && !actor.HasRole(domain.RoleSupervisor) {
		return domain.PendingTask{}, fmt.Errorf("%w: user %d cannot update task %d", errs.ErrPermissionDenied, actor.ID, taskID)
	}
	after, err := before.Apply(u, s.now())
	if err != nil {
		return domain.PendingTask{}, err
	}
	entry, err := s.recorder.Build(domain.ObjectPendingTask, strconv.FormatUint(taskID, 10),
		domain.AuditActionUpdate, before, after, actor.ID)
	if err != nil {
		return domain.PendingTask{}, err
	}
	if err = s.repo.Update(ctx, after, entry); err != nil {
		return domain.PendingTask{}, err
	}
	after.Version++
	s.invalidate(ctx)
	return after, nil
}

func (s *service) Get(ctx context.Context, taskID uint64) (domain.PendingTask, error) {
	return s.repo.GetByID(ctx, taskID)
}

func (s *service) ListByResponsible(ctx context.Context, userID int64, limit int) ([]domain.PendingTask, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)
	return cache.GetOrCompute(ctx, s.cache, cache.ListingKey(userID, limit), cache.ListingTTL,
		func(ctx context.Context) ([]domain.PendingTask, error) {
			return s.repo.ListByResponsible(ctx, userID, limit)
		})
}

func (s *service) Dashboard(ctx context.Context, user domain.User) (Dashboard, error) {
	isManager := user.IsManager()
	return cache.GetOrCompute(ctx, s.cache, cache.DashboardKey(user.ID, isManager, user.Unit), cache.DashboardTTL,
		func(ctx context.Context) (Dashboard, error) {
			responsibleID := user.ID
			if isManager {
				responsibleID = 0
			}
			counts, err := s.repo.CountByStatus(ctx, responsibleID)
			if err != nil {
				return Dashboard{}, err
			}
			d := Dashboard{Counts: counts}
			for _, c := range counts {
				d.Total += c
			}
			return d, nil
		})
}

// invalidate 任何待办写入都会让看板和列表整体失效
func (s *service) invalidate(ctx context.Context) {
	s.cache.ClearPatterns(ctx,
		cache.NamespacePattern(cache.NamespaceDashboard),
		cache.NamespacePattern(cache.NamespaceListing))
}

func taskLink(taskID uint64) string {
	return "/pendencias/" + strconv.FormatUint(taskID, 10)
}

func excerpt(desc string) string {
	r := []rune(desc)
	if len(r) <= 50 {
		return desc
	}
	return string(r[:50]) + "..."
}
