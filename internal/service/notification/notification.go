package notification

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	id "gitee.com/flycash/shift-handover/internal/pkg/id_generator"
	"gitee.com/flycash/shift-handover/internal/repository"
	"gitee.com/flycash/shift-handover/internal/repository/cache"
	"gitee.com/flycash/shift-handover/internal/service/config"
	"gitee.com/flycash/shift-handover/internal/service/sender"
	"github.com/go-playground/validator/v10"
	"github.com/gotomicro/ego/core/elog"
)

const (
	DefaultBatchLimit = 50
	defaultListLimit  = 20
	maxListLimit      = 200
)

// Message 发给某个用户的一条提醒
type Message struct {
	// TaskID 为 0 表示与待办无关
	TaskID  uint64
	Type    string
	Title   string
	Message string
	Link    string
}

// Service 通知服务：站内通知的读写，以及外发通知的创建和投递
//
//go:generate mockgen -source=./notification.go -destination=./mocks/notification.mock.go -package=notificationmocks Service
type Service interface {
	// CreateInApp 直接插入一条站内通知，不去重、不重试
	CreateInApp(ctx context.Context, n domain.InAppNotification) (domain.InAppNotification, error)
	// NotifyUser 创建站内通知；开启了外发时再为用户的每个联系方式各排一条待投递记录
	NotifyUser(ctx context.Context, user domain.User, msg Message) (domain.InAppNotification, error)
	// DeliverPending 取最多 batchLimit 条待投递记录逐条发送，批量提交结果
	DeliverPending(ctx context.Context, batchLimit int) (domain.DeliveryReport, error)
	ListInApp(ctx context.Context, userID int64, limit int) ([]domain.InAppNotification, error)
	MarkRead(ctx context.Context, id uint64, userID int64) error
	UnreadCount(ctx context.Context, userID int64) (int64, error)
}

type service struct {
	inAppRepo repository.InAppNotificationRepository
	repo      repository.NotificationRepository
	sender    sender.NotificationSender
	configSvc config.Service
	cache     *cache.Cache
	idGen     id.Generator
	validate  *validator.Validate
	now       func() time.Time
	logger    *elog.Component
}

func NewService(
	inAppRepo repository.InAppNotificationRepository,
	repo repository.NotificationRepository,
	notificationSender sender.NotificationSender,
	configSvc config.Service,
	c *cache.Cache,
	idGen id.Generator,
) Service {
	return newService(inAppRepo, repo, notificationSender, configSvc, c, idGen, time.Now)
}

func newService(
	inAppRepo repository.InAppNotificationRepository,
	repo repository.NotificationRepository,
	notificationSender sender.NotificationSender,
	configSvc config.Service,
	c *cache.Cache,
	idGen id.Generator,
	now func() time.Time,
) *service {
	return &service{
		inAppRepo: inAppRepo,
		repo:      repo,
		sender:    notificationSender,
		configSvc: configSvc,
		cache:     c,
		idGen:     idGen,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		now:       now,
		logger:    elog.DefaultLogger.With(elog.String("component", "notification")),
	}
}

func (s *service) CreateInApp(ctx context.Context, n domain.InAppNotification) (domain.InAppNotification, error) {
	if err := s.validate.Struct(n); err != nil {
		return domain.InAppNotification{}, fmt.Errorf("%w: %w", errs.ErrInvalidParameter, err)
	}
	nid, err := s.idGen.NextID()
	if err != nil {
		return domain.InAppNotification{}, fmt.Errorf("生成通知ID失败: %w", err)
	}
	n.ID = nid
	n.Read = false
	n.ReadAt = time.Time{}
	n.Ctime = s.now()
	created, err := s.inAppRepo.Create(ctx, n)
	if err != nil {
		return domain.InAppNotification{}, err
	}
	s.invalidate(ctx, n.UserID)
	return created, nil
}

func (s *service) NotifyUser(ctx context.Context, user domain.User, msg Message) (domain.InAppNotification, error) {
	created, err := s.CreateInApp(ctx, domain.InAppNotification{
		UserID:  user.ID,
		Type:    msg.Type,
		Title:   msg.Title,
		Message: msg.Message,
		Link:    msg.Link,
	})
	if err != nil {
		return domain.InAppNotification{}, err
	}
	if !s.configSvc.GetBool(ctx, domain.ConfigNotifications, true) {
		return created, nil
	}

	deliveries, err := s.deliveriesFor(user, msg)
	if err != nil {
		return created, err
	}
	if len(deliveries) == 0 {
		return created, nil
	}
	if _, err = s.repo.BatchCreate(ctx, deliveries); err != nil {
		s.logger.Error("创建外发通知失败",
			elog.Int64("userID", user.ID),
			elog.Int("count", len(deliveries)),
			elog.FieldErr(err))
		return created, err
	}
	return created, nil
}

// deliveriesFor 每个联系方式一条待投递记录
func (s *service) deliveriesFor(user domain.User, msg Message) ([]domain.Notification, error) {
	payload := domain.Payload{
		Type:    msg.Type,
		Title:   msg.Title,
		Message: msg.Message,
		Link:    msg.Link,
	}
	contacts := []struct {
		channel     domain.Channel
		destination string
	}{
		{channel: domain.ChannelEmail, destination: user.Email},
		{channel: domain.ChannelSMS, destination: user.Phone},
	}
	now := s.now()
	res := make([]domain.Notification, 0, len(contacts))
	for _, c := range contacts {
		if c.destination == "" {
			continue
		}
		nid, err := s.idGen.NextID()
		if err != nil {
			return nil, fmt.Errorf("生成通知ID失败: %w", err)
		}
		n := domain.Notification{
			ID:          nid,
			TaskID:      msg.TaskID,
			Channel:     c.channel,
			Destination: c.destination,
			Payload:     payload,
			Status:      domain.SendStatusPending,
			Ctime:       now,
			Utime:       now,
		}
		if err = n.Validate(); err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}

func (s *service) DeliverPending(ctx context.Context, batchLimit int) (domain.DeliveryReport, error) {
	if batchLimit <= 0 {
		batchLimit = DefaultBatchLimit
	}
	ns, err := s.repo.FindDeliverable(ctx, batchLimit)
	if err != nil {
		return domain.DeliveryReport{}, err
	}
	if len(ns) == 0 {
		return domain.DeliveryReport{}, nil
	}
	report, err := s.sender.Send(ctx, ns)
	s.logger.Info("投递批次完成",
		elog.Int("selected", report.Selected),
		elog.Int("sent", report.Sent),
		elog.Int("retrying", report.Retrying),
		elog.Int("failed", report.Failed),
		elog.Any("interrupted", report.Interrupted))
	return report, err
}

func (s *service) ListInApp(ctx context.Context, userID int64, limit int) ([]domain.InAppNotification, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)
	return cache.GetOrCompute(ctx, s.cache, cache.NotificationsKey(userID, limit), cache.NotificationsTTL,
		func(ctx context.Context) ([]domain.InAppNotification, error) {
			return s.inAppRepo.ListByUser(ctx, userID, limit, false)
		})
}

func (s *service) MarkRead(ctx context.Context, nid uint64, userID int64) error {
	updated, err := s.inAppRepo.MarkRead(ctx, nid, userID, s.now())
	if err != nil {
		return err
	}
	if !updated {
		// 区分已读和不存在
		n, err1 := s.inAppRepo.GetByID(ctx, nid)
		if err1 != nil {
			return err1
		}
		if n.UserID != userID {
			return fmt.Errorf("%w: id=%d", errs.ErrInAppNotificationNotFound, nid)
		}
		return nil
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.inAppRepo.CountUnread(ctx, userID)
}

func (s *service) invalidate(ctx context.Context, userID int64) {
	s.cache.ClearMatching(ctx, fmt.Sprintf("%s:%d:*", cache.NamespaceNotifications, userID))
}
