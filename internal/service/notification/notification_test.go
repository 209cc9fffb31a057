package notification

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	"gitee.com/flycash/shift-handover/internal/repository/cache"
	"gitee.com/flycash/shift-handover/internal/repository/cache/local"
	repomocks "gitee.com/flycash/shift-handover/internal/repository/mocks"
	configmocks "gitee.com/flycash/shift-handover/internal/service/config/mocks"
	sendermocks "gitee.com/flycash/shift-handover/internal/service/sender/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type seqGenerator struct {
	n atomic.Uint64
}

func (g *seqGenerator) NextID() (uint64, error) {
	return g.n.Add(1), nil
}

func TestNotificationServiceSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(NotificationServiceTestSuite))
}

type NotificationServiceTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	inAppRepo *repomocks.MockInAppNotificationRepository
	repo      *repomocks.MockNotificationRepository
	sender    *sendermocks.MockNotificationSender
	configSvc *configmocks.MockService
	now       time.Time
	svc       *service
}

func (s *NotificationServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.inAppRepo = repomocks.NewMockInAppNotificationRepository(s.ctrl)
	s.repo = repomocks.NewMockNotificationRepository(s.ctrl)
	s.sender = sendermocks.NewMockNotificationSender(s.ctrl)
	s.configSvc = configmocks.NewMockService(s.ctrl)
	s.now = time.Date(2025, 5, 2, 22, 0, 0, 0, time.UTC)
	s.svc = newService(s.inAppRepo, s.repo, s.sender, s.configSvc,
		cache.NewCache(local.NewDefaultCache()), &seqGenerator{},
		func() time.Time { return s.now })
}

func (s *NotificationServiceTestSuite) echoInApp() {
	s.inAppRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, n domain.InAppNotification) (domain.InAppNotification, error) {
			return n, nil
		})
}

func (s *NotificationServiceTestSuite) TestCreateInApp() {
	s.echoInApp()
	n, err := s.svc.CreateInApp(s.T().Context(), domain.InAppNotification{
		UserID: 5, Type: domain.InAppTypeCriticalTask, Title: "Pendência Crítica", Message: "Nova pendência",
		Read: true,
	})
	s.Require().NoError(err)
	s.Equal(uint64(1), n.ID)
	s.False(n.Read)
	s.Equal(s.now, n.Ctime)
}

func (s *NotificationServiceTestSuite) TestCreateInAppNoDedup() {
	var stored []domain.InAppNotification
	s.inAppRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
		func(_ any, n domain.InAppNotification) (domain.InAppNotification, error) {
			stored = append(stored, n)
			return n, nil
		})
	in := domain.InAppNotification{
		UserID: 5, Type: domain.InAppTypeSLAOverdue, Title: "SLA Vencido", Message: "pendência vencida",
	}
	first, err := s.svc.CreateInApp(s.T().Context(), in)
	s.Require().NoError(err)
	second, err := s.svc.CreateInApp(s.T().Context(), in)
	s.Require().NoError(err)

	s.Require().Len(stored, 2)
	s.NotEqual(stored[0].ID, stored[1].ID)
	s.NotEqual(first.ID, second.ID)
	s.Equal(first.Message, second.Message)
}

func (s *NotificationServiceTestSuite) TestCreateInAppInvalid() {
	testCases := []struct {
		name string
		n    domain.InAppNotification
	}{
		{name: "no user", n: domain.InAppNotification{Type: "t", Title: "t", Message: "m"}},
		{name: "no type", n: domain.InAppNotification{UserID: 1, Title: "t", Message: "m"}},
		{name: "no message", n: domain.InAppNotification{UserID: 1, Type: "t", Title: "t"}},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.svc.CreateInApp(s.T().Context(), tc.n)
			s.ErrorIs(err, errs.ErrInvalidParameter)
		})
	}
}

func (s *NotificationServiceTestSuite) TestNotifyUser() {
	user := domain.User{ID: 9, Email: "ana@hospital.local", Phone: "+5511999990000", Active: true}
	msg := Message{TaskID: 77, Type: domain.InAppTypeSLADueSoon, Title: "SLA Vencendo", Message: "vence em 10 minutos", Link: "/pendencias/77"}

	s.echoInApp()
	s.configSvc.EXPECT().GetBool(gomock.Any(), domain.ConfigNotifications, true).Return(true)
	s.repo.EXPECT().BatchCreate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, ns []domain.Notification) ([]domain.Notification, error) {
			s.Require().Len(ns, 2)
			s.Equal(domain.ChannelEmail, ns[0].Channel)
			s.Equal(user.Email, ns[0].Destination)
			s.Equal(domain.ChannelSMS, ns[1].Channel)
			s.Equal(user.Phone, ns[1].Destination)
			for _, n := range ns {
				s.Equal(domain.SendStatusPending, n.Status)
				s.Equal(uint64(77), n.TaskID)
				s.Equal(msg.Link, n.Payload.Link)
				s.Zero(n.Attempts)
			}
			return ns, nil
		})

	n, err := s.svc.NotifyUser(s.T().Context(), user, msg)
	s.Require().NoError(err)
	s.Equal(int64(9), n.UserID)
}

func (s *NotificationServiceTestSuite) TestNotifyUserOutboundDisabled() {
	s.echoInApp()
	s.configSvc.EXPECT().GetBool(gomock.Any(), domain.ConfigNotifications, true).Return(false)

	_, err := s.svc.NotifyUser(s.T().Context(), domain.User{ID: 3, Email: "x@y.z"},
		Message{Type: domain.InAppTypeSLAOverdue, Title: "SLA Vencido", Message: "atrasada"})
	s.Require().NoError(err)
}

func (s *NotificationServiceTestSuite) TestNotifyUserWithoutContacts() {
	s.echoInApp()
	s.configSvc.EXPECT().GetBool(gomock.Any(), domain.ConfigNotifications, true).Return(true)

	_, err := s.svc.NotifyUser(s.T().Context(), domain.User{ID: 3},
		Message{Type: domain.InAppTypeSLAOverdue, Title: "SLA Vencido", Message: "atrasada"})
	s.Require().NoError(err)
}

func (s *NotificationServiceTestSuite) TestNotifyUserStoreFailure() {
	s.inAppRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(domain.InAppNotification{}, errs.ErrStoreUnavailable)

	_, err := s.svc.NotifyUser(s.T().Context(), domain.User{ID: 3},
		Message{Type: domain.InAppTypeSLAOverdue, Title: "SLA Vencido", Message: "atrasada"})
	s.ErrorIs(err, errs.ErrStoreUnavailable)
}

func (s *NotificationServiceTestSuite) TestDeliverPending() {
	pending := []domain.Notification{
		{ID: 1, Channel: domain.ChannelEmail, Destination: "a@b.c", Status: domain.SendStatusPending},
		{ID: 2, Channel: domain.ChannelSMS, Destination: "+55", Status: domain.SendStatusPending, Attempts: 2},
	}
	s.repo.EXPECT().FindDeliverable(gomock.Any(), DefaultBatchLimit).Return(pending, nil)
	s.sender.EXPECT().Send(gomock.Any(), pending).
		Return(domain.DeliveryReport{Selected: 2, Sent: 1, Failed: 1}, nil)

	report, err := s.svc.DeliverPending(s.T().Context(), 0)
	s.Require().NoError(err)
	s.Equal(1, report.Sent)
	s.Equal(1, report.Failed)
}

func (s *NotificationServiceTestSuite) TestDeliverPendingEmpty() {
	s.repo.EXPECT().FindDeliverable(gomock.Any(), 10).Return(nil, nil)

	report, err := s.svc.DeliverPending(s.T().Context(), 10)
	s.Require().NoError(err)
	s.Equal(domain.DeliveryReport{}, report)
}

func (s *NotificationServiceTestSuite) TestDeliverPendingStoreDown() {
	s.repo.EXPECT().FindDeliverable(gomock.Any(), DefaultBatchLimit).Return(nil, errs.ErrStoreUnavailable)

	_, err := s.svc.DeliverPending(s.T().Context(), -1)
	s.ErrorIs(err, errs.ErrStoreUnavailable)
}

func (s *NotificationServiceTestSuite) TestListInAppCachedUntilMarkRead() {
	ctx := s.T().Context()
	list := []domain.InAppNotification{{ID: 4, UserID: 7, Type: "t", Title: "t", Message: "m"}}

	s.inAppRepo.EXPECT().ListByUser(gomock.Any(), int64(7), 20, false).Return(list, nil).Times(1)
	got, err := s.svc.ListInApp(ctx, 7, 0)
	s.Require().NoError(err)
	s.Len(got, 1)
	got, err = s.svc.ListInApp(ctx, 7, 20)
	s.Require().NoError(err)
	s.Equal(uint64(4), got[0].ID)

	s.inAppRepo.EXPECT().MarkRead(gomock.Any(), uint64(4), int64(7), s.now).Return(true, nil)
	s.Require().NoError(s.svc.MarkRead(ctx, 4, 7))

	read := list[0]
	read.Read = true
	s.inAppRepo.EXPECT().ListByUser(gomock.Any(), int64(7), 20, false).
		Return([]domain.InAppNotification{read}, nil)
	got, err = s.svc.ListInApp(ctx, 7, 20)
	s.Require().NoError(err)
	s.True(got[0].Read)
}

func (s *NotificationServiceTestSuite) TestMarkRead() {
	testCases := []struct {
		name    string
		mock    func()
		wantErr error
	}{
		{
			name: "already read",
			mock: func() {
				s.inAppRepo.EXPECT().MarkRead(gomock.Any(), uint64(1), int64(2), gomock.Any()).Return(false, nil)
				s.inAppRepo.EXPECT().GetByID(gomock.Any(), uint64(1)).
					Return(domain.InAppNotification{ID: 1, UserID: 2, Read: true}, nil)
			},
		},
		{
			name: "missing",
			mock: func() {
				s.inAppRepo.EXPECT().MarkRead(gomock.Any(), uint64(1), int64(2), gomock.Any()).Return(false, nil)
				s.inAppRepo.EXPECT().GetByID(gomock.Any(), uint64(1)).
					Return(domain.InAppNotification{}, errs.ErrInAppNotificationNotFound)
			},
			wantErr: errs.ErrInAppNotificationNotFound,
		},
		{
			name: "belongs to another user",
			mock: func() {
				s.inAppRepo.EXPECT().MarkRead(gomock.Any(), uint64(1), int64(2), gomock.Any()).Return(false, nil)
				s.inAppRepo.EXPECT().GetByID(gomock.Any(), uint64(1)).
					Return(domain.InAppNotification{ID: 1, UserID: 3}, nil)
			},
			wantErr: errs.ErrNotFound,
		},
		{
			name: "store down",
			mock: func() {
				s.inAppRepo.EXPECT().MarkRead(gomock.Any(), uint64(1), int64(2), gomock.Any()).
					Return(false, errors.Join(errs.ErrStoreUnavailable, errors.New("conn refused")))
			},
			wantErr: errs.ErrStoreUnavailable,
		},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tc.mock()
			err := s.svc.MarkRead(s.T().Context(), 1, 2)
			if tc.wantErr == nil {
				s.NoError(err)
				return
			}
			s.ErrorIs(err, tc.wantErr)
		})
	}
}

func (s *NotificationServiceTestSuite) TestUnreadCount() {
	s.inAppRepo.EXPECT().CountUnread(gomock.Any(), int64(6)).Return(int64(3), nil)
	n, err := s.svc.UnreadCount(s.T().Context(), 6)
	s.Require().NoError(err)
	s.Equal(int64(3), n)
}
