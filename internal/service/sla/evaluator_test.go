package sla

import (
	"errors"
	"sync"
	"testing"
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	"gitee.com/flycash/shift-handover/internal/pkg/idempotent"
	idempotentmocks "gitee.com/flycash/shift-handover/internal/pkg/idempotent/mocks"
	repomocks "gitee.com/flycash/shift-handover/internal/repository/mocks"
	configmocks "gitee.com/flycash/shift-handover/internal/service/config/mocks"
	"gitee.com/flycash/shift-handover/internal/service/notification"
	notificationmocks "gitee.com/flycash/shift-handover/internal/service/notification/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

func TestEvaluatorSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(EvaluatorTestSuite))
}

type sentAlert struct {
	userID int64
	msg    notification.Message
}

type EvaluatorTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	repo      *repomocks.MockPendingTaskRepository
	userRepo  *repomocks.MockUserRepository
	configSvc *configmocks.MockService
	notifier  *notificationmocks.MockService
	now       time.Time

	mu   sync.Mutex
	sent []sentAlert
}

func (s *EvaluatorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = repomocks.NewMockPendingTaskRepository(s.ctrl)
	s.userRepo = repomocks.NewMockUserRepository(s.ctrl)
	s.configSvc = configmocks.NewMockService(s.ctrl)
	s.notifier = notificationmocks.NewMockService(s.ctrl)
	s.now = time.Date(2025, 7, 14, 3, 0, 0, 0, time.UTC)
	s.sent = nil
}

func (s *EvaluatorTestSuite) newEvaluator(marker idempotent.IdempotencyService) *evaluator {
	return newEvaluator(s.repo, s.userRepo, s.configSvc, s.notifier, marker, Config{Concurrency: 2},
		func() time.Time { return s.now })
}

func (s *EvaluatorTestSuite) settings(enabled bool, lead int, once, overdue bool) {
	s.configSvc.EXPECT().GetBool(gomock.Any(), domain.ConfigAlertEnabled, true).Return(enabled).AnyTimes()
	s.configSvc.EXPECT().GetInt(gomock.Any(), domain.ConfigAlertLeadMinutes, defaultLeadMinutes).Return(lead).AnyTimes()
	s.configSvc.EXPECT().GetBool(gomock.Any(), domain.ConfigAlertOnce, false).Return(once).AnyTimes()
	s.configSvc.EXPECT().GetBool(gomock.Any(), domain.ConfigAlertOverdue, false).Return(overdue).AnyTimes()
}

func (s *EvaluatorTestSuite) captureNotifications() {
	s.notifier.EXPECT().NotifyUser(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, u domain.User, msg notification.Message) (domain.InAppNotification, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.sent = append(s.sent, sentAlert{userID: u.ID, msg: msg})
			return domain.InAppNotification{UserID: u.ID}, nil
		}).AnyTimes()
}

func (s *EvaluatorTestSuite) TestCriticalTaskNotifiesResponsibleAndManager() {
	s.settings(true, 30, false, false)
	task := domain.PendingTask{
		ID: 42, Description: "Administrar antibiótico do leito 12", ResponsibleID: 7,
		Status: domain.TaskStatusOpen, Priority: domain.PriorityCritical, Deadline: s.now.Add(10 * time.Minute),
	}
	s.repo.EXPECT().FindDueBetween(gomock.Any(), s.now, s.now.Add(30*time.Minute)).
		Return([]domain.PendingTask{task}, nil)
	s.userRepo.EXPECT().FindActiveByRole(gomock.Any(), domain.RoleManager).
		Return([]domain.User{{ID: 90, Active: true, Roles: []domain.Role{domain.RoleManager}}}, nil)
	s.userRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(domain.User{ID: 7, Active: true}, nil)
	s.captureNotifications()

	report, err := s.newEvaluator(idempotent.NewLocalService()).Evaluate(s.T().Context())
	s.Require().NoError(err)
	s.Equal(1, report.DueSoon)
	s.Equal(2, report.Notified)
	s.Require().Len(s.sent, 2)

	byUser := map[int64]notification.Message{}
	for _, a := range s.sent {
		byUser[a.userID] = a.msg
	}
	s.Equal(domain.InAppTypeSLADueSoon, byUser[7].Type)
	s.Equal("SLA Vencendo", byUser[7].Title)
	s.Equal(`Pendência "Administrar antibiótico do leito 12..." vence em 10 minutos`, byUser[7].Message)
	s.Equal("/pendencias/42", byUser[7].Link)
	s.Equal(domain.InAppTypeSLACriticalDueSoon, byUser[90].Type)
	s.Equal("Pendência crítica vence em 10 minutos", byUser[90].Message)
}

func (s *EvaluatorTestSuite) TestDisabled() {
	s.settings(false, 30, false, false)
	report, err := s.newEvaluator(idempotent.NewLocalService()).Evaluate(s.T().Context())
	s.Require().NoError(err)
	s.True(report.Skipped)
}

func (s *EvaluatorTestSuite) TestNonCriticalSkipsManagers() {
	s.settings(true, 0, false, false)
	task := domain.PendingTask{
		ID: 1, Description: "Conferir prescrição", ResponsibleID: 7,
		Status: domain.TaskStatusInProgress, Priority: domain.PriorityHigh, Deadline: s.now.Add(29 * time.Minute),
	}
	// lead <= 0 falls back to the default window
	s.repo.EXPECT().FindDueBetween(gomock.Any(), s.now, s.now.Add(30*time.Minute)).
		Return([]domain.PendingTask{task}, nil)
	s.userRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(domain.User{ID: 7}, nil)
	s.captureNotifications()

	report, err := s.newEvaluator(idempotent.NewLocalService()).Evaluate(s.T().Context())
	s.Require().NoError(err)
	s.Equal(1, report.Notified)
}

func (s *EvaluatorTestSuite) TestRepeatsEveryRunByDefault() {
	s.settings(true, 30, false, false)
	task := domain.PendingTask{ID: 1, Description: "x", ResponsibleID: 7, Priority: domain.PriorityLow, Deadline: s.now.Add(5 * time.Minute)}
	s.repo.EXPECT().FindDueBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return([]domain.PendingTask{task}, nil).Times(2)
	s.userRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(domain.User{ID: 7}, nil).Times(2)
	s.captureNotifications()

	e := s.newEvaluator(idempotent.NewLocalService())
	for range 2 {
		_, err := e.Evaluate(s.T().Context())
		s.Require().NoError(err)
	}
	s.Len(s.sent, 2)
}

func (s *EvaluatorTestSuite) TestAlertOnce() {
	s.settings(true, 30, true, false)
	task := domain.PendingTask{ID: 1, Description: "x", ResponsibleID: 7, Priority: domain.PriorityLow, Deadline: s.now.Add(5 * time.Minute)}
	s.repo.EXPECT().FindDueBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return([]domain.PendingTask{task}, nil).Times(2)
	s.userRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(domain.User{ID: 7}, nil).Times(1)
	s.captureNotifications()

	e := s.newEvaluator(idempotent.NewLocalService())
	_, err := e.Evaluate(s.T().Context())
	s.Require().NoError(err)
	report, err := e.Evaluate(s.T().Context())
	s.Require().NoError(err)
	s.Equal(1, report.Suppressed)
	s.Len(s.sent, 1)
}

func (s *EvaluatorTestSuite) TestMarkerFailureStillAlerts() {
	s.settings(true, 30, true, false)
	task := domain.PendingTask{ID: 3, Description: "x", ResponsibleID: 7, Priority: domain.PriorityLow, Deadline: s.now.Add(5 * time.Minute)}
	s.repo.EXPECT().FindDueBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return([]domain.PendingTask{task}, nil)
	s.userRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(domain.User{ID: 7}, nil)
	s.captureNotifications()

	marker := idempotentmocks.NewMockIdempotencyService(s.ctrl)
	marker.EXPECT().MarkOnce(gomock.Any(), markerKey(task, alertDueSoon), 6*time.Minute).
		Return(false, errors.New("redis down"))

	report, err := s.newEvaluator(marker).Evaluate(s.T().Context())
	s.Require().NoError(err)
	s.Equal(1, report.Notified)
}

func (s *EvaluatorTestSuite) TestOverdueDeduplicated() {
	s.settings(true, 30, false, true)
	late := domain.PendingTask{
		ID: 8, Description: "Registrar balanço hídrico", ResponsibleID: 7,
		Priority: domain.PriorityMedium, Deadline: s.now.Add(-20 * time.Minute),
	}
	s.repo.EXPECT().FindDueBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	s.repo.EXPECT().FindOverdue(gomock.Any(), s.now, overdueScanLimit).Return([]domain.PendingTask{late}, nil).Times(2)
	s.userRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(domain.User{ID: 7}, nil)
	s.captureNotifications()

	e := s.newEvaluator(idempotent.NewLocalService())
	report, err := e.Evaluate(s.T().Context())
	s.Require().NoError(err)
	s.Equal(1, report.Overdue)
	report, err = e.Evaluate(s.T().Context())
	s.Require().NoError(err)
	s.Equal(1, report.Suppressed)

	s.Require().Len(s.sent, 1)
	s.Equal(domain.InAppTypeSLAOverdue, s.sent[0].msg.Type)
	s.Equal(`Pendência "Registrar balanço hídrico..." está atrasada há 20 minutos`, s.sent[0].msg.Message)
}

func (s *EvaluatorTestSuite) TestStoreUnavailable() {
	s.settings(true, 30, false, false)
	s.repo.EXPECT().FindDueBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errs.ErrStoreUnavailable)

	_, err := s.newEvaluator(idempotent.NewLocalService()).Evaluate(s.T().Context())
	s.ErrorIs(err, errs.ErrStoreUnavailable)
}

func (s *EvaluatorTestSuite) TestPartialFailureKeepsGoing() {
	s.settings(true, 30, false, false)
	tasks := []domain.PendingTask{
		{ID: 1, Description: "a", ResponsibleID: 7, Priority: domain.PriorityLow, Deadline: s.now.Add(5 * time.Minute)},
		{ID: 2, Description: "b", ResponsibleID: 8, Priority: domain.PriorityLow, Deadline: s.now.Add(6 * time.Minute)},
	}
	s.repo.EXPECT().FindDueBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return(tasks, nil)
	s.userRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(domain.User{}, errs.ErrUserNotFound)
	s.userRepo.EXPECT().GetByID(gomock.Any(), int64(8)).Return(domain.User{ID: 8}, nil)
	s.captureNotifications()

	report, err := s.newEvaluator(idempotent.NewLocalService()).Evaluate(s.T().Context())
	s.ErrorIs(err, errs.ErrUserNotFound)
	s.Equal(1, report.Notified)
}
