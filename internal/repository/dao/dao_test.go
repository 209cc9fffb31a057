package dao

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gitee.com/flycash/shift-handover/internal/errs"
)

func TestDAOSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(DAOTestSuite))
}

type DAOTestSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	db   *gorm.DB
}

func (s *DAOTestSuite) SetupTest() {
	sqlDB, mock, err := sqlmock.New()
	s.Require().NoError(err)
	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.db = db
	s.mock = mock
}

func (s *DAOTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *DAOTestSuite) TestPendingTaskUpdateWithAudit_VersionMismatch() {
	t := s.T()
	s.mock.ExpectBegin()
	s.mock.ExpectExec("UPDATE `pending_tasks` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectRollback()

	d := NewPendingTaskDAO(s.db)
	err := d.UpdateWithAudit(context.Background(), PendingTask{ID: 1, Version: 3, Status: "done"}, AuditEntry{ID: 9})
	assert.ErrorIs(t, err, errs.ErrTaskVersionMismatch)
}

func (s *DAOTestSuite) TestPendingTaskUpdateWithAudit_AuditFailureRollsBack() {
	t := s.T()
	s.mock.ExpectBegin()
	s.mock.ExpectExec("UPDATE `pending_tasks` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec("INSERT INTO `audit_entries`").
		WillReturnError(errors.New("disk full"))
	s.mock.ExpectRollback()

	d := NewPendingTaskDAO(s.db)
	err := d.UpdateWithAudit(context.Background(), PendingTask{ID: 1, Version: 1, Status: "done"}, AuditEntry{ID: 9})
	assert.ErrorIs(t, err, errs.ErrIntegrityFailure)
}

func (s *DAOTestSuite) TestPendingTaskCreateWithAudit() {
	t := s.T()
	s.mock.ExpectBegin()
	s.mock.ExpectExec("INSERT INTO `pending_tasks`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	s.mock.ExpectExec("INSERT INTO `audit_entries`").
		WillReturnResult(sqlmock.NewResult(9, 1))
	s.mock.ExpectCommit()

	d := NewPendingTaskDAO(s.db)
	task, err := d.CreateWithAudit(context.Background(), PendingTask{ID: 1, Status: "open"}, AuditEntry{ID: 9})
	require.NoError(t, err)
	assert.Equal(t, 1, task.Version)
	assert.NotZero(t, task.Ctime)
	assert.Equal(t, task.Ctime, task.Utime)
}

func (s *DAOTestSuite) TestPendingTaskCreateWithAudit_KeepsCallerTime() {
	t := s.T()
	s.mock.ExpectBegin()
	s.mock.ExpectExec("INSERT INTO `pending_tasks`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	s.mock.ExpectExec("INSERT INTO `audit_entries`").
		WillReturnResult(sqlmock.NewResult(9, 1))
	s.mock.ExpectCommit()

	created := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC).UnixMilli()
	d := NewPendingTaskDAO(s.db)
	task, err := d.CreateWithAudit(context.Background(),
		PendingTask{ID: 1, Status: "open", Ctime: created, Utime: created}, AuditEntry{ID: 9})
	require.NoError(t, err)
	assert.Equal(t, created, task.Ctime)
	assert.Equal(t, created, task.Utime)
}

func (s *DAOTestSuite) TestNotificationCreate_Timestamps() {
	t := s.T()
	created := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC).UnixMilli()
	s.mock.ExpectExec("INSERT INTO `notifications`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	s.mock.ExpectExec("INSERT INTO `notifications`").
		WillReturnResult(sqlmock.NewResult(2, 1))

	d := NewNotificationDAO(s.db)
	n, err := d.Create(context.Background(), Notification{ID: 1, Channel: "email", Destination: "a@b.c", Ctime: created, Utime: created})
	require.NoError(t, err)
	assert.Equal(t, created, n.Ctime)
	assert.Equal(t, created, n.Utime)
	assert.Equal(t, notificationStatusPending, n.Status)

	before := time.Now().UnixMilli()
	n, err = d.Create(context.Background(), Notification{ID: 2, Channel: "email", Destination: "a@b.c"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n.Ctime, before)
	assert.Equal(t, n.Ctime, n.Utime)
}

func (s *DAOTestSuite) TestNotificationFindDeliverable() {
	t := s.T()
	now := time.Now().UnixMilli()
	rows := sqlmock.NewRows([]string{"id", "task_id", "channel", "destination", "payload", "status", "attempts", "sent_at", "ctime", "utime", "provider"}).
		AddRow(1, 0, "email", "a@b.c", `{"title":"x"}`, "pending", 0, nil, now, now, nil).
		AddRow(2, 5, "sms", "+5511999", nil, "pending", 2, nil, now+1, now+1, nil)
	s.mock.ExpectQuery("SELECT \\* FROM `notifications` WHERE status = \\? AND attempts < \\? ORDER BY ctime ASC, id ASC").
		WillReturnRows(rows)

	d := NewNotificationDAO(s.db)
	res, err := d.FindDeliverable(context.Background(), 50, 3)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, uint64(1), res[0].ID)
	assert.JSONEq(t, `{"title":"x"}`, string(res[0].Payload))
	assert.Equal(t, 2, res[1].Attempts)
	assert.Nil(t, res[1].Payload)
}

func (s *DAOTestSuite) TestNotificationBatchUpdateDelivery() {
	t := s.T()
	s.mock.ExpectBegin()
	s.mock.ExpectExec("UPDATE `notifications` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// the second row was advanced by someone else
	s.mock.ExpectExec("UPDATE `notifications` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	d := NewNotificationDAO(s.db)
	now := time.Now().UnixMilli()
	affected, err := d.BatchUpdateDelivery(context.Background(), []DeliveryUpdate{
		{ID: 1, FromAttempts: 0, Status: "sent", Attempts: 0, SentAt: now, Utime: now, Provider: "smtp"},
		{ID: 2, FromAttempts: 2, Status: "failed", Attempts: 3, Utime: now},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func (s *DAOTestSuite) TestConfigInsertIfAbsent() {
	t := s.T()
	s.mock.ExpectExec("INSERT INTO `configs`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	s.mock.ExpectExec("INSERT INTO `configs`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	d := NewConfigDAO(s.db)
	ok, err := d.InsertIfAbsent(context.Background(), Config{Key: "sla_critico", Value: "60", Type: "int"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = d.InsertIfAbsent(context.Background(), Config{Key: "sla_alto", Value: "240", Type: "int"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func (s *DAOTestSuite) TestInAppMarkRead_AlreadyRead() {
	t := s.T()
	s.mock.ExpectExec("UPDATE `in_app_notifications` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	d := NewInAppNotificationDAO(s.db)
	affected, err := d.MarkRead(context.Background(), 1, 7, time.Now().UnixMilli())
	require.NoError(t, err)
	assert.Zero(t, affected)
}
