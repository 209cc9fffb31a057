package maintenance

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	"gitee.com/flycash/shift-handover/internal/repository/cache"
	"gitee.com/flycash/shift-handover/internal/repository/cache/local"
	repomocks "gitee.com/flycash/shift-handover/internal/repository/mocks"
	configmocks "gitee.com/flycash/shift-handover/internal/service/config/mocks"
	maintenancemocks "gitee.com/flycash/shift-handover/internal/service/maintenance/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type fakeDumper struct {
	content string
}

func (f fakeDumper) Dump(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, f.content)
	return err
}

func TestMaintenanceSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(MaintenanceTestSuite))
}

type MaintenanceTestSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	notificationRepo *repomocks.MockNotificationRepository
	auditRepo        *repomocks.MockAuditRepository
	taskRepo         *repomocks.MockPendingTaskRepository
	configSvc        *configmocks.MockService
	cache            *cache.Cache
	now              time.Time
	dir              string
}

func (s *MaintenanceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.notificationRepo = repomocks.NewMockNotificationRepository(s.ctrl)
	s.auditRepo = repomocks.NewMockAuditRepository(s.ctrl)
	s.taskRepo = repomocks.NewMockPendingTaskRepository(s.ctrl)
	s.configSvc = configmocks.NewMockService(s.ctrl)
	s.cache = cache.NewCache(local.NewDefaultCache())
	s.now = time.Date(2025, 9, 1, 2, 0, 0, 0, time.UTC)
	s.dir = s.T().TempDir()
}

func (s *MaintenanceTestSuite) newService(dumper Dumper, cfg Config) *service {
	if cfg.Backup.Dir == "" {
		cfg.Backup.Dir = s.dir
	}
	return newService(s.notificationRepo, s.auditRepo, s.taskRepo, s.cache, s.configSvc, dumper, cfg,
		func() time.Time { return s.now })
}

func (s *MaintenanceTestSuite) TestPurgeOldNotifications() {
	s.notificationRepo.EXPECT().DeleteSentBefore(gomock.Any(), s.now.AddDate(0, 0, -30), defaultBatchSize).Return(int64(12), nil)

	n, err := s.newService(nil, Config{}).PurgeOldNotifications(s.T().Context(), 30)
	s.Require().NoError(err)
	s.Equal(int64(12), n)
}

func (s *MaintenanceTestSuite) TestPurgeInvalidRetention() {
	_, err := s.newService(nil, Config{}).PurgeOldAudit(s.T().Context(), 0)
	s.Error(err)
}

func (s *MaintenanceTestSuite) TestPurgeResolvedTasksBatches() {
	ctx := s.T().Context()
	s.cache.Set(ctx, cache.ListingKey(1, 50), []int{1}, time.Minute)
	cutoff := s.now.AddDate(0, 0, -365)
	gomock.InOrder(
		s.taskRepo.EXPECT().DeleteResolvedBefore(gomock.Any(), cutoff, 2).Return(int64(2), nil),
		s.taskRepo.EXPECT().DeleteResolvedBefore(gomock.Any(), cutoff, 2).Return(int64(1), nil),
	)

	n, err := s.newService(nil, Config{BatchSize: 2}).PurgeResolvedTasks(ctx, 365)
	s.Require().NoError(err)
	s.Equal(int64(3), n)
	var cached []int
	s.False(s.cache.Get(ctx, cache.ListingKey(1, 50), &cached))
}

func (s *MaintenanceTestSuite) TestRetentionPurgeAggregates() {
	s.notificationRepo.EXPECT().DeleteSentBefore(gomock.Any(), s.now.AddDate(0, 0, -30), gomock.Any()).Return(int64(0), errs.ErrStoreUnavailable)
	s.auditRepo.EXPECT().DeleteBefore(gomock.Any(), s.now.AddDate(0, 0, -90), gomock.Any()).Return(int64(4), nil)
	s.taskRepo.EXPECT().DeleteResolvedBefore(gomock.Any(), s.now.AddDate(0, 0, -365), gomock.Any()).Return(int64(0), nil)

	err := s.newService(nil, Config{}).RetentionPurge(s.T().Context())
	s.ErrorIs(err, errs.ErrStoreUnavailable)
}

func (s *MaintenanceTestSuite) TestPruneCache() {
	ctx := s.T().Context()
	s.cache.Set(ctx, cache.DashboardKey(1, true, "UTI"), 1, time.Hour)
	s.cache.Set(ctx, cache.NotificationsKey(1, 20), 1, time.Hour)
	s.cache.Set(ctx, cache.ListingKey(1, 50), 1, time.Hour)
	s.cache.Set(ctx, cache.ReportKey("daily", "abc"), 1, time.Hour)
	s.cache.Set(ctx, cache.ConfigKey(domain.ConfigAlertEnabled), 1, time.Hour)

	n := s.newService(nil, Config{}).PruneCache(ctx)
	s.Equal(4, n)
	var v int
	s.True(s.cache.Get(ctx, cache.ConfigKey(domain.ConfigAlertEnabled), &v))
}

func (s *MaintenanceTestSuite) TestScheduledBackupRotates() {
	// nine older artifacts plus an unrelated file
	for i := 1; i <= 9; i++ {
		name := filepath.Join(s.dir, backupPrefix+time.Date(2025, 8, i, 2, 0, 0, 0, time.UTC).Format(backupTimeLayout)+backupSuffix)
		s.Require().NoError(os.WriteFile(name, []byte("old"), 0o600))
	}
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "manual.sql"), []byte("keep"), 0o600))
	s.configSvc.EXPECT().GetBool(gomock.Any(), domain.ConfigBackupEnabled, true).Return(true)

	path, err := s.newService(fakeDumper{content: "-- dump"}, Config{}).ScheduledBackup(s.T().Context())
	s.Require().NoError(err)
	s.Equal(filepath.Join(s.dir, "backup_auto_20250901_020000.sql"), path)
	data, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Equal("-- dump", string(data))

	left, err := filepath.Glob(filepath.Join(s.dir, backupPrefix+"*"+backupSuffix))
	s.Require().NoError(err)
	s.Len(left, defaultKeep)
	s.NotContains(left, filepath.Join(s.dir, "backup_auto_20250803_020000.sql"))
	s.Contains(left, filepath.Join(s.dir, "backup_auto_20250804_020000.sql"))
	s.FileExists(filepath.Join(s.dir, "manual.sql"))
}

func (s *MaintenanceTestSuite) TestScheduledBackupDisabled() {
	s.configSvc.EXPECT().GetBool(gomock.Any(), domain.ConfigBackupEnabled, true).Return(false)
	dumper := maintenancemocks.NewMockDumper(s.ctrl)

	path, err := s.newService(dumper, Config{}).ScheduledBackup(s.T().Context())
	s.Require().NoError(err)
	s.Empty(path)
}

func (s *MaintenanceTestSuite) TestScheduledBackupFailureLeavesNothing() {
	s.configSvc.EXPECT().GetBool(gomock.Any(), domain.ConfigBackupEnabled, true).Return(true)
	dumper := maintenancemocks.NewMockDumper(s.ctrl)
	dumper.EXPECT().Dump(gomock.Any(), gomock.Any()).Return(errors.New("access denied"))

	_, err := s.newService(dumper, Config{}).ScheduledBackup(s.T().Context())
	s.Error(err)
	entries, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	s.Empty(entries)
}
