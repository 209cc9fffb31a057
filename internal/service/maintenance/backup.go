package maintenance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/gotomicro/ego/core/elog"
)

const (
	backupPrefix     = "backup_auto_"
	backupSuffix     = ".sql"
	backupTimeLayout = "20060102_150405"
	defaultKeep      = 7
)

// Dumper 把整库导出写到 w
//
//go:generate mockgen -source=./backup.go -destination=./mocks/dumper.mock.go -package=maintenancemocks Dumper
type Dumper interface {
	Dump(ctx context.Context, w io.Writer) error
}

type BackupConfig struct {
	Dir string `yaml:"dir"`
	// Keep 保留最近几份，默认 7
	Keep int `yaml:"keep"`
	// Binary 默认 mysqldump
	Binary   string `yaml:"binary"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// MySQLDumper 调用外部 mysqldump
type MySQLDumper struct {
	cfg BackupConfig
}

func NewMySQLDumper(cfg BackupConfig) *MySQLDumper {
	if cfg.Binary == "" {
		cfg.Binary = "mysqldump"
	}
	return &MySQLDumper{cfg: cfg}
}

func (m *MySQLDumper) Dump(ctx context.Context, w io.Writer) error {
	args := []string{"--single-transaction", "--skip-lock-tables"}
	if m.cfg.Host != "" {
		args = append(args, "-h", m.cfg.Host)
	}
	if m.cfg.Port > 0 {
		args = append(args, "-P", strconv.Itoa(m.cfg.Port))
	}
	if m.cfg.User != "" {
		args = append(args, "-u", m.cfg.User)
	}
	args = append(args, m.cfg.Database)

	cmd := exec.CommandContext(ctx, m.cfg.Binary, args...)
	// 密码走环境变量，不出现在进程参数里
	cmd.Env = append(os.Environ(), "MYSQL_PWD="+m.cfg.Password)
	var stderr bytes.Buffer
	cmd.Stdout = w
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s 执行失败: %w: %s", m.cfg.Binary, err, stderr.String())
	}
	return nil
}

// backupStore 管理备份目录下的文件
type backupStore struct {
	dir    string
	keep   int
	dumper Dumper
	logger *elog.Component
}

func newBackupStore(cfg BackupConfig, dumper Dumper) *backupStore {
	keep := cfg.Keep
	if keep <= 0 {
		keep = defaultKeep
	}
	dir := cfg.Dir
	if dir == "" {
		dir = "backups"
	}
	return &backupStore{
		dir:    dir,
		keep:   keep,
		dumper: dumper,
		logger: elog.DefaultLogger.With(elog.String("component", "backup")),
	}
}

// create 先写临时文件，导出成功后再改名，失败不会留下半截备份
func (b *backupStore) create(ctx context.Context, now time.Time) (string, error) {
	if err := os.MkdirAll(b.dir, 0o750); err != nil {
		return "", fmt.Errorf("创建备份目录失败: %w", err)
	}
	name := backupPrefix + now.UTC().Format(backupTimeLayout) + backupSuffix
	final := filepath.Join(b.dir, name)
	tmp, err := os.CreateTemp(b.dir, ".tmp_"+name+"_*")
	if err != nil {
		return "", fmt.Errorf("创建备份文件失败: %w", err)
	}
	tmpName := tmp.Name()
	dumpErr := b.dumper.Dump(ctx, tmp)
	closeErr := tmp.Close()
	if dumpErr != nil || closeErr != nil {
		_ = os.Remove(tmpName)
		if dumpErr != nil {
			return "", dumpErr
		}
		return "", fmt.Errorf("写入备份文件失败: %w", closeErr)
	}
	if err = os.Rename(tmpName, final); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("保存备份文件失败: %w", err)
	}
	return final, nil
}

// rotate 按文件名排序，只保留最新的 keep 份
func (b *backupStore) rotate() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(b.dir, backupPrefix+"*"+backupSuffix))
	if err != nil {
		return nil, err
	}
	if len(matches) <= b.keep {
		return nil, nil
	}
	sort.Strings(matches)
	stale := matches[:len(matches)-b.keep]
	removed := make([]string, 0, len(stale))
	for _, path := range stale {
		if err = os.Remove(path); err != nil {
			b.logger.Warn("删除旧备份失败", elog.String("file", path), elog.FieldErr(err))
			continue
		}
		removed = append(removed, path)
	}
	return removed, nil
}
