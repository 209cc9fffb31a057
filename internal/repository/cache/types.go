package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrKeyNotFound = errors.New("cache key not found")

// Backend is a raw key/value store. Implementations report failures as
// errors and a miss as ErrKeyNotFound.
//
//go:generate mockgen -source=./types.go -destination=./mocks/backend.mock.go -package=cachemocks Backend
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeleteMatching removes keys matching a glob pattern and returns how many were removed.
	DeleteMatching(ctx context.Context, pattern string) (int, error)
}

// Read-view namespaces.
const (
	NamespaceDashboard     = "dashboard"
	NamespaceListing       = "listing"
	NamespaceNotifications = "notifications"
	NamespaceReport        = "report"
	NamespaceConfig        = "config"
)

const (
	DashboardTTL     = 5 * time.Minute
	ListingTTL       = 5 * time.Minute
	NotificationsTTL = time.Minute
	ReportTTL        = 30 * time.Minute
	ConfigTTL        = 5 * time.Minute
)

func DashboardKey(userID int64, isManager bool, unit string) string {
	return fmt.Sprintf("%s:%d:%t:%s", NamespaceDashboard, userID, isManager, unit)
}

func ListingKey(userID int64, limit int) string {
	return fmt.Sprintf("%s:%d:%d", NamespaceListing, userID, limit)
}

func NotificationsKey(userID int64, limit int) string {
	return fmt.Sprintf("%s:%d:%d", NamespaceNotifications, userID, limit)
}

func ReportKey(kind, digest string) string {
	return fmt.Sprintf("%s:%s:%s", NamespaceReport, kind, digest)
}

func ConfigKey(key string) string {
	return fmt.Sprintf("%s:%s", NamespaceConfig, key)
}

// UserPatterns matches every per-user read view of userID.
func UserPatterns(userID int64) []string {
	return []string{
		fmt.Sprintf("user:%d:*", userID),
		fmt.Sprintf("%s:%d:*", NamespaceDashboard, userID),
		fmt.Sprintf("%s:%d:*", NamespaceListing, userID),
		fmt.Sprintf("%s:%d:*", NamespaceNotifications, userID),
	}
}

// NamespacePattern matches a whole namespace.
func NamespacePattern(namespace string) string {
	return namespace + ":*"
}
