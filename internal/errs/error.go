package errs

import (
	"errors"
	"fmt"
)

// Shared error kinds. Callers wrap them with fmt.Errorf("%w: ...") and check with errors.Is.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrPermissionDenied = errors.New("permission denied")

	ErrStoreUnavailable = errors.New("store unavailable")
	ErrNotFound         = errors.New("record not found")

	ErrTaskNotFound              = fmt.Errorf("%w: pending task", ErrNotFound)
	ErrUserNotFound              = fmt.Errorf("%w: user", ErrNotFound)
	ErrConfigNotFound            = fmt.Errorf("%w: config entry", ErrNotFound)
	ErrInAppNotificationNotFound = fmt.Errorf("%w: in-app notification", ErrNotFound)

	ErrTaskVersionMismatch = errors.New("pending task was modified concurrently")
	ErrDuplicateKey        = errors.New("duplicate key")

	ErrSendNotificationFailed = errors.New("notification delivery failed")
	ErrNoAvailableProvider    = errors.New("no available provider")
	ErrNoAvailableChannel     = errors.New("no available channel")
	ErrRateLimited            = errors.New("rate limited")

	// ErrIntegrityFailure means an audit row could not be written.
	ErrIntegrityFailure = errors.New("audit integrity failure")
	ErrTimeout          = errors.New("operation timed out")

	ErrJobTimeout = errors.New("job exceeded its wall-clock limit")
	ErrJobRunning = errors.New("job already running")
	ErrUnknownJob = errors.New("unknown job")
)
