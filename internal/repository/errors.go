package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/shift-handover/internal/errs"
	"gorm.io/gorm"
)

// storeError maps a dao error onto the shared taxonomy.
func storeError(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, errs.ErrIntegrityFailure),
		errors.Is(err, errs.ErrTaskVersionMismatch),
		errors.Is(err, errs.ErrStoreUnavailable):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w: %w", errs.ErrStoreUnavailable, errs.ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %w", errs.ErrStoreUnavailable, err)
	}
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
