package domain

import (
	"fmt"
	"strings"
	"time"

	"gitee.com/flycash/shift-handover/internal/errs"
)

// TaskStatus 待办状态
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusBlocked    TaskStatus = "blocked"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusBlocked, TaskStatusDone, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusDone || s == TaskStatusCancelled
}

// ActiveTaskStatuses are the statuses the SLA evaluator watches.
var ActiveTaskStatuses = []TaskStatus{TaskStatusOpen, TaskStatusInProgress}

// Priority 优先级
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// PendingTask is an action owed by a responsible party under a handover record.
type PendingTask struct {
	ID            uint64
	HandoverID    int64
	Description   string
	ResponsibleID int64
	// Deadline is fixed at creation.
	Deadline       time.Time
	Status         TaskStatus
	Priority       Priority
	BlockingReason string
	// SLAMinutes is 0 when the deadline was given explicitly.
	SLAMinutes int
	// Version guards concurrent updates.
	Version int
	Ctime   time.Time
	Utime   time.Time
}

// TaskUpdate enumerates the fields a caller may change. nil means unchanged.
type TaskUpdate struct {
	Status         *TaskStatus
	BlockingReason *string
	Description    *string
	Priority       *Priority
}

func (u TaskUpdate) IsEmpty() bool {
	return u.Status == nil && u.BlockingReason == nil && u.Description == nil && u.Priority == nil
}

// Apply returns the task after the update, enforcing the status rules.
func (t PendingTask) Apply(u TaskUpdate, now time.Time) (PendingTask, error) {
	next := t
	if u.Description != nil {
		desc := strings.TrimSpace(*u.Description)
		if desc == "" {
			return t, fmt.Errorf("%w: description is empty", errs.ErrInvalidParameter)
		}
		next.Description = desc
	}
	if u.Priority != nil {
		if !u.Priority.IsValid() {
			return t, fmt.Errorf("%w: priority = %q", errs.ErrInvalidParameter, *u.Priority)
		}
		next.Priority = *u.Priority
	}
	if u.Status != nil {
		if !u.Status.IsValid() {
			return t, fmt.Errorf("%w: status = %q", errs.ErrInvalidParameter, *u.Status)
		}
		if t.Status.IsTerminal() && *u.Status != t.Status {
			return t, fmt.Errorf("%w: task is %s", errs.ErrInvalidParameter, t.Status)
		}
		next.Status = *u.Status
	}
	if next.Status == TaskStatusBlocked {
		reason := next.BlockingReason
		if u.BlockingReason != nil {
			reason = strings.TrimSpace(*u.BlockingReason)
		}
		if reason == "" {
			return t, fmt.Errorf("%w: blocking reason is required when blocked", errs.ErrInvalidParameter)
		}
		next.BlockingReason = reason
	} else {
		if u.BlockingReason != nil && strings.TrimSpace(*u.BlockingReason) != "" {
			return t, fmt.Errorf("%w: blocking reason is only allowed when blocked", errs.ErrInvalidParameter)
		}
		next.BlockingReason = ""
	}
	next.Utime = now
	return next, nil
}

// MinutesLeft rounds down the time left until the deadline.
func (t PendingTask) MinutesLeft(now time.Time) int {
	return int(t.Deadline.Sub(now) / time.Minute)
}
