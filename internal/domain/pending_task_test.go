package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitee.com/flycash/shift-handover/internal/errs"
)

func TestPendingTask_Apply(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	base := PendingTask{
		ID:            1,
		Description:   "check infusion pump",
		ResponsibleID: 7,
		Deadline:      now.Add(time.Hour),
		Status:        TaskStatusOpen,
		Priority:      PriorityHigh,
	}
	blocked := base
	blocked.Status = TaskStatusBlocked
	blocked.BlockingReason = "waiting for pharmacy"
	done := base
	done.Status = TaskStatusDone

	status := func(s TaskStatus) *TaskStatus { return &s }
	str := func(s string) *string { return &s }
	prio := func(p Priority) *Priority { return &p }

	testCases := []struct {
		name    string
		task    PendingTask
		update  TaskUpdate
		wantErr error
		assert  func(t *testing.T, got PendingTask)
	}{
		{
			name:   "start progress",
			task:   base,
			update: TaskUpdate{Status: status(TaskStatusInProgress)},
			assert: func(t *testing.T, got PendingTask) {
				assert.Equal(t, TaskStatusInProgress, got.Status)
				assert.Empty(t, got.BlockingReason)
				assert.Equal(t, now, got.Utime)
			},
		},
		{
			name:    "blocked without reason",
			task:    base,
			update:  TaskUpdate{Status: status(TaskStatusBlocked)},
			wantErr: errs.ErrInvalidParameter,
		},
		{
			name:   "blocked with reason",
			task:   base,
			update: TaskUpdate{Status: status(TaskStatusBlocked), BlockingReason: str("  no bed  ")},
			assert: func(t *testing.T, got PendingTask) {
				assert.Equal(t, TaskStatusBlocked, got.Status)
				assert.Equal(t, "no bed", got.BlockingReason)
			},
		},
		{
			name:   "unblocking clears reason",
			task:   blocked,
			update: TaskUpdate{Status: status(TaskStatusInProgress)},
			assert: func(t *testing.T, got PendingTask) {
				assert.Equal(t, TaskStatusInProgress, got.Status)
				assert.Empty(t, got.BlockingReason)
			},
		},
		{
			name:    "reason without blocked status",
			task:    base,
			update:  TaskUpdate{BlockingReason: str("nope")},
			wantErr: errs.ErrInvalidParameter,
		},
		{
			name:    "terminal status",
			task:    done,
			update:  TaskUpdate{Status: status(TaskStatusOpen)},
			wantErr: errs.ErrInvalidParameter,
		},
		{
			name:    "unknown status",
			task:    base,
			update:  TaskUpdate{Status: status("archived")},
			wantErr: errs.ErrInvalidParameter,
		},
		{
			name:   "priority and description",
			task:   base,
			update: TaskUpdate{Priority: prio(PriorityCritical), Description: str("call the family")},
			assert: func(t *testing.T, got PendingTask) {
				assert.Equal(t, PriorityCritical, got.Priority)
				assert.Equal(t, "call the family", got.Description)
				assert.Equal(t, base.Deadline, got.Deadline)
			},
		},
		{
			name:    "empty description",
			task:    base,
			update:  TaskUpdate{Description: str("   ")},
			wantErr: errs.ErrInvalidParameter,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := tc.task.Apply(tc.update, now)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, tc.task, got)
				return
			}
			require.NoError(t, err)
			tc.assert(t, got)
		})
	}
}

func TestNotification_Attempts(t *testing.T) {
	t.Parallel()

	now := time.Now()
	n := Notification{Channel: ChannelEmail, Destination: "a@b.c", Status: SendStatusPending}
	for i := 1; i < MaxDeliveryAttempts; i++ {
		n.MarkAttemptFailed(now)
		assert.Equal(t, i, n.Attempts)
		assert.Equal(t, SendStatusPending, n.Status)
		assert.True(t, n.Deliverable())
	}
	n.MarkAttemptFailed(now)
	assert.Equal(t, MaxDeliveryAttempts, n.Attempts)
	assert.Equal(t, SendStatusFailed, n.Status)
	assert.False(t, n.Deliverable())

	// failed is terminal
	n.MarkAttemptFailed(now)
	n.MarkSent(now)
	assert.Equal(t, MaxDeliveryAttempts, n.Attempts)
	assert.Equal(t, SendStatusFailed, n.Status)
	assert.True(t, n.SentAt.IsZero())
}

func TestInAppNotification_MarkRead(t *testing.T) {
	t.Parallel()

	now := time.Now()
	n := InAppNotification{UserID: 1}
	assert.True(t, n.MarkRead(now))
	assert.True(t, n.Read)
	assert.Equal(t, now, n.ReadAt)
	assert.False(t, n.MarkRead(now.Add(time.Minute)))
	assert.Equal(t, now, n.ReadAt)
}
