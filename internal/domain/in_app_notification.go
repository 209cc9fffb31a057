package domain

import (
	"time"
)

// In-app notification type tags.
const (
	InAppTypeSLADueSoon         = "sla_vencendo"
	InAppTypeSLACriticalDueSoon = "sla_critico_vencendo"
	InAppTypeSLAOverdue         = "sla_vencido"
	InAppTypeCriticalTask       = "pendencia_critica"
)

// InAppNotification is the unread/read marker shown to a user.
type InAppNotification struct {
	ID      uint64
	UserID  int64  `validate:"gt=0"`
	Type    string `validate:"required,max=64"`
	Title   string `validate:"required,max=255"`
	Message string `validate:"required"`
	Link    string `validate:"max=512"`
	Read    bool
	// ReadAt is zero while Read is false.
	ReadAt time.Time
	Ctime  time.Time
}

// MarkRead flips the marker once. It reports false when it was already read.
func (n *InAppNotification) MarkRead(now time.Time) bool {
	if n.Read {
		return false
	}
	n.Read = true
	n.ReadAt = now
	return true
}
