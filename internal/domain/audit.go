package domain

import (
	"encoding/json"
	"time"
)

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionRead   AuditAction = "read"
)

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete, AuditActionRead:
		return true
	default:
		return false
	}
}

// Audited object kinds.
const (
	ObjectPendingTask = "pending_task"
	ObjectConfig      = "config"
)

// AuditEntry is an immutable ledger row. Before is nil for create.
type AuditEntry struct {
	ID         uint64
	ObjectKind string
	ObjectID   string
	Action     AuditAction
	Before     json.RawMessage
	After      json.RawMessage
	ActorID    int64
	Timestamp  time.Time
	// Hash is the hex digest over the canonical form of the fields above.
	Hash string
}
