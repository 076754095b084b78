package domain

import "time"

// AuditAction identifies one kind of recorded task mutation.
type AuditAction string

const (
	ActionComplete    AuditAction = "complete"
	ActionUndo        AuditAction = "undo"
	ActionUploadProof AuditAction = "upload_proof"
)

// AuditEntry is an immutable, append-only record of one task mutation.
// Entries are never updated or deleted; they form the ledger behind the
// activity feed. The timestamp is assigned server-side at write time.
type AuditEntry struct {
	ID        string      `json:"id"`
	TaskID    string      `json:"task_id"`
	TaskTitle string      `json:"task_title,omitempty"`
	ActorID   string      `json:"actor_id"`
	ActorName string      `json:"actor_name,omitempty"`
	Action    AuditAction `json:"action"`
	Timestamp time.Time   `json:"timestamp"`
}

// AuditActionFor picks the ledger action for one toggle call. A supplied
// proof takes precedence over the completion flag: uploading evidence is
// the more specific act.
func AuditActionFor(setCompleted bool, hasProof bool) AuditAction {
	if hasProof {
		return ActionUploadProof
	}
	if setCompleted {
		return ActionComplete
	}
	return ActionUndo
}
