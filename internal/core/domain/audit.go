package domain

import (
	"time"
)

// AuditAction names a recorded mutation.
type AuditAction string

const (
	AuditAccountCreated     AuditAction = "account.created"
	AuditAccountUpdated     AuditAction = "account.updated"
	AuditAccountDeactivated AuditAction = "account.deactivated"
	AuditAccountDeleted     AuditAction = "account.deleted"
	AuditAccountProvisioned AuditAction = "account.provisioned"
	AuditCategoryCreated    AuditAction = "category.created"
	AuditCategoryUpdated    AuditAction = "category.updated"
	AuditRateCreated        AuditAction = "exchange_rate.created"
	AuditJournalCreated     AuditAction = "journal.created"
	AuditJournalUpdated     AuditAction = "journal.updated"
	AuditJournalDeleted     AuditAction = "journal.deleted"
	AuditJournalPosted      AuditAction = "journal.posted"
	AuditJournalReversed    AuditAction = "journal.reversed"
	AuditEntryReallocated   AuditAction = "entry.reallocated"
)

// AuditRecord is one append-only entry of the audit trail. Records carry the
// acting identity explicitly; there is no ambient "current user". Updating or
// deleting a record is forbidden at the storage layer, not merely by
// convention.
type AuditRecord struct {
	AuditID    string         `json:"auditID"`    // Primary Key (UUID)
	Action     AuditAction    `json:"action"`     // What happened
	EntityType string         `json:"entityType"` // e.g., "journal", "account"
	EntityID   string         `json:"entityID"`   // Identifier of the mutated record
	Changes    map[string]any `json:"changes"`    // Structured description of the mutation
	ActorID    string         `json:"actorID"`    // Pre-authenticated actor identity
	OccurredAt time.Time      `json:"occurredAt"`
}
