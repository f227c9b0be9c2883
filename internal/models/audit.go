package models

import (
	"time"
)

// AuditRecord represents a row of the append-only audit_trail table.
// Changes holds the JSONB payload as marshalled bytes.
type AuditRecord struct {
	AuditID    string    `db:"audit_id"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	Changes    []byte    `db:"changes"`
	ActorID    string    `db:"actor_id"`
	OccurredAt time.Time `db:"occurred_at"`
}
