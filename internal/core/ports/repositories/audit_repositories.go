package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
)

// AuditReader defines read operations for the audit trail
type AuditReader interface {
	// ListAuditRecordsByEntity retrieves a paginated list of audit records
	// for one entity using token-based pagination, newest first. It returns
	// the records, a token for the next page, and an error.
	ListAuditRecordsByEntity(ctx context.Context, entityType, entityID string, limit int, nextToken *string) ([]domain.AuditRecord, *string, error)

	// ListAuditRecordsByActor retrieves a paginated list of audit records
	// written by one actor, newest first.
	ListAuditRecordsByActor(ctx context.Context, actorID string, limit int, nextToken *string) ([]domain.AuditRecord, *string, error)
}

// AuditWriter defines write operations for the audit trail. The trail is
// append-only: there are no update or delete operations, and the database
// enforces the same rule with triggers.
type AuditWriter interface {
	// SaveAuditRecord appends a record outside any caller transaction.
	SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error

	// SaveAuditRecordInTx appends a record within the given transaction so
	// it commits or rolls back with the operation it describes.
	SaveAuditRecordInTx(ctx context.Context, tx pgx.Tx, record domain.AuditRecord) error
}

// AuditRepositoryFacade combines all audit-related repository interfaces
// This is a facade for clients that need access to all operations
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}
