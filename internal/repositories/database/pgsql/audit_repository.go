package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/propbooks/propbooks_backend/internal/apperrors"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	portsrepo "github.com/propbooks/propbooks_backend/internal/core/ports/repositories"
	"github.com/propbooks/propbooks_backend/internal/models"
	"github.com/propbooks/propbooks_backend/internal/utils/mapping"
	"github.com/propbooks/propbooks_backend/internal/utils/pagination"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the append-only audit
// trail. Database triggers reject UPDATE and DELETE on the table, so the
// repository exposes no such methods.
func newPgxAuditRepository(pool PgxPool) *PgxAuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepositoryFacade
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

const auditColumns = `audit_id, action, entity_type, entity_id, changes, actor_id, occurred_at`

const insertAuditQuery = `
	INSERT INTO audit_trail (` + auditColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

// scanAuditRecord reads one audit trail row in auditColumns order.
func scanAuditRecord(row pgx.Row) (models.AuditRecord, error) {
	var m models.AuditRecord
	err := row.Scan(
		&m.AuditID,
		&m.Action,
		&m.EntityType,
		&m.EntityID,
		&m.Changes,
		&m.ActorID,
		&m.OccurredAt,
	)
	return m, err
}

// SaveAuditRecord appends a record outside any caller transaction.
func (r *PgxAuditRepository) SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error {
	m, err := mapping.ToModelAuditRecord(record)
	if err != nil {
		return apperrors.NewInternalError("failed to encode audit record "+record.AuditID, err)
	}
	if _, err := r.Pool.Exec(ctx, insertAuditQuery,
		m.AuditID, m.Action, m.EntityType, m.EntityID, m.Changes, m.ActorID, m.OccurredAt,
	); err != nil {
		return mapPgError(err, "failed to save audit record "+m.AuditID)
	}
	return nil
}

// SaveAuditRecordInTx appends a record within the given transaction so it
// commits or rolls back with the operation it describes.
func (r *PgxAuditRepository) SaveAuditRecordInTx(ctx context.Context, tx pgx.Tx, record domain.AuditRecord) error {
	m, err := mapping.ToModelAuditRecord(record)
	if err != nil {
		return apperrors.NewInternalError("failed to encode audit record "+record.AuditID, err)
	}
	if _, err := tx.Exec(ctx, insertAuditQuery,
		m.AuditID, m.Action, m.EntityType, m.EntityID, m.Changes, m.ActorID, m.OccurredAt,
	); err != nil {
		return mapPgError(err, "failed to save audit record "+m.AuditID)
	}
	return nil
}

// ListAuditRecordsByEntity retrieves a paginated list of audit records for
// one entity, newest first.
func (r *PgxAuditRepository) ListAuditRecordsByEntity(ctx context.Context, entityType, entityID string, limit int, nextToken *string) ([]domain.AuditRecord, *string, error) {
	conds := []string{"entity_type = $1", "entity_id = $2"}
	args := []any{entityType, entityID}
	return r.listAuditRecords(ctx, conds, args, limit, nextToken)
}

// ListAuditRecordsByActor retrieves a paginated list of audit records written
// by one actor, newest first.
func (r *PgxAuditRepository) ListAuditRecordsByActor(ctx context.Context, actorID string, limit int, nextToken *string) ([]domain.AuditRecord, *string, error) {
	conds := []string{"actor_id = $1"}
	args := []any{actorID}
	return r.listAuditRecords(ctx, conds, args, limit, nextToken)
}

// listAuditRecords runs the shared token-paginated listing over the given
// filter conditions, ordered by occurrence time newest first with audit_id
// as tie-breaker.
func (r *PgxAuditRepository) listAuditRecords(ctx context.Context, conds []string, args []any, limit int, nextToken *string) ([]domain.AuditRecord, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	if nextToken != nil && *nextToken != "" {
		fields, decodeErr := pagination.DecodeMultiFieldToken(*nextToken)
		if decodeErr != nil || len(fields) != 2 {
			return nil, nil, apperrors.NewValidationError("invalid nextToken")
		}
		lastOccurredAt, parseErr := time.Parse(time.RFC3339Nano, fields[0])
		if parseErr != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken")
		}
		args = append(args, lastOccurredAt, fields[1])
		conds = append(conds, "(occurred_at, audit_id) < ($"+strconv.Itoa(len(args)-1)+", $"+strconv.Itoa(len(args))+")")
	}

	whereClause := "WHERE " + conds[0]
	for _, c := range conds[1:] {
		whereClause += " AND " + c
	}
	args = append(args, fetchLimit)
	query := `
		SELECT ` + auditColumns + `
		FROM audit_trail
		` + whereClause + `
		ORDER BY occurred_at DESC, audit_id DESC
		LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query audit trail: %w", err)
	}
	defer rows.Close()

	modelRecords := make([]models.AuditRecord, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanAuditRecord(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan audit row: %w", scanErr)
		}
		modelRecords = append(modelRecords, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating audit rows: %w", err)
	}

	var nextTokenVal *string
	if len(modelRecords) > limit {
		lastRecord := modelRecords[limit-1]
		newToken := pagination.EncodeMultiFieldToken(lastRecord.OccurredAt.Format(time.RFC3339Nano), lastRecord.AuditID)
		nextTokenVal = &newToken
		modelRecords = modelRecords[:limit]
	}

	records, err := mapping.ToDomainAuditRecordSlice(modelRecords)
	if err != nil {
		return nil, nil, apperrors.NewInternalError("failed to decode audit records", err)
	}
	return records, nextTokenVal, nil
}
