package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/propbooks/propbooks_backend/internal/apperrors"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	portsrepo "github.com/propbooks/propbooks_backend/internal/core/ports/repositories"
	"github.com/propbooks/propbooks_backend/internal/models"
	"github.com/propbooks/propbooks_backend/internal/utils/mapping"
)

type PgxReallocationRepository struct {
	BaseRepository
}

// newPgxReallocationRepository creates a new read-side repository for
// reallocation links. The link rows are written by the posting engine inside
// the reallocation transaction.
func newPgxReallocationRepository(pool PgxPool) *PgxReallocationRepository {
	return &PgxReallocationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxReallocationRepository implements portsrepo.ReallocationRepositoryFacade
var _ portsrepo.ReallocationRepositoryFacade = (*PgxReallocationRepository)(nil)

const reallocationColumns = `reallocation_id, source_entry_id, new_entry_id, adjustment_journal_id, from_account_id, to_account_id, amount, reason, actor_id, reallocated_at`

// scanReallocation reads one reallocation row in reallocationColumns order.
func scanReallocation(row pgx.Row) (models.Reallocation, error) {
	var m models.Reallocation
	err := row.Scan(
		&m.ReallocationID,
		&m.SourceEntryID,
		&m.NewEntryID,
		&m.AdjustmentID,
		&m.FromAccountID,
		&m.ToAccountID,
		&m.Amount,
		&m.Reason,
		&m.ActorID,
		&m.ReallocatedAt,
	)
	return m, err
}

// FindReallocationByID retrieves a reallocation by its ID.
func (r *PgxReallocationRepository) FindReallocationByID(ctx context.Context, reallocationID string) (*domain.Reallocation, error) {
	query := `
		SELECT ` + reallocationColumns + `
		FROM reallocations
		WHERE reallocation_id = $1;
	`
	m, err := scanReallocation(r.Pool.QueryRow(ctx, query, reallocationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reallocation by ID %s: %w", reallocationID, err)
	}

	reallocation := mapping.ToDomainReallocation(m)
	return &reallocation, nil
}

// ListReallocationsBySourceEntry retrieves all reallocations recorded against
// one journal entry, newest first.
func (r *PgxReallocationRepository) ListReallocationsBySourceEntry(ctx context.Context, sourceEntryID string) ([]domain.Reallocation, error) {
	query := `
		SELECT ` + reallocationColumns + `
		FROM reallocations
		WHERE source_entry_id = $1
		ORDER BY reallocated_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, sourceEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reallocations for entry %s: %w", sourceEntryID, err)
	}
	defer rows.Close()

	reallocations := []domain.Reallocation{}
	for rows.Next() {
		m, scanErr := scanReallocation(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan reallocation row: %w", scanErr)
		}
		reallocations = append(reallocations, mapping.ToDomainReallocation(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reallocation rows: %w", err)
	}

	return reallocations, nil
}
