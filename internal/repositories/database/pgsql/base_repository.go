package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/propbooks/propbooks_backend/internal/apperrors"
	portsrepo "github.com/propbooks/propbooks_backend/internal/core/ports/repositories"
)

// Querier is the query surface shared by *pgxpool.Pool and pgx.Tx, so
// repository helpers can run inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgxPool is the pool surface repositories depend on: plain queries plus
// transaction start and batching. *pgxpool.Pool satisfies it, as do the mock
// pools used in repository tests.
type PgxPool interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

var _ PgxPool = (*pgxpool.Pool)(nil)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool PgxPool
}

var _ portsrepo.TransactionManager = (*BaseRepository)(nil)

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// Postgres error codes the repositories translate into application errors.
const (
	pgCodeUniqueViolation = "23505"
	pgCodeForeignKey      = "23503"
	pgCodeLockNotAvail    = "55P03"
	pgCodeRaiseException  = "P0001"
)

// mapPgError translates known database failure modes into the application
// error taxonomy, falling back to a wrapped internal error. Lock timeouts
// become retryable lock contention; exceptions raised by the append-only
// triggers become immutability errors.
func mapPgError(err error, message string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeLockNotAvail:
			return apperrors.NewLockContentionError(message)
		case pgCodeUniqueViolation:
			return apperrors.NewDuplicateError(message)
		case pgCodeForeignKey:
			return apperrors.NewValidationError(message + ": " + pgErr.Message)
		case pgCodeRaiseException:
			return apperrors.NewImmutableError(pgErr.Message)
		}
	}
	return apperrors.NewAppError(500, message, err)
}
