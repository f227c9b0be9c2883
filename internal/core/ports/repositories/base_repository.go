package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is implemented by repositories whose operations can be
// grouped into a single database transaction, such as the posting engine's
// journal writes.
type TransactionManager interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits the given transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back the given transaction. Rolling back an already
	// finished transaction is not an error.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
