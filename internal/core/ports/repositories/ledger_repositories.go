package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations over the general ledger
type LedgerReader interface {
	// ListLedgerRows retrieves a paginated list of ledger rows matching the
	// filter using token-based pagination, ordered by creation time newest
	// first. It returns the rows, a token for the next page, and an error.
	ListLedgerRows(ctx context.Context, filter domain.LedgerFilter, limit int, nextToken *string) ([]domain.LedgerRow, *string, error)

	// FindRowsByJournalID retrieves all ledger rows written by one journal,
	// ordered by line number.
	FindRowsByJournalID(ctx context.Context, journalID string) ([]domain.LedgerRow, error)

	// FindBalanceAsOf returns the running balance of an account after the
	// last ledger row dated strictly before the given time, or zero when the
	// account has no earlier rows.
	FindBalanceAsOf(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, error)

	// ListAccountMovements retrieves all ledger rows for an account within
	// the given date range, ordered by entry date then creation time.
	ListAccountMovements(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerRow, error)
}

// LedgerWriter defines the write operation the posting engine performs on the
// ledger inside its transaction. Ledger rows are append-only: there are no
// update or delete operations.
type LedgerWriter interface {
	// InsertLedgerRowsInTx appends the given rows within the transaction.
	InsertLedgerRowsInTx(ctx context.Context, tx pgx.Tx, rows []domain.LedgerRow) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
// This is a facade for clients that need access to all operations
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
