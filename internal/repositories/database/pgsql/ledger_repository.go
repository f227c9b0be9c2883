package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/propbooks/propbooks_backend/internal/apperrors"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	portsrepo "github.com/propbooks/propbooks_backend/internal/core/ports/repositories"
	"github.com/propbooks/propbooks_backend/internal/models"
	"github.com/propbooks/propbooks_backend/internal/utils/mapping"
	"github.com/propbooks/propbooks_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for the append-only general
// ledger.
func newPgxLedgerRepository(pool PgxPool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerColumns = `ledger_row_id, journal_entry_id, journal_id, journal_number, account_id, entry_date, description, debit_amount, credit_amount, balance, currency_code, exchange_rate, source_type, source_id, created_at, created_by`

// scanLedgerRow reads one general ledger row in ledgerColumns order.
func scanLedgerRow(row pgx.Row) (models.LedgerRow, error) {
	var m models.LedgerRow
	err := row.Scan(
		&m.LedgerRowID,
		&m.JournalEntryID,
		&m.JournalID,
		&m.JournalNumber,
		&m.AccountID,
		&m.EntryDate,
		&m.Description,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.Balance,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.SourceType,
		&m.SourceID,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// collectLedgerRows drains a row set into domain ledger rows.
func collectLedgerRows(rows pgx.Rows) ([]domain.LedgerRow, error) {
	defer rows.Close()

	modelRows := []models.LedgerRow{}
	for rows.Next() {
		m, err := scanLedgerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		modelRows = append(modelRows, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}

	return mapping.ToDomainLedgerRowSlice(modelRows), nil
}

// InsertLedgerRowsInTx appends the given rows within the posting transaction.
// The ledger has no update or delete path; this is its only write.
func (r *PgxLedgerRepository) InsertLedgerRowsInTx(ctx context.Context, tx pgx.Tx, rows []domain.LedgerRow) error {
	if len(rows) == 0 {
		return nil
	}
	query := `
		INSERT INTO general_ledger (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	batch := &pgx.Batch{}
	for _, row := range rows {
		m := mapping.ToModelLedgerRow(row)
		batch.Queue(query,
			m.LedgerRowID,
			m.JournalEntryID,
			m.JournalID,
			m.JournalNumber,
			m.AccountID,
			m.EntryDate,
			m.Description,
			m.DebitAmount,
			m.CreditAmount,
			m.Balance,
			m.CurrencyCode,
			m.ExchangeRate,
			m.SourceType,
			m.SourceID,
			m.CreatedAt,
			m.CreatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapPgError(err, "failed to insert general ledger rows")
	}
	return nil
}

// ListLedgerRows retrieves a paginated list of ledger rows matching the
// filter using token-based pagination, newest first.
func (r *PgxLedgerRepository) ListLedgerRows(ctx context.Context, filter domain.LedgerFilter, limit int, nextToken *string) ([]domain.LedgerRow, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + ledgerColumns + `
		FROM general_ledger
	`
	// ledger_row_id breaks ties between rows of one posting, which share a
	// created_at; the token carries both fields.
	orderByClause := `ORDER BY created_at DESC, ledger_row_id DESC`

	conds := []string{}
	args := []any{}
	appendCond := func(column string, value any) {
		args = append(args, value)
		conds = append(conds, column+" = $"+strconv.Itoa(len(args)))
	}
	if filter.AccountID != "" {
		appendCond("account_id", filter.AccountID)
	}
	if filter.JournalID != "" {
		appendCond("journal_id", filter.JournalID)
	}
	if filter.SourceType != "" {
		appendCond("source_type", filter.SourceType)
	}
	if filter.SourceID != "" {
		appendCond("source_id", filter.SourceID)
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conds = append(conds, "entry_date >= $"+strconv.Itoa(len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conds = append(conds, "entry_date <= $"+strconv.Itoa(len(args)))
	}

	if nextToken != nil && *nextToken != "" {
		fields, decodeErr := pagination.DecodeMultiFieldToken(*nextToken)
		if decodeErr != nil || len(fields) != 2 {
			return nil, nil, apperrors.NewValidationError("invalid nextToken")
		}
		lastCreatedAt, parseErr := time.Parse(time.RFC3339Nano, fields[0])
		if parseErr != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken")
		}
		args = append(args, lastCreatedAt, fields[1])
		conds = append(conds, "(created_at, ledger_row_id) < ($"+strconv.Itoa(len(args)-1)+", $"+strconv.Itoa(len(args))+")")
	}

	whereClause := ""
	if len(conds) > 0 {
		whereClause = "WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, fetchLimit)
	query := baseQuery + whereClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query general ledger: %w", err)
	}
	ledgerRows, err := collectLedgerRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(ledgerRows) > limit {
		lastRow := ledgerRows[limit-1]
		newToken := pagination.EncodeMultiFieldToken(lastRow.CreatedAt.Format(time.RFC3339Nano), lastRow.LedgerRowID)
		nextTokenVal = &newToken
		ledgerRows = ledgerRows[:limit]
	}

	return ledgerRows, nextTokenVal, nil
}

// FindRowsByJournalID retrieves all ledger rows written by one journal in the
// order the entries were posted.
func (r *PgxLedgerRepository) FindRowsByJournalID(ctx context.Context, journalID string) ([]domain.LedgerRow, error) {
	query := `
		SELECT ` + ledgerPrefixedColumns() + `
		FROM general_ledger gl
		JOIN journal_entries je ON je.entry_id = gl.journal_entry_id
		WHERE gl.journal_id = $1
		ORDER BY je.line_no;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger rows for journal %s: %w", journalID, err)
	}
	return collectLedgerRows(rows)
}

// FindBalanceAsOf returns the running balance of an account after the last
// ledger row dated strictly before the given time, or zero when the account
// has no earlier rows. Ties within one posting resolve by the entry's line
// number so the last row of the journal wins.
func (r *PgxLedgerRepository) FindBalanceAsOf(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT gl.balance
		FROM general_ledger gl
		JOIN journal_entries je ON je.entry_id = gl.journal_entry_id
		WHERE gl.account_id = $1 AND gl.entry_date < $2
		ORDER BY gl.entry_date DESC, gl.created_at DESC, je.line_no DESC
		LIMIT 1;
	`
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, accountID, before).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to find opening balance for account %s: %w", accountID, err)
	}
	return balance, nil
}

// ListAccountMovements retrieves all ledger rows for an account within the
// given date range, oldest first. Rows written by the same posting keep the
// journal's entry line order.
func (r *PgxLedgerRepository) ListAccountMovements(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerRow, error) {
	query := `
		SELECT ` + ledgerPrefixedColumns() + `
		FROM general_ledger gl
		JOIN journal_entries je ON je.entry_id = gl.journal_entry_id
		WHERE gl.account_id = $1 AND gl.entry_date >= $2 AND gl.entry_date <= $3
		ORDER BY gl.entry_date, gl.created_at, je.line_no;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements for account %s: %w", accountID, err)
	}
	return collectLedgerRows(rows)
}

// ledgerPrefixedColumns qualifies ledgerColumns with the gl alias for joined
// queries.
func ledgerPrefixedColumns() string {
	parts := strings.Split(ledgerColumns, ", ")
	for i, p := range parts {
		parts[i] = "gl." + p
	}
	return strings.Join(parts, ", ")
}
