package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/propbooks/propbooks_backend/internal/apperrors"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	portsrepo "github.com/propbooks/propbooks_backend/internal/core/ports/repositories"
	"github.com/propbooks/propbooks_backend/internal/models"
	"github.com/propbooks/propbooks_backend/internal/utils/accounting"
	"github.com/propbooks/propbooks_backend/internal/utils/mapping"
	"github.com/propbooks/propbooks_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	auditRepo   portsrepo.AuditRepositoryFacade
	lockTimeout time.Duration
}

// newPgxJournalRepository creates a new repository for journal data and the
// posting engine built on top of it.
func newPgxJournalRepository(pool PgxPool, accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade, lockTimeout time.Duration) *PgxJournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		ledgerRepo:     ledgerRepo,
		auditRepo:      auditRepo,
		lockTimeout:    lockTimeout,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `journal_id, journal_number, journal_type, journal_date, description, currency_code, exchange_rate, status, posted_at, posted_by, reversing_journal_id, original_journal_id, reversal_reason, created_at, created_by, last_updated_at, last_updated_by`

const entryColumns = `entry_id, journal_id, line_no, account_id, description, debit_amount, credit_amount, source_type, source_id, created_at, created_by, last_updated_at, last_updated_by`

// scanJournal reads one journal row in journalColumns order.
func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.JournalNumber,
		&m.JournalType,
		&m.JournalDate,
		&m.Description,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.Status,
		&m.PostedAt,
		&m.PostedBy,
		&m.ReversingJournalID,
		&m.OriginalJournalID,
		&m.ReversalReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// scanEntry reads one journal entry row in entryColumns order.
func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.JournalID,
		&m.LineNo,
		&m.AccountID,
		&m.Description,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.SourceType,
		&m.SourceID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// journalNumberPrefix returns the sequence prefix for a journal type.
func journalNumberPrefix(t domain.JournalType) string {
	switch t {
	case domain.Sales:
		return "SAL"
	case domain.Receipts:
		return "RCT"
	case domain.Payments:
		return "PAY"
	case domain.Adjustment:
		return "ADJ"
	case domain.Reversal:
		return "REV"
	default:
		return "GEN"
	}
}

// applyLockTimeout bounds row lock waits for the current transaction so a
// contended posting fails fast as retryable lock contention instead of
// queueing indefinitely.
func (r *PgxJournalRepository) applyLockTimeout(ctx context.Context, tx pgx.Tx) error {
	if r.lockTimeout <= 0 {
		return nil
	}
	query := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to set lock timeout: %w", err)
	}
	return nil
}

// claimJournalNumberInTx increments and returns the next sequential number
// for the journal type, formatted with its prefix. The sequence row stays
// locked until the transaction ends, so numbers are gapless per type.
func (r *PgxJournalRepository) claimJournalNumberInTx(ctx context.Context, tx pgx.Tx, journalType domain.JournalType) (string, error) {
	query := `
		UPDATE journal_sequences
		SET next_value = next_value + 1
		WHERE journal_type = $1
		RETURNING next_value;
	`
	var seq int64
	if err := tx.QueryRow(ctx, query, string(journalType)).Scan(&seq); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewInternalError("no journal sequence for type "+string(journalType), nil)
		}
		return "", mapPgError(err, "failed to claim journal number for type "+string(journalType))
	}
	return fmt.Sprintf("%s-%06d", journalNumberPrefix(journalType), seq), nil
}

// lockJournalInTx loads a journal row under FOR UPDATE. This serializes
// concurrent post, update, delete and reverse attempts on the same journal:
// whichever transaction wins sees the row first and the rest observe its
// final status.
func (r *PgxJournalRepository) lockJournalInTx(ctx context.Context, tx pgx.Tx, journalID string) (*domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE journal_id = $1
		FOR UPDATE;
	`
	m, err := scanJournal(tx.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapPgError(err, "failed to lock journal "+journalID)
	}
	journal := mapping.ToDomainJournal(m)
	return &journal, nil
}

// findEntriesInTx loads a journal's entries in line number order within the
// posting transaction.
func (r *PgxJournalRepository) findEntriesInTx(ctx context.Context, tx pgx.Tx, journalID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE journal_id = $1
		ORDER BY line_no;
	`
	rows, err := tx.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	modelEntries := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row for journal %s: %w", journalID, err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows for journal %s: %w", journalID, err)
	}

	return mapping.ToDomainJournalEntrySlice(modelEntries), nil
}

// insertJournalInTx inserts a journal row within the given transaction.
func (r *PgxJournalRepository) insertJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal) error {
	m := mapping.ToModelJournal(journal)
	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := tx.Exec(ctx, query,
		m.JournalID,
		m.JournalNumber,
		m.JournalType,
		m.JournalDate,
		m.Description,
		m.CurrencyCode,
		m.ExchangeRate,
		m.Status,
		m.PostedAt,
		m.PostedBy,
		m.ReversingJournalID,
		m.OriginalJournalID,
		m.ReversalReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to insert journal "+m.JournalID)
	}
	return nil
}

// insertEntriesInTx inserts journal entry rows within the given transaction.
func (r *PgxJournalRepository) insertEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, entry := range entries {
		m := mapping.ToModelJournalEntry(entry)
		_, err := tx.Exec(ctx, query,
			m.EntryID,
			m.JournalID,
			m.LineNo,
			m.AccountID,
			m.Description,
			m.DebitAmount,
			m.CreditAmount,
			m.SourceType,
			m.SourceID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return mapPgError(err, "failed to insert journal entry "+m.EntryID)
		}
	}
	return nil
}

// postJournalInTx runs the posting core against an already-inserted journal:
// validate balance, lock the touched accounts, write one general ledger row
// per entry carrying the account's running balance, persist the final
// balances, flip the journal to POSTED and record the audit entry. Entries
// are processed strictly in the order given; the ledger preserves it.
func (r *PgxJournalRepository) postJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, entries []domain.JournalEntry, actorID string, now time.Time) (*domain.Journal, error) {
	if err := accounting.ValidateJournalBalance(entries); err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "journal "+journal.JournalID+" failed balance validation", err)
	}

	accountIDs := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if !seen[entry.AccountID] {
			seen[entry.AccountID] = true
			accountIDs = append(accountIDs, entry.AccountID)
		}
	}
	sort.Strings(accountIDs)

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, acc := range lockedAccounts {
		if !acc.IsActive {
			return nil, apperrors.NewValidationError("account " + acc.Code + " is inactive")
		}
	}

	rate := journal.ExchangeRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}

	runningBalances := make(map[string]decimal.Decimal, len(lockedAccounts))
	for id, acc := range lockedAccounts {
		runningBalances[id] = acc.CurrentBalance
	}

	ledgerRows := make([]domain.LedgerRow, 0, len(entries))
	for _, entry := range entries {
		account := lockedAccounts[entry.AccountID]
		delta, err := accounting.SignedDelta(entry, account.AccountType)
		if err != nil {
			return nil, apperrors.NewAppError(http.StatusBadRequest, "entry "+entry.EntryID+" is invalid", err)
		}
		if account.CurrencyCode != journal.CurrencyCode {
			delta = accounting.ConvertAmount(delta, rate)
		}

		newBalance := runningBalances[entry.AccountID].Add(delta)
		runningBalances[entry.AccountID] = newBalance

		description := entry.Description
		if description == "" {
			description = journal.Description
		}
		ledgerRows = append(ledgerRows, domain.LedgerRow{
			LedgerRowID:    uuid.NewString(),
			JournalEntryID: entry.EntryID,
			JournalID:      journal.JournalID,
			JournalNumber:  journal.JournalNumber,
			AccountID:      entry.AccountID,
			EntryDate:      journal.JournalDate,
			Description:    description,
			DebitAmount:    entry.DebitAmount,
			CreditAmount:   entry.CreditAmount,
			Balance:        newBalance,
			CurrencyCode:   journal.CurrencyCode,
			ExchangeRate:   rate,
			SourceType:     entry.SourceType,
			SourceID:       entry.SourceID,
			CreatedAt:      now,
			CreatedBy:      actorID,
		})
	}

	if err := r.ledgerRepo.InsertLedgerRowsInTx(ctx, tx, ledgerRows); err != nil {
		return nil, err
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, runningBalances, actorID, now); err != nil {
		return nil, err
	}

	statusQuery := `
		UPDATE journals
		SET status = $2, posted_at = $3, posted_by = $4, last_updated_at = $3, last_updated_by = $4
		WHERE journal_id = $1 AND status = $5;
	`
	cmdTag, err := tx.Exec(ctx, statusQuery, journal.JournalID, models.Posted, now, actorID, models.Draft)
	if err != nil {
		return nil, mapPgError(err, "failed to mark journal "+journal.JournalID+" posted")
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.NewConflictError("journal " + journal.JournalID + " is not in draft status")
	}

	if err := r.auditRepo.SaveAuditRecordInTx(ctx, tx, domain.AuditRecord{
		AuditID:    uuid.NewString(),
		Action:     domain.AuditJournalPosted,
		EntityType: "journal",
		EntityID:   journal.JournalID,
		Changes: map[string]any{
			"journalNumber": journal.JournalNumber,
			"journalType":   string(journal.JournalType),
			"entryCount":    len(entries),
		},
		ActorID:    actorID,
		OccurredAt: now,
	}); err != nil {
		return nil, err
	}

	journal.Status = domain.Posted
	journal.PostedAt = &now
	journal.PostedBy = actorID
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = actorID
	return &journal, nil
}

// SaveDraftJournal persists a new draft journal with its entries and claims
// the next journal number for its type, all in one transaction.
func (r *PgxJournalRepository) SaveDraftJournal(ctx context.Context, journal domain.Journal, entries []domain.JournalEntry) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	number, err := r.claimJournalNumberInTx(ctx, tx, journal.JournalType)
	if err != nil {
		return "", err
	}
	journal.JournalNumber = number

	if err := r.insertJournalInTx(ctx, tx, journal); err != nil {
		return "", err
	}
	if err := r.insertEntriesInTx(ctx, tx, entries); err != nil {
		return "", err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return number, nil
}

// UpdateDraftJournal replaces the header fields and entries of a draft
// journal. The journal row is locked first so a concurrent post cannot slip
// between the status check and the write.
func (r *PgxJournalRepository) UpdateDraftJournal(ctx context.Context, journal domain.Journal, entries []domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockJournalInTx(ctx, tx, journal.JournalID)
	if err != nil {
		return err
	}
	if !locked.IsDraft() {
		return apperrors.NewConflictError("journal " + journal.JournalID + " is not in draft status")
	}

	m := mapping.ToModelJournal(journal)
	headerQuery := `
		UPDATE journals
		SET journal_date = $2, description = $3, currency_code = $4, exchange_rate = $5, last_updated_at = $6, last_updated_by = $7
		WHERE journal_id = $1;
	`
	if _, err := tx.Exec(ctx, headerQuery,
		m.JournalID,
		m.JournalDate,
		m.Description,
		m.CurrencyCode,
		m.ExchangeRate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	); err != nil {
		return mapPgError(err, "failed to update draft journal "+m.JournalID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE journal_id = $1;`, m.JournalID); err != nil {
		return mapPgError(err, "failed to clear entries for draft journal "+m.JournalID)
	}
	if err := r.insertEntriesInTx(ctx, tx, entries); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteDraftJournal removes a draft journal and its entries.
func (r *PgxJournalRepository) DeleteDraftJournal(ctx context.Context, journalID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockJournalInTx(ctx, tx, journalID)
	if err != nil {
		return err
	}
	if !locked.IsDraft() {
		return apperrors.NewConflictError("journal " + journalID + " is not in draft status")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE journal_id = $1;`, journalID); err != nil {
		return mapPgError(err, "failed to delete entries for journal "+journalID)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journals WHERE journal_id = $1;`, journalID); err != nil {
		return mapPgError(err, "failed to delete journal "+journalID)
	}

	return r.Commit(ctx, tx)
}

// PostJournal posts a draft journal atomically. The journal header lock is
// the idempotency guard: of two concurrent post attempts, exactly one
// succeeds and the other fails with a status conflict after the first
// commits.
func (r *PgxJournalRepository) PostJournal(ctx context.Context, journalID string, actorID string, now time.Time) (*domain.Journal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.applyLockTimeout(ctx, tx); err != nil {
		return nil, err
	}

	journal, err := r.lockJournalInTx(ctx, tx, journalID)
	if err != nil {
		return nil, err
	}
	if !journal.IsDraft() {
		return nil, apperrors.NewConflictError("journal " + journalID + " is not in draft status")
	}

	entries, err := r.findEntriesInTx(ctx, tx, journalID)
	if err != nil {
		return nil, err
	}

	posted, err := r.postJournalInTx(ctx, tx, *journal, entries, actorID, now)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return posted, nil
}

// PostReversal persists and posts the reversal journal, then marks the
// original REVERSED with links in both directions. One transaction covers
// the whole operation: if posting the reversal fails, the original stays
// POSTED and unlinked.
func (r *PgxJournalRepository) PostReversal(ctx context.Context, originalJournalID string, reversal domain.Journal, entries []domain.JournalEntry, reason string, actorID string, now time.Time) (*domain.Journal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.applyLockTimeout(ctx, tx); err != nil {
		return nil, err
	}

	original, err := r.lockJournalInTx(ctx, tx, originalJournalID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, apperrors.NewConflictError("journal " + originalJournalID + " is not posted")
	}

	number, err := r.claimJournalNumberInTx(ctx, tx, reversal.JournalType)
	if err != nil {
		return nil, err
	}
	reversal.JournalNumber = number

	if err := r.insertJournalInTx(ctx, tx, reversal); err != nil {
		return nil, err
	}
	if err := r.insertEntriesInTx(ctx, tx, entries); err != nil {
		return nil, err
	}

	posted, err := r.postJournalInTx(ctx, tx, reversal, entries, actorID, now)
	if err != nil {
		return nil, err
	}

	linkQuery := `
		UPDATE journals
		SET status = $2, reversing_journal_id = $3, reversal_reason = $4, last_updated_at = $5, last_updated_by = $6
		WHERE journal_id = $1;
	`
	if _, err := tx.Exec(ctx, linkQuery,
		originalJournalID,
		models.Reversed,
		posted.JournalID,
		reason,
		now,
		actorID,
	); err != nil {
		return nil, mapPgError(err, "failed to mark journal "+originalJournalID+" reversed")
	}

	if err := r.auditRepo.SaveAuditRecordInTx(ctx, tx, domain.AuditRecord{
		AuditID:    uuid.NewString(),
		Action:     domain.AuditJournalReversed,
		EntityType: "journal",
		EntityID:   originalJournalID,
		Changes: map[string]any{
			"reversingJournalID": posted.JournalID,
			"reversalNumber":     posted.JournalNumber,
			"reason":             reason,
		},
		ActorID:    actorID,
		OccurredAt: now,
	}); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return posted, nil
}

// checkReallocationCapInTx re-verifies the cumulative reallocation cap with
// the source entry's journal row locked. The service checks the cap before
// calling, but two concurrent reallocations of the same entry can both pass
// that read; the locked re-read here arbitrates them.
func (r *PgxJournalRepository) checkReallocationCapInTx(ctx context.Context, tx pgx.Tx, reallocation domain.Reallocation) error {
	entryQuery := `
		SELECT je.debit_amount, je.credit_amount, j.status
		FROM journal_entries je
		JOIN journals j ON j.journal_id = je.journal_id
		WHERE je.entry_id = $1
		FOR UPDATE OF j;
	`
	var debit, credit decimal.Decimal
	var status models.JournalStatus
	if err := tx.QueryRow(ctx, entryQuery, reallocation.SourceEntryID).Scan(&debit, &credit, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return mapPgError(err, "failed to lock source entry "+reallocation.SourceEntryID)
	}
	if status != models.Posted {
		return apperrors.NewConflictError("journal for entry " + reallocation.SourceEntryID + " is not posted")
	}

	sumQuery := `
		SELECT COALESCE(SUM(amount), 0)
		FROM reallocations
		WHERE source_entry_id = $1;
	`
	var prior decimal.Decimal
	if err := tx.QueryRow(ctx, sumQuery, reallocation.SourceEntryID).Scan(&prior); err != nil {
		return mapPgError(err, "failed to sum reallocations for entry "+reallocation.SourceEntryID)
	}

	entryAmount := debit.Add(credit)
	if prior.Add(reallocation.Amount).GreaterThan(entryAmount) {
		return apperrors.NewValidationError(fmt.Sprintf("reallocation amount %s plus %s already reallocated exceeds the entry amount %s",
			reallocation.Amount.String(), prior.String(), entryAmount.String()))
	}
	return nil
}

// PostReallocation persists and posts the adjustment journal and records the
// reallocation link row in the same transaction. The cumulative cap on the
// source entry is re-checked under lock before anything is written.
func (r *PgxJournalRepository) PostReallocation(ctx context.Context, adjustment domain.Journal, entries []domain.JournalEntry, reallocation domain.Reallocation) (*domain.Journal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.applyLockTimeout(ctx, tx); err != nil {
		return nil, err
	}

	if err := r.checkReallocationCapInTx(ctx, tx, reallocation); err != nil {
		return nil, err
	}

	number, err := r.claimJournalNumberInTx(ctx, tx, adjustment.JournalType)
	if err != nil {
		return nil, err
	}
	adjustment.JournalNumber = number

	if err := r.insertJournalInTx(ctx, tx, adjustment); err != nil {
		return nil, err
	}
	if err := r.insertEntriesInTx(ctx, tx, entries); err != nil {
		return nil, err
	}

	posted, err := r.postJournalInTx(ctx, tx, adjustment, entries, reallocation.ActorID, reallocation.ReallocatedAt)
	if err != nil {
		return nil, err
	}

	m := mapping.ToModelReallocation(reallocation)
	linkQuery := `
		INSERT INTO reallocations (reallocation_id, source_entry_id, new_entry_id, adjustment_journal_id, from_account_id, to_account_id, amount, reason, actor_id, reallocated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	if _, err := tx.Exec(ctx, linkQuery,
		m.ReallocationID,
		m.SourceEntryID,
		m.NewEntryID,
		m.AdjustmentID,
		m.FromAccountID,
		m.ToAccountID,
		m.Amount,
		m.Reason,
		m.ActorID,
		m.ReallocatedAt,
	); err != nil {
		return nil, mapPgError(err, "failed to insert reallocation "+m.ReallocationID)
	}

	if err := r.auditRepo.SaveAuditRecordInTx(ctx, tx, domain.AuditRecord{
		AuditID:    uuid.NewString(),
		Action:     domain.AuditEntryReallocated,
		EntityType: "journal_entry",
		EntityID:   reallocation.SourceEntryID,
		Changes: map[string]any{
			"adjustmentJournalID": posted.JournalID,
			"fromAccountID":       reallocation.FromAccountID,
			"toAccountID":         reallocation.ToAccountID,
			"amount":              reallocation.Amount.String(),
			"reason":              reallocation.Reason,
		},
		ActorID:    reallocation.ActorID,
		OccurredAt: reallocation.ReallocatedAt,
	}); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return posted, nil
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE journal_id = $1;
	`
	m, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}

	journal := mapping.ToDomainJournal(m)
	return &journal, nil
}

// ListJournals retrieves a paginated list of journals using token-based
// pagination, optionally filtered by status and type.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, limit int, nextToken *string, status *domain.JournalStatus, journalType *domain.JournalType) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to learn whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + journalColumns + `
		FROM journals
	`
	// Ordering must be stable for the cursor to work; journal_date with
	// created_at as tie-breaker matches the token contents.
	orderByClause := `ORDER BY journal_date DESC, created_at DESC`

	conds := []string{}
	args := []any{}
	if status != nil {
		args = append(args, string(*status))
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	if journalType != nil {
		args = append(args, string(*journalType))
		conds = append(conds, "journal_type = $"+strconv.Itoa(len(args)))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken")
		}
		args = append(args, lastDate, lastCreatedAt)
		conds = append(conds, "(journal_date, created_at) < ($"+strconv.Itoa(len(args)-1)+", $"+strconv.Itoa(len(args))+")")
	}

	whereClause := ""
	if len(conds) > 0 {
		whereClause = "WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, fetchLimit)
	query := baseQuery + whereClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	modelJournals := make([]models.Journal, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournal(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan journal row: %w", scanErr)
		}
		modelJournals = append(modelJournals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal rows: %w", err)
	}

	var nextTokenVal *string
	results := modelJournals
	if len(modelJournals) > limit {
		lastJournal := modelJournals[limit-1]
		newToken := pagination.EncodeToken(lastJournal.JournalDate, lastJournal.CreatedAt)
		nextTokenVal = &newToken
		results = modelJournals[:limit]
	}

	return mapping.ToDomainJournalSlice(results), nextTokenVal, nil
}

// FindEntriesByJournalID retrieves all entries of a journal ordered by line
// number.
func (r *PgxJournalRepository) FindEntriesByJournalID(ctx context.Context, journalID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE journal_id = $1
		ORDER BY line_no;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	modelEntries := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row for journal %s: %w", journalID, err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows for journal %s: %w", journalID, err)
	}

	return mapping.ToDomainJournalEntrySlice(modelEntries), nil
}

// FindEntriesByJournalIDs retrieves entries for multiple journal IDs, grouped
// by journal ID. Journals without entries get an empty slice.
func (r *PgxJournalRepository) FindEntriesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalEntry, error) {
	if len(journalIDs) == 0 {
		return map[string][]domain.JournalEntry{}, nil
	}

	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE journal_id = ANY($1)
		ORDER BY journal_id, line_no;
	`
	rows, err := r.Pool.Query(ctx, query, journalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for journal IDs: %w", err)
	}
	defer rows.Close()

	entriesMap := make(map[string][]domain.JournalEntry)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row during batch fetch: %w", err)
		}
		entry := mapping.ToDomainJournalEntry(m)
		entriesMap[entry.JournalID] = append(entriesMap[entry.JournalID], entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows during batch fetch: %w", err)
	}

	for _, jid := range journalIDs {
		if _, exists := entriesMap[jid]; !exists {
			entriesMap[jid] = []domain.JournalEntry{}
		}
	}

	return entriesMap, nil
}

// FindEntryByID retrieves a single journal entry.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE entry_id = $1;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}
