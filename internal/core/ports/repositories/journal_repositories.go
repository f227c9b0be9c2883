package repositories

import (
	"context"
	"time"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals using token-based
	// pagination, optionally filtered by status and type. Results are ordered
	// by journal date, newest first. It returns the journals, a token for the
	// next page, and an error.
	ListJournals(ctx context.Context, limit int, nextToken *string, status *domain.JournalStatus, journalType *domain.JournalType) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for draft journals
type JournalWriter interface {
	// SaveDraftJournal persists a new draft journal with its entries and
	// claims the next journal number for its type, all in one transaction.
	// It returns the assigned journal number.
	SaveDraftJournal(ctx context.Context, journal domain.Journal, entries []domain.JournalEntry) (string, error)

	// UpdateDraftJournal replaces the header fields and entries of a draft
	// journal. Journals that are no longer DRAFT are rejected.
	UpdateDraftJournal(ctx context.Context, journal domain.Journal, entries []domain.JournalEntry) error

	// DeleteDraftJournal removes a draft journal and its entries. Journals
	// that are no longer DRAFT are rejected.
	DeleteDraftJournal(ctx context.Context, journalID string) error
}

// EntryReader defines read operations for journal entry data
type EntryReader interface {
	// FindEntriesByJournalID retrieves all entries of a single journal,
	// ordered by line number.
	FindEntriesByJournalID(ctx context.Context, journalID string) ([]domain.JournalEntry, error)

	// FindEntriesByJournalIDs retrieves entries for multiple journal IDs,
	// grouped by journal ID.
	FindEntriesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalEntry, error)

	// FindEntryByID retrieves a single journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// JournalPoster defines the atomic posting operations. Each method runs as a
// single database transaction: row locks, balance arithmetic, ledger rows,
// status transition and audit record commit or roll back together.
type JournalPoster interface {
	// PostJournal posts a draft journal: it locks the journal row, validates
	// balance, locks the touched accounts in deterministic order, writes one
	// ledger row per entry with running balances, updates account balances
	// and marks the journal POSTED. It returns the posted journal.
	PostJournal(ctx context.Context, journalID string, actorID string, now time.Time) (*domain.Journal, error)

	// PostReversal persists and posts the given reversal journal, then marks
	// the original journal REVERSED with links in both directions, all in one
	// transaction. It returns the posted reversal journal.
	PostReversal(ctx context.Context, originalJournalID string, reversal domain.Journal, entries []domain.JournalEntry, reason string, actorID string, now time.Time) (*domain.Journal, error)

	// PostReallocation persists and posts the given adjustment journal and
	// records the reallocation row linking it to the source entry, all in one
	// transaction. It returns the posted adjustment journal.
	PostReallocation(ctx context.Context, adjustment domain.Journal, entries []domain.JournalEntry, reallocation domain.Reallocation) (*domain.Journal, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	EntryReader
	JournalPoster
}
