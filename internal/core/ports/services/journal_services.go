package services

import (
	"context"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/propbooks/propbooks_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a specific journal and its entries.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, []domain.JournalEntry, error)

	// ListJournals retrieves a paginated list of journals.
	ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)

	// GetEntryByID retrieves a single journal entry.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for draft journals
type JournalWriterSvc interface {
	// CreateJournal validates and persists a new draft journal with its
	// entries. The journal is not posted and affects no balances.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, actorID string) (*domain.Journal, []domain.JournalEntry, error)

	// UpdateDraftJournal updates a draft journal's header and, when given,
	// replaces its entries. Journals that are no longer DRAFT are rejected.
	UpdateDraftJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, actorID string) (*domain.Journal, []domain.JournalEntry, error)

	// DeleteDraftJournal removes a draft journal and its entries.
	DeleteDraftJournal(ctx context.Context, journalID string, actorID string) error
}

// JournalPostingSvc defines the posting, reversal and reallocation
// operations. These are the only paths that mutate account balances.
type JournalPostingSvc interface {
	// PostJournal posts a draft journal atomically, making its entries
	// permanent and updating account balances.
	PostJournal(ctx context.Context, journalID string, actorID string) (*domain.Journal, error)

	// ReverseJournal creates and posts a reversal journal that mirrors the
	// original's entries with debit and credit swapped, then marks the
	// original REVERSED. Returns the new reversal journal.
	ReverseJournal(ctx context.Context, journalID string, reason string, actorID string) (*domain.Journal, error)

	// ReallocateEntry moves an amount from a posted entry's account to
	// another account through a two-line adjustment journal and records the
	// reallocation link.
	ReallocateEntry(ctx context.Context, req dto.ReallocateEntryRequest, actorID string) (*domain.Reallocation, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalPostingSvc
}
