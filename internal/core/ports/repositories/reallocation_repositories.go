package repositories

import (
	"context"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
)

// ReallocationReader defines read operations for reallocation links. Writes
// happen inside the posting transaction via JournalPoster.PostReallocation.
type ReallocationReader interface {
	// FindReallocationByID retrieves a specific reallocation by its unique identifier.
	FindReallocationByID(ctx context.Context, reallocationID string) (*domain.Reallocation, error)

	// ListReallocationsBySourceEntry retrieves all reallocations recorded
	// against one journal entry, newest first.
	ListReallocationsBySourceEntry(ctx context.Context, sourceEntryID string) ([]domain.Reallocation, error)
}

// ReallocationRepositoryFacade combines all reallocation-related repository interfaces
// This is a facade for clients that need access to all operations
type ReallocationRepositoryFacade interface {
	ReallocationReader
}
