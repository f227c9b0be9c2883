package repositories

import (
	"context"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
)

// CategoryReader defines read operations for income category data
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category by its unique identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.IncomeCategory, error)

	// FindCategoryByName retrieves a category by its unique name.
	FindCategoryByName(ctx context.Context, name string) (*domain.IncomeCategory, error)

	// ListCategories retrieves a paginated list of categories.
	ListCategories(ctx context.Context, includeInactive bool, limit int, offset int) ([]domain.IncomeCategory, error)
}

// CategoryWriter defines write operations for income category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.IncomeCategory) error

	// UpdateCategory updates an existing category.
	UpdateCategory(ctx context.Context, category domain.IncomeCategory) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
// This is a facade for clients that need access to all operations
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
