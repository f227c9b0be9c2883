package services

import (
	"context"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/propbooks/propbooks_backend/internal/dto"
)

// CategoryReaderSvc defines read operations for income category data
type CategoryReaderSvc interface {
	// GetCategoryByID retrieves a specific category by its unique identifier.
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.IncomeCategory, error)

	// ListCategories retrieves a paginated list of categories.
	ListCategories(ctx context.Context, params dto.ListCategoriesParams) ([]domain.IncomeCategory, error)
}

// CategoryWriterSvc defines write operations for income category data
type CategoryWriterSvc interface {
	// CreateCategory persists a new income category.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, actorID string) (*domain.IncomeCategory, error)

	// UpdateCategory updates an existing category. Rate changes affect only
	// receipts posted after the change.
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, actorID string) (*domain.IncomeCategory, error)
}

// CategorySvcFacade combines all category-related service interfaces
// This is a facade for clients that need access to all operations
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
