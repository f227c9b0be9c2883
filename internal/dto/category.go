package dto

import (
	"time"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest defines the data needed to create a new income category.
// Rates are percentages. When incomeAccountID is omitted the default rental
// income account is used.
type CreateCategoryRequest struct {
	Name            string          `json:"name" binding:"required"`
	CommissionRate  decimal.Decimal `json:"commissionRate"`
	VATRate         decimal.Decimal `json:"vatRate"`
	IncomeAccountID string          `json:"incomeAccountID"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
// Use pointers to distinguish between zero-value updates and fields not provided.
// Rate changes affect only receipts posted after the change.
type UpdateCategoryRequest struct {
	Name            *string          `json:"name"`
	CommissionRate  *decimal.Decimal `json:"commissionRate"`
	VATRate         *decimal.Decimal `json:"vatRate"`
	IncomeAccountID *string          `json:"incomeAccountID"`
	IsActive        *bool            `json:"isActive"`
}

// CategoryResponse defines the data returned for an income category.
type CategoryResponse struct {
	CategoryID      string          `json:"categoryID"`
	Name            string          `json:"name"`
	CommissionRate  decimal.Decimal `json:"commissionRate"`
	VATRate         decimal.Decimal `json:"vatRate"`
	IncomeAccountID string          `json:"incomeAccountID"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy   string          `json:"lastUpdatedBy"`
}

// ToCategoryResponse converts a domain.IncomeCategory to CategoryResponse DTO
func ToCategoryResponse(cat *domain.IncomeCategory) CategoryResponse {
	return CategoryResponse{
		CategoryID:      cat.CategoryID,
		Name:            cat.Name,
		CommissionRate:  cat.CommissionRate,
		VATRate:         cat.VATRate,
		IncomeAccountID: cat.IncomeAccountID,
		IsActive:        cat.IsActive,
		CreatedAt:       cat.CreatedAt,
		CreatedBy:       cat.CreatedBy,
		LastUpdatedAt:   cat.LastUpdatedAt,
		LastUpdatedBy:   cat.LastUpdatedBy,
	}
}

// ToListCategoryResponse converts a slice of domain.IncomeCategory to a slice of CategoryResponse DTOs
func ToListCategoryResponse(categories []domain.IncomeCategory) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		res[i] = ToCategoryResponse(&cat)
	}
	return res
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	IncludeInactive bool `form:"includeInactive,default=false"`
	Limit           int  `form:"limit,default=20"`
	Offset          int  `form:"offset,default=0"`
}
