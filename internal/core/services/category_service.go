package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/propbooks/propbooks_backend/internal/apperrors"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	portsrepo "github.com/propbooks/propbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/propbooks/propbooks_backend/internal/core/ports/services"
	"github.com/propbooks/propbooks_backend/internal/dto"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// categoryService implements the income category facade. Categories carry the
// commission and VAT percentages the receipt adapter splits with; rate
// changes only affect receipts posted afterwards.
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	audit        *AuditRecorder
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, audit *AuditRecorder) portssvc.CategorySvcFacade {
	return &categoryService{
		categoryRepo: categoryRepo,
		accountRepo:  accountRepo,
		audit:        audit,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func validateRate(name string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(oneHundred) {
		return apperrors.NewValidationError(fmt.Sprintf("%s must be between 0 and 100, got %s", name, rate.String()))
	}
	return nil
}

// resolveIncomeAccount returns the revenue account the category credits on
// recognition: the requested one when given, the system rental income
// account otherwise.
func (s *categoryService) resolveIncomeAccount(ctx context.Context, incomeAccountID string) (*domain.Account, error) {
	var account *domain.Account
	var err error
	if incomeAccountID != "" {
		account, err = s.accountRepo.FindAccountByID(ctx, incomeAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("income account " + incomeAccountID + " not found")
			}
			return nil, err
		}
	} else {
		account, err = s.accountRepo.FindAccountByCode(ctx, domain.SystemAccountRentalIncome)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve default income account: %w", err)
		}
	}
	if account.AccountType != domain.Revenue {
		return nil, apperrors.NewValidationError("income account " + account.Code + " is not a revenue account")
	}
	if !account.IsActive {
		return nil, apperrors.NewValidationError("income account " + account.Code + " is inactive")
	}
	return account, nil
}

// CreateCategory validates and persists a new income category.
func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, actorID string) (*domain.IncomeCategory, error) {
	if err := validateRate("commission rate", req.CommissionRate); err != nil {
		return nil, err
	}
	if err := validateRate("VAT rate", req.VATRate); err != nil {
		return nil, err
	}

	incomeAccount, err := s.resolveIncomeAccount(ctx, req.IncomeAccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	category := domain.IncomeCategory{
		CategoryID:      uuid.NewString(),
		Name:            req.Name,
		CommissionRate:  req.CommissionRate,
		VATRate:         req.VATRate,
		IncomeAccountID: incomeAccount.AccountID,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "failed to save category", slog.String("name", req.Name))
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditCategoryCreated, "category", category.CategoryID, map[string]any{
		"name":           category.Name,
		"commissionRate": category.CommissionRate.String(),
		"vatRate":        category.VATRate.String(),
	}, actorID)

	s.LogInfo(ctx, "category created", slog.String("category_id", category.CategoryID), slog.String("name", category.Name))
	return &category, nil
}

// UpdateCategory applies the provided fields to an existing category.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, actorID string) (*domain.IncomeCategory, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if req.Name != nil {
		category.Name = *req.Name
		changes["name"] = *req.Name
	}
	if req.CommissionRate != nil {
		if err := validateRate("commission rate", *req.CommissionRate); err != nil {
			return nil, err
		}
		category.CommissionRate = *req.CommissionRate
		changes["commissionRate"] = req.CommissionRate.String()
	}
	if req.VATRate != nil {
		if err := validateRate("VAT rate", *req.VATRate); err != nil {
			return nil, err
		}
		category.VATRate = *req.VATRate
		changes["vatRate"] = req.VATRate.String()
	}
	if req.IncomeAccountID != nil {
		incomeAccount, err := s.resolveIncomeAccount(ctx, *req.IncomeAccountID)
		if err != nil {
			return nil, err
		}
		category.IncomeAccountID = incomeAccount.AccountID
		changes["incomeAccountID"] = incomeAccount.AccountID
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
		changes["isActive"] = *req.IsActive
	}
	if len(changes) == 0 {
		return category, nil
	}

	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = actorID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "failed to update category", slog.String("category_id", categoryID))
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditCategoryUpdated, "category", categoryID, changes, actorID)
	return category, nil
}

// GetCategoryByID retrieves a specific category by its unique identifier.
func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.IncomeCategory, error) {
	return s.categoryRepo.FindCategoryByID(ctx, categoryID)
}

// ListCategories retrieves a paginated list of categories.
func (s *categoryService) ListCategories(ctx context.Context, params dto.ListCategoriesParams) ([]domain.IncomeCategory, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	return s.categoryRepo.ListCategories(ctx, params.IncludeInactive, limit, offset)
}
