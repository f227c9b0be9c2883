package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/propbooks/propbooks_backend/internal/apperrors"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	portsrepo "github.com/propbooks/propbooks_backend/internal/core/ports/repositories"
	"github.com/propbooks/propbooks_backend/internal/models"
	"github.com/propbooks/propbooks_backend/internal/utils/mapping"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for income category data.
func newPgxCategoryRepository(pool PgxPool) *PgxCategoryRepository {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCategoryRepository implements portsrepo.CategoryRepositoryFacade
var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, name, commission_rate, vat_rate, income_account_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

// scanCategory reads one income category row in categoryColumns order.
func scanCategory(row pgx.Row) (models.IncomeCategory, error) {
	var m models.IncomeCategory
	err := row.Scan(
		&m.CategoryID,
		&m.Name,
		&m.CommissionRate,
		&m.VATRate,
		&m.IncomeAccountID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCategory persists a new income category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.IncomeCategory) error {
	m := mapping.ToModelIncomeCategory(category)
	query := `
		INSERT INTO income_categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.Name,
		m.CommissionRate,
		m.VATRate,
		m.IncomeAccountID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation {
			return fmt.Errorf("%w: category named %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return mapPgError(err, "failed to save category "+m.CategoryID)
	}
	return nil
}

// UpdateCategory updates an existing category's mutable fields.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.IncomeCategory) error {
	m := mapping.ToModelIncomeCategory(category)
	query := `
		UPDATE income_categories
		SET name = $2, commission_rate = $3, vat_rate = $4, income_account_id = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE category_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.Name,
		m.CommissionRate,
		m.VATRate,
		m.IncomeAccountID,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation {
			return fmt.Errorf("%w: category named %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return mapPgError(err, "failed to update category "+m.CategoryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: category with ID %s not found", apperrors.ErrNotFound, m.CategoryID)
	}
	return nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.IncomeCategory, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM income_categories
		WHERE category_id = $1;
	`
	m, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}

	category := mapping.ToDomainIncomeCategory(m)
	return &category, nil
}

// FindCategoryByName retrieves a category by its unique name.
func (r *PgxCategoryRepository) FindCategoryByName(ctx context.Context, name string) (*domain.IncomeCategory, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM income_categories
		WHERE name = $1;
	`
	m, err := scanCategory(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by name %q: %w", name, err)
	}

	category := mapping.ToDomainIncomeCategory(m)
	return &category, nil
}

// ListCategories retrieves categories ordered by name. Inactive categories
// are excluded unless includeInactive is set.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, includeInactive bool, limit int, offset int) ([]domain.IncomeCategory, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM income_categories
	`
	if !includeInactive {
		query += "WHERE is_active = TRUE "
	}
	query += "ORDER BY name LIMIT $1 OFFSET $2;"

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	modelCategories := []models.IncomeCategory{}
	for rows.Next() {
		m, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", scanErr)
		}
		modelCategories = append(modelCategories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return mapping.ToDomainIncomeCategorySlice(modelCategories), nil
}
