package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propbooks/propbooks_backend/internal/apperrors"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
)

func newRateFixture(now time.Time) domain.ExchangeRate {
	rate := domain.ExchangeRate{
		ExchangeRateID:   "rate-1",
		FromCurrencyCode: "usd",
		ToCurrencyCode:   "aed",
		Rate:             decimal.RequireFromString("3.6725"),
		DateEffective:    now.AddDate(0, 0, -1),
	}
	rate.CreatedAt = now
	rate.CreatedBy = "user-1"
	rate.LastUpdatedAt = now
	rate.LastUpdatedBy = "user-1"
	return rate
}

func TestSaveExchangeRate(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := newPgxExchangeRateRepository(mockPool)
	now := time.Now()
	fixture := newRateFixture(now)

	mockPool.ExpectExec(`INSERT INTO exchange_rates`).
		WithArgs(
			fixture.ExchangeRateID,
			"USD",
			"AED",
			fixture.Rate,
			fixture.DateEffective,
			fixture.CreatedAt,
			fixture.CreatedBy,
			fixture.LastUpdatedAt,
			fixture.LastUpdatedBy,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.SaveExchangeRate(context.Background(), fixture)

	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSaveExchangeRate_SameCurrency(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := newPgxExchangeRateRepository(mockPool)
	fixture := newRateFixture(time.Now())
	fixture.ToCurrencyCode = "Usd"

	err = repo.SaveExchangeRate(context.Background(), fixture)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSaveExchangeRate_Duplicate(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := newPgxExchangeRateRepository(mockPool)
	fixture := newRateFixture(time.Now())

	mockPool.ExpectExec(`INSERT INTO exchange_rates`).
		WithArgs(
			fixture.ExchangeRateID,
			"USD",
			"AED",
			fixture.Rate,
			fixture.DateEffective,
			fixture.CreatedAt,
			fixture.CreatedBy,
			fixture.LastUpdatedAt,
			fixture.LastUpdatedBy,
		).
		WillReturnError(&pgconn.PgError{Code: pgCodeUniqueViolation})

	err = repo.SaveExchangeRate(context.Background(), fixture)

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.ErrorContains(t, err, "already exists")
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestFindLatestRate(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := newPgxExchangeRateRepository(mockPool)
	now := time.Now()
	fixture := newRateFixture(now)

	rows := pgxmock.NewRows([]string{
		"exchange_rate_id", "from_currency_code", "to_currency_code", "rate",
		"date_effective", "created_at", "created_by", "last_updated_at", "last_updated_by",
	}).AddRow(
		fixture.ExchangeRateID, "USD", "AED", fixture.Rate,
		fixture.DateEffective, fixture.CreatedAt, fixture.CreatedBy, fixture.LastUpdatedAt, fixture.LastUpdatedBy,
	)

	mockPool.ExpectQuery(`SELECT .+ FROM exchange_rates WHERE from_currency_code = \$1 AND to_currency_code = \$2 AND date_effective <= \$3 ORDER BY date_effective DESC LIMIT 1`).
		WithArgs("USD", "AED", now).
		WillReturnRows(rows)

	found, err := repo.FindLatestRate(context.Background(), "usd", "aed", now)

	require.NoError(t, err)
	assert.Equal(t, fixture.ExchangeRateID, found.ExchangeRateID)
	assert.True(t, found.Rate.Equal(fixture.Rate))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestFindLatestRate_NotFound(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := newPgxExchangeRateRepository(mockPool)
	now := time.Now()

	mockPool.ExpectQuery(`SELECT .+ FROM exchange_rates`).
		WithArgs("AED", "USD", now).
		WillReturnError(pgx.ErrNoRows)

	found, err := repo.FindLatestRate(context.Background(), "AED", "USD", now)

	assert.Nil(t, found)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestFindExchangeRateByID_NotFound(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := newPgxExchangeRateRepository(mockPool)

	mockPool.ExpectQuery(`SELECT .+ FROM exchange_rates WHERE exchange_rate_id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	found, err := repo.FindExchangeRateByID(context.Background(), "missing")

	assert.Nil(t, found)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
