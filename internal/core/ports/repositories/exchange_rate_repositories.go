package repositories

import (
	"context"
	"time"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindExchangeRateByID retrieves a specific exchange rate by its unique identifier.
	FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// FindLatestRate retrieves the most recent rate from one currency to
	// another with an effective date at or before asOf.
	FindLatestRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves a paginated list of exchange rates,
	// optionally filtered by currency pair.
	ListExchangeRates(ctx context.Context, fromCurrencyCode, toCurrencyCode *string, limit int, offset int) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new exchange rate.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
// This is a facade for clients that need access to all operations
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
