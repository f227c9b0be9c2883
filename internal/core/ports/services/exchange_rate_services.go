package services

import (
	"context"
	"time"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/propbooks/propbooks_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetExchangeRateByID retrieves a specific exchange rate by its unique identifier.
	GetExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves a paginated list of exchange rates.
	ListExchangeRates(ctx context.Context, params dto.ListExchangeRatesParams) ([]domain.ExchangeRate, error)

	// ResolveRate returns the conversion rate from one currency to another as
	// of the given time: 1 for identical currencies, the latest stored rate
	// at or before asOf, the inverse of the opposite pair's rate when only
	// that exists, and 1 when no rate is stored at all.
	ResolveRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (decimal.Decimal, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a new exchange rate. Rates are immutable
	// once written; corrections are new rows with a later effective date.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, actorID string) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
// This is a facade for clients that need access to all operations
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
