package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propbooks/propbooks_backend/internal/apperrors"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	portsrepo "github.com/propbooks/propbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/propbooks/propbooks_backend/internal/core/ports/services"
	"github.com/propbooks/propbooks_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// exchangeRateService implements the exchange rate facade. Rates are
// immutable once written; corrections are new rows with a later effective
// date.
type exchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepositoryFacade
	audit    *AuditRecorder
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, audit *AuditRecorder) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo: rateRepo,
		audit:    audit,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate validates and persists a new exchange rate.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, actorID string) (*domain.ExchangeRate, error) {
	if !req.Rate.IsPositive() {
		return nil, apperrors.NewValidationError("exchange rate must be positive")
	}

	from := strings.ToUpper(req.FromCurrencyCode)
	to := strings.ToUpper(req.ToCurrencyCode)
	if from == to {
		return nil, apperrors.NewValidationError("from and to currency codes cannot be the same")
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             req.Rate,
		DateEffective:    req.DateEffective,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "failed to save exchange rate",
			slog.String("from", from),
			slog.String("to", to))
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditRateCreated, "exchange_rate", rate.ExchangeRateID, map[string]any{
		"from":          from,
		"to":            to,
		"rate":          rate.Rate.String(),
		"dateEffective": rate.DateEffective.Format("2006-01-02"),
	}, actorID)

	return &rate, nil
}

// GetExchangeRateByID retrieves a specific exchange rate by its unique identifier.
func (s *exchangeRateService) GetExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	return s.rateRepo.FindExchangeRateByID(ctx, rateID)
}

// ListExchangeRates retrieves a paginated list of exchange rates.
func (s *exchangeRateService) ListExchangeRates(ctx context.Context, params dto.ListExchangeRatesParams) ([]domain.ExchangeRate, error) {
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
	return s.rateRepo.ListExchangeRates(ctx, params.From, params.To, limit, offset)
}

// ResolveRate returns the conversion rate from one currency to another as of
// the given time. Resolution order: 1 for identical currencies, the latest
// stored direct rate, the inverse of the reverse pair's rate, and finally 1
// when nothing is stored. The inverse is rounded to the rate column's 6
// decimal places.
func (s *exchangeRateService) ResolveRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (decimal.Decimal, error) {
	from := strings.ToUpper(fromCurrencyCode)
	to := strings.ToUpper(toCurrencyCode)
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	direct, err := s.rateRepo.FindLatestRate(ctx, from, to, asOf)
	if err == nil {
		return direct.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, err
	}

	reverse, err := s.rateRepo.FindLatestRate(ctx, to, from, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "no exchange rate stored, defaulting to 1",
				slog.String("from", from),
				slog.String("to", to))
			return decimal.NewFromInt(1), nil
		}
		return decimal.Zero, err
	}

	return decimal.NewFromInt(1).Div(reverse.Rate).Round(6), nil
}
