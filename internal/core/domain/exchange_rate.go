package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies effective
// from a specific date. Rates are immutable once written; corrections are new
// rows with a later effective date.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`   // Primary Key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"` // ISO-4217
	ToCurrencyCode   string          `json:"toCurrencyCode"`   // ISO-4217
	Rate             decimal.Decimal `json:"rate"`             // Must be positive
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}
