package models

import (
	"github.com/shopspring/decimal"
)

// IncomeCategory represents a row of the income_categories table.
type IncomeCategory struct {
	CategoryID      string          `db:"category_id"`
	Name            string          `db:"name"`
	CommissionRate  decimal.Decimal `db:"commission_rate"`
	VATRate         decimal.Decimal `db:"vat_rate"`
	IncomeAccountID string          `db:"income_account_id"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}
