package domain

import (
	"github.com/shopspring/decimal"
)

// IncomeCategory classifies receipts and carries the commission and VAT
// percentages the receipt adapter uses to split collected amounts. Rate
// changes affect only receipts posted after the change.
type IncomeCategory struct {
	CategoryID      string          `json:"categoryID"`      // Primary Key (UUID)
	Name            string          `json:"name"`            // Unique (e.g., "Residential Rent")
	CommissionRate  decimal.Decimal `json:"commissionRate"`  // Percentage in [0,100]
	VATRate         decimal.Decimal `json:"vatRate"`         // Percentage in [0,100], applied to commission
	IncomeAccountID string          `json:"incomeAccountID"` // Revenue account credited on recognition
	IsActive        bool            `json:"isActive"`
	AuditFields
}
