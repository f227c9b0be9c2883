package models

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents a row of the accounts table.
// ParentAccountID uses a pointer for the nullable self-referencing FK.
type Account struct {
	AccountID       string          `db:"account_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	AccountType     AccountType     `db:"account_type"`
	Subtype         string          `db:"subtype"`
	CurrencyCode    string          `db:"currency_code"`
	ParentAccountID *string         `db:"parent_account_id"`
	Description     string          `db:"description"`
	IsSystem        bool            `db:"is_system"`
	IsActive        bool            `db:"is_active"`
	CurrentBalance  decimal.Decimal `db:"current_balance"`
	AuditFields
}
