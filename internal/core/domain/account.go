package domain

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

// Side indicates the debit or credit side of an entry or balance.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Debit {
		return Credit
	}
	return Debit
}

// NormalSide returns the side on which increases to an account of this type
// are recorded: debit for assets and expenses, credit for everything else.
func (t AccountType) NormalSide() Side {
	if t == Asset || t == Expense {
		return Debit
	}
	return Credit
}

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents a financial account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary Key (UUID)
	Code            string          `json:"code"`            // Unique account code (e.g., "1100")
	Name            string          `json:"name"`            // Human-readable name
	AccountType     AccountType     `json:"accountType"`     // ASSET, LIABILITY, etc.
	Subtype         string          `json:"subtype"`         // Informational grouping (e.g., "receivable")
	CurrencyCode    string          `json:"currencyCode"`    // ISO-4217 home currency (Not Null)
	ParentAccountID string          `json:"parentAccountID"` // Nullable FK -> accounts.account_id (reporting tree)
	Description     string          `json:"description"`     // Nullable user description
	IsSystem        bool            `json:"isSystem"`        // Provisioned account, protected from deletion
	IsActive        bool            `json:"isActive"`        // Soft delete or status flag
	CurrentBalance  decimal.Decimal `json:"currentBalance"`  // Running balance; mutated only by posting
	AuditFields
}

// NormalSide returns the account's normal balance side.
func (a Account) NormalSide() Side {
	return a.AccountType.NormalSide()
}

// System account codes referenced by the document posting adapters.
const (
	SystemAccountCash              = "1000"
	SystemAccountReceivable        = "1100"
	SystemAccountDeferredRevenue   = "2100"
	SystemAccountVATPayable        = "2200"
	SystemAccountCommissionPayable = "2300"
	SystemAccountOwnerEquity       = "3000"
	SystemAccountRentalIncome      = "4000"
	SystemAccountCommissionExpense = "5000"
	SystemAccountMaintenance       = "5100"
)

// SystemAccountSpec describes one provisioned system account.
type SystemAccountSpec struct {
	Code    string
	Name    string
	Type    AccountType
	Subtype string
}

// SystemAccountSpecs is the default-value table for system account
// provisioning. Provisioning upserts exactly these rows (keyed by code, in the
// configured base currency) and never creates accounts implicitly elsewhere.
var SystemAccountSpecs = []SystemAccountSpec{
	{Code: SystemAccountCash, Name: "Cash and Bank", Type: Asset, Subtype: "cash"},
	{Code: SystemAccountReceivable, Name: "Accounts Receivable", Type: Asset, Subtype: "receivable"},
	{Code: SystemAccountDeferredRevenue, Name: "Deferred Revenue", Type: Liability, Subtype: "deferred_revenue"},
	{Code: SystemAccountVATPayable, Name: "VAT Payable", Type: Liability, Subtype: "tax"},
	{Code: SystemAccountCommissionPayable, Name: "Commission Payable", Type: Liability, Subtype: "payable"},
	{Code: SystemAccountOwnerEquity, Name: "Owner Equity", Type: Equity, Subtype: "capital"},
	{Code: SystemAccountRentalIncome, Name: "Rental Income", Type: Revenue, Subtype: "operating_income"},
	{Code: SystemAccountCommissionExpense, Name: "Commission Expense", Type: Expense, Subtype: "operating_expense"},
	{Code: SystemAccountMaintenance, Name: "Property Maintenance Expense", Type: Expense, Subtype: "operating_expense"},
}
