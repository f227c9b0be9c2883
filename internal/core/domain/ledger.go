package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRow is one posted line of the general ledger: a denormalized copy of
// a journal entry plus the account's running balance immediately after the
// entry was applied. Rows are append-only; they are never updated or deleted,
// which makes the ledger a replayable derivation of every account balance.
type LedgerRow struct {
	LedgerRowID    string          `json:"ledgerRowID"`    // Primary Key (UUID)
	JournalEntryID string          `json:"journalEntryID"` // One-to-one with the posted entry
	JournalID      string          `json:"journalID"`      // Denormalized journal reference
	JournalNumber  string          `json:"journalNumber"`  // Denormalized journal number
	AccountID      string          `json:"accountID"`      // Affected account
	EntryDate      time.Time       `json:"entryDate"`      // Journal date at posting time
	Description    string          `json:"description"`    // Line memo or journal description
	DebitAmount    decimal.Decimal `json:"debitAmount"`    // As entered
	CreditAmount   decimal.Decimal `json:"creditAmount"`   // As entered
	Balance        decimal.Decimal `json:"balance"`        // Account balance after applying this row
	CurrencyCode   string          `json:"currencyCode"`   // Journal currency
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`   // Journal header rate at posting time
	SourceType     string          `json:"sourceType"`     // Originating document type, if any
	SourceID       string          `json:"sourceID"`       // Originating document id, if any
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// LedgerFilter narrows general ledger queries. Zero values mean "no filter".
type LedgerFilter struct {
	AccountID  string
	JournalID  string
	SourceType string
	SourceID   string
	DateFrom   *time.Time
	DateTo     *time.Time
}
