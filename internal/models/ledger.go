package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRow represents a row of the append-only general_ledger table.
type LedgerRow struct {
	LedgerRowID    string          `db:"ledger_row_id"`
	JournalEntryID string          `db:"journal_entry_id"`
	JournalID      string          `db:"journal_id"`
	JournalNumber  string          `db:"journal_number"`
	AccountID      string          `db:"account_id"`
	EntryDate      time.Time       `db:"entry_date"`
	Description    string          `db:"description"`
	DebitAmount    decimal.Decimal `db:"debit_amount"`
	CreditAmount   decimal.Decimal `db:"credit_amount"`
	Balance        decimal.Decimal `db:"balance"`
	CurrencyCode   string          `db:"currency_code"`
	ExchangeRate   decimal.Decimal `db:"exchange_rate"`
	SourceType     *string         `db:"source_type"`
	SourceID       *string         `db:"source_id"`
	CreatedAt      time.Time       `db:"created_at"`
	CreatedBy      string          `db:"created_by"`
}
