package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the lifecycle state of a journal row.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// JournalType classifies the business origin of a journal row.
type JournalType string

const (
	General    JournalType = "GENERAL"
	Sales      JournalType = "SALES"
	Receipts   JournalType = "RECEIPTS"
	Payments   JournalType = "PAYMENTS"
	Adjustment JournalType = "ADJUSTMENT"
	Reversal   JournalType = "REVERSAL"
)

// Journal represents a row of the journals table.
type Journal struct {
	JournalID          string          `db:"journal_id"`
	JournalNumber      string          `db:"journal_number"`
	JournalType        JournalType     `db:"journal_type"`
	JournalDate        time.Time       `db:"journal_date"`
	Description        string          `db:"description"`
	CurrencyCode       string          `db:"currency_code"`
	ExchangeRate       decimal.Decimal `db:"exchange_rate"`
	Status             JournalStatus   `db:"status"`
	PostedAt           *time.Time      `db:"posted_at"`
	PostedBy           *string         `db:"posted_by"`
	ReversingJournalID *string         `db:"reversing_journal_id"`
	OriginalJournalID  *string         `db:"original_journal_id"`
	ReversalReason     *string         `db:"reversal_reason"`
	AuditFields
}

// JournalEntry represents a row of the journal_entries table.
type JournalEntry struct {
	EntryID      string          `db:"entry_id"`
	JournalID    string          `db:"journal_id"`
	LineNo       int             `db:"line_no"`
	AccountID    string          `db:"account_id"`
	Description  string          `db:"description"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	SourceType   *string         `db:"source_type"`
	SourceID     *string         `db:"source_id"`
	AuditFields
}
