package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the lifecycle state of a journal.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// JournalType classifies the business origin of a journal.
type JournalType string

const (
	General    JournalType = "GENERAL"
	Sales      JournalType = "SALES"
	Receipts   JournalType = "RECEIPTS"
	Payments   JournalType = "PAYMENTS"
	Adjustment JournalType = "ADJUSTMENT"
	Reversal   JournalType = "REVERSAL"
)

// IsValid reports whether t is a known journal type.
func (t JournalType) IsValid() bool {
	switch t {
	case General, Sales, Receipts, Payments, Adjustment, Reversal:
		return true
	}
	return false
}

// Journal represents a single financial event composed of balanced entries.
// Journals are created in DRAFT, become POSTED exactly once, and may
// transition to REVERSED exactly once; no backward transitions exist.
type Journal struct {
	JournalID          string          `json:"journalID"`          // Primary Key (UUID)
	JournalNumber      string          `json:"journalNumber"`      // Unique sequential number (e.g., "RCT-000042")
	JournalType        JournalType     `json:"journalType"`        // Business classification
	JournalDate        time.Time       `json:"journalDate"`        // Date the event occurred
	Description        string          `json:"description"`        // Nullable user description
	CurrencyCode       string          `json:"currencyCode"`       // Primary currency of the journal (Not Null)
	ExchangeRate       decimal.Decimal `json:"exchangeRate"`       // Header-level rate to the account currency; 1 when same
	Status             JournalStatus   `json:"status"`             // DRAFT until posted
	PostedAt           *time.Time      `json:"postedAt"`           // Set when posted
	PostedBy           string          `json:"postedBy"`           // Actor that posted
	ReversingJournalID *string         `json:"reversingJournalID"` // On the original: the journal that reversed it
	OriginalJournalID  *string         `json:"originalJournalID"`  // On a reversal: the journal it reverses
	ReversalReason     string          `json:"reversalReason"`     // On the original once reversed
	AuditFields
}

// IsDraft reports whether the journal can still be mutated.
func (j Journal) IsDraft() bool {
	return j.Status == Draft
}

// JournalEntry is one line of a journal, affecting exactly one account with
// either a debit or a credit amount. Entries are immutable once their parent
// journal is posted.
type JournalEntry struct {
	EntryID      string          `json:"entryID"`      // Primary Key (UUID)
	JournalID    string          `json:"journalID"`    // FK -> Journal.journalID (Not Null)
	LineNo       int             `json:"lineNo"`       // Position within the journal; posting order
	AccountID    string          `json:"accountID"`    // FK -> Account.accountID (Not Null)
	Description  string          `json:"description"`  // Nullable line memo
	DebitAmount  decimal.Decimal `json:"debitAmount"`  // Exactly one of debit/credit is non-zero
	CreditAmount decimal.Decimal `json:"creditAmount"` // Exactly one of debit/credit is non-zero
	SourceType   string          `json:"sourceType"`   // Optional originating document type (e.g., "invoice")
	SourceID     string          `json:"sourceID"`     // Optional originating document identifier
	AuditFields
}

var (
	// ErrEntryAmountExclusive is returned when an entry does not carry exactly
	// one positive amount.
	ErrEntryAmountExclusive = errors.New("entry must have exactly one of debit or credit amount set")
	// ErrEntryAmountNegative is returned when an entry carries a negative amount.
	ErrEntryAmountNegative = errors.New("entry amounts must not be negative")
	// ErrEntryAccountMissing is returned when an entry has no account reference.
	ErrEntryAccountMissing = errors.New("entry must reference an account")
)

// Validate enforces the entry shape invariants: an account reference and
// exactly one strictly positive amount on either the debit or credit side.
func (e JournalEntry) Validate() error {
	if e.AccountID == "" {
		return ErrEntryAccountMissing
	}
	if e.DebitAmount.IsNegative() || e.CreditAmount.IsNegative() {
		return ErrEntryAmountNegative
	}
	debitSet := e.DebitAmount.IsPositive()
	creditSet := e.CreditAmount.IsPositive()
	if debitSet == creditSet {
		return ErrEntryAmountExclusive
	}
	return nil
}

// Side returns which side of the ledger this entry sits on.
func (e JournalEntry) Side() Side {
	if e.DebitAmount.IsPositive() {
		return Debit
	}
	return Credit
}

// Amount returns the entry's single non-zero amount.
func (e JournalEntry) Amount() decimal.Decimal {
	if e.DebitAmount.IsPositive() {
		return e.DebitAmount
	}
	return e.CreditAmount
}
