package dto

import (
	"time"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListLedgerParams defines query parameters for browsing the general ledger.
type ListLedgerParams struct {
	AccountID  string     `form:"accountID"`
	JournalID  string     `form:"journalID"`
	SourceType string     `form:"sourceType"`
	SourceID   string     `form:"sourceID"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Limit      int        `form:"limit,default=50"`
	NextToken  *string    `form:"nextToken"`
}

// LedgerRowResponse defines the data returned for a general ledger row.
type LedgerRowResponse struct {
	LedgerRowID    string          `json:"ledgerRowID"`
	JournalEntryID string          `json:"journalEntryID"`
	JournalID      string          `json:"journalID"`
	JournalNumber  string          `json:"journalNumber"`
	AccountID      string          `json:"accountID"`
	EntryDate      time.Time       `json:"entryDate"`
	Description    string          `json:"description"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	Balance        decimal.Decimal `json:"balance"`
	CurrencyCode   string          `json:"currencyCode"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	SourceType     string          `json:"sourceType,omitempty"`
	SourceID       string          `json:"sourceID,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToLedgerRowResponse converts a domain.LedgerRow to LedgerRowResponse DTO
func ToLedgerRowResponse(row *domain.LedgerRow) LedgerRowResponse {
	return LedgerRowResponse{
		LedgerRowID:    row.LedgerRowID,
		JournalEntryID: row.JournalEntryID,
		JournalID:      row.JournalID,
		JournalNumber:  row.JournalNumber,
		AccountID:      row.AccountID,
		EntryDate:      row.EntryDate,
		Description:    row.Description,
		DebitAmount:    row.DebitAmount,
		CreditAmount:   row.CreditAmount,
		Balance:        row.Balance,
		CurrencyCode:   row.CurrencyCode,
		ExchangeRate:   row.ExchangeRate,
		SourceType:     row.SourceType,
		SourceID:       row.SourceID,
		CreatedAt:      row.CreatedAt,
	}
}

// ToLedgerRowResponses converts a slice of domain.LedgerRow to []LedgerRowResponse.
func ToLedgerRowResponses(rows []domain.LedgerRow) []LedgerRowResponse {
	responses := make([]LedgerRowResponse, len(rows))
	for i, row := range rows {
		responses[i] = ToLedgerRowResponse(&row)
	}
	return responses
}

// ListLedgerResponse wraps a page of ledger rows with the next page token.
type ListLedgerResponse struct {
	Rows      []LedgerRowResponse `json:"rows"`
	NextToken *string             `json:"nextToken,omitempty"`
}

// AccountStatementResponse defines the data returned for an account statement:
// ledger movements over a date range bracketed by opening and closing balances.
type AccountStatementResponse struct {
	AccountID      string              `json:"accountID"`
	AccountCode    string              `json:"accountCode"`
	AccountName    string              `json:"accountName"`
	From           time.Time           `json:"from"`
	To             time.Time           `json:"to"`
	OpeningBalance decimal.Decimal     `json:"openingBalance"`
	Rows           []LedgerRowResponse `json:"rows"`
	ClosingBalance decimal.Decimal     `json:"closingBalance"`
}

// ToAccountStatementResponse converts a domain.AccountStatement to AccountStatementResponse DTO
func ToAccountStatementResponse(s *domain.AccountStatement) AccountStatementResponse {
	return AccountStatementResponse{
		AccountID:      s.AccountID,
		AccountCode:    s.AccountCode,
		AccountName:    s.AccountName,
		From:           s.From,
		To:             s.To,
		OpeningBalance: s.OpeningBalance,
		Rows:           ToLedgerRowResponses(s.Rows),
		ClosingBalance: s.ClosingBalance,
	}
}
