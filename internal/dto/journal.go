package dto

import (
	"time"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryRequest defines one line of a journal being created or updated.
// Exactly one of debitAmount/creditAmount must be positive; the service
// enforces the exclusivity.
type JournalEntryRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	SourceType   string          `json:"sourceType"`
	SourceID     string          `json:"sourceID"`
}

// CreateJournalRequest defines the data needed to create a new draft journal.
type CreateJournalRequest struct {
	JournalType  domain.JournalType    `json:"journalType" binding:"required,oneof=GENERAL SALES RECEIPTS PAYMENTS ADJUSTMENT"`
	JournalDate  time.Time             `json:"journalDate" binding:"required"`
	Description  string                `json:"description"`
	CurrencyCode string                `json:"currencyCode" binding:"omitempty,len=3,uppercase"`
	ExchangeRate decimal.Decimal       `json:"exchangeRate"` // Optional; resolved from stored rates when zero
	Entries      []JournalEntryRequest `json:"entries" binding:"required,min=2,dive"`
}

// UpdateJournalRequest defines the data allowed for updating a draft journal.
// Use pointers to distinguish between zero-value updates and fields not provided.
// When entries are provided they replace the draft's entries entirely.
type UpdateJournalRequest struct {
	JournalDate  *time.Time            `json:"journalDate"`
	Description  *string               `json:"description"`
	CurrencyCode *string               `json:"currencyCode" binding:"omitempty,len=3,uppercase"`
	ExchangeRate *decimal.Decimal      `json:"exchangeRate"`
	Entries      []JournalEntryRequest `json:"entries" binding:"omitempty,min=2,dive"`
}

// ReverseJournalRequest defines the data needed to reverse a posted journal.
type ReverseJournalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID      string          `json:"entryID"`
	JournalID    string          `json:"journalID"`
	LineNo       int             `json:"lineNo"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	SourceType   string          `json:"sourceType,omitempty"`
	SourceID     string          `json:"sourceID,omitempty"`
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID          string                 `json:"journalID"`
	JournalNumber      string                 `json:"journalNumber"`
	JournalType        domain.JournalType     `json:"journalType"`
	JournalDate        time.Time              `json:"journalDate"`
	Description        string                 `json:"description"`
	CurrencyCode       string                 `json:"currencyCode"`
	ExchangeRate       decimal.Decimal        `json:"exchangeRate"`
	Status             domain.JournalStatus   `json:"status"`
	PostedAt           *time.Time             `json:"postedAt,omitempty"`
	PostedBy           string                 `json:"postedBy,omitempty"`
	ReversingJournalID *string                `json:"reversingJournalID,omitempty"`
	OriginalJournalID  *string                `json:"originalJournalID,omitempty"`
	ReversalReason     string                 `json:"reversalReason,omitempty"`
	Entries            []JournalEntryResponse `json:"entries,omitempty"`
	CreatedAt          time.Time              `json:"createdAt"`
	CreatedBy          string                 `json:"createdBy"`
	LastUpdatedAt      time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy      string                 `json:"lastUpdatedBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:      entry.EntryID,
		JournalID:    entry.JournalID,
		LineNo:       entry.LineNo,
		AccountID:    entry.AccountID,
		Description:  entry.Description,
		DebitAmount:  entry.DebitAmount,
		CreditAmount: entry.CreditAmount,
		SourceType:   entry.SourceType,
		SourceID:     entry.SourceID,
	}
}

// ToJournalEntryResponses converts a slice of domain.JournalEntry to []JournalEntryResponse.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ToJournalEntryResponse(&entry)
	}
	return responses
}

// ToJournalResponse converts a domain.Journal and its entries to JournalResponse DTO
func ToJournalResponse(j *domain.Journal, entries []domain.JournalEntry) JournalResponse {
	resp := JournalResponse{
		JournalID:          j.JournalID,
		JournalNumber:      j.JournalNumber,
		JournalType:        j.JournalType,
		JournalDate:        j.JournalDate,
		Description:        j.Description,
		CurrencyCode:       j.CurrencyCode,
		ExchangeRate:       j.ExchangeRate,
		Status:             j.Status,
		PostedAt:           j.PostedAt,
		PostedBy:           j.PostedBy,
		ReversingJournalID: j.ReversingJournalID,
		OriginalJournalID:  j.OriginalJournalID,
		ReversalReason:     j.ReversalReason,
		CreatedAt:          j.CreatedAt,
		CreatedBy:          j.CreatedBy,
		LastUpdatedAt:      j.LastUpdatedAt,
		LastUpdatedBy:      j.LastUpdatedBy,
	}
	if len(entries) > 0 {
		resp.Entries = ToJournalEntryResponses(entries)
	}
	return resp
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status" binding:"omitempty,oneof=DRAFT POSTED REVERSED"`
	Type      *string `form:"type" binding:"omitempty,oneof=GENERAL SALES RECEIPTS PAYMENTS ADJUSTMENT REVERSAL"`
}

// ListJournalsResponse wraps a page of journals with the next page token.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}
