package mapping

import (
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/propbooks/propbooks_backend/internal/models"
)

// ToModelLedgerRow converts a domain LedgerRow to a model LedgerRow
func ToModelLedgerRow(d domain.LedgerRow) models.LedgerRow {
	var sourceType, sourceID *string
	if d.SourceType != "" {
		st := d.SourceType
		sourceType = &st
	}
	if d.SourceID != "" {
		sid := d.SourceID
		sourceID = &sid
	}
	return models.LedgerRow{
		LedgerRowID:    d.LedgerRowID,
		JournalEntryID: d.JournalEntryID,
		JournalID:      d.JournalID,
		JournalNumber:  d.JournalNumber,
		AccountID:      d.AccountID,
		EntryDate:      d.EntryDate,
		Description:    d.Description,
		DebitAmount:    d.DebitAmount,
		CreditAmount:   d.CreditAmount,
		Balance:        d.Balance,
		CurrencyCode:   d.CurrencyCode,
		ExchangeRate:   d.ExchangeRate,
		SourceType:     sourceType,
		SourceID:       sourceID,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

// ToDomainLedgerRow converts a model LedgerRow to a domain LedgerRow
func ToDomainLedgerRow(m models.LedgerRow) domain.LedgerRow {
	sourceType := ""
	if m.SourceType != nil {
		sourceType = *m.SourceType
	}
	sourceID := ""
	if m.SourceID != nil {
		sourceID = *m.SourceID
	}
	return domain.LedgerRow{
		LedgerRowID:    m.LedgerRowID,
		JournalEntryID: m.JournalEntryID,
		JournalID:      m.JournalID,
		JournalNumber:  m.JournalNumber,
		AccountID:      m.AccountID,
		EntryDate:      m.EntryDate,
		Description:    m.Description,
		DebitAmount:    m.DebitAmount,
		CreditAmount:   m.CreditAmount,
		Balance:        m.Balance,
		CurrencyCode:   m.CurrencyCode,
		ExchangeRate:   m.ExchangeRate,
		SourceType:     sourceType,
		SourceID:       sourceID,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}

// ToDomainLedgerRowSlice converts a slice of model LedgerRows to a slice of domain LedgerRows
func ToDomainLedgerRowSlice(ms []models.LedgerRow) []domain.LedgerRow {
	ds := make([]domain.LedgerRow, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerRow(m)
	}
	return ds
}
