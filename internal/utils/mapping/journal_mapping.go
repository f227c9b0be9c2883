package mapping

import (
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/propbooks/propbooks_backend/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	var postedBy *string
	if d.PostedBy != "" {
		pb := d.PostedBy
		postedBy = &pb
	}
	var reversalReason *string
	if d.ReversalReason != "" {
		rr := d.ReversalReason
		reversalReason = &rr
	}
	return models.Journal{
		JournalID:          d.JournalID,
		JournalNumber:      d.JournalNumber,
		JournalType:        models.JournalType(d.JournalType),
		JournalDate:        d.JournalDate,
		Description:        d.Description,
		CurrencyCode:       d.CurrencyCode,
		ExchangeRate:       d.ExchangeRate,
		Status:             models.JournalStatus(d.Status),
		PostedAt:           d.PostedAt,
		PostedBy:           postedBy,
		ReversingJournalID: d.ReversingJournalID,
		OriginalJournalID:  d.OriginalJournalID,
		ReversalReason:     reversalReason,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	postedBy := ""
	if m.PostedBy != nil {
		postedBy = *m.PostedBy
	}
	reversalReason := ""
	if m.ReversalReason != nil {
		reversalReason = *m.ReversalReason
	}
	return domain.Journal{
		JournalID:          m.JournalID,
		JournalNumber:      m.JournalNumber,
		JournalType:        domain.JournalType(m.JournalType),
		JournalDate:        m.JournalDate,
		Description:        m.Description,
		CurrencyCode:       m.CurrencyCode,
		ExchangeRate:       m.ExchangeRate,
		Status:             domain.JournalStatus(m.Status),
		PostedAt:           m.PostedAt,
		PostedBy:           postedBy,
		ReversingJournalID: m.ReversingJournalID,
		OriginalJournalID:  m.OriginalJournalID,
		ReversalReason:     reversalReason,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalSlice converts a slice of model Journals to a slice of domain Journals
func ToDomainJournalSlice(ms []models.Journal) []domain.Journal {
	ds := make([]domain.Journal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournal(m)
	}
	return ds
}

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	var sourceType, sourceID *string
	if d.SourceType != "" {
		st := d.SourceType
		sourceType = &st
	}
	if d.SourceID != "" {
		sid := d.SourceID
		sourceID = &sid
	}
	return models.JournalEntry{
		EntryID:      d.EntryID,
		JournalID:    d.JournalID,
		LineNo:       d.LineNo,
		AccountID:    d.AccountID,
		Description:  d.Description,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		SourceType:   sourceType,
		SourceID:     sourceID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	sourceType := ""
	if m.SourceType != nil {
		sourceType = *m.SourceType
	}
	sourceID := ""
	if m.SourceID != nil {
		sourceID = *m.SourceID
	}
	return domain.JournalEntry{
		EntryID:      m.EntryID,
		JournalID:    m.JournalID,
		LineNo:       m.LineNo,
		AccountID:    m.AccountID,
		Description:  m.Description,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		SourceType:   sourceType,
		SourceID:     sourceID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts a slice of model JournalEntries to a slice of domain JournalEntries
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}
