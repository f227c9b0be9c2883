package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propbooks/propbooks_backend/internal/apperrors"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	portsrepo "github.com/propbooks/propbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/propbooks/propbooks_backend/internal/core/ports/services"
	"github.com/propbooks/propbooks_backend/internal/dto"
	"github.com/propbooks/propbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// journalService implements the journal facade: draft lifecycle, posting,
// reversal and reallocation. The atomic posting work itself lives in the
// journal repository; this layer validates, shapes and audits.
type journalService struct {
	BaseService
	journalRepo      portsrepo.JournalRepositoryFacade
	accountRepo      portsrepo.AccountRepositoryFacade
	reallocationRepo portsrepo.ReallocationRepositoryFacade
	exchangeRateSvc  portssvc.ExchangeRateReaderSvc
	audit            *AuditRecorder
	baseCurrency     string
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, reallocationRepo portsrepo.ReallocationRepositoryFacade, exchangeRateSvc portssvc.ExchangeRateReaderSvc, audit *AuditRecorder, baseCurrency string) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:      journalRepo,
		accountRepo:      accountRepo,
		reallocationRepo: reallocationRepo,
		exchangeRateSvc:  exchangeRateSvc,
		audit:            audit,
		baseCurrency:     baseCurrency,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// buildEntries turns entry requests into domain entries with line numbers
// assigned in request order.
func buildEntries(journalID string, reqs []dto.JournalEntryRequest, actorID string, now time.Time) []domain.JournalEntry {
	entries := make([]domain.JournalEntry, len(reqs))
	for i, er := range reqs {
		entries[i] = domain.JournalEntry{
			EntryID:      uuid.NewString(),
			JournalID:    journalID,
			LineNo:       i + 1,
			AccountID:    er.AccountID,
			Description:  er.Description,
			DebitAmount:  er.DebitAmount,
			CreditAmount: er.CreditAmount,
			SourceType:   er.SourceType,
			SourceID:     er.SourceID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
	}
	return entries
}

// validateEntryAccounts checks that every referenced account exists and is
// active, and returns them keyed by ID. Account currency may differ from the
// journal currency; the posting engine converts through the header rate.
func (s *journalService) validateEntryAccounts(ctx context.Context, entries []domain.JournalEntry) (map[string]domain.Account, error) {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.AccountID)
	}
	ids = uniqueStrings(ids)

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return nil, apperrors.NewValidationError("account " + id + " not found")
		}
		if !acc.IsActive {
			return nil, apperrors.NewValidationError("account " + acc.Code + " is inactive")
		}
	}
	return accounts, nil
}

// resolveExchangeRate returns the journal's header rate: the requested value
// when given, otherwise the stored rate from the journal currency to the base
// currency as of the journal date.
func (s *journalService) resolveExchangeRate(ctx context.Context, requested decimal.Decimal, currencyCode string, journalDate time.Time) (decimal.Decimal, error) {
	if requested.IsNegative() {
		return decimal.Zero, apperrors.NewValidationError("exchange rate must be positive")
	}
	if requested.IsPositive() {
		return requested, nil
	}
	rate, err := s.exchangeRateSvc.ResolveRate(ctx, currencyCode, s.baseCurrency, journalDate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to resolve exchange rate: %w", err)
	}
	return rate, nil
}

// CreateJournal validates and persists a new draft journal with its entries.
// The draft affects no balances until posted.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, actorID string) (*domain.Journal, []domain.JournalEntry, error) {
	if !req.JournalType.IsValid() {
		return nil, nil, apperrors.NewValidationError(fmt.Sprintf("invalid journal type %q", req.JournalType))
	}
	if req.JournalType == domain.Reversal {
		return nil, nil, apperrors.NewValidationError("reversal journals are created through the reverse operation")
	}

	currency := strings.ToUpper(req.CurrencyCode)
	if currency == "" {
		currency = s.baseCurrency
	}

	now := time.Now()
	journalID := uuid.NewString()
	entries := buildEntries(journalID, req.Entries, actorID, now)

	if err := accounting.ValidateJournalBalance(entries); err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "journal entries failed validation", err)
	}
	if _, err := s.validateEntryAccounts(ctx, entries); err != nil {
		return nil, nil, err
	}

	rate, err := s.resolveExchangeRate(ctx, req.ExchangeRate, currency, req.JournalDate)
	if err != nil {
		return nil, nil, err
	}

	journal := domain.Journal{
		JournalID:    journalID,
		JournalType:  req.JournalType,
		JournalDate:  req.JournalDate,
		Description:  req.Description,
		CurrencyCode: currency,
		ExchangeRate: rate,
		Status:       domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	number, err := s.journalRepo.SaveDraftJournal(ctx, journal, entries)
	if err != nil {
		s.LogError(ctx, err, "failed to save draft journal", slog.String("journal_type", string(req.JournalType)))
		return nil, nil, err
	}
	journal.JournalNumber = number

	s.audit.Record(ctx, domain.AuditJournalCreated, "journal", journal.JournalID, map[string]any{
		"journalNumber": number,
		"journalType":   string(journal.JournalType),
		"entryCount":    len(entries),
	}, actorID)

	s.LogInfo(ctx, "draft journal created",
		slog.String("journal_id", journal.JournalID),
		slog.String("journal_number", number))
	return &journal, entries, nil
}

// UpdateDraftJournal updates a draft's header and, when entries are given,
// replaces them entirely. The repository re-checks the DRAFT status under its
// row lock.
func (s *journalService) UpdateDraftJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, actorID string) (*domain.Journal, []domain.JournalEntry, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, nil, err
	}
	if !journal.IsDraft() {
		return nil, nil, apperrors.NewConflictError("journal " + journal.JournalNumber + " is not a draft")
	}

	now := time.Now()
	changes := map[string]any{}
	currencyChanged := false

	if req.JournalDate != nil {
		journal.JournalDate = *req.JournalDate
		changes["journalDate"] = req.JournalDate.Format("2006-01-02")
	}
	if req.Description != nil {
		journal.Description = *req.Description
		changes["description"] = *req.Description
	}
	if req.CurrencyCode != nil {
		currency := strings.ToUpper(*req.CurrencyCode)
		if currency != journal.CurrencyCode {
			journal.CurrencyCode = currency
			currencyChanged = true
			changes["currencyCode"] = currency
		}
	}

	var entries []domain.JournalEntry
	if len(req.Entries) > 0 {
		entries = buildEntries(journal.JournalID, req.Entries, actorID, now)
		changes["entryCount"] = len(entries)
	} else {
		entries, err = s.journalRepo.FindEntriesByJournalID(ctx, journal.JournalID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load journal entries: %w", err)
		}
	}

	if err := accounting.ValidateJournalBalance(entries); err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "journal entries failed validation", err)
	}
	if len(req.Entries) > 0 {
		if _, err := s.validateEntryAccounts(ctx, entries); err != nil {
			return nil, nil, err
		}
	}

	switch {
	case req.ExchangeRate != nil:
		rate, err := s.resolveExchangeRate(ctx, *req.ExchangeRate, journal.CurrencyCode, journal.JournalDate)
		if err != nil {
			return nil, nil, err
		}
		journal.ExchangeRate = rate
		changes["exchangeRate"] = rate.String()
	case currencyChanged:
		rate, err := s.resolveExchangeRate(ctx, decimal.Zero, journal.CurrencyCode, journal.JournalDate)
		if err != nil {
			return nil, nil, err
		}
		journal.ExchangeRate = rate
	}

	if len(changes) == 0 {
		return journal, entries, nil
	}

	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = actorID

	if err := s.journalRepo.UpdateDraftJournal(ctx, *journal, entries); err != nil {
		s.LogError(ctx, err, "failed to update draft journal", slog.String("journal_id", journalID))
		return nil, nil, err
	}

	s.audit.Record(ctx, domain.AuditJournalUpdated, "journal", journal.JournalID, changes, actorID)
	return journal, entries, nil
}

// DeleteDraftJournal removes a draft journal and its entries.
func (s *journalService) DeleteDraftJournal(ctx context.Context, journalID string, actorID string) error {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return err
	}
	if !journal.IsDraft() {
		return apperrors.NewConflictError("journal " + journal.JournalNumber + " is not a draft")
	}

	if err := s.journalRepo.DeleteDraftJournal(ctx, journalID); err != nil {
		s.LogError(ctx, err, "failed to delete draft journal", slog.String("journal_id", journalID))
		return err
	}

	s.audit.Record(ctx, domain.AuditJournalDeleted, "journal", journalID, map[string]any{
		"journalNumber": journal.JournalNumber,
	}, actorID)

	s.LogInfo(ctx, "draft journal deleted",
		slog.String("journal_id", journalID),
		slog.String("journal_number", journal.JournalNumber))
	return nil
}

// PostJournal posts a draft journal atomically. The repository owns the
// transaction: locks, balance arithmetic, ledger rows, status transition and
// the audit record commit or roll back together.
func (s *journalService) PostJournal(ctx context.Context, journalID string, actorID string) (*domain.Journal, error) {
	posted, err := s.journalRepo.PostJournal(ctx, journalID, actorID, time.Now())
	if err != nil {
		s.LogError(ctx, err, "failed to post journal", slog.String("journal_id", journalID))
		return nil, err
	}

	s.LogInfo(ctx, "journal posted",
		slog.String("journal_id", posted.JournalID),
		slog.String("journal_number", posted.JournalNumber))
	return posted, nil
}

// ReverseJournal builds a reversal journal dated now that mirrors the
// original's entries with debit and credit swapped, posts it, and marks the
// original REVERSED, all in one repository transaction.
func (s *journalService) ReverseJournal(ctx context.Context, journalID string, reason string, actorID string) (*domain.Journal, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.NewValidationError("reversal reason is required")
	}

	original, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if original.JournalType == domain.Reversal {
		return nil, apperrors.NewConflictError("cannot reverse a reversal journal")
	}
	if original.Status != domain.Posted {
		return nil, apperrors.NewConflictError("journal " + original.JournalNumber + " is not posted")
	}

	entries, err := s.journalRepo.FindEntriesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, apperrors.NewInternalError("journal "+original.JournalNumber+" has no entries", nil)
	}

	now := time.Now()
	reversalID := uuid.NewString()
	mirrored := make([]domain.JournalEntry, len(entries))
	for i, e := range entries {
		mirrored[i] = domain.JournalEntry{
			EntryID:      uuid.NewString(),
			JournalID:    reversalID,
			LineNo:       e.LineNo,
			AccountID:    e.AccountID,
			Description:  e.Description,
			DebitAmount:  e.CreditAmount,
			CreditAmount: e.DebitAmount,
			SourceType:   e.SourceType,
			SourceID:     e.SourceID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
	}

	originalID := original.JournalID
	reversal := domain.Journal{
		JournalID:         reversalID,
		JournalType:       domain.Reversal,
		JournalDate:       now,
		Description:       "Reversal of " + original.JournalNumber,
		CurrencyCode:      original.CurrencyCode,
		ExchangeRate:      original.ExchangeRate,
		Status:            domain.Draft,
		OriginalJournalID: &originalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	posted, err := s.journalRepo.PostReversal(ctx, originalID, reversal, mirrored, reason, actorID, now)
	if err != nil {
		s.LogError(ctx, err, "failed to reverse journal",
			slog.String("journal_id", journalID),
			slog.String("journal_number", original.JournalNumber))
		return nil, err
	}

	s.LogInfo(ctx, "journal reversed",
		slog.String("journal_number", original.JournalNumber),
		slog.String("reversal_number", posted.JournalNumber))
	return posted, nil
}

// ReallocateEntry moves an amount from a posted entry's account to another
// account through a two-line ADJUSTMENT journal: an undo entry on the source
// account opposite its normal side, and an apply entry on the target account
// on its normal side. Both accounts must share a normal side for the
// adjustment to balance. Repeated reallocations of the same entry may not
// exceed its original amount in total.
func (s *journalService) ReallocateEntry(ctx context.Context, req dto.ReallocateEntryRequest, actorID string) (*domain.Reallocation, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, apperrors.NewValidationError("reallocation reason is required")
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("reallocation amount must be positive")
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, req.SourceEntryID)
	if err != nil {
		return nil, err
	}
	if req.ToAccountID == entry.AccountID {
		return nil, apperrors.NewValidationError("target account must differ from the source account")
	}
	prior, err := s.reallocationRepo.ListReallocationsBySourceEntry(ctx, entry.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior reallocations: %w", err)
	}
	reallocated := decimal.Zero
	for _, r := range prior {
		reallocated = reallocated.Add(r.Amount)
	}
	if reallocated.Add(req.Amount).GreaterThan(entry.Amount()) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("reallocation amount %s plus %s already reallocated exceeds the entry amount %s",
			req.Amount.String(), reallocated.String(), entry.Amount().String()))
	}

	sourceJournal, err := s.journalRepo.FindJournalByID(ctx, entry.JournalID)
	if err != nil {
		return nil, err
	}
	if sourceJournal.Status != domain.Posted {
		return nil, apperrors.NewConflictError("journal " + sourceJournal.JournalNumber + " is not posted")
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{entry.AccountID, req.ToAccountID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	source, ok := accounts[entry.AccountID]
	if !ok {
		return nil, apperrors.NewValidationError("account " + entry.AccountID + " not found")
	}
	target, ok := accounts[req.ToAccountID]
	if !ok {
		return nil, apperrors.NewValidationError("account " + req.ToAccountID + " not found")
	}
	if !target.IsActive {
		return nil, apperrors.NewValidationError("account " + target.Code + " is inactive")
	}

	if target.NormalSide() != source.NormalSide() {
		return nil, apperrors.NewValidationError("target account " + target.Code + " normal side does not match source account " + source.Code)
	}

	now := time.Now()
	adjustmentID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}

	undo := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		JournalID:   adjustmentID,
		LineNo:      1,
		AccountID:   entry.AccountID,
		Description: "Reallocate to " + target.Code,
		SourceType:  "reallocation",
		SourceID:    entry.EntryID,
		AuditFields: audit,
	}
	apply := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		JournalID:   adjustmentID,
		LineNo:      2,
		AccountID:   req.ToAccountID,
		Description: "Reallocate from " + source.Code,
		SourceType:  "reallocation",
		SourceID:    entry.EntryID,
		AuditFields: audit,
	}
	if source.NormalSide() == domain.Debit {
		undo.CreditAmount = req.Amount
		apply.DebitAmount = req.Amount
	} else {
		undo.DebitAmount = req.Amount
		apply.CreditAmount = req.Amount
	}

	adjustment := domain.Journal{
		JournalID:    adjustmentID,
		JournalType:  domain.Adjustment,
		JournalDate:  now,
		Description:  req.Reason,
		CurrencyCode: sourceJournal.CurrencyCode,
		ExchangeRate: sourceJournal.ExchangeRate,
		Status:       domain.Draft,
		AuditFields:  audit,
	}

	reallocation := domain.Reallocation{
		ReallocationID: uuid.NewString(),
		SourceEntryID:  entry.EntryID,
		NewEntryID:     apply.EntryID,
		AdjustmentID:   adjustmentID,
		FromAccountID:  entry.AccountID,
		ToAccountID:    req.ToAccountID,
		Amount:         req.Amount,
		Reason:         req.Reason,
		ActorID:        actorID,
		ReallocatedAt:  now,
	}

	posted, err := s.journalRepo.PostReallocation(ctx, adjustment, []domain.JournalEntry{undo, apply}, reallocation)
	if err != nil {
		s.LogError(ctx, err, "failed to reallocate entry",
			slog.String("entry_id", entry.EntryID),
			slog.String("to_account_id", req.ToAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "entry reallocated",
		slog.String("entry_id", entry.EntryID),
		slog.String("adjustment_number", posted.JournalNumber),
		slog.String("amount", req.Amount.String()))
	return &reallocation, nil
}

// GetJournalByID retrieves a specific journal and its entries.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, []domain.JournalEntry, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.journalRepo.FindEntriesByJournalID(ctx, journalID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load journal entries: %w", err)
	}
	return journal, entries, nil
}

// ListJournals retrieves a paginated list of journals with their entries.
func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var status *domain.JournalStatus
	if params.Status != nil && *params.Status != "" {
		st := domain.JournalStatus(*params.Status)
		switch st {
		case domain.Draft, domain.Posted, domain.Reversed:
			status = &st
		default:
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid journal status %q", *params.Status))
		}
	}

	var journalType *domain.JournalType
	if params.Type != nil && *params.Type != "" {
		jt := domain.JournalType(*params.Type)
		if !jt.IsValid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid journal type %q", *params.Type))
		}
		journalType = &jt
	}

	journals, nextToken, err := s.journalRepo.ListJournals(ctx, limit, params.NextToken, status, journalType)
	if err != nil {
		return nil, err
	}

	journalIDs := make([]string, len(journals))
	for i, j := range journals {
		journalIDs[i] = j.JournalID
	}
	entriesByJournal, err := s.journalRepo.FindEntriesByJournalIDs(ctx, journalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal entries: %w", err)
	}

	responses := make([]dto.JournalResponse, len(journals))
	for i, j := range journals {
		responses[i] = dto.ToJournalResponse(&j, entriesByJournal[j.JournalID])
	}

	return &dto.ListJournalsResponse{
		Journals:  responses,
		NextToken: nextToken,
	}, nil
}

// GetEntryByID retrieves a single journal entry.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByID(ctx, entryID)
}
