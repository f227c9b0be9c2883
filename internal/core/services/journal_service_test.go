package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propbooks/propbooks_backend/internal/apperrors"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	portssvc "github.com/propbooks/propbooks_backend/internal/core/ports/services"
	"github.com/propbooks/propbooks_backend/internal/core/services"
	"github.com/propbooks/propbooks_backend/internal/dto"
	"github.com/propbooks/propbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const baseCurrency = "AED"

type JournalServiceTestSuite struct {
	suite.Suite
	journalRepo *MockJournalRepository
	accountRepo *MockAccountRepository
	reallocRepo *MockReallocationRepository
	rateReader  *MockExchangeRateReader
	auditRepo   *MockAuditRepository
	service     portssvc.JournalSvcFacade
	ctx         context.Context
	actorID     string

	cashAccount       domain.Account
	receivableAccount domain.Account
	incomeAccount     domain.Account
	otherIncome       domain.Account
	inactiveAccount   domain.Account
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.journalRepo = new(MockJournalRepository)
	s.accountRepo = new(MockAccountRepository)
	s.reallocRepo = new(MockReallocationRepository)
	s.rateReader = new(MockExchangeRateReader)
	s.auditRepo = new(MockAuditRepository)
	s.service = services.NewJournalService(s.journalRepo, s.accountRepo, s.reallocRepo, s.rateReader, services.NewAuditRecorder(s.auditRepo), baseCurrency)
	s.ctx = context.Background()
	s.actorID = uuid.NewString()

	s.auditRepo.On("SaveAuditRecord", mock.Anything, mock.Anything).Return(nil).Maybe()

	s.cashAccount = domain.Account{AccountID: uuid.NewString(), Code: "1000", Name: "Cash and Bank", AccountType: domain.Asset, CurrencyCode: baseCurrency, IsActive: true}
	s.receivableAccount = domain.Account{AccountID: uuid.NewString(), Code: "1100", Name: "Accounts Receivable", AccountType: domain.Asset, CurrencyCode: baseCurrency, IsActive: true}
	s.incomeAccount = domain.Account{AccountID: uuid.NewString(), Code: "4000", Name: "Rental Income", AccountType: domain.Revenue, CurrencyCode: baseCurrency, IsActive: true}
	s.otherIncome = domain.Account{AccountID: uuid.NewString(), Code: "4100", Name: "Parking Income", AccountType: domain.Revenue, CurrencyCode: baseCurrency, IsActive: true}
	s.inactiveAccount = domain.Account{AccountID: uuid.NewString(), Code: "1900", Name: "Old Petty Cash", AccountType: domain.Asset, CurrencyCode: baseCurrency, IsActive: false}
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (s *JournalServiceTestSuite) createRequest(amount decimal.Decimal) dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		JournalType:  domain.General,
		JournalDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Description:  "March rent",
		ExchangeRate: decimal.NewFromInt(1),
		Entries: []dto.JournalEntryRequest{
			{AccountID: s.cashAccount.AccountID, DebitAmount: amount},
			{AccountID: s.incomeAccount.AccountID, CreditAmount: amount},
		},
	}
}

func (s *JournalServiceTestSuite) TestCreateJournal_Success() {
	req := s.createRequest(decimal.NewFromInt(100))
	accounts := map[string]domain.Account{
		s.cashAccount.AccountID:   s.cashAccount,
		s.incomeAccount.AccountID: s.incomeAccount,
	}
	s.accountRepo.On("FindAccountsByIDs", s.ctx, []string{s.cashAccount.AccountID, s.incomeAccount.AccountID}).Return(accounts, nil)
	s.journalRepo.On("SaveDraftJournal", s.ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.JournalType == domain.General && j.Status == domain.Draft && j.CurrencyCode == baseCurrency && j.ExchangeRate.Equal(decimal.NewFromInt(1))
	}), mock.MatchedBy(func(entries []domain.JournalEntry) bool {
		return len(entries) == 2 && entries[0].LineNo == 1 && entries[1].LineNo == 2
	})).Return("GEN-000042", nil)

	journal, entries, err := s.service.CreateJournal(s.ctx, req, s.actorID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "GEN-000042", journal.JournalNumber)
	assert.Equal(s.T(), domain.Draft, journal.Status)
	assert.Len(s.T(), entries, 2)
	assert.Equal(s.T(), journal.JournalID, entries[0].JournalID)
	s.journalRepo.AssertExpectations(s.T())
	s.accountRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestCreateJournal_ResolvesStoredRate() {
	req := s.createRequest(decimal.NewFromInt(100))
	req.CurrencyCode = "usd"
	req.ExchangeRate = decimal.Zero
	storedRate := decimal.RequireFromString("3.6725")

	accounts := map[string]domain.Account{
		s.cashAccount.AccountID:   s.cashAccount,
		s.incomeAccount.AccountID: s.incomeAccount,
	}
	s.accountRepo.On("FindAccountsByIDs", s.ctx, mock.Anything).Return(accounts, nil)
	s.rateReader.On("ResolveRate", s.ctx, "USD", baseCurrency, req.JournalDate).Return(storedRate, nil)
	s.journalRepo.On("SaveDraftJournal", s.ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.CurrencyCode == "USD" && j.ExchangeRate.Equal(storedRate)
	}), mock.Anything).Return("GEN-000043", nil)

	_, _, err := s.service.CreateJournal(s.ctx, req, s.actorID)

	require.NoError(s.T(), err)
	s.rateReader.AssertExpectations(s.T())
	s.journalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestCreateJournal_RejectsReversalType() {
	req := s.createRequest(decimal.NewFromInt(100))
	req.JournalType = domain.Reversal

	_, _, err := s.service.CreateJournal(s.ctx, req, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	s.journalRepo.AssertNotCalled(s.T(), "SaveDraftJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCreateJournal_RejectsUnknownType() {
	req := s.createRequest(decimal.NewFromInt(100))
	req.JournalType = domain.JournalType("BOGUS")

	_, _, err := s.service.CreateJournal(s.ctx, req, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestCreateJournal_Unbalanced() {
	req := s.createRequest(decimal.NewFromInt(100))
	req.Entries[1].CreditAmount = decimal.NewFromInt(50)

	_, _, err := s.service.CreateJournal(s.ctx, req, s.actorID)

	assert.ErrorIs(s.T(), err, accounting.ErrUnbalanced)
	s.journalRepo.AssertNotCalled(s.T(), "SaveDraftJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCreateJournal_EntryWithBothSides() {
	req := s.createRequest(decimal.NewFromInt(100))
	req.Entries[0].CreditAmount = decimal.NewFromInt(100)
	req.Entries[1].DebitAmount = decimal.NewFromInt(100)

	_, _, err := s.service.CreateJournal(s.ctx, req, s.actorID)

	assert.ErrorIs(s.T(), err, domain.ErrEntryAmountExclusive)
}

func (s *JournalServiceTestSuite) TestCreateJournal_TooFewEntries() {
	req := s.createRequest(decimal.NewFromInt(100))
	req.Entries = req.Entries[:1]

	_, _, err := s.service.CreateJournal(s.ctx, req, s.actorID)

	assert.ErrorIs(s.T(), err, accounting.ErrTooFewEntries)
}

func (s *JournalServiceTestSuite) TestCreateJournal_InactiveAccount() {
	req := s.createRequest(decimal.NewFromInt(100))
	req.Entries[0].AccountID = s.inactiveAccount.AccountID
	accounts := map[string]domain.Account{
		s.inactiveAccount.AccountID: s.inactiveAccount,
		s.incomeAccount.AccountID:   s.incomeAccount,
	}
	s.accountRepo.On("FindAccountsByIDs", s.ctx, mock.Anything).Return(accounts, nil)

	_, _, err := s.service.CreateJournal(s.ctx, req, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	assert.ErrorContains(s.T(), err, "inactive")
}

func (s *JournalServiceTestSuite) TestCreateJournal_UnknownAccount() {
	req := s.createRequest(decimal.NewFromInt(100))
	accounts := map[string]domain.Account{
		s.cashAccount.AccountID: s.cashAccount,
	}
	s.accountRepo.On("FindAccountsByIDs", s.ctx, mock.Anything).Return(accounts, nil)

	_, _, err := s.service.CreateJournal(s.ctx, req, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	assert.ErrorContains(s.T(), err, "not found")
}

func (s *JournalServiceTestSuite) TestCreateJournal_NegativeExchangeRate() {
	req := s.createRequest(decimal.NewFromInt(100))
	req.ExchangeRate = decimal.NewFromInt(-1)
	accounts := map[string]domain.Account{
		s.cashAccount.AccountID:   s.cashAccount,
		s.incomeAccount.AccountID: s.incomeAccount,
	}
	s.accountRepo.On("FindAccountsByIDs", s.ctx, mock.Anything).Return(accounts, nil)

	_, _, err := s.service.CreateJournal(s.ctx, req, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestCreateJournal_SaveFailurePropagates() {
	req := s.createRequest(decimal.NewFromInt(100))
	accounts := map[string]domain.Account{
		s.cashAccount.AccountID:   s.cashAccount,
		s.incomeAccount.AccountID: s.incomeAccount,
	}
	s.accountRepo.On("FindAccountsByIDs", s.ctx, mock.Anything).Return(accounts, nil)
	s.journalRepo.On("SaveDraftJournal", s.ctx, mock.Anything, mock.Anything).Return("", apperrors.NewInternalError("no journal sequence for type", nil))

	_, _, err := s.service.CreateJournal(s.ctx, req, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrInternal)
}

func (s *JournalServiceTestSuite) TestPostJournal_Success() {
	journalID := uuid.NewString()
	postedAt := time.Now()
	posted := &domain.Journal{JournalID: journalID, JournalNumber: "GEN-000042", Status: domain.Posted, PostedAt: &postedAt, PostedBy: s.actorID}
	s.journalRepo.On("PostJournal", s.ctx, journalID, s.actorID, mock.AnythingOfType("time.Time")).Return(posted, nil)

	got, err := s.service.PostJournal(s.ctx, journalID, s.actorID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.Posted, got.Status)
	s.journalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestPostJournal_NotDraftConflict() {
	journalID := uuid.NewString()
	s.journalRepo.On("PostJournal", s.ctx, journalID, s.actorID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.NewConflictError("journal GEN-000042 is not a draft"))

	_, err := s.service.PostJournal(s.ctx, journalID, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
	assert.False(s.T(), apperrors.IsRetryable(err))
}

func (s *JournalServiceTestSuite) postedJournal() *domain.Journal {
	postedAt := time.Now().Add(-time.Hour)
	return &domain.Journal{
		JournalID:     uuid.NewString(),
		JournalNumber: "SAL-000007",
		JournalType:   domain.Sales,
		JournalDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		CurrencyCode:  baseCurrency,
		ExchangeRate:  decimal.NewFromInt(1),
		Status:        domain.Posted,
		PostedAt:      &postedAt,
		PostedBy:      s.actorID,
	}
}

func (s *JournalServiceTestSuite) TestReverseJournal_Success() {
	original := s.postedJournal()
	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), JournalID: original.JournalID, LineNo: 1, AccountID: s.receivableAccount.AccountID, DebitAmount: decimal.NewFromInt(500)},
		{EntryID: uuid.NewString(), JournalID: original.JournalID, LineNo: 2, AccountID: s.incomeAccount.AccountID, CreditAmount: decimal.NewFromInt(500)},
	}
	s.journalRepo.On("FindJournalByID", s.ctx, original.JournalID).Return(original, nil)
	s.journalRepo.On("FindEntriesByJournalID", s.ctx, original.JournalID).Return(entries, nil)

	reversed := &domain.Journal{JournalID: uuid.NewString(), JournalNumber: "REV-000001", JournalType: domain.Reversal, Status: domain.Posted}
	s.journalRepo.On("PostReversal", s.ctx, original.JournalID, mock.MatchedBy(func(j domain.Journal) bool {
		return j.JournalType == domain.Reversal &&
			j.OriginalJournalID != nil && *j.OriginalJournalID == original.JournalID &&
			j.Description == "Reversal of SAL-000007"
	}), mock.MatchedBy(func(mirrored []domain.JournalEntry) bool {
		if len(mirrored) != 2 {
			return false
		}
		// Each mirrored entry keeps the account and line number but swaps
		// debit and credit.
		return mirrored[0].AccountID == entries[0].AccountID &&
			mirrored[0].CreditAmount.Equal(entries[0].DebitAmount) &&
			mirrored[0].DebitAmount.IsZero() &&
			mirrored[1].AccountID == entries[1].AccountID &&
			mirrored[1].DebitAmount.Equal(entries[1].CreditAmount) &&
			mirrored[1].CreditAmount.IsZero() &&
			mirrored[0].LineNo == 1 && mirrored[1].LineNo == 2
	}), "duplicate billing", s.actorID, mock.AnythingOfType("time.Time")).Return(reversed, nil)

	got, err := s.service.ReverseJournal(s.ctx, original.JournalID, "duplicate billing", s.actorID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "REV-000001", got.JournalNumber)
	s.journalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestReverseJournal_EmptyReason() {
	_, err := s.service.ReverseJournal(s.ctx, uuid.NewString(), "   ", s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	s.journalRepo.AssertNotCalled(s.T(), "FindJournalByID", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestReverseJournal_OfReversal() {
	original := s.postedJournal()
	original.JournalType = domain.Reversal
	s.journalRepo.On("FindJournalByID", s.ctx, original.JournalID).Return(original, nil)

	_, err := s.service.ReverseJournal(s.ctx, original.JournalID, "undo", s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
}

func (s *JournalServiceTestSuite) TestReverseJournal_NotPosted() {
	original := s.postedJournal()
	original.Status = domain.Draft
	s.journalRepo.On("FindJournalByID", s.ctx, original.JournalID).Return(original, nil)

	_, err := s.service.ReverseJournal(s.ctx, original.JournalID, "wrong amount", s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
	s.journalRepo.AssertNotCalled(s.T(), "PostReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestReverseJournal_LockContentionIsRetryable() {
	original := s.postedJournal()
	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), JournalID: original.JournalID, LineNo: 1, AccountID: s.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(500)},
		{EntryID: uuid.NewString(), JournalID: original.JournalID, LineNo: 2, AccountID: s.incomeAccount.AccountID, CreditAmount: decimal.NewFromInt(500)},
	}
	s.journalRepo.On("FindJournalByID", s.ctx, original.JournalID).Return(original, nil)
	s.journalRepo.On("FindEntriesByJournalID", s.ctx, original.JournalID).Return(entries, nil)
	s.journalRepo.On("PostReversal", s.ctx, original.JournalID, mock.Anything, mock.Anything, "late fee dispute", s.actorID, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.NewLockContentionError("could not lock accounts"))

	_, err := s.service.ReverseJournal(s.ctx, original.JournalID, "late fee dispute", s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrLockContention)
	assert.True(s.T(), apperrors.IsRetryable(err))
}

func (s *JournalServiceTestSuite) reallocationFixture() (*domain.Journal, *domain.JournalEntry) {
	journal := s.postedJournal()
	entry := &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		JournalID:   journal.JournalID,
		LineNo:      1,
		AccountID:   s.cashAccount.AccountID,
		DebitAmount: decimal.NewFromInt(100),
	}
	return journal, entry
}

func (s *JournalServiceTestSuite) TestReallocateEntry_Success() {
	journal, entry := s.reallocationFixture()
	req := dto.ReallocateEntryRequest{
		SourceEntryID: entry.EntryID,
		ToAccountID:   s.receivableAccount.AccountID,
		Amount:        decimal.NewFromInt(40),
		Reason:        "posted to the wrong account",
	}

	s.journalRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil)
	s.reallocRepo.On("ListReallocationsBySourceEntry", s.ctx, entry.EntryID).Return([]domain.Reallocation{}, nil)
	s.journalRepo.On("FindJournalByID", s.ctx, journal.JournalID).Return(journal, nil)
	s.accountRepo.On("FindAccountsByIDs", s.ctx, []string{s.cashAccount.AccountID, s.receivableAccount.AccountID}).Return(map[string]domain.Account{
		s.cashAccount.AccountID:       s.cashAccount,
		s.receivableAccount.AccountID: s.receivableAccount,
	}, nil)

	posted := &domain.Journal{JournalID: uuid.NewString(), JournalNumber: "ADJ-000003", JournalType: domain.Adjustment, Status: domain.Posted}
	s.journalRepo.On("PostReallocation", s.ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.JournalType == domain.Adjustment && j.Description == req.Reason && j.CurrencyCode == journal.CurrencyCode
	}), mock.MatchedBy(func(lines []domain.JournalEntry) bool {
		if len(lines) != 2 {
			return false
		}
		// Both accounts are debit-normal: the undo credits the source and
		// the apply debits the target.
		undo, apply := lines[0], lines[1]
		return undo.LineNo == 1 && undo.AccountID == s.cashAccount.AccountID && undo.CreditAmount.Equal(req.Amount) && undo.DebitAmount.IsZero() &&
			apply.LineNo == 2 && apply.AccountID == s.receivableAccount.AccountID && apply.DebitAmount.Equal(req.Amount) && apply.CreditAmount.IsZero() &&
			undo.SourceType == "reallocation" && undo.SourceID == entry.EntryID
	}), mock.MatchedBy(func(r domain.Reallocation) bool {
		return r.SourceEntryID == entry.EntryID && r.FromAccountID == s.cashAccount.AccountID &&
			r.ToAccountID == s.receivableAccount.AccountID && r.Amount.Equal(req.Amount) && r.Reason == req.Reason
	})).Return(posted, nil)

	realloc, err := s.service.ReallocateEntry(s.ctx, req, s.actorID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), entry.EntryID, realloc.SourceEntryID)
	assert.Equal(s.T(), s.actorID, realloc.ActorID)
	s.journalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestReallocateEntry_CreditNormalAccounts() {
	journal, entry := s.reallocationFixture()
	entry.AccountID = s.incomeAccount.AccountID
	entry.DebitAmount = decimal.Zero
	entry.CreditAmount = decimal.NewFromInt(100)
	req := dto.ReallocateEntryRequest{
		SourceEntryID: entry.EntryID,
		ToAccountID:   s.otherIncome.AccountID,
		Amount:        decimal.NewFromInt(100),
		Reason:        "reclassify parking income",
	}

	s.journalRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil)
	s.reallocRepo.On("ListReallocationsBySourceEntry", s.ctx, entry.EntryID).Return([]domain.Reallocation{}, nil)
	s.journalRepo.On("FindJournalByID", s.ctx, journal.JournalID).Return(journal, nil)
	s.accountRepo.On("FindAccountsByIDs", s.ctx, mock.Anything).Return(map[string]domain.Account{
		s.incomeAccount.AccountID: s.incomeAccount,
		s.otherIncome.AccountID:   s.otherIncome,
	}, nil)

	posted := &domain.Journal{JournalID: uuid.NewString(), JournalNumber: "ADJ-000004", Status: domain.Posted}
	s.journalRepo.On("PostReallocation", s.ctx, mock.Anything, mock.MatchedBy(func(lines []domain.JournalEntry) bool {
		// Credit-normal accounts flip: the undo debits the source and the
		// apply credits the target.
		undo, apply := lines[0], lines[1]
		return undo.DebitAmount.Equal(req.Amount) && undo.CreditAmount.IsZero() &&
			apply.CreditAmount.Equal(req.Amount) && apply.DebitAmount.IsZero()
	}), mock.Anything).Return(posted, nil)

	_, err := s.service.ReallocateEntry(s.ctx, req, s.actorID)

	require.NoError(s.T(), err)
	s.journalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestReallocateEntry_MissingReason() {
	_, err := s.service.ReallocateEntry(s.ctx, dto.ReallocateEntryRequest{
		SourceEntryID: uuid.NewString(),
		ToAccountID:   uuid.NewString(),
		Amount:        decimal.NewFromInt(10),
	}, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestReallocateEntry_NonPositiveAmount() {
	_, err := s.service.ReallocateEntry(s.ctx, dto.ReallocateEntryRequest{
		SourceEntryID: uuid.NewString(),
		ToAccountID:   uuid.NewString(),
		Amount:        decimal.Zero,
		Reason:        "nothing to move",
	}, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestReallocateEntry_SameAccount() {
	_, entry := s.reallocationFixture()
	s.journalRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil)

	_, err := s.service.ReallocateEntry(s.ctx, dto.ReallocateEntryRequest{
		SourceEntryID: entry.EntryID,
		ToAccountID:   entry.AccountID,
		Amount:        decimal.NewFromInt(10),
		Reason:        "noop",
	}, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestReallocateEntry_OverAllocation() {
	_, entry := s.reallocationFixture()
	prior := []domain.Reallocation{
		{ReallocationID: uuid.NewString(), SourceEntryID: entry.EntryID, Amount: decimal.NewFromInt(60)},
	}
	s.journalRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil)
	s.reallocRepo.On("ListReallocationsBySourceEntry", s.ctx, entry.EntryID).Return(prior, nil)

	_, err := s.service.ReallocateEntry(s.ctx, dto.ReallocateEntryRequest{
		SourceEntryID: entry.EntryID,
		ToAccountID:   s.receivableAccount.AccountID,
		Amount:        decimal.NewFromInt(50),
		Reason:        "second move",
	}, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	assert.ErrorContains(s.T(), err, "exceeds the entry amount")
	s.journalRepo.AssertNotCalled(s.T(), "PostReallocation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestReallocateEntry_NormalSideMismatch() {
	journal, entry := s.reallocationFixture()
	s.journalRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil)
	s.reallocRepo.On("ListReallocationsBySourceEntry", s.ctx, entry.EntryID).Return([]domain.Reallocation{}, nil)
	s.journalRepo.On("FindJournalByID", s.ctx, journal.JournalID).Return(journal, nil)
	s.accountRepo.On("FindAccountsByIDs", s.ctx, mock.Anything).Return(map[string]domain.Account{
		s.cashAccount.AccountID:   s.cashAccount,
		s.incomeAccount.AccountID: s.incomeAccount,
	}, nil)

	_, err := s.service.ReallocateEntry(s.ctx, dto.ReallocateEntryRequest{
		SourceEntryID: entry.EntryID,
		ToAccountID:   s.incomeAccount.AccountID,
		Amount:        decimal.NewFromInt(10),
		Reason:        "cash to income",
	}, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	assert.ErrorContains(s.T(), err, "normal side")
}

func (s *JournalServiceTestSuite) TestReallocateEntry_SourceNotPosted() {
	journal, entry := s.reallocationFixture()
	journal.Status = domain.Reversed
	s.journalRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil)
	s.reallocRepo.On("ListReallocationsBySourceEntry", s.ctx, entry.EntryID).Return([]domain.Reallocation{}, nil)
	s.journalRepo.On("FindJournalByID", s.ctx, journal.JournalID).Return(journal, nil)

	_, err := s.service.ReallocateEntry(s.ctx, dto.ReallocateEntryRequest{
		SourceEntryID: entry.EntryID,
		ToAccountID:   s.receivableAccount.AccountID,
		Amount:        decimal.NewFromInt(10),
		Reason:        "move from reversed journal",
	}, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
}

func (s *JournalServiceTestSuite) TestListJournals_InvalidStatus() {
	bad := "PENDING"
	_, err := s.service.ListJournals(s.ctx, dto.ListJournalsParams{Status: &bad})

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestListJournals_LoadsEntriesPerJournal() {
	j1 := *s.postedJournal()
	j2 := *s.postedJournal()
	entries := map[string][]domain.JournalEntry{
		j1.JournalID: {{EntryID: uuid.NewString(), JournalID: j1.JournalID, LineNo: 1, AccountID: s.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(10)}},
	}
	s.journalRepo.On("ListJournals", s.ctx, 20, (*string)(nil), (*domain.JournalStatus)(nil), (*domain.JournalType)(nil)).Return([]domain.Journal{j1, j2}, nil, nil)
	s.journalRepo.On("FindEntriesByJournalIDs", s.ctx, []string{j1.JournalID, j2.JournalID}).Return(entries, nil)

	resp, err := s.service.ListJournals(s.ctx, dto.ListJournalsParams{})

	require.NoError(s.T(), err)
	require.Len(s.T(), resp.Journals, 2)
	assert.Len(s.T(), resp.Journals[0].Entries, 1)
	assert.Empty(s.T(), resp.Journals[1].Entries)
}
