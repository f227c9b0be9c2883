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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type DocumentServiceTestSuite struct {
	suite.Suite
	journalSvc   *MockJournalService
	accountRepo  *MockAccountRepository
	categoryRepo *MockCategoryRepository
	service      portssvc.DocumentSvcFacade
	ctx          context.Context
	actorID      string

	systemAccounts map[string]domain.Account
	incomeAccount  domain.Account
}

func (s *DocumentServiceTestSuite) SetupTest() {
	s.journalSvc = new(MockJournalService)
	s.accountRepo = new(MockAccountRepository)
	s.categoryRepo = new(MockCategoryRepository)
	s.service = services.NewDocumentService(s.journalSvc, s.accountRepo, s.categoryRepo)
	s.ctx = context.Background()
	s.actorID = uuid.NewString()

	s.systemAccounts = map[string]domain.Account{}
	for _, spec := range domain.SystemAccountSpecs {
		s.systemAccounts[spec.Code] = domain.Account{
			AccountID:    uuid.NewString(),
			Code:         spec.Code,
			Name:         spec.Name,
			AccountType:  spec.Type,
			Subtype:      spec.Subtype,
			CurrencyCode: baseCurrency,
			IsSystem:     true,
			IsActive:     true,
		}
	}
	s.incomeAccount = s.systemAccounts[domain.SystemAccountRentalIncome]
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}

// expectSystemAccounts wires FindAccountsByCodes to answer from the fixture
// regardless of which codes the adapter asks for.
func (s *DocumentServiceTestSuite) expectSystemAccounts() {
	s.accountRepo.On("FindAccountsByCodes", s.ctx, mock.Anything).Return(s.systemAccounts, nil)
}

// expectCreateAndPost wires the create-then-post pair and returns the posted
// journal the adapter should hand back.
func (s *DocumentServiceTestSuite) expectCreateAndPost(match func(dto.CreateJournalRequest) bool) *domain.Journal {
	draft := &domain.Journal{JournalID: uuid.NewString(), JournalNumber: "RCT-000001", Status: domain.Draft}
	posted := &domain.Journal{JournalID: draft.JournalID, JournalNumber: draft.JournalNumber, Status: domain.Posted}
	s.journalSvc.On("CreateJournal", s.ctx, mock.MatchedBy(match), s.actorID).Return(draft, []domain.JournalEntry{}, nil)
	s.journalSvc.On("PostJournal", s.ctx, draft.JournalID, s.actorID).Return(posted, nil)
	return posted
}

func (s *DocumentServiceTestSuite) category(commission, vat int64) *domain.IncomeCategory {
	return &domain.IncomeCategory{
		CategoryID:      uuid.NewString(),
		Name:            "Residential Rent",
		CommissionRate:  decimal.NewFromInt(commission),
		VATRate:         decimal.NewFromInt(vat),
		IncomeAccountID: s.incomeAccount.AccountID,
		IsActive:        true,
	}
}

func entryFor(entries []dto.JournalEntryRequest, accountID string) (dto.JournalEntryRequest, bool) {
	for _, e := range entries {
		if e.AccountID == accountID {
			return e, true
		}
	}
	return dto.JournalEntryRequest{}, false
}

func (s *DocumentServiceTestSuite) TestPostInvoice() {
	amount := decimal.NewFromInt(2500)
	receivable := s.systemAccounts[domain.SystemAccountReceivable]
	deferred := s.systemAccounts[domain.SystemAccountDeferredRevenue]
	s.expectSystemAccounts()
	posted := s.expectCreateAndPost(func(req dto.CreateJournalRequest) bool {
		if req.JournalType != domain.Sales || len(req.Entries) != 2 {
			return false
		}
		dr, ok := entryFor(req.Entries, receivable.AccountID)
		if !ok || !dr.DebitAmount.Equal(amount) {
			return false
		}
		cr, ok := entryFor(req.Entries, deferred.AccountID)
		return ok && cr.CreditAmount.Equal(amount) && cr.SourceType == "invoice" && cr.SourceID == "INV-1001"
	})

	journal, _, err := s.service.PostInvoice(s.ctx, dto.PostInvoiceRequest{
		InvoiceID: "INV-1001",
		Amount:    amount,
		Date:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}, s.actorID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), posted.JournalNumber, journal.JournalNumber)
	assert.Equal(s.T(), domain.Posted, journal.Status)
	s.journalSvc.AssertExpectations(s.T())
}

func (s *DocumentServiceTestSuite) TestPostInvoice_NonPositiveAmount() {
	_, _, err := s.service.PostInvoice(s.ctx, dto.PostInvoiceRequest{
		InvoiceID: "INV-1002",
		Amount:    decimal.Zero,
		Date:      time.Now(),
	}, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	s.journalSvc.AssertNotCalled(s.T(), "CreateJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (s *DocumentServiceTestSuite) TestPostReceipt_SplitsCommissionAndVAT() {
	amount := decimal.NewFromInt(1000)
	category := s.category(10, 15)
	s.categoryRepo.On("FindCategoryByID", s.ctx, category.CategoryID).Return(category, nil)
	s.accountRepo.On("FindAccountByID", s.ctx, s.incomeAccount.AccountID).Return(&s.incomeAccount, nil)
	s.expectSystemAccounts()

	cash := s.systemAccounts[domain.SystemAccountCash]
	expense := s.systemAccounts[domain.SystemAccountCommissionExpense]
	payable := s.systemAccounts[domain.SystemAccountCommissionPayable]
	vatPayable := s.systemAccounts[domain.SystemAccountVATPayable]

	s.expectCreateAndPost(func(req dto.CreateJournalRequest) bool {
		if req.JournalType != domain.Receipts || len(req.Entries) != 7 {
			return false
		}
		cashLine, _ := entryFor(req.Entries, cash.AccountID)
		grossLine, _ := entryFor(req.Entries, expense.AccountID)
		netLine, _ := entryFor(req.Entries, payable.AccountID)
		vatLine, _ := entryFor(req.Entries, vatPayable.AccountID)
		incomeLine, _ := entryFor(req.Entries, s.incomeAccount.AccountID)
		// 10% of 1000 is a 100.00 gross commission; at 15% VAT that is
		// 86.96 net plus 13.04 VAT, and the two must recombine exactly.
		return cashLine.DebitAmount.Equal(amount) &&
			incomeLine.CreditAmount.Equal(amount) &&
			grossLine.DebitAmount.Equal(decimal.RequireFromString("100.00")) &&
			netLine.CreditAmount.Equal(decimal.RequireFromString("86.96")) &&
			vatLine.CreditAmount.Equal(decimal.RequireFromString("13.04")) &&
			netLine.CreditAmount.Add(vatLine.CreditAmount).Equal(grossLine.DebitAmount)
	})

	_, _, err := s.service.PostReceipt(s.ctx, dto.PostReceiptRequest{
		ReceiptID:  "RCPT-001",
		CategoryID: category.CategoryID,
		Amount:     amount,
		Date:       time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	}, s.actorID)

	require.NoError(s.T(), err)
	s.journalSvc.AssertExpectations(s.T())
}

func (s *DocumentServiceTestSuite) TestPostReceipt_HigherCommissionRate() {
	amount := decimal.NewFromInt(500)
	category := s.category(20, 15)
	s.categoryRepo.On("FindCategoryByID", s.ctx, category.CategoryID).Return(category, nil)
	s.accountRepo.On("FindAccountByID", s.ctx, s.incomeAccount.AccountID).Return(&s.incomeAccount, nil)
	s.expectSystemAccounts()

	expense := s.systemAccounts[domain.SystemAccountCommissionExpense]
	payable := s.systemAccounts[domain.SystemAccountCommissionPayable]
	vatPayable := s.systemAccounts[domain.SystemAccountVATPayable]

	s.expectCreateAndPost(func(req dto.CreateJournalRequest) bool {
		grossLine, _ := entryFor(req.Entries, expense.AccountID)
		netLine, _ := entryFor(req.Entries, payable.AccountID)
		vatLine, _ := entryFor(req.Entries, vatPayable.AccountID)
		return grossLine.DebitAmount.Equal(decimal.RequireFromString("100.00")) &&
			netLine.CreditAmount.Equal(decimal.RequireFromString("86.96")) &&
			vatLine.CreditAmount.Equal(decimal.RequireFromString("13.04"))
	})

	_, _, err := s.service.PostReceipt(s.ctx, dto.PostReceiptRequest{
		ReceiptID:  "RCPT-002",
		CategoryID: category.CategoryID,
		Amount:     amount,
		Date:       time.Now(),
	}, s.actorID)

	require.NoError(s.T(), err)
	s.journalSvc.AssertExpectations(s.T())
}

func (s *DocumentServiceTestSuite) TestPostReceipt_ZeroCommission() {
	amount := decimal.NewFromInt(750)
	category := s.category(0, 15)
	s.categoryRepo.On("FindCategoryByID", s.ctx, category.CategoryID).Return(category, nil)
	s.accountRepo.On("FindAccountByID", s.ctx, s.incomeAccount.AccountID).Return(&s.incomeAccount, nil)
	s.expectSystemAccounts()

	s.expectCreateAndPost(func(req dto.CreateJournalRequest) bool {
		// No commission means no split lines: cash application and revenue
		// recognition only.
		return len(req.Entries) == 4
	})

	_, _, err := s.service.PostReceipt(s.ctx, dto.PostReceiptRequest{
		ReceiptID:  "RCPT-003",
		CategoryID: category.CategoryID,
		Amount:     amount,
		Date:       time.Now(),
	}, s.actorID)

	require.NoError(s.T(), err)
	s.journalSvc.AssertExpectations(s.T())
}

func (s *DocumentServiceTestSuite) TestPostReceipt_UnknownCategory() {
	categoryID := uuid.NewString()
	s.categoryRepo.On("FindCategoryByID", s.ctx, categoryID).Return(nil, apperrors.NewNotFoundError("category not found"))

	_, _, err := s.service.PostReceipt(s.ctx, dto.PostReceiptRequest{
		ReceiptID:  "RCPT-004",
		CategoryID: categoryID,
		Amount:     decimal.NewFromInt(100),
		Date:       time.Now(),
	}, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *DocumentServiceTestSuite) TestPostReceipt_InactiveCategory() {
	category := s.category(10, 15)
	category.IsActive = false
	s.categoryRepo.On("FindCategoryByID", s.ctx, category.CategoryID).Return(category, nil)

	_, _, err := s.service.PostReceipt(s.ctx, dto.PostReceiptRequest{
		ReceiptID:  "RCPT-005",
		CategoryID: category.CategoryID,
		Amount:     decimal.NewFromInt(100),
		Date:       time.Now(),
	}, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	assert.ErrorContains(s.T(), err, "inactive")
}

func (s *DocumentServiceTestSuite) TestPostReceipt_MissingSystemAccount() {
	category := s.category(10, 15)
	s.categoryRepo.On("FindCategoryByID", s.ctx, category.CategoryID).Return(category, nil)
	s.accountRepo.On("FindAccountByID", s.ctx, s.incomeAccount.AccountID).Return(&s.incomeAccount, nil)
	incomplete := map[string]domain.Account{
		domain.SystemAccountCash: s.systemAccounts[domain.SystemAccountCash],
	}
	s.accountRepo.On("FindAccountsByCodes", s.ctx, mock.Anything).Return(incomplete, nil)

	_, _, err := s.service.PostReceipt(s.ctx, dto.PostReceiptRequest{
		ReceiptID:  "RCPT-006",
		CategoryID: category.CategoryID,
		Amount:     decimal.NewFromInt(100),
		Date:       time.Now(),
	}, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrInternal)
	assert.ErrorContains(s.T(), err, "not provisioned")
}

func (s *DocumentServiceTestSuite) TestPostReceipt_PostFailureLeavesDraft() {
	category := s.category(0, 0)
	s.categoryRepo.On("FindCategoryByID", s.ctx, category.CategoryID).Return(category, nil)
	s.accountRepo.On("FindAccountByID", s.ctx, s.incomeAccount.AccountID).Return(&s.incomeAccount, nil)
	s.expectSystemAccounts()

	draft := &domain.Journal{JournalID: uuid.NewString(), JournalNumber: "RCT-000009", Status: domain.Draft}
	s.journalSvc.On("CreateJournal", s.ctx, mock.Anything, s.actorID).Return(draft, []domain.JournalEntry{}, nil)
	s.journalSvc.On("PostJournal", s.ctx, draft.JournalID, s.actorID).Return(nil, apperrors.NewLockContentionError("could not lock accounts"))

	_, _, err := s.service.PostReceipt(s.ctx, dto.PostReceiptRequest{
		ReceiptID:  "RCPT-007",
		CategoryID: category.CategoryID,
		Amount:     decimal.NewFromInt(100),
		Date:       time.Now(),
	}, s.actorID)

	// The draft is not rolled back; the caller can retry the post itself.
	assert.ErrorIs(s.T(), err, apperrors.ErrLockContention)
	s.journalSvc.AssertNotCalled(s.T(), "DeleteDraftJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (s *DocumentServiceTestSuite) TestPostExpense_DefaultsToCash() {
	amount := decimal.NewFromInt(350)
	maintenance := s.systemAccounts[domain.SystemAccountMaintenance]
	cash := s.systemAccounts[domain.SystemAccountCash]
	s.accountRepo.On("FindAccountByID", s.ctx, maintenance.AccountID).Return(&maintenance, nil)
	s.expectSystemAccounts()

	s.expectCreateAndPost(func(req dto.CreateJournalRequest) bool {
		if req.JournalType != domain.Payments || len(req.Entries) != 2 {
			return false
		}
		dr, _ := entryFor(req.Entries, maintenance.AccountID)
		cr, _ := entryFor(req.Entries, cash.AccountID)
		return dr.DebitAmount.Equal(amount) && cr.CreditAmount.Equal(amount)
	})

	_, _, err := s.service.PostExpense(s.ctx, dto.PostExpenseRequest{
		ExpenseID:        "EXP-001",
		ExpenseAccountID: maintenance.AccountID,
		Amount:           amount,
		Date:             time.Now(),
	}, s.actorID)

	require.NoError(s.T(), err)
	s.journalSvc.AssertExpectations(s.T())
}

func (s *DocumentServiceTestSuite) TestPostExpense_NotAnExpenseAccount() {
	cash := s.systemAccounts[domain.SystemAccountCash]
	s.accountRepo.On("FindAccountByID", s.ctx, cash.AccountID).Return(&cash, nil)

	_, _, err := s.service.PostExpense(s.ctx, dto.PostExpenseRequest{
		ExpenseID:        "EXP-002",
		ExpenseAccountID: cash.AccountID,
		Amount:           decimal.NewFromInt(10),
		Date:             time.Now(),
	}, s.actorID)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	assert.ErrorContains(s.T(), err, "not an expense account")
}
