package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/propbooks/propbooks_backend/internal/apperrors"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	portsrepo "github.com/propbooks/propbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/propbooks/propbooks_backend/internal/core/ports/services"
	"github.com/propbooks/propbooks_backend/internal/dto"
	"github.com/propbooks/propbooks_backend/internal/utils/accounting"
)

// documentService translates business documents into balanced journals and
// posts them through the journal service. System accounts are always resolved
// by code, never created on the fly; a missing one means provisioning was
// skipped and surfaces as an internal error.
type documentService struct {
	BaseService
	journalSvc   portssvc.JournalSvcFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewDocumentService creates a new document posting service.
func NewDocumentService(journalSvc portssvc.JournalSvcFacade, accountRepo portsrepo.AccountRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.DocumentSvcFacade {
	return &documentService{
		journalSvc:   journalSvc,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// systemAccounts fetches the named system accounts keyed by code and fails
// when any is missing.
func (s *documentService) systemAccounts(ctx context.Context, codes ...string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch system accounts: %w", err)
	}
	for _, code := range codes {
		if _, ok := accounts[code]; !ok {
			return nil, apperrors.NewInternalError("system account "+code+" is not provisioned", nil)
		}
	}
	return accounts, nil
}

// createAndPost creates the draft and posts it. When the post fails the draft
// stays behind so the caller can retry it through the journal API.
func (s *documentService) createAndPost(ctx context.Context, req dto.CreateJournalRequest, actorID string) (*domain.Journal, []domain.JournalEntry, error) {
	journal, entries, err := s.journalSvc.CreateJournal(ctx, req, actorID)
	if err != nil {
		return nil, nil, err
	}

	posted, err := s.journalSvc.PostJournal(ctx, journal.JournalID, actorID)
	if err != nil {
		s.LogError(ctx, err, "document journal created but not posted",
			slog.String("journal_id", journal.JournalID),
			slog.String("journal_number", journal.JournalNumber))
		return nil, nil, err
	}
	return posted, entries, nil
}

// PostInvoice posts a rent invoice: the receivable is raised against
// deferred revenue; income is only recognized when cash arrives.
func (s *documentService) PostInvoice(ctx context.Context, req dto.PostInvoiceRequest, actorID string) (*domain.Journal, []domain.JournalEntry, error) {
	if !req.Amount.IsPositive() {
		return nil, nil, apperrors.NewValidationError("invoice amount must be positive")
	}

	accounts, err := s.systemAccounts(ctx, domain.SystemAccountReceivable, domain.SystemAccountDeferredRevenue)
	if err != nil {
		return nil, nil, err
	}
	receivable := accounts[domain.SystemAccountReceivable]
	deferred := accounts[domain.SystemAccountDeferredRevenue]

	description := req.Description
	if description == "" {
		description = "Rent invoice " + req.InvoiceID
	}

	return s.createAndPost(ctx, dto.CreateJournalRequest{
		JournalType:  domain.Sales,
		JournalDate:  req.Date,
		Description:  description,
		CurrencyCode: req.CurrencyCode,
		Entries: []dto.JournalEntryRequest{
			{AccountID: receivable.AccountID, Description: "Rent receivable", DebitAmount: req.Amount, SourceType: "invoice", SourceID: req.InvoiceID},
			{AccountID: deferred.AccountID, Description: "Deferred rent revenue", CreditAmount: req.Amount, SourceType: "invoice", SourceID: req.InvoiceID},
		},
	}, actorID)
}

// PostReceipt posts a cash receipt against an income category: cash
// application, revenue recognition and, when the category carries a
// commission rate, the commission split lines. The split amounts come from
// SplitCommission so gross always equals net plus VAT.
func (s *documentService) PostReceipt(ctx context.Context, req dto.PostReceiptRequest, actorID string) (*domain.Journal, []domain.JournalEntry, error) {
	if !req.Amount.IsPositive() {
		return nil, nil, apperrors.NewValidationError("receipt amount must be positive")
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewValidationError("income category " + req.CategoryID + " not found")
		}
		return nil, nil, err
	}
	if !category.IsActive {
		return nil, nil, apperrors.NewValidationError("income category " + category.Name + " is inactive")
	}

	incomeAccount, err := s.accountRepo.FindAccountByID(ctx, category.IncomeAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewValidationError("income account for category " + category.Name + " not found")
		}
		return nil, nil, err
	}
	if !incomeAccount.IsActive {
		return nil, nil, apperrors.NewValidationError("income account " + incomeAccount.Code + " is inactive")
	}

	accounts, err := s.systemAccounts(ctx,
		domain.SystemAccountCash,
		domain.SystemAccountReceivable,
		domain.SystemAccountDeferredRevenue,
		domain.SystemAccountVATPayable,
		domain.SystemAccountCommissionPayable,
		domain.SystemAccountCommissionExpense,
	)
	if err != nil {
		return nil, nil, err
	}

	entries := []dto.JournalEntryRequest{
		{AccountID: accounts[domain.SystemAccountCash].AccountID, Description: "Cash received", DebitAmount: req.Amount, SourceType: "receipt", SourceID: req.ReceiptID},
		{AccountID: accounts[domain.SystemAccountReceivable].AccountID, Description: "Settle receivable", CreditAmount: req.Amount, SourceType: "receipt", SourceID: req.ReceiptID},
		{AccountID: accounts[domain.SystemAccountDeferredRevenue].AccountID, Description: "Recognize deferred revenue", DebitAmount: req.Amount, SourceType: "receipt", SourceID: req.ReceiptID},
		{AccountID: incomeAccount.AccountID, Description: category.Name, CreditAmount: req.Amount, SourceType: "receipt", SourceID: req.ReceiptID},
	}

	gross, net, vat := accounting.SplitCommission(req.Amount, category.CommissionRate, category.VATRate)
	if gross.IsPositive() {
		entries = append(entries,
			dto.JournalEntryRequest{AccountID: accounts[domain.SystemAccountCommissionExpense].AccountID, Description: "Commission expense", DebitAmount: gross, SourceType: "receipt", SourceID: req.ReceiptID},
			dto.JournalEntryRequest{AccountID: accounts[domain.SystemAccountCommissionPayable].AccountID, Description: "Commission payable", CreditAmount: net, SourceType: "receipt", SourceID: req.ReceiptID},
		)
		if vat.IsPositive() {
			entries = append(entries,
				dto.JournalEntryRequest{AccountID: accounts[domain.SystemAccountVATPayable].AccountID, Description: "VAT on commission", CreditAmount: vat, SourceType: "receipt", SourceID: req.ReceiptID},
			)
		}
	}

	description := req.Description
	if description == "" {
		description = "Receipt " + req.ReceiptID
	}

	return s.createAndPost(ctx, dto.CreateJournalRequest{
		JournalType:  domain.Receipts,
		JournalDate:  req.Date,
		Description:  description,
		CurrencyCode: req.CurrencyCode,
		Entries:      entries,
	}, actorID)
}

// PostExpense posts an expense payment from the paying account, defaulting
// to the cash account.
func (s *documentService) PostExpense(ctx context.Context, req dto.PostExpenseRequest, actorID string) (*domain.Journal, []domain.JournalEntry, error) {
	if !req.Amount.IsPositive() {
		return nil, nil, apperrors.NewValidationError("expense amount must be positive")
	}

	expense, err := s.accountRepo.FindAccountByID(ctx, req.ExpenseAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewValidationError("expense account " + req.ExpenseAccountID + " not found")
		}
		return nil, nil, err
	}
	if expense.AccountType != domain.Expense {
		return nil, nil, apperrors.NewValidationError("account " + expense.Code + " is not an expense account")
	}

	var paidFrom domain.Account
	if req.PaidFromAccountID != "" {
		acc, err := s.accountRepo.FindAccountByID(ctx, req.PaidFromAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, nil, apperrors.NewValidationError("paying account " + req.PaidFromAccountID + " not found")
			}
			return nil, nil, err
		}
		paidFrom = *acc
	} else {
		accounts, err := s.systemAccounts(ctx, domain.SystemAccountCash)
		if err != nil {
			return nil, nil, err
		}
		paidFrom = accounts[domain.SystemAccountCash]
	}

	description := req.Description
	if description == "" {
		description = "Expense " + req.ExpenseID
	}

	return s.createAndPost(ctx, dto.CreateJournalRequest{
		JournalType:  domain.Payments,
		JournalDate:  req.Date,
		Description:  description,
		CurrencyCode: req.CurrencyCode,
		Entries: []dto.JournalEntryRequest{
			{AccountID: expense.AccountID, Description: expense.Name, DebitAmount: req.Amount, SourceType: "expense", SourceID: req.ExpenseID},
			{AccountID: paidFrom.AccountID, Description: "Payment from " + paidFrom.Name, CreditAmount: req.Amount, SourceType: "expense", SourceID: req.ExpenseID},
		},
	}, actorID)
}
