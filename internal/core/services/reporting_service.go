package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/propbooks/propbooks_backend/internal/apperrors"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	portsrepo "github.com/propbooks/propbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/propbooks/propbooks_backend/internal/core/ports/services"
	"github.com/propbooks/propbooks_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// reportingService implements the read-only reporting facade. Nothing here
// mutates state; reports derive from account balances and ledger rows.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	ledgerRepo    portsrepo.LedgerRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		ledgerRepo:    ledgerRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// errTrialBalanceMismatch marks the integrity self-check failure in logs.
var errTrialBalanceMismatch = errors.New("trial balance totals do not agree")

// TrialBalance builds the trial balance from current account balances and
// stamps it with the requested asOf time (now when zero). Equal debit and
// credit totals are the engine's primary integrity self-check; an unbalanced
// result means posted state is corrupt, so it is logged loudly.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trial balance data: %w", err)
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	report := &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Balanced:    totalDebit.Equal(totalCredit),
	}
	if !report.Balanced {
		s.LogError(ctx, errTrialBalanceMismatch, "trial balance does not balance",
			slog.String("total_debit", totalDebit.String()),
			slog.String("total_credit", totalCredit.String()))
	}
	return report, nil
}

// AccountStatement lists an account's ledger movements over a date range,
// bracketed by the balance carried in from before the range and the balance
// after the last movement.
func (s *reportingService) AccountStatement(ctx context.Context, accountID string, from, to time.Time) (*domain.AccountStatement, error) {
	if to.Before(from) {
		return nil, apperrors.NewValidationError("statement period end must not precede its start")
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	opening, err := s.ledgerRepo.FindBalanceAsOf(ctx, accountID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch opening balance: %w", err)
	}

	rows, err := s.ledgerRepo.ListAccountMovements(ctx, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account movements: %w", err)
	}

	closing := opening
	if len(rows) > 0 {
		closing = rows[len(rows)-1].Balance
	}

	return &domain.AccountStatement{
		AccountID:      account.AccountID,
		AccountCode:    account.Code,
		AccountName:    account.Name,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		Rows:           rows,
		ClosingBalance: closing,
	}, nil
}

// ListLedger retrieves a paginated view of the general ledger.
func (s *reportingService) ListLedger(ctx context.Context, params dto.ListLedgerParams) (*dto.ListLedgerResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	filter := domain.LedgerFilter{
		AccountID:  params.AccountID,
		JournalID:  params.JournalID,
		SourceType: params.SourceType,
		SourceID:   params.SourceID,
		DateFrom:   params.From,
		DateTo:     params.To,
	}

	rows, nextToken, err := s.ledgerRepo.ListLedgerRows(ctx, filter, limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListLedgerResponse{
		Rows:      dto.ToLedgerRowResponses(rows),
		NextToken: nextToken,
	}, nil
}

// ProfitAndLoss aggregates ledger activity for revenue and expense accounts
// within the period. Reversals posted inside the period cancel their
// originals, so reversed activity nets to zero.
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error) {
	if to.Before(from) {
		return nil, apperrors.NewValidationError("report period end must not precede its start")
	}

	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profit and loss data: %w", err)
	}

	totalRevenue := decimal.Zero
	for _, r := range revenue {
		totalRevenue = totalRevenue.Add(r.NetAmount)
	}
	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.NetAmount)
	}

	return &domain.PAndLReport{
		From:      from,
		To:        to,
		Revenue:   revenue,
		Expenses:  expenses,
		NetProfit: totalRevenue.Sub(totalExpenses),
	}, nil
}

// BalanceSheet builds the balance sheet from current account balances, with
// accumulated revenue minus expenses folded into retained earnings so assets
// equal liabilities plus equity.
func (s *reportingService) BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error) {
	assets, liabilities, equity, retainedEarnings, err := s.reportingRepo.GetBalanceSheetData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance sheet data: %w", err)
	}

	totalAssets := decimal.Zero
	for _, a := range assets {
		totalAssets = totalAssets.Add(a.NetAmount)
	}
	totalLiabilities := decimal.Zero
	for _, l := range liabilities {
		totalLiabilities = totalLiabilities.Add(l.NetAmount)
	}
	totalEquity := retainedEarnings
	for _, e := range equity {
		totalEquity = totalEquity.Add(e.NetAmount)
	}

	return &domain.BalanceSheetReport{
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		RetainedEarnings: retainedEarnings,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
	}, nil
}
