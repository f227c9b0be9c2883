package services

import (
	"context"
	"time"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/propbooks/propbooks_backend/internal/dto"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance generates a trial balance from current account balances,
	// presenting each balance on the account's normal side and reporting
	// whether the debit and credit columns agree. The asOf time stamps the
	// report header; a zero value means now.
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)

	// AccountStatement generates an account's ledger movements over a date
	// range, bracketed by opening and closing balances.
	AccountStatement(ctx context.Context, accountID string, from, to time.Time) (*domain.AccountStatement, error)

	// ListLedger retrieves a paginated view of the general ledger.
	ListLedger(ctx context.Context, params dto.ListLedgerParams) (*dto.ListLedgerResponse, error)

	// ProfitAndLoss generates a profit and loss report for a specific period
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error)

	// BalanceSheet generates a balance sheet report from current balances
	BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error)
}
