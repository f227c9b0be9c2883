package repositories

import (
	"context"
	"time"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetTrialBalanceData retrieves one row per active account with its
	// current balance split onto the account's normal side.
	GetTrialBalanceData(ctx context.Context) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData retrieves revenue and expense totals per account
	// from ledger activity within the period.
	GetProfitAndLossData(ctx context.Context, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error)

	// GetBalanceSheetData retrieves current asset, liability and equity
	// balances per account, plus retained earnings: the accumulated revenue
	// minus expense balances, read in the same snapshot so the sheet
	// balances.
	GetBalanceSheetData(ctx context.Context) (assets, liabilities, equity []domain.AccountAmount, retainedEarnings decimal.Decimal, err error)
}
