package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
	portsrepo "github.com/propbooks/propbooks_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(pool PgxPool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// GetTrialBalanceData retrieves one row per active account with its current
// balance placed on the account's normal side. Balances come straight from
// the accounts table; the posting engine keeps them equal to the last ledger
// running balance, which is exactly what the trial balance verifies.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT account_id, code, name, account_type, current_balance
		FROM accounts
		WHERE is_active = TRUE
		ORDER BY code;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string
		var balance decimal.Decimal

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&balance,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}
		row.AccountType = domain.AccountType(accountType)

		// A negative balance flips to the opposite column so both columns
		// stay non-negative.
		normalSide := row.AccountType.NormalSide()
		switch {
		case balance.IsNegative() && normalSide == domain.Debit:
			row.Credit = balance.Neg()
		case balance.IsNegative():
			row.Debit = balance.Neg()
		case normalSide == domain.Debit:
			row.Debit = balance
		default:
			row.Credit = balance
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	return result, nil
}

// GetProfitAndLossData retrieves revenue and expense totals per account from
// general ledger activity within the period. Reversals posted inside the
// period cancel their original's contribution; reversals posted later land in
// their own period.
func (r *reportingRepository) GetProfitAndLossData(ctx context.Context, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT
			a.account_type,
			a.account_id,
			a.code,
			a.name,
			SUM(gl.debit_amount - gl.credit_amount) AS net
		FROM general_ledger gl
		JOIN accounts a ON gl.account_id = a.account_id
		WHERE gl.entry_date BETWEEN $1 AND $2
			AND a.account_type IN ('REVENUE', 'EXPENSE')
		GROUP BY a.account_type, a.account_id, a.code, a.name
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying profit and loss data: %w", err)
	}
	defer rows.Close()

	revenue := []domain.AccountAmount{}
	expenses := []domain.AccountAmount{}

	for rows.Next() {
		var accountType string
		var amount domain.AccountAmount
		var net decimal.Decimal

		if err := rows.Scan(&accountType, &amount.AccountID, &amount.Code, &amount.Name, &net); err != nil {
			return nil, nil, fmt.Errorf("error scanning profit and loss row: %w", err)
		}

		// net is debit minus credit. Revenue grows on the credit side, so
		// invert it; expenses grow on the debit side and keep the sign.
		if accountType == string(domain.Revenue) {
			amount.NetAmount = net.Neg()
			revenue = append(revenue, amount)
		} else {
			amount.NetAmount = net
			expenses = append(expenses, amount)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating profit and loss rows: %w", err)
	}

	return revenue, expenses, nil
}

// GetBalanceSheetData retrieves current asset, liability and equity balances
// per active account, folding revenue and expense balances into a retained
// earnings figure. One query reads one snapshot, so as long as every posting
// kept the books balanced the sheet balances too.
func (r *reportingRepository) GetBalanceSheetData(ctx context.Context) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, decimal.Decimal, error) {
	query := `
		SELECT account_type, account_id, code, name, current_balance
		FROM accounts
		WHERE is_active = TRUE
		ORDER BY code;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, nil, nil, decimal.Zero, fmt.Errorf("error querying balance sheet data: %w", err)
	}
	defer rows.Close()

	assets := []domain.AccountAmount{}
	liabilities := []domain.AccountAmount{}
	equity := []domain.AccountAmount{}
	retainedEarnings := decimal.Zero

	for rows.Next() {
		var accountType string
		var amount domain.AccountAmount
		var balance decimal.Decimal

		if err := rows.Scan(&accountType, &amount.AccountID, &amount.Code, &amount.Name, &balance); err != nil {
			return nil, nil, nil, decimal.Zero, fmt.Errorf("error scanning balance sheet row: %w", err)
		}
		amount.NetAmount = balance

		switch domain.AccountType(accountType) {
		case domain.Asset:
			assets = append(assets, amount)
		case domain.Liability:
			liabilities = append(liabilities, amount)
		case domain.Equity:
			equity = append(equity, amount)
		case domain.Revenue:
			retainedEarnings = retainedEarnings.Add(balance)
		case domain.Expense:
			retainedEarnings = retainedEarnings.Sub(balance)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, nil, decimal.Zero, fmt.Errorf("error iterating balance sheet rows: %w", err)
	}

	return assets, liabilities, equity, retainedEarnings, nil
}
