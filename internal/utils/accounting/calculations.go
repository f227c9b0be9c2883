package accounting

import (
	"errors"
	"fmt"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnbalanced indicates the journal's debit and credit totals differ.
	ErrUnbalanced = errors.New("journal debits and credits do not balance")
	// ErrTooFewEntries indicates a journal with fewer than two entries.
	ErrTooFewEntries = errors.New("journal must have at least two entries")
)

// SignedDelta returns the balance change an entry causes on an account of the
// given type: amounts on the account's normal side increase the balance,
// amounts on the opposite side decrease it.
// This is used in both services and repositories to keep the arithmetic in
// one place.
func SignedDelta(entry domain.JournalEntry, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type %q for account %s", accountType, entry.AccountID)
	}
	if accountType.NormalSide() == domain.Debit {
		return entry.DebitAmount.Sub(entry.CreditAmount), nil
	}
	return entry.CreditAmount.Sub(entry.DebitAmount), nil
}

// ValidateJournalBalance checks a journal's entries for shape and balance:
// at least two entries, each with exactly one positive amount, and equal
// debit and credit totals.
func ValidateJournalBalance(entries []domain.JournalEntry) error {
	if len(entries) < 2 {
		return ErrTooFewEntries
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for i, entry := range entries {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
		debits = debits.Add(entry.DebitAmount)
		credits = credits.Add(entry.CreditAmount)
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits %s, credits %s", ErrUnbalanced, debits.String(), credits.String())
	}

	return nil
}

// ConvertAmount converts an entry amount through the journal's header
// exchange rate, rounded to 2 decimal places.
func ConvertAmount(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(2)
}

// SplitCommission splits a gross collected amount into the platform's
// commission figures. Rates are percentages. Each figure is rounded to 2
// decimal places per line with round-half-up (Round rounds half away from
// zero, which is half-up for the non-negative amounts handled here); the VAT
// portion is the remainder so the three figures always satisfy
// gross == net + vat exactly.
func SplitCommission(amount, commissionRate, vatRate decimal.Decimal) (gross, net, vat decimal.Decimal) {
	hundred := decimal.NewFromInt(100)

	gross = amount.Mul(commissionRate).Div(hundred).Round(2)
	if !gross.IsPositive() {
		return decimal.Zero, decimal.Zero, decimal.Zero
	}

	divisor := decimal.NewFromInt(1).Add(vatRate.Div(hundred))
	net = gross.Div(divisor).Round(2)
	vat = gross.Sub(net)
	return gross, net, vat
}
