package domain_test

import (
	"testing"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountType_NormalSide(t *testing.T) {
	tests := []struct {
		accountType domain.AccountType
		want        domain.Side
	}{
		{domain.Asset, domain.Debit},
		{domain.Expense, domain.Debit},
		{domain.Liability, domain.Credit},
		{domain.Equity, domain.Credit},
		{domain.Revenue, domain.Credit},
	}

	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.accountType.NormalSide())
		})
	}
}

func TestJournalEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   domain.JournalEntry
		wantErr error
	}{
		{
			name: "valid debit entry",
			entry: domain.JournalEntry{
				AccountID:   "acc_1",
				DebitAmount: decimal.NewFromInt(100),
			},
			wantErr: nil,
		},
		{
			name: "valid credit entry",
			entry: domain.JournalEntry{
				AccountID:    "acc_1",
				CreditAmount: decimal.NewFromInt(100),
			},
			wantErr: nil,
		},
		{
			name: "both sides set",
			entry: domain.JournalEntry{
				AccountID:    "acc_1",
				DebitAmount:  decimal.NewFromInt(100),
				CreditAmount: decimal.NewFromInt(100),
			},
			wantErr: domain.ErrEntryAmountExclusive,
		},
		{
			name: "neither side set",
			entry: domain.JournalEntry{
				AccountID: "acc_1",
			},
			wantErr: domain.ErrEntryAmountExclusive,
		},
		{
			name: "negative amount",
			entry: domain.JournalEntry{
				AccountID:   "acc_1",
				DebitAmount: decimal.NewFromInt(-5),
			},
			wantErr: domain.ErrEntryAmountNegative,
		},
		{
			name: "missing account",
			entry: domain.JournalEntry{
				DebitAmount: decimal.NewFromInt(100),
			},
			wantErr: domain.ErrEntryAccountMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJournalEntry_SideAndAmount(t *testing.T) {
	debit := domain.JournalEntry{AccountID: "acc_1", DebitAmount: decimal.NewFromFloat(12.34)}
	credit := domain.JournalEntry{AccountID: "acc_1", CreditAmount: decimal.NewFromFloat(56.78)}

	assert.Equal(t, domain.Debit, debit.Side())
	assert.True(t, debit.Amount().Equal(decimal.NewFromFloat(12.34)))
	assert.Equal(t, domain.Credit, credit.Side())
	assert.True(t, credit.Amount().Equal(decimal.NewFromFloat(56.78)))
}
