package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique account code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountsByCodes retrieves multiple accounts keyed by account code.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// HasEntries reports whether any journal entry references the account.
	HasEntries(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpsertSystemAccounts inserts the given system accounts, skipping codes
	// that already exist. It is the only provisioning path and is idempotent.
	UpsertSystemAccounts(ctx context.Context, accounts []domain.Account) error

	// UpdateAccountDetails updates an account's descriptive fields. Balances
	// are never written through this method.
	UpdateAccountDetails(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, actorID string, now time.Time) error

	// DeleteAccount removes an account. System accounts and accounts
	// referenced by journal entries are rejected.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountPostingSupport defines the operations the posting engine performs on
// accounts inside its transaction.
type AccountPostingSupport interface {
	// FindAccountsByIDsForUpdate locks the given account rows in ascending
	// account_id order and returns them. The deterministic order is the
	// deadlock-avoidance mechanism for concurrent postings.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx writes new balances for the locked accounts
	// within the given transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, newBalances map[string]decimal.Decimal, actorID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountPostingSupport
}
