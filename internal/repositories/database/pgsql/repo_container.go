package pgsql

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/propbooks/propbooks_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories against one pool. The
// journal repository receives the account, ledger and audit repositories so
// posting can drive their in-transaction writes; lockTimeout bounds how long
// a posting waits on contended rows.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo, ledgerRepo, auditRepo, lockTimeout)
	reallocationRepo := newPgxReallocationRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		CategoryRepo:     categoryRepo,
		ExchangeRateRepo: exchangeRateRepo,
		JournalRepo:      journalRepo,
		LedgerRepo:       ledgerRepo,
		ReallocationRepo: reallocationRepo,
		AuditRepo:        auditRepo,
		ReportingRepo:    reportingRepo,
	}
}
