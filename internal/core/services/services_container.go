package services

import (
	portsrepo "github.com/propbooks/propbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/propbooks/propbooks_backend/internal/core/ports/services"
	"github.com/propbooks/propbooks_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// CRUD-path audit records flow through one shared recorder; posting-path
	// records are written by the journal repository inside its transaction.
	audit := NewAuditRecorder(repos.AuditRepo)

	container.Account = NewAccountService(repos.AccountRepo, audit, cfg.BaseCurrency)
	container.Category = NewCategoryService(repos.CategoryRepo, repos.AccountRepo, audit)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, audit)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.ReallocationRepo, container.ExchangeRate, audit, cfg.BaseCurrency)
	container.Document = NewDocumentService(container.Journal, repos.AccountRepo, repos.CategoryRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.LedgerRepo, repos.AccountRepo)
	container.Audit = NewAuditService(repos.AuditRepo)

	return container
}
