package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propbooks/propbooks_backend/internal/apperrors"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	portsrepo "github.com/propbooks/propbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/propbooks/propbooks_backend/internal/core/ports/services"
	"github.com/propbooks/propbooks_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// accountService implements the account facade on top of the account
// repository. Balances are never written here; only the posting engine
// mutates them.
type accountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepositoryFacade
	audit        *AuditRecorder
	baseCurrency string
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, audit *AuditRecorder, baseCurrency string) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		audit:        audit,
		baseCurrency: baseCurrency,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates and persists a new account with a zero balance.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid account type %q", req.AccountType))
	}

	currency := strings.ToUpper(req.CurrencyCode)
	if currency == "" {
		currency = s.baseCurrency
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("parent account " + *req.ParentAccountID + " not found")
			}
			return nil, fmt.Errorf("failed to validate parent account: %w", err)
		}
		if parent.AccountType != req.AccountType {
			return nil, apperrors.NewValidationError("parent account must have the same account type")
		}
		parentID = parent.AccountID
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		Subtype:         req.Subtype,
		CurrencyCode:    currency,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsSystem:        false,
		IsActive:        true,
		CurrentBalance:  decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "failed to save account", slog.String("code", req.Code))
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditAccountCreated, "account", account.AccountID, map[string]any{
		"code":        account.Code,
		"name":        account.Name,
		"accountType": string(account.AccountType),
	}, actorID)

	s.LogInfo(ctx, "account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// UpdateAccount applies the provided descriptive fields to an existing
// account.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if req.Name != nil {
		account.Name = *req.Name
		changes["name"] = *req.Name
	}
	if req.Subtype != nil {
		account.Subtype = *req.Subtype
		changes["subtype"] = *req.Subtype
	}
	if req.Description != nil {
		account.Description = *req.Description
		changes["description"] = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		changes["isActive"] = *req.IsActive
	}
	if len(changes) == 0 {
		return account, nil
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = actorID

	if err := s.accountRepo.UpdateAccountDetails(ctx, *account); err != nil {
		s.LogError(ctx, err, "failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditAccountUpdated, "account", accountID, changes, actorID)
	return account, nil
}

// DeactivateAccount marks an account inactive. Inactive accounts keep their
// balance and history but reject new postings.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, actorID string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, actorID, time.Now()); err != nil {
		return err
	}
	s.audit.Record(ctx, domain.AuditAccountDeactivated, "account", accountID, nil, actorID)
	s.LogInfo(ctx, "account deactivated", slog.String("account_id", accountID))
	return nil
}

// DeleteAccount removes an account. System accounts and accounts referenced
// by journal entries are rejected; the database enforces both rules again
// underneath.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, actorID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.IsSystem {
		return apperrors.NewIntegrityError("account " + account.Code + " is a system account and cannot be deleted")
	}

	hasEntries, err := s.accountRepo.HasEntries(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check account references: %w", err)
	}
	if hasEntries {
		return apperrors.NewIntegrityError("account " + account.Code + " is referenced by journal entries and cannot be deleted")
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "failed to delete account", slog.String("account_id", accountID))
		return err
	}

	s.audit.Record(ctx, domain.AuditAccountDeleted, "account", accountID, map[string]any{
		"code": account.Code,
		"name": account.Name,
	}, actorID)
	return nil
}

// EnsureSystemAccounts provisions the documented system accounts in the base
// currency. Existing codes are left untouched, so calling it repeatedly is
// safe; this is the only provisioning path.
func (s *accountService) EnsureSystemAccounts(ctx context.Context, actorID string) error {
	now := time.Now()
	accounts := make([]domain.Account, 0, len(domain.SystemAccountSpecs))
	codes := make([]string, 0, len(domain.SystemAccountSpecs))
	for _, spec := range domain.SystemAccountSpecs {
		codes = append(codes, spec.Code)
		accounts = append(accounts, domain.Account{
			AccountID:      uuid.NewString(),
			Code:           spec.Code,
			Name:           spec.Name,
			AccountType:    spec.Type,
			Subtype:        spec.Subtype,
			CurrencyCode:   s.baseCurrency,
			IsSystem:       true,
			IsActive:       true,
			CurrentBalance: decimal.Zero,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		})
	}

	if err := s.accountRepo.UpsertSystemAccounts(ctx, accounts); err != nil {
		s.LogError(ctx, err, "failed to provision system accounts")
		return err
	}

	s.audit.Record(ctx, domain.AuditAccountProvisioned, "account", "system", map[string]any{
		"codes":    codes,
		"currency": s.baseCurrency,
	}, actorID)

	s.LogInfo(ctx, "system accounts ensured", slog.Int("count", len(accounts)))
	return nil
}

// GetAccountByID retrieves a specific account by its unique identifier.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountByCode retrieves an account by its unique account code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, code)
}

// GetAccountsByIDs retrieves multiple accounts by their IDs.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts retrieves a paginated list of accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}
