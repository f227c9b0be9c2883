package mapping

import (
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/propbooks/propbooks_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	var parentID *string
	if d.ParentAccountID != "" {
		parent := d.ParentAccountID
		parentID = &parent
	}
	return models.Account{
		AccountID:       d.AccountID,
		Code:            d.Code,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		Subtype:         d.Subtype,
		CurrencyCode:    d.CurrencyCode,
		ParentAccountID: parentID,
		Description:     d.Description,
		IsSystem:        d.IsSystem,
		IsActive:        d.IsActive,
		CurrentBalance:  d.CurrentBalance,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	parentID := ""
	if m.ParentAccountID != nil {
		parentID = *m.ParentAccountID
	}
	return domain.Account{
		AccountID:       m.AccountID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		Subtype:         m.Subtype,
		CurrencyCode:    m.CurrencyCode,
		ParentAccountID: parentID,
		Description:     m.Description,
		IsSystem:        m.IsSystem,
		IsActive:        m.IsActive,
		CurrentBalance:  m.CurrentBalance,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
