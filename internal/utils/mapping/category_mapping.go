package mapping

import (
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/propbooks/propbooks_backend/internal/models"
)

// ToModelIncomeCategory converts a domain IncomeCategory to a model IncomeCategory
func ToModelIncomeCategory(d domain.IncomeCategory) models.IncomeCategory {
	return models.IncomeCategory{
		CategoryID:      d.CategoryID,
		Name:            d.Name,
		CommissionRate:  d.CommissionRate,
		VATRate:         d.VATRate,
		IncomeAccountID: d.IncomeAccountID,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainIncomeCategory converts a model IncomeCategory to a domain IncomeCategory
func ToDomainIncomeCategory(m models.IncomeCategory) domain.IncomeCategory {
	return domain.IncomeCategory{
		CategoryID:      m.CategoryID,
		Name:            m.Name,
		CommissionRate:  m.CommissionRate,
		VATRate:         m.VATRate,
		IncomeAccountID: m.IncomeAccountID,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainIncomeCategorySlice converts a slice of model IncomeCategories to domain IncomeCategories
func ToDomainIncomeCategorySlice(ms []models.IncomeCategory) []domain.IncomeCategory {
	ds := make([]domain.IncomeCategory, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainIncomeCategory(m)
	}
	return ds
}
