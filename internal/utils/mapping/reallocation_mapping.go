package mapping

import (
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/propbooks/propbooks_backend/internal/models"
)

// ToModelReallocation converts a domain Reallocation to a model Reallocation
func ToModelReallocation(d domain.Reallocation) models.Reallocation {
	return models.Reallocation{
		ReallocationID: d.ReallocationID,
		SourceEntryID:  d.SourceEntryID,
		NewEntryID:     d.NewEntryID,
		AdjustmentID:   d.AdjustmentID,
		FromAccountID:  d.FromAccountID,
		ToAccountID:    d.ToAccountID,
		Amount:         d.Amount,
		Reason:         d.Reason,
		ActorID:        d.ActorID,
		ReallocatedAt:  d.ReallocatedAt,
	}
}

// ToDomainReallocation converts a model Reallocation to a domain Reallocation
func ToDomainReallocation(m models.Reallocation) domain.Reallocation {
	return domain.Reallocation{
		ReallocationID: m.ReallocationID,
		SourceEntryID:  m.SourceEntryID,
		NewEntryID:     m.NewEntryID,
		AdjustmentID:   m.AdjustmentID,
		FromAccountID:  m.FromAccountID,
		ToAccountID:    m.ToAccountID,
		Amount:         m.Amount,
		Reason:         m.Reason,
		ActorID:        m.ActorID,
		ReallocatedAt:  m.ReallocatedAt,
	}
}
