package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/propbooks/propbooks_backend/internal/models"
)

// ToModelAuditRecord converts a domain AuditRecord to a model AuditRecord,
// marshalling the changes payload to JSON bytes for the JSONB column.
func ToModelAuditRecord(d domain.AuditRecord) (models.AuditRecord, error) {
	var changes []byte
	if d.Changes != nil {
		b, err := json.Marshal(d.Changes)
		if err != nil {
			return models.AuditRecord{}, fmt.Errorf("failed to marshal audit changes: %w", err)
		}
		changes = b
	}
	return models.AuditRecord{
		AuditID:    d.AuditID,
		Action:     string(d.Action),
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		Changes:    changes,
		ActorID:    d.ActorID,
		OccurredAt: d.OccurredAt,
	}, nil
}

// ToDomainAuditRecord converts a model AuditRecord to a domain AuditRecord
func ToDomainAuditRecord(m models.AuditRecord) (domain.AuditRecord, error) {
	var changes map[string]any
	if len(m.Changes) > 0 {
		if err := json.Unmarshal(m.Changes, &changes); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("failed to unmarshal audit changes: %w", err)
		}
	}
	return domain.AuditRecord{
		AuditID:    m.AuditID,
		Action:     domain.AuditAction(m.Action),
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Changes:    changes,
		ActorID:    m.ActorID,
		OccurredAt: m.OccurredAt,
	}, nil
}

// ToDomainAuditRecordSlice converts a slice of model AuditRecords to a slice of domain AuditRecords
func ToDomainAuditRecordSlice(ms []models.AuditRecord) ([]domain.AuditRecord, error) {
	ds := make([]domain.AuditRecord, len(ms))
	for i, m := range ms {
		d, err := ToDomainAuditRecord(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
