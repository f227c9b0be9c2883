package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	portsrepo "github.com/propbooks/propbooks_backend/internal/core/ports/repositories"
)

// AuditRecorder writes CRUD-path audit records. Failures are logged and
// swallowed so a broken trail write never blocks the business mutation it
// describes; posting-path records are written inside the posting transaction
// by the journal repository instead and do propagate.
type AuditRecorder struct {
	BaseService
	auditRepo portsrepo.AuditWriter
}

func NewAuditRecorder(auditRepo portsrepo.AuditWriter) *AuditRecorder {
	return &AuditRecorder{auditRepo: auditRepo}
}

// Record appends one audit record for a completed mutation.
func (r *AuditRecorder) Record(ctx context.Context, action domain.AuditAction, entityType, entityID string, changes map[string]any, actorID string) {
	record := domain.AuditRecord{
		AuditID:    uuid.NewString(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    changes,
		ActorID:    actorID,
		OccurredAt: time.Now(),
	}
	if err := r.auditRepo.SaveAuditRecord(ctx, record); err != nil {
		r.LogError(ctx, err, "failed to write audit record",
			slog.String("action", string(action)),
			slog.String("entity_type", entityType),
			slog.String("entity_id", entityID))
	}
}
