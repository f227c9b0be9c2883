package services

import (
	"context"

	"github.com/propbooks/propbooks_backend/internal/dto"
)

// AuditSvcFacade defines read operations over the audit trail. Writing
// happens inside the services that perform the mutations, never through the
// API surface.
type AuditSvcFacade interface {
	// ListAuditTrail retrieves a paginated list of audit records for an
	// entity or an actor, newest first.
	ListAuditTrail(ctx context.Context, params dto.ListAuditTrailParams) (*dto.ListAuditTrailResponse, error)
}
