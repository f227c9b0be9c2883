package services

import (
	"context"

	"github.com/propbooks/propbooks_backend/internal/apperrors"
	portsrepo "github.com/propbooks/propbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/propbooks/propbooks_backend/internal/core/ports/services"
	"github.com/propbooks/propbooks_backend/internal/dto"
)

// auditService exposes read access to the audit trail. Writes happen inside
// the mutating services and the posting transaction, never through this
// facade.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates a new audit service.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// ListAuditTrail retrieves audit records for one entity or one actor, newest
// first.
func (s *auditService) ListAuditTrail(ctx context.Context, params dto.ListAuditTrailParams) (*dto.ListAuditTrailResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	if (params.EntityType == "") != (params.EntityID == "") {
		return nil, apperrors.NewValidationError("entityType and entityID must be provided together")
	}

	var (
		records   []dto.AuditRecordResponse
		nextToken *string
	)
	switch {
	case params.EntityType != "":
		found, token, err := s.auditRepo.ListAuditRecordsByEntity(ctx, params.EntityType, params.EntityID, limit, params.NextToken)
		if err != nil {
			return nil, err
		}
		records, nextToken = dto.ToAuditRecordResponses(found), token
	case params.ActorID != "":
		found, token, err := s.auditRepo.ListAuditRecordsByActor(ctx, params.ActorID, limit, params.NextToken)
		if err != nil {
			return nil, err
		}
		records, nextToken = dto.ToAuditRecordResponses(found), token
	default:
		return nil, apperrors.NewValidationError("either an entity (entityType and entityID) or an actorID filter is required")
	}

	return &dto.ListAuditTrailResponse{
		Records:   records,
		NextToken: nextToken,
	}, nil
}
