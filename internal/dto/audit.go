package dto

import (
	"time"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
)

// ListAuditTrailParams defines query parameters for browsing the audit trail.
// Either an entity (type + id) or an actor must be given.
type ListAuditTrailParams struct {
	EntityType string  `form:"entityType"`
	EntityID   string  `form:"entityID"`
	ActorID    string  `form:"actorID"`
	Limit      int     `form:"limit,default=50"`
	NextToken  *string `form:"nextToken"`
}

// AuditRecordResponse defines the data returned for an audit trail record.
type AuditRecordResponse struct {
	AuditID    string         `json:"auditID"`
	Action     string         `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityID"`
	Changes    map[string]any `json:"changes,omitempty"`
	ActorID    string         `json:"actorID"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// ToAuditRecordResponse converts a domain.AuditRecord to AuditRecordResponse DTO
func ToAuditRecordResponse(record *domain.AuditRecord) AuditRecordResponse {
	return AuditRecordResponse{
		AuditID:    record.AuditID,
		Action:     string(record.Action),
		EntityType: record.EntityType,
		EntityID:   record.EntityID,
		Changes:    record.Changes,
		ActorID:    record.ActorID,
		OccurredAt: record.OccurredAt,
	}
}

// ToAuditRecordResponses converts a slice of domain.AuditRecord to []AuditRecordResponse.
func ToAuditRecordResponses(records []domain.AuditRecord) []AuditRecordResponse {
	responses := make([]AuditRecordResponse, len(records))
	for i, record := range records {
		responses[i] = ToAuditRecordResponse(&record)
	}
	return responses
}

// ListAuditTrailResponse wraps a page of audit records with the next page token.
type ListAuditTrailResponse struct {
	Records   []AuditRecordResponse `json:"records"`
	NextToken *string               `json:"nextToken,omitempty"`
}
