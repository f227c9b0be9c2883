package dto

import (
	"time"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReallocateEntryRequest defines the data needed to move an amount from a
// posted entry's account to another account.
type ReallocateEntryRequest struct {
	SourceEntryID string          `json:"sourceEntryID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Reason        string          `json:"reason" binding:"required"`
}

// ReallocationResponse defines the data returned for a reallocation.
type ReallocationResponse struct {
	ReallocationID string          `json:"reallocationID"`
	SourceEntryID  string          `json:"sourceEntryID"`
	NewEntryID     string          `json:"newEntryID"`
	AdjustmentID   string          `json:"adjustmentID"`
	FromAccountID  string          `json:"fromAccountID"`
	ToAccountID    string          `json:"toAccountID"`
	Amount         decimal.Decimal `json:"amount"`
	Reason         string          `json:"reason"`
	ActorID        string          `json:"actorID"`
	ReallocatedAt  time.Time       `json:"reallocatedAt"`
}

// ToReallocationResponse converts a domain.Reallocation to ReallocationResponse DTO
func ToReallocationResponse(r *domain.Reallocation) ReallocationResponse {
	return ReallocationResponse{
		ReallocationID: r.ReallocationID,
		SourceEntryID:  r.SourceEntryID,
		NewEntryID:     r.NewEntryID,
		AdjustmentID:   r.AdjustmentID,
		FromAccountID:  r.FromAccountID,
		ToAccountID:    r.ToAccountID,
		Amount:         r.Amount,
		Reason:         r.Reason,
		ActorID:        r.ActorID,
		ReallocatedAt:  r.ReallocatedAt,
	}
}
