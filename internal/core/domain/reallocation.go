package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reallocation links a posted journal entry to the adjustment journal that
// moved part or all of its amount to another account. The original journal
// stays posted; only the adjustment carries the movement.
type Reallocation struct {
	ReallocationID string          `json:"reallocationID"` // Primary Key (UUID)
	SourceEntryID  string          `json:"sourceEntryID"`  // Entry whose amount was moved
	NewEntryID     string          `json:"newEntryID"`     // Entry that applied the amount on the target account
	AdjustmentID   string          `json:"adjustmentID"`   // The ADJUSTMENT journal carrying the movement
	FromAccountID  string          `json:"fromAccountID"`  // Account the amount was moved from
	ToAccountID    string          `json:"toAccountID"`    // Account the amount was moved to
	Amount         decimal.Decimal `json:"amount"`         // Moved amount, positive
	Reason         string          `json:"reason"`         // Required justification
	ActorID        string          `json:"actorID"`        // Who performed the reallocation
	ReallocatedAt  time.Time       `json:"reallocatedAt"`
}
