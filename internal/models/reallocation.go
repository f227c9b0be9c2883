package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reallocation represents a row of the reallocations link table.
type Reallocation struct {
	ReallocationID string          `db:"reallocation_id"`
	SourceEntryID  string          `db:"source_entry_id"`
	NewEntryID     string          `db:"new_entry_id"`
	AdjustmentID   string          `db:"adjustment_journal_id"`
	FromAccountID  string          `db:"from_account_id"`
	ToAccountID    string          `db:"to_account_id"`
	Amount         decimal.Decimal `db:"amount"`
	Reason         string          `db:"reason"`
	ActorID        string          `db:"actor_id"`
	ReallocatedAt  time.Time       `db:"reallocated_at"`
}
