package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// Cursor timestamps are serialized with nanosecond precision so that rows
// created in the same second still order deterministically.
const timeFormat = time.RFC3339Nano

const fieldSeparator = "|"

// EncodeToken builds an opaque cursor from a journal date and creation time.
// The pair matches the (journal_date, created_at) sort order used by journal
// listings.
func EncodeToken(journalDate, createdAt time.Time) string {
	raw := journalDate.Format(timeFormat) + fieldSeparator + createdAt.Format(timeFormat)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeToken recovers the journal date and creation time from a cursor
// produced by EncodeToken.
func DecodeToken(token string) (time.Time, time.Time, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed pagination token: %w", err)
	}
	parts := strings.SplitN(string(raw), fieldSeparator, 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed pagination token: expected 2 fields, got %d", len(parts))
	}
	journalDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed pagination token: bad journal date: %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed pagination token: bad creation time: %w", err)
	}
	return journalDate, createdAt, nil
}

// EncodeMultiFieldToken builds an opaque cursor from an ordered list of
// fields. Callers own the field layout; audit and ledger listings use
// (timestamp, row id).
func EncodeMultiFieldToken(fields ...string) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(fields, fieldSeparator)))
}

// DecodeMultiFieldToken splits a cursor produced by EncodeMultiFieldToken
// back into its fields.
func DecodeMultiFieldToken(token string) ([]string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("malformed pagination token: %w", err)
	}
	return strings.Split(string(raw), fieldSeparator), nil
}
