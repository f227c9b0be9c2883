package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propbooks/propbooks_backend/internal/apperrors"
	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/propbooks/propbooks_backend/internal/utils/pagination"
)

func TestSaveAuditRecord(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := newPgxAuditRepository(mockPool)
	now := time.Now()
	record := domain.AuditRecord{
		AuditID:    "aud-1",
		Action:     domain.AuditJournalPosted,
		EntityType: "journal",
		EntityID:   "jrn-1",
		Changes:    map[string]any{"journalNumber": "GEN-000042"},
		ActorID:    "user-1",
		OccurredAt: now,
	}

	mockPool.ExpectExec(`INSERT INTO audit_trail`).
		WithArgs(
			"aud-1", string(domain.AuditJournalPosted), "journal", "jrn-1",
			[]byte(`{"journalNumber":"GEN-000042"}`), "user-1", now,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.SaveAuditRecord(context.Background(), record)

	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func auditRows(now time.Time, ids ...string) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"audit_id", "action", "entity_type", "entity_id", "changes", "actor_id", "occurred_at",
	})
	for i, id := range ids {
		rows.AddRow(
			id, string(domain.AuditJournalPosted), "journal", "jrn-1",
			[]byte(`{}`), "user-1", now.Add(-time.Duration(i)*time.Minute),
		)
	}
	return rows
}

func TestListAuditRecordsByEntity(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := newPgxAuditRepository(mockPool)
	now := time.Now()

	mockPool.ExpectQuery(`SELECT .+ FROM audit_trail WHERE entity_type = \$1 AND entity_id = \$2 ORDER BY occurred_at DESC, audit_id DESC LIMIT \$3`).
		WithArgs("journal", "jrn-1", 3).
		WillReturnRows(auditRows(now, "aud-3", "aud-2", "aud-1"))

	records, nextToken, err := repo.ListAuditRecordsByEntity(context.Background(), "journal", "jrn-1", 2, nil)

	require.NoError(t, err)
	require.Len(t, records, 2, "one extra row fetched means another page exists")
	assert.Equal(t, "aud-3", records[0].AuditID)
	require.NotNil(t, nextToken)

	fields, err := pagination.DecodeMultiFieldToken(*nextToken)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "aud-2", fields[1], "token points at the last returned record")
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestListAuditRecordsByActor_LastPage(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := newPgxAuditRepository(mockPool)
	now := time.Now()

	mockPool.ExpectQuery(`SELECT .+ FROM audit_trail WHERE actor_id = \$1 ORDER BY occurred_at DESC, audit_id DESC LIMIT \$2`).
		WithArgs("user-1", 51).
		WillReturnRows(auditRows(now, "aud-1"))

	records, nextToken, err := repo.ListAuditRecordsByActor(context.Background(), "user-1", 0, nil)

	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Nil(t, nextToken)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestListAuditRecordsByEntity_InvalidToken(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := newPgxAuditRepository(mockPool)
	badToken := "not-base64!!"

	records, nextToken, err := repo.ListAuditRecordsByEntity(context.Background(), "journal", "jrn-1", 10, &badToken)

	assert.Nil(t, records)
	assert.Nil(t, nextToken)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
