package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/funeralworks/backend/internal/domain/casework"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockStatusHistoryRepository creates a GormStatusHistoryRepository with a mocked SQL connection
func newMockStatusHistoryRepository(t *testing.T) (*GormStatusHistoryRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStatusHistoryRepository(gormDB), mock, mockDB
}

func TestGormStatusHistoryRepository_Append(t *testing.T) {
	t.Run("inserts a history entry", func(t *testing.T) {
		repo, mock, mockDB := newMockStatusHistoryRepository(t)
		defer mockDB.Close()

		from, err := casework.DefinitionFor(casework.StatusRecordCreated)
		require.NoError(t, err)
		to, err := casework.DefinitionFor(casework.StatusPaymentReminder1)
		require.NoError(t, err)
		entry, err := casework.NewStatusHistoryEntry(uuid.New(), from, to, nil, "")
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "case_status_history"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Append(context.Background(), entry)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStatusHistoryRepository_FindByCase(t *testing.T) {
	t.Run("returns entries in chronological order with seq tiebreak", func(t *testing.T) {
		repo, mock, mockDB := newMockStatusHistoryRepository(t)
		defer mockDB.Close()

		caseID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows([]string{
			"id", "seq", "case_id", "old_status", "new_status",
			"old_percentage", "new_percentage", "changed_by", "notes", "changed_at",
		}).AddRow(
			uuid.New(), int64(1), caseID, "record_created", "funeral_arrangement",
			1, 10, nil, "Status changed from Record Created to Funeral Arrangement", now.Add(-time.Hour),
		).AddRow(
			uuid.New(), int64(2), caseID, "funeral_arrangement", "documents_sent_home_affairs",
			10, 15, nil, "Status changed from Funeral Arrangement to Documents Sent to Home Affairs", now,
		)

		// Entries sharing a changed_at timestamp come back in insertion
		// order via the seq column
		mock.ExpectQuery(`SELECT \* FROM "case_status_history" WHERE case_id = \$1 ORDER BY changed_at ASC, seq ASC`).
			WithArgs(caseID).
			WillReturnRows(rows)

		entries, err := repo.FindByCase(context.Background(), caseID)

		assert.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, casework.StatusRecordCreated, entries[0].OldStatus)
		assert.Equal(t, casework.StatusDocumentsSentHA, entries[1].NewStatus)
		assert.Less(t, entries[0].Seq, entries[1].Seq)

		// Replaying the trail reproduces the final state
		status, percentage, err := casework.ReplayHistory(entries)
		assert.NoError(t, err)
		assert.Equal(t, casework.StatusDocumentsSentHA, status)
		assert.Equal(t, 15, percentage)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty trail for case without transitions", func(t *testing.T) {
		repo, mock, mockDB := newMockStatusHistoryRepository(t)
		defer mockDB.Close()

		caseID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "case_status_history" WHERE case_id = \$1 ORDER BY changed_at ASC, seq ASC`).
			WithArgs(caseID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "case_id"}))

		entries, err := repo.FindByCase(context.Background(), caseID)

		assert.NoError(t, err)
		assert.Empty(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
