package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/funeralworks/backend/internal/domain/casework"
	"github.com/funeralworks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCaseRecordRepository creates a GormCaseRecordRepository with a mocked SQL connection
func newMockCaseRecordRepository(t *testing.T) (*GormCaseRecordRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormCaseRecordRepository(gormDB), mock, mockDB
}

func caseRecordRows(id uuid.UUID, recordNumber string, status casework.CaseStatus, percentage, version int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version",
		"record_number", "full_name", "address", "id_number",
		"time_of_death", "funeral_location", "policy_numbers",
		"amount_covered", "amount_paid", "receipt_number", "invoice_number",
		"next_of_kin", "cell_number", "email_address",
		"status", "progress_percentage",
	}).AddRow(
		id, now, now, version,
		recordNumber, "Nomsa Khumalo", "12 Church St", "5501015000087",
		"06:30", "Pretoria West", []byte(`["POL-1","POL-2"]`),
		"25000", "5000", "", "",
		"Sipho Khumalo", "0821234567", "sipho@example.com",
		string(status), percentage,
	)
}

func TestGormCaseRecordRepository_FindByID(t *testing.T) {
	t.Run("finds existing case", func(t *testing.T) {
		repo, mock, mockDB := newMockCaseRecordRepository(t)
		defer mockDB.Close()

		caseID := uuid.New()
		rows := caseRecordRows(caseID, "FC-2026-00001", casework.StatusPaymentMade, 40, 3)

		mock.ExpectQuery(`SELECT \* FROM "case_records" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(caseID, 1).
			WillReturnRows(rows)

		record, err := repo.FindByID(context.Background(), caseID)

		assert.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, caseID, record.ID)
		assert.Equal(t, "FC-2026-00001", record.RecordNumber)
		assert.Equal(t, casework.StatusPaymentMade, record.Status)
		assert.Equal(t, 40, record.ProgressPercentage)
		assert.Equal(t, 3, record.Version)
		assert.Equal(t, []string{"POL-1", "POL-2"}, record.PolicyNumbers)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing case", func(t *testing.T) {
		repo, mock, mockDB := newMockCaseRecordRepository(t)
		defer mockDB.Close()

		caseID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "case_records" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(caseID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		record, err := repo.FindByID(context.Background(), caseID)

		assert.Error(t, err)
		assert.Nil(t, record)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCaseRecordRepository_FindByRecordNumber(t *testing.T) {
	t.Run("finds case by record number", func(t *testing.T) {
		repo, mock, mockDB := newMockCaseRecordRepository(t)
		defer mockDB.Close()

		caseID := uuid.New()
		rows := caseRecordRows(caseID, "FC-2026-00007", casework.StatusRecordCreated, 1, 1)

		mock.ExpectQuery(`SELECT \* FROM "case_records" WHERE record_number = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("FC-2026-00007", 1).
			WillReturnRows(rows)

		record, err := repo.FindByRecordNumber(context.Background(), "FC-2026-00007")

		assert.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, "FC-2026-00007", record.RecordNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown record number", func(t *testing.T) {
		repo, mock, mockDB := newMockCaseRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "case_records" WHERE record_number = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("FC-2026-99999", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		record, err := repo.FindByRecordNumber(context.Background(), "FC-2026-99999")

		assert.Error(t, err)
		assert.Nil(t, record)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCaseRecordRepository_Count(t *testing.T) {
	t.Run("counts with status filter", func(t *testing.T) {
		repo, mock, mockDB := newMockCaseRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "case_records" WHERE status = \$1`).
			WithArgs("payment_reminder_1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		filter := shared.Filter{Filters: map[string]interface{}{"status": "payment_reminder_1"}}
		count, err := repo.Count(context.Background(), filter)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func newTransitionedCase(t *testing.T, target casework.CaseStatus) (*casework.CaseRecord, *casework.StatusHistoryEntry) {
	record, err := casework.NewCaseRecord("FC-2026-00001", "Nomsa Khumalo", nil)
	require.NoError(t, err)

	from, err := casework.DefinitionFor(record.Status)
	require.NoError(t, err)
	to, err := casework.DefinitionFor(target)
	require.NoError(t, err)

	entry, err := casework.NewStatusHistoryEntry(record.ID, from, to, nil, "")
	require.NoError(t, err)
	record.ApplyStatus(to)
	return record, entry
}

func TestGormCaseRecordRepository_SaveWithHistory(t *testing.T) {
	t.Run("commits record update and history entry together", func(t *testing.T) {
		repo, mock, mockDB := newMockCaseRecordRepository(t)
		defer mockDB.Close()

		record, entry := newTransitionedCase(t, casework.StatusPaymentReminder1)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM "case_records"`).
			WithArgs(record.ID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))
		mock.ExpectExec(`UPDATE "case_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "case_status_history"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SaveWithHistory(context.Background(), record, entry)

		assert.NoError(t, err)
		assert.Equal(t, 2, record.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails when version mismatch detected before update", func(t *testing.T) {
		repo, mock, mockDB := newMockCaseRecordRepository(t)
		defer mockDB.Close()

		record, entry := newTransitionedCase(t, casework.StatusPaymentReminder1)

		// Another transaction already bumped the version to 2
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM "case_records"`).
			WithArgs(record.ID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(2))
		mock.ExpectRollback()

		err := repo.SaveWithHistory(context.Background(), record, entry)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONCURRENT_MODIFICATION", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails when update affects zero rows", func(t *testing.T) {
		repo, mock, mockDB := newMockCaseRecordRepository(t)
		defer mockDB.Close()

		record, entry := newTransitionedCase(t, casework.StatusPaymentReminder1)

		// Race between the version read and the guarded update
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM "case_records"`).
			WithArgs(record.ID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))
		mock.ExpectExec(`UPDATE "case_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.SaveWithHistory(context.Background(), record, entry)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONCURRENT_MODIFICATION", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when the case was deleted concurrently", func(t *testing.T) {
		repo, mock, mockDB := newMockCaseRecordRepository(t)
		defer mockDB.Close()

		record, entry := newTransitionedCase(t, casework.StatusPaymentReminder1)

		// The version select finds no row at all
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM "case_records"`).
			WithArgs(record.ID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}))
		mock.ExpectRollback()

		err := repo.SaveWithHistory(context.Background(), record, entry)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when history insert fails", func(t *testing.T) {
		repo, mock, mockDB := newMockCaseRecordRepository(t)
		defer mockDB.Close()

		record, entry := newTransitionedCase(t, casework.StatusPaymentReminder1)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM "case_records"`).
			WithArgs(record.ID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))
		mock.ExpectExec(`UPDATE "case_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "case_status_history"`).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.SaveWithHistory(context.Background(), record, entry)

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCaseRecordRepository_Save_DuplicateRecordNumber(t *testing.T) {
	repo, mock, mockDB := newMockCaseRecordRepository(t)
	defer mockDB.Close()

	record, err := casework.NewCaseRecord("FC-2026-00001", "Nomsa Khumalo", nil)
	require.NoError(t, err)

	// Two creators raced on the same generated number; the unique
	// constraint rejects the second insert
	mock.ExpectExec(`UPDATE "case_records" SET`).
		WillReturnError(gorm.ErrDuplicatedKey)

	err = repo.Save(context.Background(), record)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestGormCaseRecordRepository_GenerateRecordNumber(t *testing.T) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("FC-%d-", year)

	t.Run("generates first number of the year", func(t *testing.T) {
		repo, mock, mockDB := newMockCaseRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "case_records" WHERE record_number LIKE \$1 ORDER BY record_number DESC`).
			WithArgs(prefix+"%", 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "case_records" WHERE record_number = \$1`).
			WithArgs(prefix + "00001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		recordNumber, err := repo.GenerateRecordNumber(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, prefix+"00001", recordNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("increments from the highest existing number", func(t *testing.T) {
		repo, mock, mockDB := newMockCaseRecordRepository(t)
		defer mockDB.Close()

		rows := caseRecordRows(uuid.New(), prefix+"00041", casework.StatusRecordCreated, 1, 1)
		mock.ExpectQuery(`SELECT \* FROM "case_records" WHERE record_number LIKE \$1 ORDER BY record_number DESC`).
			WithArgs(prefix+"%", 1).
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "case_records" WHERE record_number = \$1`).
			WithArgs(prefix + "00042").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		recordNumber, err := repo.GenerateRecordNumber(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, prefix+"00042", recordNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCaseRecordRepository_Delete(t *testing.T) {
	t.Run("deletes case with documents and history", func(t *testing.T) {
		repo, mock, mockDB := newMockCaseRecordRepository(t)
		defer mockDB.Close()

		caseID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "case_documents" WHERE case_id = \$1`).
			WithArgs(caseID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "case_status_history" WHERE case_id = \$1`).
			WithArgs(caseID).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM "case_records" WHERE id = \$1`).
			WithArgs(caseID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(context.Background(), caseID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing case", func(t *testing.T) {
		repo, mock, mockDB := newMockCaseRecordRepository(t)
		defer mockDB.Close()

		caseID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "case_documents" WHERE case_id = \$1`).
			WithArgs(caseID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "case_status_history" WHERE case_id = \$1`).
			WithArgs(caseID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "case_records" WHERE id = \$1`).
			WithArgs(caseID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), caseID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
