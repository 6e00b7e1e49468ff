package casework

import (
	"context"

	"github.com/funeralworks/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CaseRecordRepository persists case records
type CaseRecordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CaseRecord, error)
	FindByRecordNumber(ctx context.Context, recordNumber string) (*CaseRecord, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]CaseRecord, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, record *CaseRecord) error
	// SaveWithHistory persists a status change and its audit entry in one
	// transaction with an optimistic version check. It fails with
	// CONCURRENT_MODIFICATION when the stored version no longer matches
	// the record's, leaving neither the record nor the history mutated.
	SaveWithHistory(ctx context.Context, record *CaseRecord, entry *StatusHistoryEntry) error
	GenerateRecordNumber(ctx context.Context) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CaseDocumentRepository persists document attachments and implements the
// DocumentLedger gate query
type CaseDocumentRepository interface {
	DocumentLedger
	FindByID(ctx context.Context, id uuid.UUID) (*CaseDocument, error)
	FindByCase(ctx context.Context, caseID uuid.UUID) ([]CaseDocument, error)
	Save(ctx context.Context, doc *CaseDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StatusHistoryRepository appends to and reads the audit trail
type StatusHistoryRepository interface {
	Append(ctx context.Context, entry *StatusHistoryEntry) error
	FindByCase(ctx context.Context, caseID uuid.UUID) ([]StatusHistoryEntry, error)
}
