package casework

import (
	"context"
	"time"

	"github.com/funeralworks/backend/internal/domain/casework"
	"github.com/funeralworks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCaseRecordRepository is a mock implementation of CaseRecordRepository
type MockCaseRecordRepository struct {
	mock.Mock
}

func (m *MockCaseRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*casework.CaseRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casework.CaseRecord), args.Error(1)
}

func (m *MockCaseRecordRepository) FindByRecordNumber(ctx context.Context, recordNumber string) (*casework.CaseRecord, error) {
	args := m.Called(ctx, recordNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casework.CaseRecord), args.Error(1)
}

func (m *MockCaseRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]casework.CaseRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]casework.CaseRecord), args.Error(1)
}

func (m *MockCaseRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCaseRecordRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCaseRecordRepository) Save(ctx context.Context, record *casework.CaseRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCaseRecordRepository) SaveWithHistory(ctx context.Context, record *casework.CaseRecord, entry *casework.StatusHistoryEntry) error {
	args := m.Called(ctx, record, entry)
	return args.Error(0)
}

func (m *MockCaseRecordRepository) GenerateRecordNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockCaseRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCaseDocumentRepository is a mock implementation of CaseDocumentRepository
type MockCaseDocumentRepository struct {
	mock.Mock
}

func (m *MockCaseDocumentRepository) HasDocumentFor(ctx context.Context, caseID uuid.UUID, status casework.CaseStatus) (bool, error) {
	args := m.Called(ctx, caseID, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockCaseDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*casework.CaseDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casework.CaseDocument), args.Error(1)
}

func (m *MockCaseDocumentRepository) FindByCase(ctx context.Context, caseID uuid.UUID) ([]casework.CaseDocument, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]casework.CaseDocument), args.Error(1)
}

func (m *MockCaseDocumentRepository) Save(ctx context.Context, doc *casework.CaseDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockCaseDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStatusHistoryRepository is a mock implementation of StatusHistoryRepository
type MockStatusHistoryRepository struct {
	mock.Mock
}

func (m *MockStatusHistoryRepository) Append(ctx context.Context, entry *casework.StatusHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStatusHistoryRepository) FindByCase(ctx context.Context, caseID uuid.UUID) ([]casework.StatusHistoryEntry, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]casework.StatusHistoryEntry), args.Error(1)
}

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}
