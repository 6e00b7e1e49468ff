package casework

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/funeralworks/backend/internal/domain/casework"
	"github.com/funeralworks/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ObjectStorageService defines the interface for document byte storage.
// Implemented by the infrastructure layer (S3-compatible backends).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// DocumentServiceConfig holds configuration for the document service
type DocumentServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultDocumentServiceConfig returns the default configuration
func DefaultDocumentServiceConfig() DocumentServiceConfig {
	return DocumentServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// DocumentService manages the document ledger for cases. File bytes live
// in object storage; this service records that a document of a given kind
// exists and at which workflow status it was captured.
type DocumentService struct {
	documentRepo casework.CaseDocumentRepository
	caseRepo     casework.CaseRecordRepository
	storage      ObjectStorageService
	config       DocumentServiceConfig
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	documentRepo casework.CaseDocumentRepository,
	caseRepo casework.CaseRecordRepository,
	storage ObjectStorageService,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		caseRepo:     caseRepo,
		storage:      storage,
		config:       DefaultDocumentServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *DocumentService) SetConfig(config DocumentServiceConfig) {
	s.config = config
}

// UploadGrant is a presigned upload slot plus the ledger entry that will
// describe the document once the bytes are stored
type UploadGrant struct {
	Document  DocumentResponse
	UploadURL string
	ExpiresAt time.Time
}

// RecordAttachment registers a document for a case, capturing the case's
// current status, and returns a presigned URL the caller uploads the
// bytes to. The registration stays unconfirmed, and invisible to the
// document gate, until ConfirmAttachment verifies the stored bytes.
// Fails with NOT_FOUND if the case does not exist.
func (s *DocumentService) RecordAttachment(ctx context.Context, caseID uuid.UUID, req RecordAttachmentRequest) (*UploadGrant, error) {
	record, err := s.caseRepo.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	storageKey := buildStorageKey(record.RecordNumber, req.DocumentName)
	doc, err := casework.NewCaseDocument(
		record.ID,
		req.DocumentName,
		req.DocumentType,
		storageKey,
		req.ContentType,
		req.FileSize,
		record.Status,
		req.UploadedBy,
	)
	if err != nil {
		return nil, err
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, err
	}

	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	return &UploadGrant{
		Document:  ToDocumentResponse(doc),
		UploadURL: uploadURL,
		ExpiresAt: expiresAt,
	}, nil
}

// ConfirmAttachment verifies that the document's bytes exist in object
// storage and marks the registration confirmed, making it count toward
// the document gate. Fails with UPLOAD_INCOMPLETE when no object is
// found under the document's storage key. Confirming twice is a no-op.
func (s *DocumentService) ConfirmAttachment(ctx context.Context, documentID uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if !doc.UploadConfirmed {
		exists, err := s.storage.ObjectExists(ctx, doc.StorageKey)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError("UPLOAD_INCOMPLETE", "No uploaded file found for this document")
		}

		doc.ConfirmUpload()
		if err := s.documentRepo.Save(ctx, doc); err != nil {
			return nil, err
		}
	}

	response := ToDocumentResponse(doc)
	return &response, nil
}

// List returns all documents for a case, newest upload first
func (s *DocumentService) List(ctx context.Context, caseID uuid.UUID) ([]DocumentResponse, error) {
	if _, err := s.caseRepo.FindByID(ctx, caseID); err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.FindByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	responses := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		responses = append(responses, ToDocumentResponse(&docs[i]))
	}
	return responses, nil
}

// GetDownloadURL returns a presigned download URL for a stored document
func (s *DocumentService) GetDownloadURL(ctx context.Context, documentID uuid.UUID) (string, time.Time, error) {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return "", time.Time{}, err
	}
	return s.storage.GenerateDownloadURL(ctx, doc.StorageKey, s.config.DownloadURLExpiry)
}

// RemoveAttachment deletes one document attachment and its stored bytes.
// Removing a document does not roll back a transition it previously
// gated: the gate is checked only at transition time.
func (s *DocumentService) RemoveAttachment(ctx context.Context, documentID uuid.UUID) error {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteObject(ctx, doc.StorageKey); err != nil {
		return err
	}
	return s.documentRepo.Delete(ctx, doc.ID)
}

// HasDocumentFor reports whether the case has a document captured at the
// given status. Exposed for collaborators rendering gate warnings.
func (s *DocumentService) HasDocumentFor(ctx context.Context, caseID uuid.UUID, status casework.CaseStatus) (bool, error) {
	if !status.IsValid() {
		return false, shared.NewDomainError("UNKNOWN_STATUS", "Status is not part of the workflow")
	}
	return s.documentRepo.HasDocumentFor(ctx, caseID, status)
}

// buildStorageKey derives the object key for a document. Keys are
// namespaced by record number and timestamped to avoid collisions
// between same-named uploads.
func buildStorageKey(recordNumber, documentName string) string {
	ext := path.Ext(documentName)
	return fmt.Sprintf("cases/%s/%d%s", recordNumber, time.Now().UnixNano(), ext)
}
