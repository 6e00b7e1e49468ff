package casework

import (
	"strings"
	"time"

	"github.com/funeralworks/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxDocumentFileSize is the maximum allowed file size (50MB)
const MaxDocumentFileSize = 50 * 1024 * 1024

// CaseDocument represents a supporting document attached to a case.
// StatusWhenUploaded is captured at creation from the case's status at
// that moment and never changes afterwards; the document gate checks this
// captured status, so a document uploaded after a later transition does
// not retroactively satisfy an earlier gate.
type CaseDocument struct {
	shared.BaseEntity
	CaseID             uuid.UUID `gorm:"type:uuid;not null;index"`
	DocumentName       string
	DocumentType       string
	StorageKey         string
	FileSize           int64
	ContentType        string
	StatusWhenUploaded CaseStatus
	// UploadConfirmed is false until the stored bytes have been verified.
	// Only confirmed documents count toward the document gate.
	UploadConfirmed bool
	UploadedBy      *uuid.UUID `gorm:"type:uuid"`
	UploadedAt      time.Time
}

// TableName returns the database table name
func (CaseDocument) TableName() string {
	return "case_documents"
}

// NewCaseDocument creates a document attachment, capturing the status the
// case is in at upload time
func NewCaseDocument(
	caseID uuid.UUID,
	documentName, documentType, storageKey, contentType string,
	fileSize int64,
	statusWhenUploaded CaseStatus,
	uploadedBy *uuid.UUID,
) (*CaseDocument, error) {
	if caseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CASE_ID", "Case ID cannot be empty")
	}
	if strings.TrimSpace(documentName) == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NAME", "Document name cannot be empty")
	}
	if len(documentName) > 255 {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NAME", "Document name cannot exceed 255 characters")
	}
	if storageKey == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	if fileSize <= 0 {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File size must be positive")
	}
	if fileSize > MaxDocumentFileSize {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File size exceeds the 50MB limit")
	}
	if !statusWhenUploaded.IsValid() {
		return nil, shared.NewDomainError("UNKNOWN_STATUS", "Captured status is not part of the workflow")
	}

	return &CaseDocument{
		BaseEntity:         shared.NewBaseEntity(),
		CaseID:             caseID,
		DocumentName:       documentName,
		DocumentType:       documentType,
		StorageKey:         storageKey,
		FileSize:           fileSize,
		ContentType:        contentType,
		StatusWhenUploaded: statusWhenUploaded,
		UploadConfirmed:    false,
		UploadedBy:         uploadedBy,
		UploadedAt:         time.Now(),
	}, nil
}

// ConfirmUpload marks the document's bytes as verified in storage. The
// upload timestamp is reset to the confirmation time, since that is when
// the document actually came into existence.
func (d *CaseDocument) ConfirmUpload() {
	d.UploadConfirmed = true
	d.UploadedAt = time.Now()
	d.UpdatedAt = time.Now()
}

// SatisfiesGateFor reports whether this document counts toward the gate
// of the given status. Unconfirmed registrations never satisfy a gate:
// a presigned upload slot is not evidence until the bytes are verified.
func (d *CaseDocument) SatisfiesGateFor(status CaseStatus) bool {
	return d.UploadConfirmed && d.StatusWhenUploaded == status
}
