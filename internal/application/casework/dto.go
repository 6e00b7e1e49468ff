package casework

import (
	"time"

	"github.com/funeralworks/backend/internal/domain/casework"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCaseRequest is the application-level request to open a new case
type CreateCaseRequest struct {
	FullName        string
	Address         string
	IDNumber        string
	DateOfDeath     *time.Time
	TimeOfDeath     string
	FuneralDate     *time.Time
	FuneralLocation string
	PolicyNumbers   []string
	NextOfKin       string
	CellNumber      string
	EmailAddress    string
	AmountCovered   *decimal.Decimal
	CreatedBy       *uuid.UUID
}

// UpdateCaseRequest carries optional field updates for an existing case.
// Status is deliberately absent: status changes go through the workflow
// service only.
type UpdateCaseRequest struct {
	FullName        *string
	Address         *string
	IDNumber        *string
	DateOfDeath     *time.Time
	TimeOfDeath     *string
	FuneralDate     *time.Time
	FuneralLocation *string
	PolicyNumbers   []string
	NextOfKin       *string
	CellNumber      *string
	EmailAddress    *string
	AmountCovered   *decimal.Decimal
	AmountPaid      *decimal.Decimal
	ReceiptNumber   *string
	InvoiceNumber   *string
	AssignedTo      *uuid.UUID
}

// CaseResponse represents a case record in service responses
type CaseResponse struct {
	ID                 uuid.UUID
	RecordNumber       string
	FullName           string
	Address            string
	IDNumber           string
	DateOfDeath        *time.Time
	TimeOfDeath        string
	FuneralDate        *time.Time
	FuneralLocation    string
	PolicyNumbers      []string
	AmountCovered      decimal.Decimal
	AmountPaid         decimal.Decimal
	OutstandingAmount  decimal.Decimal
	ReceiptNumber      string
	InvoiceNumber      string
	NextOfKin          string
	CellNumber         string
	EmailAddress       string
	Status             casework.CaseStatus
	StatusLabel        string
	ProgressPercentage int
	IsTerminal         bool
	IsPaymentAtRisk    bool
	CreatedBy          *uuid.UUID
	AssignedTo         *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int
}

// ToCaseResponse maps a case aggregate to its response representation
func ToCaseResponse(record *casework.CaseRecord) CaseResponse {
	return CaseResponse{
		ID:                 record.ID,
		RecordNumber:       record.RecordNumber,
		FullName:           record.FullName,
		Address:            record.Address,
		IDNumber:           record.IDNumber,
		DateOfDeath:        record.DateOfDeath,
		TimeOfDeath:        record.TimeOfDeath,
		FuneralDate:        record.FuneralDate,
		FuneralLocation:    record.FuneralLocation,
		PolicyNumbers:      record.PolicyNumbers,
		AmountCovered:      record.AmountCovered,
		AmountPaid:         record.AmountPaid,
		OutstandingAmount:  record.OutstandingAmount(),
		ReceiptNumber:      record.ReceiptNumber,
		InvoiceNumber:      record.InvoiceNumber,
		NextOfKin:          record.NextOfKin,
		CellNumber:         record.CellNumber,
		EmailAddress:       record.EmailAddress,
		Status:             record.Status,
		StatusLabel:        record.Status.Label(),
		ProgressPercentage: record.ProgressPercentage,
		IsTerminal:         record.IsTerminal(),
		IsPaymentAtRisk:    record.IsPaymentAtRisk(),
		CreatedBy:          record.CreatedBy,
		AssignedTo:         record.AssignedTo,
		CreatedAt:          record.CreatedAt,
		UpdatedAt:          record.UpdatedAt,
		Version:            record.Version,
	}
}

// CaseListFilter carries list/pagination options for cases
type CaseListFilter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Status   *casework.CaseStatus
}

// TransitionRequest asks the workflow service to move a case to a new status
type TransitionRequest struct {
	TargetStatus casework.CaseStatus
	Actor        *uuid.UUID
	Note         string
}

// TransitionResult returns the updated case together with the audit entry
// produced by the transition
type TransitionResult struct {
	Case    CaseResponse
	History HistoryEntryResponse
}

// HistoryEntryResponse represents one audit trail entry
type HistoryEntryResponse struct {
	ID            uuid.UUID
	CaseID        uuid.UUID
	OldStatus     casework.CaseStatus
	NewStatus     casework.CaseStatus
	OldLabel      string
	NewLabel      string
	OldPercentage int
	NewPercentage int
	ChangedBy     *uuid.UUID
	Notes         string
	ChangedAt     time.Time
}

// ToHistoryEntryResponse maps an audit entry to its response representation
func ToHistoryEntryResponse(entry *casework.StatusHistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:            entry.ID,
		CaseID:        entry.CaseID,
		OldStatus:     entry.OldStatus,
		NewStatus:     entry.NewStatus,
		OldLabel:      entry.OldStatus.Label(),
		NewLabel:      entry.NewStatus.Label(),
		OldPercentage: entry.OldPercentage,
		NewPercentage: entry.NewPercentage,
		ChangedBy:     entry.ChangedBy,
		Notes:         entry.Notes,
		ChangedAt:     entry.ChangedAt,
	}
}

// RecordAttachmentRequest carries metadata for a stored document
type RecordAttachmentRequest struct {
	DocumentName string
	DocumentType string
	FileSize     int64
	ContentType  string
	UploadedBy   *uuid.UUID
}

// DocumentResponse represents a document attachment in service responses
type DocumentResponse struct {
	ID                 uuid.UUID
	CaseID             uuid.UUID
	DocumentName       string
	DocumentType       string
	StorageKey         string
	FileSize           int64
	ContentType        string
	StatusWhenUploaded casework.CaseStatus
	StatusLabel        string
	UploadConfirmed    bool
	UploadedBy         *uuid.UUID
	UploadedAt         time.Time
}

// ToDocumentResponse maps a document to its response representation
func ToDocumentResponse(doc *casework.CaseDocument) DocumentResponse {
	return DocumentResponse{
		ID:                 doc.ID,
		CaseID:             doc.CaseID,
		DocumentName:       doc.DocumentName,
		DocumentType:       doc.DocumentType,
		StorageKey:         doc.StorageKey,
		FileSize:           doc.FileSize,
		ContentType:        doc.ContentType,
		StatusWhenUploaded: doc.StatusWhenUploaded,
		StatusLabel:        doc.StatusWhenUploaded.Label(),
		UploadConfirmed:    doc.UploadConfirmed,
		UploadedBy:         doc.UploadedBy,
		UploadedAt:         doc.UploadedAt,
	}
}

// StatusDefinitionResponse represents one catalog entry
type StatusDefinitionResponse struct {
	Status           casework.CaseStatus
	Label            string
	Percentage       int
	Color            string
	RequiresDocument bool
	IsTerminal       bool
	IsPaymentAtRisk  bool
}

// CatalogResponse returns the full status catalog in canonical order
func CatalogResponse() []StatusDefinitionResponse {
	all := casework.AllStatuses()
	out := make([]StatusDefinitionResponse, 0, len(all))
	for _, def := range all {
		out = append(out, StatusDefinitionResponse{
			Status:           def.Status,
			Label:            def.Label,
			Percentage:       def.Percentage,
			Color:            def.Color,
			RequiresDocument: def.RequiresDocument,
			IsTerminal:       def.Status.IsTerminal(),
			IsPaymentAtRisk:  def.Status.IsPaymentAtRisk(),
		})
	}
	return out
}
