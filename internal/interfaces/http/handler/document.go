package handler

import (
	"time"

	caseworkapp "github.com/funeralworks/backend/internal/application/casework"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentHandler handles case document API endpoints
type DocumentHandler struct {
	BaseHandler
	documentService *caseworkapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *caseworkapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// RecordAttachmentRequest represents a request to attach a document to a case
type RecordAttachmentRequest struct {
	DocumentName string `json:"document_name" binding:"required,min=1,max=255"`
	DocumentType string `json:"document_type" binding:"max=100"`
	FileSize     int64  `json:"file_size" binding:"required,gt=0"`
	ContentType  string `json:"content_type" binding:"max=100"`
}

// DocumentResponse represents a document attachment in API responses
type DocumentResponse struct {
	ID                 string    `json:"id"`
	CaseID             string    `json:"case_id"`
	DocumentName       string    `json:"document_name"`
	DocumentType       string    `json:"document_type,omitempty"`
	StorageKey         string    `json:"storage_key"`
	FileSize           int64     `json:"file_size"`
	ContentType        string    `json:"content_type,omitempty"`
	StatusWhenUploaded string    `json:"status_when_uploaded"`
	StatusLabel        string    `json:"status_label"`
	UploadConfirmed    bool      `json:"upload_confirmed"`
	UploadedBy         *string   `json:"uploaded_by,omitempty"`
	UploadedAt         time.Time `json:"uploaded_at"`
}

// UploadGrantResponse returns the registered document plus a presigned
// URL the client uploads the file bytes to
type UploadGrantResponse struct {
	Document  DocumentResponse `json:"document"`
	UploadURL string           `json:"upload_url"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// DownloadURLResponse returns a presigned download URL for a document
type DownloadURLResponse struct {
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Create handles POST /cases/:id/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid case ID format")
		return
	}

	var req RecordAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	grant, err := h.documentService.RecordAttachment(c.Request.Context(), caseID, caseworkapp.RecordAttachmentRequest{
		DocumentName: req.DocumentName,
		DocumentType: req.DocumentType,
		FileSize:     req.FileSize,
		ContentType:  req.ContentType,
		UploadedBy:   actor,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, UploadGrantResponse{
		Document:  toDocumentResponse(&grant.Document),
		UploadURL: grant.UploadURL,
		ExpiresAt: grant.ExpiresAt,
	})
}

// Confirm handles POST /cases/:id/documents/:doc_id/confirm. The upload
// collaborator calls this after the bytes are durably stored; only then
// does the document count toward the document gate.
func (h *DocumentHandler) Confirm(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("doc_id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	doc, err := h.documentService.ConfirmAttachment(c.Request.Context(), docID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toDocumentResponse(doc))
}

// List handles GET /cases/:id/documents
func (h *DocumentHandler) List(c *gin.Context) {
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid case ID format")
		return
	}

	docs, err := h.documentService.List(c.Request.Context(), caseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		responses = append(responses, toDocumentResponse(&docs[i]))
	}
	h.Success(c, responses)
}

// GetDownloadURL handles GET /cases/:id/documents/:doc_id/download
func (h *DocumentHandler) GetDownloadURL(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("doc_id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	url, expiresAt, err := h.documentService.GetDownloadURL(c.Request.Context(), docID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, DownloadURLResponse{
		DownloadURL: url,
		ExpiresAt:   expiresAt,
	})
}

// Delete handles DELETE /cases/:id/documents/:doc_id
func (h *DocumentHandler) Delete(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("doc_id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	if err := h.documentService.RemoveAttachment(c.Request.Context(), docID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

func toDocumentResponse(doc *caseworkapp.DocumentResponse) DocumentResponse {
	return DocumentResponse{
		ID:                 doc.ID.String(),
		CaseID:             doc.CaseID.String(),
		DocumentName:       doc.DocumentName,
		DocumentType:       doc.DocumentType,
		StorageKey:         doc.StorageKey,
		FileSize:           doc.FileSize,
		ContentType:        doc.ContentType,
		StatusWhenUploaded: string(doc.StatusWhenUploaded),
		StatusLabel:        doc.StatusLabel,
		UploadConfirmed:    doc.UploadConfirmed,
		UploadedBy:         toUUIDStringPtr(doc.UploadedBy),
		UploadedAt:         doc.UploadedAt,
	}
}
