package handler

import (
	"time"

	caseworkapp "github.com/funeralworks/backend/internal/application/casework"
	"github.com/funeralworks/backend/internal/domain/casework"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CaseHandler handles case record API endpoints
type CaseHandler struct {
	BaseHandler
	caseService     *caseworkapp.CaseService
	workflowService *caseworkapp.WorkflowService
}

// NewCaseHandler creates a new CaseHandler
func NewCaseHandler(caseService *caseworkapp.CaseService, workflowService *caseworkapp.WorkflowService) *CaseHandler {
	return &CaseHandler{
		caseService:     caseService,
		workflowService: workflowService,
	}
}

// CreateCaseRequest represents a request to open a new case
type CreateCaseRequest struct {
	FullName        string     `json:"full_name" binding:"required,min=1,max=255"`
	Address         string     `json:"address" binding:"max=500"`
	IDNumber        string     `json:"id_number" binding:"max=50"`
	DateOfDeath     *time.Time `json:"date_of_death"`
	TimeOfDeath     string     `json:"time_of_death" binding:"max=20"`
	FuneralDate     *time.Time `json:"funeral_date"`
	FuneralLocation string     `json:"funeral_location" binding:"max=255"`
	PolicyNumbers   []string   `json:"policy_numbers" binding:"max=5"`
	NextOfKin       string     `json:"next_of_kin" binding:"max=255"`
	CellNumber      string     `json:"cell_number" binding:"max=50"`
	EmailAddress    string     `json:"email_address" binding:"omitempty,email"`
	AmountCovered   *float64   `json:"amount_covered" binding:"omitempty,gte=0"`
}

// UpdateCaseRequest represents a partial update to an existing case.
// Status is absent on purpose: status changes go through the transition
// endpoint only.
type UpdateCaseRequest struct {
	FullName        *string    `json:"full_name" binding:"omitempty,min=1,max=255"`
	Address         *string    `json:"address" binding:"omitempty,max=500"`
	IDNumber        *string    `json:"id_number" binding:"omitempty,max=50"`
	DateOfDeath     *time.Time `json:"date_of_death"`
	TimeOfDeath     *string    `json:"time_of_death" binding:"omitempty,max=20"`
	FuneralDate     *time.Time `json:"funeral_date"`
	FuneralLocation *string    `json:"funeral_location" binding:"omitempty,max=255"`
	PolicyNumbers   []string   `json:"policy_numbers" binding:"omitempty,max=5"`
	NextOfKin       *string    `json:"next_of_kin" binding:"omitempty,max=255"`
	CellNumber      *string    `json:"cell_number" binding:"omitempty,max=50"`
	EmailAddress    *string    `json:"email_address" binding:"omitempty,email"`
	AmountCovered   *float64   `json:"amount_covered" binding:"omitempty,gte=0"`
	AmountPaid      *float64   `json:"amount_paid" binding:"omitempty,gte=0"`
	ReceiptNumber   *string    `json:"receipt_number" binding:"omitempty,max=100"`
	InvoiceNumber   *string    `json:"invoice_number" binding:"omitempty,max=100"`
	AssignedTo      *string    `json:"assigned_to" binding:"omitempty,uuid"`
}

// TransitionCaseRequest asks to move a case to a new workflow status
type TransitionCaseRequest struct {
	Status string `json:"status" binding:"required,min=1,max=50"`
	Note   string `json:"note" binding:"max=1000"`
}

// CaseResponse represents a case record in API responses
type CaseResponse struct {
	ID                 string     `json:"id"`
	RecordNumber       string     `json:"record_number"`
	FullName           string     `json:"full_name"`
	Address            string     `json:"address,omitempty"`
	IDNumber           string     `json:"id_number,omitempty"`
	DateOfDeath        *time.Time `json:"date_of_death,omitempty"`
	TimeOfDeath        string     `json:"time_of_death,omitempty"`
	FuneralDate        *time.Time `json:"funeral_date,omitempty"`
	FuneralLocation    string     `json:"funeral_location,omitempty"`
	PolicyNumbers      []string   `json:"policy_numbers,omitempty"`
	AmountCovered      float64    `json:"amount_covered"`
	AmountPaid         float64    `json:"amount_paid"`
	OutstandingAmount  float64    `json:"outstanding_amount"`
	ReceiptNumber      string     `json:"receipt_number,omitempty"`
	InvoiceNumber      string     `json:"invoice_number,omitempty"`
	NextOfKin          string     `json:"next_of_kin,omitempty"`
	CellNumber         string     `json:"cell_number,omitempty"`
	EmailAddress       string     `json:"email_address,omitempty"`
	Status             string     `json:"status"`
	StatusLabel        string     `json:"status_label"`
	ProgressPercentage int        `json:"progress_percentage"`
	IsTerminal         bool       `json:"is_terminal"`
	IsPaymentAtRisk    bool       `json:"is_payment_at_risk"`
	CreatedBy          *string    `json:"created_by,omitempty"`
	AssignedTo         *string    `json:"assigned_to,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	Version            int        `json:"version"`
}

// HistoryEntryResponse represents one audit trail entry in API responses
type HistoryEntryResponse struct {
	ID            string    `json:"id"`
	CaseID        string    `json:"case_id"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	OldLabel      string    `json:"old_label"`
	NewLabel      string    `json:"new_label"`
	OldPercentage int       `json:"old_percentage"`
	NewPercentage int       `json:"new_percentage"`
	ChangedBy     *string   `json:"changed_by,omitempty"`
	Notes         string    `json:"notes"`
	ChangedAt     time.Time `json:"changed_at"`
}

// TransitionResponse returns the updated case and the audit entry the
// transition produced
type TransitionResponse struct {
	Case    CaseResponse         `json:"case"`
	History HistoryEntryResponse `json:"history"`
}

// Create handles POST /cases
func (h *CaseHandler) Create(c *gin.Context) {
	var req CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := caseworkapp.CreateCaseRequest{
		FullName:        req.FullName,
		Address:         req.Address,
		IDNumber:        req.IDNumber,
		DateOfDeath:     req.DateOfDeath,
		TimeOfDeath:     req.TimeOfDeath,
		FuneralDate:     req.FuneralDate,
		FuneralLocation: req.FuneralLocation,
		PolicyNumbers:   req.PolicyNumbers,
		NextOfKin:       req.NextOfKin,
		CellNumber:      req.CellNumber,
		EmailAddress:    req.EmailAddress,
		CreatedBy:       actor,
	}
	if req.AmountCovered != nil {
		appReq.AmountCovered = toDecimalPtr(*req.AmountCovered)
	}

	record, err := h.caseService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toCaseResponse(record))
}

// GetByID handles GET /cases/:id
func (h *CaseHandler) GetByID(c *gin.Context) {
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid case ID format")
		return
	}

	record, err := h.caseService.GetByID(c.Request.Context(), caseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCaseResponse(record))
}

// GetByRecordNumber handles GET /cases/number/:record_number
func (h *CaseHandler) GetByRecordNumber(c *gin.Context) {
	recordNumber := c.Param("record_number")
	if recordNumber == "" {
		h.BadRequest(c, "Record number is required")
		return
	}

	record, err := h.caseService.GetByRecordNumber(c.Request.Context(), recordNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCaseResponse(record))
}

// caseListQuery carries list/pagination query parameters for cases
type caseListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
	Status   string `form:"status"`
}

// List handles GET /cases
func (h *CaseHandler) List(c *gin.Context) {
	var query caseListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := caseworkapp.CaseListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
		Search:   query.Search,
	}
	if query.Status != "" {
		status := casework.CaseStatus(query.Status)
		if _, err := casework.DefinitionFor(status); err != nil {
			h.HandleDomainError(c, err)
			return
		}
		filter.Status = &status
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	records, total, err := h.caseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]CaseResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toCaseResponse(&records[i]))
	}
	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// Update handles PUT /cases/:id
func (h *CaseHandler) Update(c *gin.Context) {
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid case ID format")
		return
	}

	var req UpdateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := caseworkapp.UpdateCaseRequest{
		FullName:        req.FullName,
		Address:         req.Address,
		IDNumber:        req.IDNumber,
		DateOfDeath:     req.DateOfDeath,
		TimeOfDeath:     req.TimeOfDeath,
		FuneralDate:     req.FuneralDate,
		FuneralLocation: req.FuneralLocation,
		PolicyNumbers:   req.PolicyNumbers,
		NextOfKin:       req.NextOfKin,
		CellNumber:      req.CellNumber,
		EmailAddress:    req.EmailAddress,
		ReceiptNumber:   req.ReceiptNumber,
		InvoiceNumber:   req.InvoiceNumber,
	}
	if req.AmountCovered != nil {
		appReq.AmountCovered = toDecimalPtr(*req.AmountCovered)
	}
	if req.AmountPaid != nil {
		appReq.AmountPaid = toDecimalPtr(*req.AmountPaid)
	}
	if req.AssignedTo != nil {
		assignedTo, err := uuid.Parse(*req.AssignedTo)
		if err != nil {
			h.BadRequest(c, "Invalid assigned_to format")
			return
		}
		appReq.AssignedTo = &assignedTo
	}

	record, err := h.caseService.Update(c.Request.Context(), caseID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCaseResponse(record))
}

// Transition handles POST /cases/:id/status
func (h *CaseHandler) Transition(c *gin.Context) {
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid case ID format")
		return
	}

	var req TransitionCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.workflowService.RequestTransition(c.Request.Context(), caseID, caseworkapp.TransitionRequest{
		TargetStatus: casework.CaseStatus(req.Status),
		Actor:        actor,
		Note:         req.Note,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, TransitionResponse{
		Case:    toCaseResponse(&result.Case),
		History: toHistoryEntryResponse(&result.History),
	})
}

// History handles GET /cases/:id/history
func (h *CaseHandler) History(c *gin.Context) {
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid case ID format")
		return
	}

	entries, err := h.workflowService.History(c.Request.Context(), caseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]HistoryEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, toHistoryEntryResponse(&entries[i]))
	}
	h.Success(c, responses)
}

func toCaseResponse(record *caseworkapp.CaseResponse) CaseResponse {
	return CaseResponse{
		ID:                 record.ID.String(),
		RecordNumber:       record.RecordNumber,
		FullName:           record.FullName,
		Address:            record.Address,
		IDNumber:           record.IDNumber,
		DateOfDeath:        record.DateOfDeath,
		TimeOfDeath:        record.TimeOfDeath,
		FuneralDate:        record.FuneralDate,
		FuneralLocation:    record.FuneralLocation,
		PolicyNumbers:      record.PolicyNumbers,
		AmountCovered:      record.AmountCovered.InexactFloat64(),
		AmountPaid:         record.AmountPaid.InexactFloat64(),
		OutstandingAmount:  record.OutstandingAmount.InexactFloat64(),
		ReceiptNumber:      record.ReceiptNumber,
		InvoiceNumber:      record.InvoiceNumber,
		NextOfKin:          record.NextOfKin,
		CellNumber:         record.CellNumber,
		EmailAddress:       record.EmailAddress,
		Status:             string(record.Status),
		StatusLabel:        record.StatusLabel,
		ProgressPercentage: record.ProgressPercentage,
		IsTerminal:         record.IsTerminal,
		IsPaymentAtRisk:    record.IsPaymentAtRisk,
		CreatedBy:          toUUIDStringPtr(record.CreatedBy),
		AssignedTo:         toUUIDStringPtr(record.AssignedTo),
		CreatedAt:          record.CreatedAt,
		UpdatedAt:          record.UpdatedAt,
		Version:            record.Version,
	}
}

func toHistoryEntryResponse(entry *caseworkapp.HistoryEntryResponse) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:            entry.ID.String(),
		CaseID:        entry.CaseID.String(),
		OldStatus:     string(entry.OldStatus),
		NewStatus:     string(entry.NewStatus),
		OldLabel:      entry.OldLabel,
		NewLabel:      entry.NewLabel,
		OldPercentage: entry.OldPercentage,
		NewPercentage: entry.NewPercentage,
		ChangedBy:     toUUIDStringPtr(entry.ChangedBy),
		Notes:         entry.Notes,
		ChangedAt:     entry.ChangedAt,
	}
}
