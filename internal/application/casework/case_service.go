package casework

import (
	"context"
	"errors"

	"github.com/funeralworks/backend/internal/domain/casework"
	"github.com/funeralworks/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CaseService handles case record CRUD operations. Status changes are
// not part of this service; they go through WorkflowService.
type CaseService struct {
	caseRepo casework.CaseRecordRepository
}

// NewCaseService creates a new CaseService
func NewCaseService(caseRepo casework.CaseRecordRepository) *CaseService {
	return &CaseService{caseRepo: caseRepo}
}

// Create opens a new case in the initial workflow status
func (s *CaseService) Create(ctx context.Context, req CreateCaseRequest) (*CaseResponse, error) {
	recordNumber, err := s.caseRepo.GenerateRecordNumber(ctx)
	if err != nil {
		return nil, err
	}

	record, err := casework.NewCaseRecord(recordNumber, req.FullName, req.CreatedBy)
	if err != nil {
		return nil, err
	}

	record.SetDeceasedDetails(req.Address, req.IDNumber, req.TimeOfDeath, req.FuneralLocation, req.DateOfDeath, req.FuneralDate)
	record.SetContactDetails(req.NextOfKin, req.CellNumber, req.EmailAddress)

	if len(req.PolicyNumbers) > 0 {
		if err := record.SetPolicyNumbers(req.PolicyNumbers); err != nil {
			return nil, err
		}
	}
	if req.AmountCovered != nil {
		if err := record.SetPaymentDetails(*req.AmountCovered, record.AmountPaid, "", ""); err != nil {
			return nil, err
		}
	}

	if err := s.caseRepo.Save(ctx, record); err != nil {
		var domainErr *shared.DomainError
		if !errors.As(err, &domainErr) || domainErr.Code != "ALREADY_EXISTS" {
			return nil, err
		}
		// Another creator claimed the same generated number; take a
		// fresh one and retry once
		recordNumber, err = s.caseRepo.GenerateRecordNumber(ctx)
		if err != nil {
			return nil, err
		}
		record.RecordNumber = recordNumber
		if err := s.caseRepo.Save(ctx, record); err != nil {
			return nil, err
		}
	}

	response := ToCaseResponse(record)
	return &response, nil
}

// GetByID retrieves a case by its ID
func (s *CaseService) GetByID(ctx context.Context, id uuid.UUID) (*CaseResponse, error) {
	record, err := s.caseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCaseResponse(record)
	return &response, nil
}

// GetByRecordNumber retrieves a case by its human-facing record number
func (s *CaseService) GetByRecordNumber(ctx context.Context, recordNumber string) (*CaseResponse, error) {
	record, err := s.caseRepo.FindByRecordNumber(ctx, recordNumber)
	if err != nil {
		return nil, err
	}
	response := ToCaseResponse(record)
	return &response, nil
}

// List retrieves cases with filtering and pagination
func (s *CaseService) List(ctx context.Context, filter CaseListFilter) ([]CaseResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}

	records, err := s.caseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.caseRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CaseResponse, 0, len(records))
	for i := range records {
		responses = append(responses, ToCaseResponse(&records[i]))
	}
	return responses, total, nil
}

// Update applies field updates to an existing case
func (s *CaseService) Update(ctx context.Context, id uuid.UUID, req UpdateCaseRequest) (*CaseResponse, error) {
	record, err := s.caseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fullName := record.FullName
	if req.FullName != nil {
		fullName = *req.FullName
	}
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}
	record.FullName = fullName

	address := record.Address
	if req.Address != nil {
		address = *req.Address
	}
	idNumber := record.IDNumber
	if req.IDNumber != nil {
		idNumber = *req.IDNumber
	}
	timeOfDeath := record.TimeOfDeath
	if req.TimeOfDeath != nil {
		timeOfDeath = *req.TimeOfDeath
	}
	funeralLocation := record.FuneralLocation
	if req.FuneralLocation != nil {
		funeralLocation = *req.FuneralLocation
	}
	dateOfDeath := record.DateOfDeath
	if req.DateOfDeath != nil {
		dateOfDeath = req.DateOfDeath
	}
	funeralDate := record.FuneralDate
	if req.FuneralDate != nil {
		funeralDate = req.FuneralDate
	}
	record.SetDeceasedDetails(address, idNumber, timeOfDeath, funeralLocation, dateOfDeath, funeralDate)

	nextOfKin := record.NextOfKin
	if req.NextOfKin != nil {
		nextOfKin = *req.NextOfKin
	}
	cellNumber := record.CellNumber
	if req.CellNumber != nil {
		cellNumber = *req.CellNumber
	}
	emailAddress := record.EmailAddress
	if req.EmailAddress != nil {
		emailAddress = *req.EmailAddress
	}
	record.SetContactDetails(nextOfKin, cellNumber, emailAddress)

	if req.PolicyNumbers != nil {
		if err := record.SetPolicyNumbers(req.PolicyNumbers); err != nil {
			return nil, err
		}
	}

	amountCovered := record.AmountCovered
	if req.AmountCovered != nil {
		amountCovered = *req.AmountCovered
	}
	amountPaid := record.AmountPaid
	if req.AmountPaid != nil {
		amountPaid = *req.AmountPaid
	}
	receiptNumber := record.ReceiptNumber
	if req.ReceiptNumber != nil {
		receiptNumber = *req.ReceiptNumber
	}
	invoiceNumber := record.InvoiceNumber
	if req.InvoiceNumber != nil {
		invoiceNumber = *req.InvoiceNumber
	}
	if err := record.SetPaymentDetails(amountCovered, amountPaid, receiptNumber, invoiceNumber); err != nil {
		return nil, err
	}

	if req.AssignedTo != nil {
		if err := record.AssignTo(*req.AssignedTo); err != nil {
			return nil, err
		}
	}

	if err := s.caseRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	response := ToCaseResponse(record)
	return &response, nil
}
