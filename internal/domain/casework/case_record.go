package casework

import (
	"strings"
	"time"

	"github.com/funeralworks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxPolicyNumbers is the number of policy slots carried on a case
const MaxPolicyNumbers = 5

// CaseRecord represents a funeral-service case aggregate root.
// Its Status and ProgressPercentage move together: the percentage is
// always the catalog percentage of the current status, never set
// independently.
type CaseRecord struct {
	shared.BaseAggregateRoot
	RecordNumber       string
	FullName           string
	Address            string
	IDNumber           string
	DateOfDeath        *time.Time
	TimeOfDeath        string
	FuneralDate        *time.Time
	FuneralLocation    string
	PolicyNumbers      []string `gorm:"serializer:json"`
	AmountCovered      decimal.Decimal
	AmountPaid         decimal.Decimal
	ReceiptNumber      string
	InvoiceNumber      string
	NextOfKin          string
	CellNumber         string
	EmailAddress       string
	Status             CaseStatus
	ProgressPercentage int
	CreatedBy          *uuid.UUID `gorm:"type:uuid"`
	AssignedTo         *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the database table name
func (CaseRecord) TableName() string {
	return "case_records"
}

// NewCaseRecord creates a new case in the initial workflow status
func NewCaseRecord(recordNumber, fullName string, createdBy *uuid.UUID) (*CaseRecord, error) {
	if recordNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECORD_NUMBER", "Record number cannot be empty")
	}
	if len(recordNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_RECORD_NUMBER", "Record number cannot exceed 50 characters")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}

	initial, err := DefinitionFor(StatusRecordCreated)
	if err != nil {
		return nil, err
	}

	return &CaseRecord{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		RecordNumber:       recordNumber,
		FullName:           fullName,
		AmountCovered:      decimal.Zero,
		AmountPaid:         decimal.Zero,
		Status:             initial.Status,
		ProgressPercentage: initial.Percentage,
		CreatedBy:          createdBy,
	}, nil
}

// ApplyStatus moves the case to the given status definition, keeping the
// progress percentage in lockstep. Validation of the transition (document
// gate, known status) happens before this is called; ApplyStatus itself
// accepts any catalog definition, including the current one.
func (r *CaseRecord) ApplyStatus(def StatusDefinition) {
	r.Status = def.Status
	r.ProgressPercentage = def.Percentage
	r.UpdatedAt = time.Now()
}

// SetDeceasedDetails updates the deceased and funeral information
func (r *CaseRecord) SetDeceasedDetails(address, idNumber, timeOfDeath, funeralLocation string, dateOfDeath, funeralDate *time.Time) {
	r.Address = address
	r.IDNumber = idNumber
	r.TimeOfDeath = timeOfDeath
	r.FuneralLocation = funeralLocation
	r.DateOfDeath = dateOfDeath
	r.FuneralDate = funeralDate
	r.UpdatedAt = time.Now()
}

// SetContactDetails updates the next-of-kin contact information
func (r *CaseRecord) SetContactDetails(nextOfKin, cellNumber, emailAddress string) {
	r.NextOfKin = nextOfKin
	r.CellNumber = cellNumber
	r.EmailAddress = emailAddress
	r.UpdatedAt = time.Now()
}

// SetPolicyNumbers replaces the policy numbers on the case
func (r *CaseRecord) SetPolicyNumbers(policies []string) error {
	if len(policies) > MaxPolicyNumbers {
		return shared.NewDomainError("INVALID_POLICIES", "A case cannot carry more than 5 policy numbers")
	}
	r.PolicyNumbers = policies
	r.UpdatedAt = time.Now()
	return nil
}

// SetPaymentDetails updates cover and payment amounts and references
func (r *CaseRecord) SetPaymentDetails(amountCovered, amountPaid decimal.Decimal, receiptNumber, invoiceNumber string) error {
	if amountCovered.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount covered cannot be negative")
	}
	if amountPaid.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot be negative")
	}
	r.AmountCovered = amountCovered
	r.AmountPaid = amountPaid
	r.ReceiptNumber = receiptNumber
	r.InvoiceNumber = invoiceNumber
	r.UpdatedAt = time.Now()
	return nil
}

// AssignTo assigns the case to a staff member
func (r *CaseRecord) AssignTo(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_ASSIGNEE", "Assignee ID cannot be empty")
	}
	r.AssignedTo = &userID
	r.UpdatedAt = time.Now()
	return nil
}

// IsTerminal returns true if the case is in a terminal workflow status
func (r *CaseRecord) IsTerminal() bool {
	return r.Status.IsTerminal()
}

// IsPaymentAtRisk returns true if the case is in a reminder or breach status
func (r *CaseRecord) IsPaymentAtRisk() bool {
	return r.Status.IsPaymentAtRisk()
}

// OutstandingAmount returns the portion of the covered amount not yet paid
func (r *CaseRecord) OutstandingAmount() decimal.Decimal {
	out := r.AmountCovered.Sub(r.AmountPaid)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}
