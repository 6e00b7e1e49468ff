package casework

import (
	"fmt"

	"github.com/funeralworks/backend/internal/domain/shared"
)

// CaseStatus represents one stage in a case's business lifecycle
type CaseStatus string

const (
	StatusRecordCreated      CaseStatus = "record_created"
	StatusFuneralArrangement CaseStatus = "funeral_arrangement"
	StatusDocumentsSentHA    CaseStatus = "documents_sent_home_affairs"
	StatusQuotationAccepted  CaseStatus = "quotation_accepted"
	StatusPaymentMade        CaseStatus = "payment_made"
	StatusPaymentArrangement CaseStatus = "payment_arrangement"
	StatusPaymentReminder1   CaseStatus = "payment_reminder_1"
	StatusPaymentReminder2   CaseStatus = "payment_reminder_2"
	StatusFinalReminder      CaseStatus = "payment_reminder_final"
	StatusAgreementBreached  CaseStatus = "agreement_breached"
	StatusFuneralCompleted   CaseStatus = "funeral_completed"
)

// StatusDefinition describes a workflow status: its display label, the
// completion percentage a case carries while in it, the badge color used
// for rendering, and whether entering it requires a supporting document.
type StatusDefinition struct {
	Status           CaseStatus
	Label            string
	Percentage       int
	Color            string
	RequiresDocument bool
}

// statusCatalog is the fixed workflow catalog in canonical display order.
// Two statuses may share a percentage (the final reminder and a breached
// agreement both sit at 70%), so the order here is authoritative and is
// not derivable from percentages.
var statusCatalog = []StatusDefinition{
	{StatusRecordCreated, "Record Created", 1, "gray", false},
	{StatusFuneralArrangement, "Funeral Arrangement", 10, "blue", true},
	{StatusDocumentsSentHA, "Documents Sent to Home Affairs", 15, "indigo", true},
	{StatusQuotationAccepted, "Quotation Accepted", 20, "purple", true},
	{StatusPaymentMade, "Payment Made", 30, "green", true},
	{StatusPaymentArrangement, "Payment Arrangement", 40, "yellow", true},
	{StatusPaymentReminder1, "Payment Reminder 1", 50, "orange", false},
	{StatusPaymentReminder2, "Payment Reminder 2", 60, "red", false},
	{StatusFinalReminder, "Final Payment Reminder", 70, "red", false},
	{StatusAgreementBreached, "Agreement Breached", 70, "darkred", false},
	{StatusFuneralCompleted, "Funeral Completed", 100, "green", false},
}

// statusIndex is built once at init for O(1) lookups.
var statusIndex = func() map[CaseStatus]StatusDefinition {
	idx := make(map[CaseStatus]StatusDefinition, len(statusCatalog))
	for _, def := range statusCatalog {
		idx[def.Status] = def
	}
	return idx
}()

// DefinitionFor looks up the definition for a status
func DefinitionFor(status CaseStatus) (StatusDefinition, error) {
	def, ok := statusIndex[status]
	if !ok {
		return StatusDefinition{}, shared.NewDomainError("UNKNOWN_STATUS",
			fmt.Sprintf("Status %q is not part of the workflow", string(status)))
	}
	return def, nil
}

// AllStatuses returns every status definition in canonical workflow order
func AllStatuses() []StatusDefinition {
	out := make([]StatusDefinition, len(statusCatalog))
	copy(out, statusCatalog)
	return out
}

// IsValid checks if the status is part of the workflow catalog
func (s CaseStatus) IsValid() bool {
	_, ok := statusIndex[s]
	return ok
}

// String returns the string representation of the status
func (s CaseStatus) String() string {
	return string(s)
}

// Label returns the display label for the status, or the raw identifier
// if the status is unknown
func (s CaseStatus) Label() string {
	if def, ok := statusIndex[s]; ok {
		return def.Label
	}
	return string(s)
}

// RequiresDocument reports whether entering this status requires a
// supporting document captured against it
func (s CaseStatus) RequiresDocument() bool {
	def, ok := statusIndex[s]
	return ok && def.RequiresDocument
}

// IsTerminal returns true for statuses that end the workflow: a completed
// funeral or a breached payment agreement
func (s CaseStatus) IsTerminal() bool {
	return s == StatusFuneralCompleted || s == StatusAgreementBreached
}

// IsPaymentAtRisk returns true for reminder and breach statuses, used by
// reporting collaborators to flag cases needing payment follow-up
func (s CaseStatus) IsPaymentAtRisk() bool {
	switch s {
	case StatusPaymentReminder1, StatusPaymentReminder2, StatusFinalReminder, StatusAgreementBreached:
		return true
	}
	return false
}
