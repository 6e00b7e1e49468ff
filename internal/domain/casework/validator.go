package casework

import (
	"context"
	"fmt"

	"github.com/funeralworks/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentLedger answers whether a case has at least one document whose
// captured status matches the given status. Implemented by the document
// repository; mocked in tests.
type DocumentLedger interface {
	HasDocumentFor(ctx context.Context, caseID uuid.UUID, status CaseStatus) (bool, error)
}

// TransitionValidator decides whether a requested transition is
// permitted. The validator is a pure guard on evidence: it enforces no
// ordering between statuses, so any status may be requested from any
// other (including the current one) as long as the target's document gate
// is satisfied. The business process relies on this for corrections and
// manual overrides.
type TransitionValidator struct{}

// NewTransitionValidator creates a TransitionValidator
func NewTransitionValidator() *TransitionValidator {
	return &TransitionValidator{}
}

// Validate checks the requested transition for the given case. It returns
// the target's definition on success so callers do not need a second
// catalog lookup.
func (v *TransitionValidator) Validate(ctx context.Context, record *CaseRecord, target CaseStatus, ledger DocumentLedger) (StatusDefinition, error) {
	def, err := DefinitionFor(target)
	if err != nil {
		return StatusDefinition{}, err
	}

	if def.RequiresDocument {
		has, err := ledger.HasDocumentFor(ctx, record.ID, target)
		if err != nil {
			return StatusDefinition{}, err
		}
		if !has {
			return StatusDefinition{}, shared.NewDomainError("DOCUMENT_REQUIRED",
				fmt.Sprintf("A document must be uploaded before changing to %q", def.Label))
		}
	}

	return def, nil
}
