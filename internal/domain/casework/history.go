package casework

import (
	"fmt"
	"time"

	"github.com/funeralworks/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StatusHistoryEntry is one immutable row of the case audit trail.
// Entries are append-only and never mutated or deleted; replaying a
// case's entries in order from the initial status reproduces its current
// status and percentage.
type StatusHistoryEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CaseID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Seq is assigned by the database on insert and breaks ordering ties
	// between entries sharing a changed_at timestamp
	Seq           int64 `gorm:"->;column:seq"`
	OldStatus     CaseStatus
	NewStatus     CaseStatus
	OldPercentage int
	NewPercentage int
	ChangedBy     *uuid.UUID `gorm:"type:uuid"`
	Notes         string
	ChangedAt     time.Time
}

// TableName returns the database table name
func (StatusHistoryEntry) TableName() string {
	return "case_status_history"
}

// NewStatusHistoryEntry builds the audit entry for one transition. When
// the caller supplies no note, a note of the form
// "Status changed from <old label> to <new label>" is generated.
func NewStatusHistoryEntry(caseID uuid.UUID, from, to StatusDefinition, changedBy *uuid.UUID, note string) (*StatusHistoryEntry, error) {
	if caseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CASE_ID", "Case ID cannot be empty")
	}
	if note == "" {
		note = fmt.Sprintf("Status changed from %s to %s", from.Label, to.Label)
	}

	return &StatusHistoryEntry{
		ID:            uuid.New(),
		CaseID:        caseID,
		OldStatus:     from.Status,
		NewStatus:     to.Status,
		OldPercentage: from.Percentage,
		NewPercentage: to.Percentage,
		ChangedBy:     changedBy,
		Notes:         note,
		ChangedAt:     time.Now(),
	}, nil
}

// ReplayHistory walks a case's ordered history entries from the initial
// status and returns the resulting status and percentage. It fails if the
// chain is broken, i.e. an entry's old status does not match the status
// produced by the previous entry. Used for audit verification.
func ReplayHistory(entries []StatusHistoryEntry) (CaseStatus, int, error) {
	current := StatusRecordCreated
	def, err := DefinitionFor(current)
	if err != nil {
		return "", 0, err
	}
	percentage := def.Percentage

	for i, e := range entries {
		if e.OldStatus != current {
			return "", 0, shared.NewDomainError("BROKEN_HISTORY",
				fmt.Sprintf("History entry %d starts from %s but the case was in %s", i, e.OldStatus, current))
		}
		target, err := DefinitionFor(e.NewStatus)
		if err != nil {
			return "", 0, err
		}
		current = target.Status
		percentage = target.Percentage
	}
	return current, percentage, nil
}
