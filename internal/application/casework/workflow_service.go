package casework

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/funeralworks/backend/internal/domain/casework"
	"github.com/funeralworks/backend/internal/infrastructure/logger"
)

// WorkflowService orchestrates status transitions. It is the single
// mutation entry point for a case's status: validate against the catalog
// and the document ledger, derive the new percentage, and persist the
// updated record together with its audit entry in one transaction.
// The service holds no state between calls.
type WorkflowService struct {
	caseRepo     casework.CaseRecordRepository
	documentRepo casework.CaseDocumentRepository
	historyRepo  casework.StatusHistoryRepository
	validator    *casework.TransitionValidator
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(
	caseRepo casework.CaseRecordRepository,
	documentRepo casework.CaseDocumentRepository,
	historyRepo casework.StatusHistoryRepository,
) *WorkflowService {
	return &WorkflowService{
		caseRepo:     caseRepo,
		documentRepo: documentRepo,
		historyRepo:  historyRepo,
		validator:    casework.NewTransitionValidator(),
	}
}

// RequestTransition moves a case to the requested status. On any
// validation failure the case is left untouched and no history entry is
// written. A lost optimistic-lock race surfaces as CONCURRENT_MODIFICATION;
// the caller refetches the case and retries.
func (s *WorkflowService) RequestTransition(ctx context.Context, caseID uuid.UUID, req TransitionRequest) (*TransitionResult, error) {
	record, err := s.caseRepo.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	oldDef, err := casework.DefinitionFor(record.Status)
	if err != nil {
		return nil, err
	}

	targetDef, err := s.validator.Validate(ctx, record, req.TargetStatus, s.documentRepo)
	if err != nil {
		return nil, err
	}

	entry, err := casework.NewStatusHistoryEntry(record.ID, oldDef, targetDef, req.Actor, req.Note)
	if err != nil {
		return nil, err
	}

	record.ApplyStatus(targetDef)

	if err := s.caseRepo.SaveWithHistory(ctx, record, entry); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("case status transitioned",
		zap.String("case_id", caseID.String()),
		zap.String("old_status", string(oldDef.Status)),
		zap.String("new_status", string(targetDef.Status)),
	)

	return &TransitionResult{
		Case:    ToCaseResponse(record),
		History: ToHistoryEntryResponse(entry),
	}, nil
}

// History returns the full audit trail for a case, oldest first
func (s *WorkflowService) History(ctx context.Context, caseID uuid.UUID) ([]HistoryEntryResponse, error) {
	if _, err := s.caseRepo.FindByID(ctx, caseID); err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.FindByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	responses := make([]HistoryEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToHistoryEntryResponse(&entries[i]))
	}
	return responses, nil
}
