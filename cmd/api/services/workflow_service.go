package services

import (
	"context"
	"errors"

	"dellerose/cmd/api/dto"
	"dellerose/contracts"
	"dellerose/repositories"
	"dellerose/workflow"
)

// WorkflowService lists workflows and moves aggregate snapshots in and out
// of the snapshot store.
type WorkflowService struct {
	briefRepo *repositories.BriefRepository
	snapshots *workflow.SnapshotStore
}

func NewWorkflowService(briefRepo *repositories.BriefRepository, snapshots *workflow.SnapshotStore) *WorkflowService {
	return &WorkflowService{briefRepo: briefRepo, snapshots: snapshots}
}

const workflowListLimit = 100

// List returns the caller's workflows, newest first, derived from persisted
// briefs.
func (s *WorkflowService) List(ctx context.Context, requestID, userID string) contracts.Result[[]dto.WorkflowSummaryDTO] {
	briefs, err := s.briefRepo.ListByUser(ctx, userID, workflowListLimit)
	if err != nil {
		return contracts.Fail[[]dto.WorkflowSummaryDTO](requestID, contracts.ErrDatabaseError, "Workflows kunne ikke indlæses.", true)
	}
	out := make([]dto.WorkflowSummaryDTO, 0, len(briefs))
	for _, b := range briefs {
		out = append(out, dto.NewWorkflowSummaryDTO(b))
	}
	return contracts.Ok(requestID, out)
}

// GetSnapshot loads the aggregate snapshot for one workflow.
func (s *WorkflowService) GetSnapshot(ctx context.Context, requestID, userID, workflowID string) contracts.Result[*dto.SnapshotDTO] {
	aggregate, err := s.snapshots.Load(ctx, userID, workflowID)
	if err != nil {
		if errors.Is(err, workflow.ErrSnapshotNotFound) {
			return contracts.Fail[*dto.SnapshotDTO](requestID, contracts.ErrNotFound, "Intet snapshot fundet for workflowet.", false)
		}
		return contracts.Fail[*dto.SnapshotDTO](requestID, contracts.ErrDatabaseError, "Snapshottet kunne ikke indlæses.", true)
	}
	return contracts.Ok(requestID, aggregate)
}

// SaveSnapshot stores a client-submitted aggregate snapshot. Identity fields
// are forced from the authenticated request so a client cannot write into
// another user's key.
func (s *WorkflowService) SaveSnapshot(ctx context.Context, requestID, userID, workflowID string, aggregate *workflow.Aggregate) contracts.Result[*dto.SnapshotDTO] {
	if aggregate == nil {
		return contracts.Fail[*dto.SnapshotDTO](requestID, contracts.ErrInvalidInput, "Snapshottet mangler.", false)
	}
	aggregate.UserID = userID
	aggregate.WorkflowID = workflowID

	if err := s.snapshots.Save(ctx, aggregate); err != nil {
		return contracts.Fail[*dto.SnapshotDTO](requestID, contracts.ErrDatabaseError, "Snapshottet kunne ikke gemmes.", true)
	}
	return contracts.Ok(requestID, aggregate)
}
