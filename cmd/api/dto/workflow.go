package dto

import (
	"time"

	"dellerose/models"
	"dellerose/workflow"
)

// WorkflowSummaryDTO is one row in the workflow list.
type WorkflowSummaryDTO struct {
	WorkflowID  string        `json:"workflowId"`
	CoreMessage string        `json:"coreMessage"`
	Intent      models.Intent `json:"intent"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// NewWorkflowSummaryDTO maps a persisted brief onto the list view.
func NewWorkflowSummaryDTO(b models.Brief) WorkflowSummaryDTO {
	return WorkflowSummaryDTO{
		WorkflowID:  b.WorkflowID,
		CoreMessage: b.Content.CoreMessage,
		Intent:      b.Content.Intent,
		UpdatedAt:   b.UpdatedAt,
	}
}

// SnapshotDTO is the full workflow aggregate as stored in the snapshot
// store. The aggregate's JSON shape is the wire shape.
type SnapshotDTO = workflow.Aggregate
