package dto

import (
	"time"

	"dellerose/models"
)

// UpsertPlanRequest approves a draft into the scheduler. ScheduledFor is
// required when the client schedules immediately.
type UpsertPlanRequest struct {
	Transcript   string              `json:"transcript"`
	Brief        models.ContentBrief `json:"brief" binding:"required"`
	Draft        models.AgentOutput  `json:"draft" binding:"required"`
	ScheduledFor *time.Time          `json:"scheduledFor"`
}

// UpdatePlanStatusRequest moves a persisted plan through its lifecycle.
type UpdatePlanStatusRequest struct {
	Status       models.PlanStatus `json:"status" binding:"required"`
	ScheduledFor *time.Time        `json:"scheduledFor"`
}

// PlanDTO is the persisted plan returned to the client.
type PlanDTO struct {
	ID           string            `json:"id"`
	WorkflowID   string            `json:"workflowId"`
	Platform     models.Platform   `json:"platform"`
	Hook         string            `json:"hook"`
	Body         string            `json:"body"`
	CTA          string            `json:"cta"`
	Hashtags     []string          `json:"hashtags"`
	PublishMode  string            `json:"publishMode"`
	Status       models.PlanStatus `json:"status"`
	ScheduledFor *time.Time        `json:"scheduledFor"`
	PostedAt     *time.Time        `json:"postedAt"`
}

// NewPlanDTO maps a persisted post onto the scheduler view.
func NewPlanDTO(p models.Post) PlanDTO {
	return PlanDTO{
		ID:           p.ID.Hex(),
		WorkflowID:   p.WorkflowID,
		Platform:     p.Platform,
		Hook:         p.Hook,
		Body:         p.Body,
		CTA:          p.CTA,
		Hashtags:     p.Hashtags,
		PublishMode:  p.PublishMode,
		Status:       models.PlanStatusFromPostStatus(p.Status),
		ScheduledFor: p.ScheduledFor,
		PostedAt:     p.PostedAt,
	}
}
