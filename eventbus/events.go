// Package eventbus publishes workflow lifecycle events to Kafka. It is
// producer-only: downstream consumers (analytics, notifications) subscribe
// elsewhere, and nothing in the generation path waits on them.
package eventbus

import (
	"time"

	"github.com/google/uuid"

	"dellerose/models"
)

// EventType identifies one workflow lifecycle event.
type EventType string

const (
	BriefGenerated   EventType = "workflow.brief_generated"
	DraftsGenerated  EventType = "workflow.drafts_generated"
	DraftRegenerated EventType = "workflow.draft_regenerated"
	PlanScheduled    EventType = "workflow.plan_scheduled"
	PlanPosted       EventType = "workflow.plan_posted"
)

// Event is the wire envelope for every lifecycle event.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`

	UserID     string `json:"user_id"`
	WorkflowID string `json:"workflow_id"`

	// Optional per-type fields.
	Platform          models.Platform   `json:"platform,omitempty"`
	FallbackPlatforms []models.Platform `json:"fallback_platforms,omitempty"`
	UsedFallback      bool              `json:"used_fallback,omitempty"`
	ScheduledFor      *time.Time        `json:"scheduled_for,omitempty"`
}

const (
	eventSource  = "dellerose-api"
	eventVersion = "1.0"
)

// NewEvent fills the envelope for a workflow-scoped event.
func NewEvent(eventType EventType, userID, workflowID string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		Source:     eventSource,
		Version:    eventVersion,
		UserID:     userID,
		WorkflowID: workflowID,
	}
}
