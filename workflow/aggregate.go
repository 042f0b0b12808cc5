// Package workflow holds the client-facing workflow aggregate and its
// snapshot store. The aggregate is a pure state machine: command methods
// mutate it in memory and the store persists whole snapshots, so every
// transition stays unit-testable without infrastructure.
package workflow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"dellerose/models"
)

// MaxChatEntries bounds the chat log; older entries are dropped first.
const MaxChatEntries = 120

var (
	ErrDraftNotFound = errors.New("no draft for platform")
	ErrPlanNotFound  = errors.New("no plan for platform")
)

// ChatRole identifies who produced a chat entry.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
	ChatRoleSystem    ChatRole = "system"
)

// ChatEntry is one line of the workflow's conversation history.
type ChatEntry struct {
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Aggregate is the full in-progress state of one content workflow.
type Aggregate struct {
	UserID     string                                 `json:"userId"`
	WorkflowID string                                 `json:"workflowId"`
	Transcript string                                 `json:"transcript"`
	Brief      *models.ContentBrief                   `json:"brief"`
	Drafts     map[models.Platform]models.AgentOutput `json:"drafts"`
	Plans      map[models.Platform]models.PostPlan    `json:"plans"`
	ChatLog    []ChatEntry                            `json:"chatLog"`
	UpdatedAt  time.Time                              `json:"updatedAt"`
}

// NewAggregate returns an empty workflow for the user.
func NewAggregate(userID, workflowID string) *Aggregate {
	return &Aggregate{
		UserID:     userID,
		WorkflowID: workflowID,
		Drafts:     make(map[models.Platform]models.AgentOutput),
		Plans:      make(map[models.Platform]models.PostPlan),
		UpdatedAt:  time.Now().UTC(),
	}
}

func (a *Aggregate) touch() {
	a.UpdatedAt = time.Now().UTC()
}

// AppendChat adds one entry and evicts the oldest past the cap.
func (a *Aggregate) AppendChat(role ChatRole, text string) {
	a.ChatLog = append(a.ChatLog, ChatEntry{Role: role, Text: text, CreatedAt: time.Now().UTC()})
	if overflow := len(a.ChatLog) - MaxChatEntries; overflow > 0 {
		a.ChatLog = a.ChatLog[overflow:]
	}
	a.touch()
}

// SetBrainDumpResult installs a new transcript and brief. Any drafts and
// plans from an earlier brain dump are discarded; the chat log records the
// exchange.
func (a *Aggregate) SetBrainDumpResult(transcript string, brief models.ContentBrief) {
	a.Transcript = transcript
	briefCopy := brief
	a.Brief = &briefCopy
	a.Drafts = make(map[models.Platform]models.AgentOutput)
	a.Plans = make(map[models.Platform]models.PostPlan)
	a.AppendChat(ChatRoleUser, transcript)
	a.AppendChat(ChatRoleAssistant, brief.CoreMessage)
}

// SetDrafts replaces the whole draft set, keyed by platform.
func (a *Aggregate) SetDrafts(outputs []models.AgentOutput) {
	a.Drafts = make(map[models.Platform]models.AgentOutput, len(outputs))
	for _, output := range outputs {
		a.Drafts[output.Platform] = output
	}
	a.touch()
}

// ReplaceDraft swaps in a regenerated draft for its platform.
func (a *Aggregate) ReplaceDraft(output models.AgentOutput) {
	a.Drafts[output.Platform] = output
	a.touch()
}

// UpdateDraftField edits one text field of an existing draft. The value is
// trimmed; the draft's status is left untouched.
func (a *Aggregate) UpdateDraftField(platform models.Platform, field, value string) error {
	draft, ok := a.Drafts[platform]
	if !ok {
		return fmt.Errorf("%w: %s", ErrDraftNotFound, platform)
	}

	value = strings.TrimSpace(value)
	switch field {
	case "hook":
		draft.Hook = value
	case "body":
		draft.Body = value
	case "cta":
		draft.CTA = value
	case "visualSuggestion":
		draft.VisualSuggestion = value
	default:
		return fmt.Errorf("unknown draft field %q", field)
	}

	a.Drafts[platform] = draft
	a.touch()
	return nil
}

// ApproveAndPlanDraft promotes a draft into the plan set. The draft status
// becomes approved, or scheduled when scheduledFor is set. An existing plan
// for the platform is overwritten in place and keeps its id.
func (a *Aggregate) ApproveAndPlanDraft(platform models.Platform, scheduledFor *time.Time) (models.PostPlan, error) {
	draft, ok := a.Drafts[platform]
	if !ok {
		return models.PostPlan{}, fmt.Errorf("%w: %s", ErrDraftNotFound, platform)
	}

	status := models.PostStatusApproved
	if scheduledFor != nil {
		status = models.PostStatusScheduled
	}
	draft.Status = status
	a.Drafts[platform] = draft

	planID := uuid.NewString()
	if existing, ok := a.Plans[platform]; ok {
		planID = existing.ID
	}

	plan := models.PostPlan{
		ID:               planID,
		Platform:         platform,
		Hook:             draft.Hook,
		Body:             draft.Body,
		CTA:              draft.CTA,
		Hashtags:         draft.Hashtags,
		VisualSuggestion: draft.VisualSuggestion,
		Status:           models.PlanStatusFromPostStatus(status),
		ScheduledFor:     scheduledFor,
	}
	a.Plans[platform] = plan
	a.touch()
	return plan, nil
}

// SetPlanScheduled moves a plan to scheduled and syncs the matching draft.
func (a *Aggregate) SetPlanScheduled(platform models.Platform, scheduledFor time.Time) error {
	plan, ok := a.Plans[platform]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, platform)
	}
	plan.Status = models.PlanStatusScheduled
	plan.ScheduledFor = &scheduledFor
	a.Plans[platform] = plan
	a.syncDraftStatus(platform, models.PostStatusScheduled)
	a.touch()
	return nil
}

// MarkPlanPosted moves a plan to posted and syncs the matching draft.
func (a *Aggregate) MarkPlanPosted(platform models.Platform) error {
	plan, ok := a.Plans[platform]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, platform)
	}
	plan.Status = models.PlanStatusPosted
	a.Plans[platform] = plan
	a.syncDraftStatus(platform, models.PostStatusPosted)
	a.touch()
	return nil
}

func (a *Aggregate) syncDraftStatus(platform models.Platform, status models.PostStatus) {
	if draft, ok := a.Drafts[platform]; ok {
		draft.Status = status
		a.Drafts[platform] = draft
	}
}

// Reset clears everything except identity. The fresh chat log opens with a
// system entry so the user sees the workflow was wiped on purpose.
func (a *Aggregate) Reset() {
	a.Transcript = ""
	a.Brief = nil
	a.Drafts = make(map[models.Platform]models.AgentOutput)
	a.Plans = make(map[models.Platform]models.PostPlan)
	a.ChatLog = nil
	a.AppendChat(ChatRoleSystem, "Workflow blev nulstillet.")
}
