package workflow

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dellerose/models"
)

func sampleBrief() models.ContentBrief {
	return models.ContentBrief{
		CoreMessage:    "Vi lancerer et nyt workflow i dag",
		Intent:         models.IntentUpdate,
		TargetAudience: "Eksisterende følgere",
		KeyPoints:      []string{"Vi lancerer et nyt workflow i dag"},
		EmotionalTone:  "neutral",
	}
}

func sampleDraft(platform models.Platform) models.AgentOutput {
	return models.AgentOutput{
		Platform:         platform,
		Hook:             "Hook",
		Body:             "Body",
		CTA:              "CTA",
		Hashtags:         []string{"#nyhed"},
		VisualSuggestion: "Produktfoto",
		Status:           models.PostStatusDraft,
	}
}

func TestSetBrainDumpResultResetsDraftsAndPlans(t *testing.T) {
	agg := NewAggregate("user-1", "wf-1")
	agg.SetDrafts([]models.AgentOutput{sampleDraft(models.PlatformLinkedIn)})
	_, err := agg.ApproveAndPlanDraft(models.PlatformLinkedIn, nil)
	assert.NoError(t, err)

	agg.SetBrainDumpResult("nyt transcript", sampleBrief())

	assert.Equal(t, "nyt transcript", agg.Transcript)
	assert.Equal(t, sampleBrief(), *agg.Brief)
	assert.Empty(t, agg.Drafts)
	assert.Empty(t, agg.Plans)
	assert.Len(t, agg.ChatLog, 2)
	assert.Equal(t, ChatRoleUser, agg.ChatLog[0].Role)
	assert.Equal(t, "nyt transcript", agg.ChatLog[0].Text)
	assert.Equal(t, ChatRoleAssistant, agg.ChatLog[1].Role)
}

func TestChatLogEvictsOldestPastCap(t *testing.T) {
	agg := NewAggregate("user-1", "wf-1")
	for i := 0; i < MaxChatEntries+10; i++ {
		agg.AppendChat(ChatRoleUser, fmt.Sprintf("besked %d", i))
	}
	assert.Len(t, agg.ChatLog, MaxChatEntries)
	assert.Equal(t, "besked 10", agg.ChatLog[0].Text)
	assert.Equal(t, fmt.Sprintf("besked %d", MaxChatEntries+9), agg.ChatLog[len(agg.ChatLog)-1].Text)
}

func TestUpdateDraftFieldTrimsAndKeepsStatus(t *testing.T) {
	agg := NewAggregate("user-1", "wf-1")
	draft := sampleDraft(models.PlatformTikTok)
	draft.Status = models.PostStatusApproved
	agg.SetDrafts([]models.AgentOutput{draft})

	assert.NoError(t, agg.UpdateDraftField(models.PlatformTikTok, "hook", "  Ny hook  "))

	updated := agg.Drafts[models.PlatformTikTok]
	assert.Equal(t, "Ny hook", updated.Hook)
	assert.Equal(t, models.PostStatusApproved, updated.Status)
}

func TestUpdateDraftFieldErrors(t *testing.T) {
	agg := NewAggregate("user-1", "wf-1")
	assert.ErrorIs(t, agg.UpdateDraftField(models.PlatformTikTok, "hook", "x"), ErrDraftNotFound)

	agg.SetDrafts([]models.AgentOutput{sampleDraft(models.PlatformTikTok)})
	assert.Error(t, agg.UpdateDraftField(models.PlatformTikTok, "hashtags", "x"))
}

func TestApproveAndPlanDraftKeepsPlanIDOnOverwrite(t *testing.T) {
	agg := NewAggregate("user-1", "wf-1")
	agg.SetDrafts([]models.AgentOutput{sampleDraft(models.PlatformInstagram)})

	first, err := agg.ApproveAndPlanDraft(models.PlatformInstagram, nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, models.PlanStatusPending, first.Status)
	assert.Equal(t, models.PostStatusApproved, agg.Drafts[models.PlatformInstagram].Status)

	when := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	second, err := agg.ApproveAndPlanDraft(models.PlatformInstagram, &when)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "overwriting approval keeps the plan id")
	assert.Equal(t, models.PlanStatusScheduled, second.Status)
	assert.Equal(t, &when, second.ScheduledFor)
	assert.Equal(t, models.PostStatusScheduled, agg.Drafts[models.PlatformInstagram].Status)
}

func TestApproveAndPlanDraftRequiresDraft(t *testing.T) {
	agg := NewAggregate("user-1", "wf-1")
	_, err := agg.ApproveAndPlanDraft(models.PlatformFacebook, nil)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestSetPlanScheduledSyncsDraft(t *testing.T) {
	agg := NewAggregate("user-1", "wf-1")
	agg.SetDrafts([]models.AgentOutput{sampleDraft(models.PlatformTwitter)})
	_, err := agg.ApproveAndPlanDraft(models.PlatformTwitter, nil)
	assert.NoError(t, err)

	when := time.Date(2026, 9, 2, 8, 30, 0, 0, time.UTC)
	assert.NoError(t, agg.SetPlanScheduled(models.PlatformTwitter, when))

	plan := agg.Plans[models.PlatformTwitter]
	assert.Equal(t, models.PlanStatusScheduled, plan.Status)
	assert.Equal(t, &when, plan.ScheduledFor)
	assert.Equal(t, models.PostStatusScheduled, agg.Drafts[models.PlatformTwitter].Status)
}

func TestMarkPlanPostedSyncsDraft(t *testing.T) {
	agg := NewAggregate("user-1", "wf-1")
	agg.SetDrafts([]models.AgentOutput{sampleDraft(models.PlatformLinkedIn)})
	_, err := agg.ApproveAndPlanDraft(models.PlatformLinkedIn, nil)
	assert.NoError(t, err)

	assert.NoError(t, agg.MarkPlanPosted(models.PlatformLinkedIn))
	assert.Equal(t, models.PlanStatusPosted, agg.Plans[models.PlatformLinkedIn].Status)
	assert.Equal(t, models.PostStatusPosted, agg.Drafts[models.PlatformLinkedIn].Status)

	assert.ErrorIs(t, agg.SetPlanScheduled(models.PlatformTikTok, time.Now()), ErrPlanNotFound)
	assert.ErrorIs(t, agg.MarkPlanPosted(models.PlatformTikTok), ErrPlanNotFound)
}

func TestReplaceDraft(t *testing.T) {
	agg := NewAggregate("user-1", "wf-1")
	agg.SetDrafts([]models.AgentOutput{sampleDraft(models.PlatformFacebook)})

	fresh := sampleDraft(models.PlatformFacebook)
	fresh.Hook = "Regenereret hook"
	agg.ReplaceDraft(fresh)

	assert.Equal(t, "Regenereret hook", agg.Drafts[models.PlatformFacebook].Hook)
}

func TestResetClearsEverythingButIdentity(t *testing.T) {
	agg := NewAggregate("user-1", "wf-1")
	agg.SetBrainDumpResult("transcript", sampleBrief())
	agg.SetDrafts([]models.AgentOutput{sampleDraft(models.PlatformLinkedIn)})

	agg.Reset()

	assert.Equal(t, "user-1", agg.UserID)
	assert.Equal(t, "wf-1", agg.WorkflowID)
	assert.Empty(t, agg.Transcript)
	assert.Nil(t, agg.Brief)
	assert.Empty(t, agg.Drafts)
	assert.Empty(t, agg.Plans)
	assert.Len(t, agg.ChatLog, 1)
	assert.Equal(t, ChatRoleSystem, agg.ChatLog[0].Role)
	assert.Equal(t, "Workflow blev nulstillet.", agg.ChatLog[0].Text)
}
