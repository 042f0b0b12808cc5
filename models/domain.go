package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Intent classifies what the user wants a piece of content to do.
type Intent string

const (
	IntentSales        Intent = "sales"
	IntentStorytelling Intent = "storytelling"
	IntentEducational  Intent = "educational"
	IntentDebate       Intent = "debate"
	IntentUpdate       Intent = "update"
)

// Intents lists every valid intent value.
var Intents = []Intent{
	IntentSales,
	IntentStorytelling,
	IntentEducational,
	IntentDebate,
	IntentUpdate,
}

// PostStatus tracks a draft through its lifecycle:
// draft -> approved -> scheduled -> posted.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusApproved  PostStatus = "approved"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPosted    PostStatus = "posted"
)

// PlanStatus is the scheduling-facing status of a PostPlan.
type PlanStatus string

const (
	PlanStatusPending   PlanStatus = "pending"
	PlanStatusScheduled PlanStatus = "scheduled"
	PlanStatusPosted    PlanStatus = "posted"
)

// ContentBrief is the structured summary the Master Agent derives from a
// brain-dump transcript. It is produced once per workflow and is immutable
// afterwards; every platform agent consumes the same brief.
type ContentBrief struct {
	CoreMessage    string   `bson:"core_message" json:"coreMessage"`
	Intent         Intent   `bson:"intent" json:"intent"`
	TargetAudience string   `bson:"target_audience" json:"targetAudience"`
	KeyPoints      []string `bson:"key_points" json:"keyPoints"`
	EmotionalTone  string   `bson:"emotional_tone" json:"emotionalTone"`
}

// AgentOutput is one platform-specific post candidate.
type AgentOutput struct {
	Platform         Platform   `bson:"platform" json:"platform"`
	Hook             string     `bson:"hook" json:"hook"`
	Body             string     `bson:"body" json:"body"`
	CTA              string     `bson:"cta" json:"cta"`
	Hashtags         []string   `bson:"hashtags" json:"hashtags"`
	VisualSuggestion string     `bson:"visual_suggestion" json:"visualSuggestion"`
	Status           PostStatus `bson:"status" json:"status"`
}

// PostPlan is a draft promoted to scheduling state. At most one plan exists
// per (workflow, platform); later approvals overwrite the plan in place and
// keep its id.
type PostPlan struct {
	ID               string     `bson:"id" json:"id"`
	Platform         Platform   `bson:"platform" json:"platform"`
	Hook             string     `bson:"hook" json:"hook"`
	Body             string     `bson:"body" json:"body"`
	CTA              string     `bson:"cta" json:"cta"`
	Hashtags         []string   `bson:"hashtags" json:"hashtags"`
	VisualSuggestion string     `bson:"visual_suggestion" json:"visualSuggestion"`
	Status           PlanStatus `bson:"status" json:"status"`
	ScheduledFor     *time.Time `bson:"scheduled_for" json:"scheduledFor"`
}

// Brief is the persisted form of a ContentBrief.
// Collection: briefs, unique on (user_id, workflow_id).
type Brief struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"user_id" json:"user_id"`
	WorkflowID       string             `bson:"workflow_id" json:"workflow_id"`
	SourceTranscript string             `bson:"source_transcript" json:"source_transcript"`
	Content          ContentBrief       `bson:"content" json:"content"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// Post is the persisted form of an approved draft plus its plan state.
// Collection: posts, unique on (user_id, workflow_id, platform) so repeated
// approvals upsert instead of duplicating.
type Post struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"user_id" json:"user_id"`
	BriefID          primitive.ObjectID `bson:"brief_id" json:"brief_id"`
	WorkflowID       string             `bson:"workflow_id" json:"workflow_id"`
	Platform         Platform           `bson:"platform" json:"platform"`
	Hook             string             `bson:"hook" json:"hook"`
	Body             string             `bson:"body" json:"body"`
	CTA              string             `bson:"cta" json:"cta"`
	Hashtags         []string           `bson:"hashtags" json:"hashtags"`
	VisualSuggestion string             `bson:"visual_suggestion" json:"visual_suggestion"`
	PublishMode      string             `bson:"publish_mode" json:"publish_mode"`
	Status           PostStatus         `bson:"status" json:"status"`
	ScheduledFor     *time.Time         `bson:"scheduled_for" json:"scheduled_for"`
	PostedAt         *time.Time         `bson:"posted_at" json:"posted_at"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// PublishModeManualCopy marks posts that the user copies into the platform
// by hand. No publishing integration exists.
const PublishModeManualCopy = "manual_copy"

// PlanStatusFromPostStatus projects a post lifecycle status onto the
// scheduler view.
func PlanStatusFromPostStatus(status PostStatus) PlanStatus {
	switch status {
	case PostStatusScheduled:
		return PlanStatusScheduled
	case PostStatusPosted:
		return PlanStatusPosted
	default:
		return PlanStatusPending
	}
}

// PostStatusFromPlanStatus is the reverse projection used when the scheduler
// updates a persisted post.
func PostStatusFromPlanStatus(status PlanStatus) PostStatus {
	switch status {
	case PlanStatusScheduled:
		return PostStatusScheduled
	case PlanStatusPosted:
		return PostStatusPosted
	default:
		return PostStatusApproved
	}
}
