package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"dellerose/models"
	"dellerose/validation"
)

func validTwitterDraft() models.AgentOutput {
	return models.AgentOutput{
		Platform:         models.PlatformTwitter,
		Hook:             "Kort hook",
		Body:             "Kort body",
		CTA:              "Svar her",
		Hashtags:         []string{"#update", "#socialmedia"},
		VisualSuggestion: "Et foto af teamet",
		Status:           models.PostStatusDraft,
	}
}

func TestNormalizeHashtags(t *testing.T) {
	testCases := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "strips hash runs and whitespace",
			input: []string{"##GoLang", "  #social media ", "go lang"},
			want:  []string{"#GoLang", "#socialmedia", "#golang"},
		},
		{
			name:  "drops empties and bare hashes",
			input: []string{"", "   ", "#", "###"},
			want:  []string{},
		},
		{
			name:  "deduplicates preserving order",
			input: []string{"#a", "a", "#b", "#a"},
			want:  []string{"#a", "#b"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := validation.NormalizeHashtags(testCase.input)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestNormalizeHashtagsIsIdempotent(t *testing.T) {
	input := []string{"##Tag", "tag to", "#tagto", "other"}
	once := validation.NormalizeHashtags(input)
	twice := validation.NormalizeHashtags(once)
	assert.Equal(t, once, twice)
	for _, tag := range once {
		assert.Regexp(t, `^#[^\s]+$`, tag)
	}
}

func TestValidateDraftAcceptsValidOutput(t *testing.T) {
	rules, _ := models.RulesFor(models.PlatformTwitter)
	assert.NoError(t, validation.ValidateDraft(validTwitterDraft(), rules))
}

func TestValidateDraftRejectsFieldViolations(t *testing.T) {
	rules, _ := models.RulesFor(models.PlatformTwitter)

	testCases := []struct {
		name   string
		mutate func(*models.AgentOutput)
		path   string
	}{
		{
			name:   "wrong platform literal",
			mutate: func(o *models.AgentOutput) { o.Platform = models.PlatformLinkedIn },
			path:   "platform",
		},
		{
			name:   "empty hook",
			mutate: func(o *models.AgentOutput) { o.Hook = "   " },
			path:   "hook",
		},
		{
			name:   "hook over budget",
			mutate: func(o *models.AgentOutput) { o.Hook = strings.Repeat("x", 81) },
			path:   "hook",
		},
		{
			name:   "bare hash",
			mutate: func(o *models.AgentOutput) { o.Hashtags = []string{"#"} },
			path:   "hashtags[0]",
		},
		{
			name:   "duplicate hashtag",
			mutate: func(o *models.AgentOutput) { o.Hashtags = []string{"#a", "#a"} },
			path:   "hashtags[1]",
		},
		{
			name:   "too many hashtags",
			mutate: func(o *models.AgentOutput) { o.Hashtags = []string{"#a", "#b", "#c", "#d", "#e"} },
			path:   "hashtags",
		},
		{
			name:   "status not draft",
			mutate: func(o *models.AgentOutput) { o.Status = models.PostStatusApproved },
			path:   "status",
		},
		{
			name: "visual suggestion over 240",
			mutate: func(o *models.AgentOutput) {
				o.VisualSuggestion = strings.Repeat("v", 241)
			},
			path: "visualSuggestion",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			draft := validTwitterDraft()
			testCase.mutate(&draft)
			err := validation.ValidateDraft(draft, rules)
			if err == nil {
				t.Fatal("expected validation error")
			}
			vErr, ok := err.(*validation.ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			found := false
			for _, issue := range vErr.Issues {
				if issue.Path == testCase.path {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected issue at %q, got %v", testCase.path, vErr.Issues)
			}
		})
	}
}

func TestValidateDraftEnforcesTwitterCombinedBudget(t *testing.T) {
	rules, _ := models.RulesFor(models.PlatformTwitter)
	draft := validTwitterDraft()
	draft.Hook = strings.Repeat("h", 80)
	draft.Body = strings.Repeat("b", 160)
	draft.CTA = strings.Repeat("c", 60)

	err := validation.ValidateDraft(draft, rules)
	if err == nil {
		t.Fatal("expected combined budget violation")
	}
	assert.True(t, validation.IsValidationError(err))
}

func TestValidateDraftSkipsCombinedBudgetWithoutCap(t *testing.T) {
	rules, _ := models.RulesFor(models.PlatformLinkedIn)
	draft := validTwitterDraft()
	draft.Platform = models.PlatformLinkedIn
	draft.Hook = strings.Repeat("h", 180)
	draft.Body = strings.Repeat("b", 2200)
	draft.CTA = strings.Repeat("c", 180)
	assert.NoError(t, validation.ValidateDraft(draft, rules))
}

func TestValidateDraftSet(t *testing.T) {
	outputs := make([]models.AgentOutput, 0, 5)
	for _, platform := range models.PlatformOrder {
		draft := validTwitterDraft()
		draft.Platform = platform
		outputs = append(outputs, draft)
	}
	assert.NoError(t, validation.ValidateDraftSet(outputs))

	assert.Error(t, validation.ValidateDraftSet(outputs[:4]))

	duplicated := append([]models.AgentOutput{}, outputs...)
	duplicated[1].Platform = models.PlatformLinkedIn
	assert.Error(t, validation.ValidateDraftSet(duplicated))
}

func TestValidateBrief(t *testing.T) {
	brief := models.ContentBrief{
		CoreMessage:    "Vi lancerer et nyt workflow i dag",
		Intent:         models.IntentUpdate,
		TargetAudience: "Eksisterende følgere",
		KeyPoints:      []string{"Vi lancerer et nyt workflow i dag"},
		EmotionalTone:  "neutral",
	}
	assert.NoError(t, validation.ValidateBrief(brief))

	broken := brief
	broken.CoreMessage = " "
	assert.Error(t, validation.ValidateBrief(broken))

	broken = brief
	broken.Intent = "announcement"
	assert.Error(t, validation.ValidateBrief(broken))

	broken = brief
	broken.KeyPoints = nil
	assert.Error(t, validation.ValidateBrief(broken))
}

func TestValidateRawAgentResponse(t *testing.T) {
	raw := validation.RawAgentResponse{
		Hook:             "hook",
		Body:             "body",
		CTA:              "cta",
		VisualSuggestion: "visual",
	}
	assert.NoError(t, validation.ValidateRawAgentResponse(raw))

	raw.Body = "  "
	assert.Error(t, validation.ValidateRawAgentResponse(raw))
}
