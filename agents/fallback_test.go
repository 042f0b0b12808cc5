package agents_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"dellerose/agents"
	"dellerose/models"
	"dellerose/validation"
)

func testBrief() models.ContentBrief {
	return models.ContentBrief{
		CoreMessage:    "Vi lancerer et nyt workflow i dag",
		Intent:         models.IntentUpdate,
		TargetAudience: "Eksisterende følgere",
		KeyPoints:      []string{"Vi lancerer et nyt workflow i dag"},
		EmotionalTone:  "neutral",
	}
}

func TestSynthesizeFallbackIsValidOnEveryPlatform(t *testing.T) {
	brief := testBrief()
	for _, platform := range models.PlatformOrder {
		t.Run(string(platform), func(t *testing.T) {
			output := agents.SynthesizeFallback(platform, brief)
			rules, _ := models.RulesFor(platform)
			assert.NoError(t, validation.ValidateDraft(output, rules))
			assert.Equal(t, models.PostStatusDraft, output.Status)
		})
	}
}

func TestSynthesizeFallbackSurvivesOversizedBrief(t *testing.T) {
	brief := models.ContentBrief{
		CoreMessage:    strings.Repeat("Meget lang kernebesked. ", 50),
		Intent:         models.IntentStorytelling,
		TargetAudience: strings.Repeat("En meget bred og lang målgruppebeskrivelse ", 20),
		KeyPoints:      []string{strings.Repeat("Nøglepunkt med mange detaljer. ", 40)},
		EmotionalTone:  "engageret",
	}
	for _, platform := range models.PlatformOrder {
		output := agents.SynthesizeFallback(platform, brief)
		rules, _ := models.RulesFor(platform)
		assert.NoError(t, validation.ValidateDraft(output, rules), "platform %s", platform)
	}
}

func TestSynthesizeFallbackTwitterCombinedBudget(t *testing.T) {
	output := agents.SynthesizeFallback(models.PlatformTwitter, testBrief())
	total := len([]rune(output.Hook)) + len([]rune(output.Body)) + len([]rune(output.CTA)) + 2
	if total > 280 {
		t.Fatalf("combined length %d exceeds 280", total)
	}
}

func TestSynthesizeFallbackHashtags(t *testing.T) {
	output := agents.SynthesizeFallback(models.PlatformLinkedIn, testBrief())

	assert.Contains(t, output.Hashtags, "#update")
	assert.Contains(t, output.Hashtags, "#neutral")
	assert.Contains(t, output.Hashtags, "#eksisterendefølgere")
	assert.Contains(t, output.Hashtags, "#dellerose")
	assert.Contains(t, output.Hashtags, "#socialmedia")

	seen := map[string]bool{}
	for _, tag := range output.Hashtags {
		assert.Regexp(t, `^#[^\s]+$`, tag)
		assert.False(t, seen[tag], "duplicate %s", tag)
		seen[tag] = true
	}

	rules, _ := models.RulesFor(models.PlatformLinkedIn)
	assert.LessOrEqual(t, len(output.Hashtags), rules.MaxHashtags)
}

func TestSynthesizeFallbackUsesFirstKeyPoint(t *testing.T) {
	brief := testBrief()
	brief.KeyPoints = []string{"Første pointe", "Anden pointe"}
	output := agents.SynthesizeFallback(models.PlatformLinkedIn, brief)
	assert.Equal(t, "Første pointe\n\nMålgruppe: Eksisterende følgere", output.Body)
}
