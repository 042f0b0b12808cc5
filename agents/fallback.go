package agents

import (
	"strings"

	"dellerose/models"
	"dellerose/textfit"
	"dellerose/validation"
)

const fallbackCTA = "Del gerne din vinkel i kommentarfeltet."

var brandTags = []string{"dellerose", "socialmedia"}

// SynthesizeFallback builds a deterministic, schema-valid draft from a brief
// and the platform's limits without calling any backend. It never fails; the
// orchestrator substitutes it whenever the generation path does.
func SynthesizeFallback(platform models.Platform, brief models.ContentBrief) models.AgentOutput {
	rules, _ := models.RulesFor(platform)

	firstPoint := brief.CoreMessage
	if len(brief.KeyPoints) > 0 {
		firstPoint = brief.KeyPoints[0]
	}

	hook := textfit.Truncate(brief.CoreMessage, rules.MaxHookChars)
	body := textfit.Truncate(firstPoint+"\n\nMålgruppe: "+brief.TargetAudience, rules.MaxBodyChars)
	cta := textfit.Truncate(fallbackCTA, rules.MaxCTAChars)

	if rules.TotalMaxChars > 0 {
		hook, body, cta = textfit.FitTriple(hook, body, cta, rules.TotalMaxChars)
	}

	return models.AgentOutput{
		Platform:         platform,
		Hook:             hook,
		Body:             body,
		CTA:              cta,
		Hashtags:         fallbackHashtags(rules, brief),
		VisualSuggestion: textfit.Truncate("Visuelt motiv der understøtter: "+brief.CoreMessage, validation.MaxVisualSuggestionChars),
		Status:           models.PostStatusDraft,
	}
}

func fallbackHashtags(rules models.PlatformRules, brief models.ContentBrief) []string {
	candidates := []string{
		string(brief.Intent),
		brief.EmotionalTone,
		brief.TargetAudience,
	}
	candidates = append(candidates, brandTags...)

	hashtags := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		slug := tagSlug(candidate)
		if len([]rune(slug)) <= 1 {
			continue
		}
		hashtags = append(hashtags, "#"+slug)
	}

	hashtags = validation.NormalizeHashtags(hashtags)
	if len(hashtags) > rules.MaxHashtags {
		hashtags = hashtags[:rules.MaxHashtags]
	}
	return hashtags
}

// tagSlug lowercases and keeps only [a-z0-9æøå].
func tagSlug(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == 'æ', r == 'ø', r == 'å':
			b.WriteRune(r)
		}
	}
	return b.String()
}
