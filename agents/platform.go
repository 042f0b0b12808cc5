package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"google.golang.org/genai"

	"dellerose/models"
	"dellerose/validation"
)

const draftSystemInstruction = `
Returnér kun struktureret JSON i schemaformat.
Ingen forklaringer, ingen meta-tekst.
Ingen facts må opfindes.
`

var draftResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"hook": {Type: genai.TypeString},
		"body": {Type: genai.TypeString},
		"cta":  {Type: genai.TypeString},
		"hashtags": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"visualSuggestion": {Type: genai.TypeString},
	},
	Required: []string{"hook", "body", "cta", "hashtags", "visualSuggestion"},
}

// DraftGenerator issues one structured-generation call per platform and
// validates the result against that platform's constraints. A schema
// validation failure is retried exactly once; transport and backend errors
// are surfaced to the caller untouched.
type DraftGenerator struct {
	backend  Backend
	model    string
	recorder CallRecorder
}

func NewDraftGenerator(backend Backend, model string, recorder CallRecorder) *DraftGenerator {
	return &DraftGenerator{backend: backend, model: model, recorder: recorder}
}

// GenerationInput is the read-only snapshot a generation request works from.
type GenerationInput struct {
	Brief        models.ContentBrief
	BrandProfile models.BrandProfile
	// StyleSample is optional readable text extracted from the profile's
	// voice-sample URL.
	StyleSample string
}

// Generate produces one validated draft for the platform.
func (g *DraftGenerator) Generate(ctx context.Context, rules models.PlatformRules, input GenerationInput) (models.AgentOutput, error) {
	retryOnValidation := retrypolicy.NewBuilder[models.AgentOutput]().
		HandleIf(func(_ models.AgentOutput, err error) bool {
			return validation.IsValidationError(err)
		}).
		WithMaxRetries(1).
		Build()

	return failsafe.With(retryOnValidation).Get(func() (models.AgentOutput, error) {
		return g.attempt(ctx, rules, input)
	})
}

func (g *DraftGenerator) attempt(ctx context.Context, rules models.PlatformRules, input GenerationInput) (models.AgentOutput, error) {
	prompt := buildDraftPrompt(rules, input)

	startedAt := time.Now()
	resp, err := g.backend.GenerateJSON(ctx, GenerateRequest{
		Model:       g.model,
		System:      strings.TrimSpace(draftSystemInstruction),
		Prompt:      prompt,
		Schema:      draftResponseSchema,
		Temperature: 0.3,
	})
	g.record(ctx, prompt, resp, err, startedAt)
	if err != nil {
		return models.AgentOutput{}, err
	}

	var raw validation.RawAgentResponse
	if err := json.Unmarshal([]byte(resp.Text), &raw); err != nil {
		return models.AgentOutput{}, &validation.ValidationError{
			Subject: fmt.Sprintf("%s draft", rules.Platform),
			Issues:  []validation.Issue{{Path: "$", Message: "response is not valid JSON"}},
		}
	}
	if err := validation.ValidateRawAgentResponse(raw); err != nil {
		return models.AgentOutput{}, err
	}

	hashtags := validation.NormalizeHashtags(raw.Hashtags)
	if len(hashtags) > rules.MaxHashtags {
		hashtags = hashtags[:rules.MaxHashtags]
	}

	candidate := models.AgentOutput{
		Platform:         rules.Platform,
		Hook:             raw.Hook,
		Body:             raw.Body,
		CTA:              raw.CTA,
		Hashtags:         hashtags,
		VisualSuggestion: raw.VisualSuggestion,
		Status:           models.PostStatusDraft,
	}
	if err := validation.ValidateDraft(candidate, rules); err != nil {
		return models.AgentOutput{}, err
	}
	return candidate, nil
}

func (g *DraftGenerator) record(ctx context.Context, prompt string, resp *GenerateResponse, err error, startedAt time.Time) {
	if g.recorder == nil {
		return
	}
	log := CallLog{
		Prompt:      prompt,
		ModelName:   g.model,
		LatencyMs:   time.Since(startedAt).Milliseconds(),
		GeneratedAt: time.Now(),
	}
	if resp != nil {
		log.Response = resp.Text
		log.ModelVersion = resp.ModelVersion
		log.TokenUsage = resp.Usage
	}
	if err != nil {
		log.ErrorMessage = err.Error()
	}
	g.recorder(ctx, log)
}

func buildDraftPrompt(rules models.PlatformRules, input GenerationInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Du er en specialiseret %s-agent i DelleRose.ai.\n", rules.Platform)
	b.WriteString("Du må kun omstrukturere inputtet, ikke opfinde fakta.\n\n")

	b.WriteString("Platform regler:\n")
	fmt.Fprintf(&b, "%s\n", rules.Guidance)
	fmt.Fprintf(&b, "- Hook max: %d tegn\n", rules.MaxHookChars)
	fmt.Fprintf(&b, "- Body max: %d tegn\n", rules.MaxBodyChars)
	fmt.Fprintf(&b, "- CTA max: %d tegn\n", rules.MaxCTAChars)
	fmt.Fprintf(&b, "- Hashtags max: %d\n", rules.MaxHashtags)
	if rules.TotalMaxChars > 0 {
		fmt.Fprintf(&b, "- Total (hook+body+cta) max: %d\n", rules.TotalMaxChars)
	}
	b.WriteString("- Output status SKAL være \"draft\"\n\n")

	b.WriteString("BrandProfile:\n")
	b.WriteString(jsonBlock(brandProfilePromptView(input.BrandProfile)))
	b.WriteString("\n\nContentBrief:\n")
	b.WriteString(jsonBlock(input.Brief))

	if sample := strings.TrimSpace(input.StyleSample); sample != "" {
		b.WriteString("\n\nSkriveprøve fra brugeren (efterlign tonen, kopiér ikke indholdet):\n")
		b.WriteString(sample)
	}

	return b.String()
}

// brandProfilePromptView strips storage-only fields before embedding the
// profile in a prompt.
func brandProfilePromptView(profile models.BrandProfile) map[string]any {
	return map[string]any{
		"toneLevel":        profile.ToneLevel,
		"lengthPreference": profile.LengthPreference,
		"opinionLevel":     profile.OpinionLevel,
		"preferredWords":   profile.PreferredWords,
		"bannedWords":      profile.BannedWords,
	}
}

func jsonBlock(value any) string {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
