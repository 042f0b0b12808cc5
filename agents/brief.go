package agents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"dellerose/models"
	"dellerose/validation"
)

// ErrEmptyTranscript is returned when the transcript is empty or whitespace.
var ErrEmptyTranscript = errors.New("transcript is empty")

const briefSystemInstruction = `
Du er Master Agent i DelleRose.ai.
Din opgave er kun at strukturere brugerens transcript til et ContentBrief JSON objekt.

Regler:
- Opfind aldrig fakta, personer eller data som ikke findes i transcriptet.
- Bevar brugerens intention og kernebudskab.
- Hvis noget er uklart, lav en konservativ formulering baseret på transcriptets ordlyd.
- Svar SKAL passe til det givne schema.
`

var briefResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"coreMessage": {Type: genai.TypeString},
		"intent": {
			Type: genai.TypeString,
			Enum: []string{"sales", "storytelling", "educational", "debate", "update"},
		},
		"targetAudience": {Type: genai.TypeString},
		"keyPoints": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"emotionalTone": {Type: genai.TypeString},
	},
	Required: []string{"coreMessage", "intent", "targetAudience", "keyPoints", "emotionalTone"},
}

// BriefGenerator turns a transcript into a ContentBrief. In mock mode it
// derives the brief deterministically without touching the backend, which
// keeps downstream consumers testable offline.
type BriefGenerator struct {
	backend  Backend
	model    string
	mockMode bool
	recorder CallRecorder
}

func NewBriefGenerator(backend Backend, model string, mockMode bool, recorder CallRecorder) *BriefGenerator {
	return &BriefGenerator{backend: backend, model: model, mockMode: mockMode, recorder: recorder}
}

// Generate produces a validated ContentBrief from a raw transcript.
func (g *BriefGenerator) Generate(ctx context.Context, transcript string) (models.ContentBrief, error) {
	cleaned := strings.TrimSpace(transcript)
	if cleaned == "" {
		return models.ContentBrief{}, ErrEmptyTranscript
	}

	if g.mockMode {
		return MockBriefFromTranscript(cleaned), nil
	}

	prompt := fmt.Sprintf(`Konverter nedenstående rå transcript til ContentBrief.
Undlad antagelser ud over transcriptet.

Transcript:
%s`, cleaned)

	startedAt := time.Now()
	resp, err := g.backend.GenerateJSON(ctx, GenerateRequest{
		Model:       g.model,
		System:      strings.TrimSpace(briefSystemInstruction),
		Prompt:      prompt,
		Schema:      briefResponseSchema,
		Temperature: 0.2,
	})
	g.record(ctx, prompt, resp, err, startedAt)
	if err != nil {
		return models.ContentBrief{}, err
	}

	var brief models.ContentBrief
	if err := json.Unmarshal([]byte(resp.Text), &brief); err != nil {
		return models.ContentBrief{}, fmt.Errorf("decode brief response: %w", err)
	}
	if err := validation.ValidateBrief(brief); err != nil {
		return models.ContentBrief{}, err
	}
	return brief, nil
}

func (g *BriefGenerator) record(ctx context.Context, prompt string, resp *GenerateResponse, err error, startedAt time.Time) {
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

// MockBriefFromTranscript derives a deterministic brief from the first
// sentence of the transcript (split on . ! ?).
func MockBriefFromTranscript(transcript string) models.ContentBrief {
	normalized := strings.Join(strings.Fields(transcript), " ")

	coreMessage := ""
	for _, sentence := range strings.FieldsFunc(normalized, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if trimmed := strings.TrimSpace(sentence); trimmed != "" {
			coreMessage = trimmed
			break
		}
	}
	if coreMessage == "" {
		runes := []rune(normalized)
		if len(runes) > 180 {
			runes = runes[:180]
		}
		coreMessage = string(runes)
	}
	if coreMessage == "" {
		coreMessage = "Ingen kernebesked udledt."
	}

	return models.ContentBrief{
		CoreMessage:    coreMessage,
		Intent:         models.IntentUpdate,
		TargetAudience: "Eksisterende følgere",
		KeyPoints:      []string{coreMessage},
		EmotionalTone:  "neutral",
	}
}
