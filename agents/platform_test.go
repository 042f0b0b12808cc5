package agents_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"dellerose/agents"
	"dellerose/models"
	"dellerose/validation"
)

// stubBackend scripts responses per call and records every request.
type stubBackend struct {
	mu      sync.Mutex
	replies []stubReply
	calls   int
	prompts []string
}

type stubReply struct {
	text string
	err  error
}

func (s *stubBackend) GenerateJSON(_ context.Context, req agents.GenerateRequest) (*agents.GenerateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, req.Prompt)
	reply := s.replies[len(s.replies)-1]
	if s.calls < len(s.replies) {
		reply = s.replies[s.calls]
	}
	s.calls++
	if reply.err != nil {
		return nil, reply.err
	}
	return &agents.GenerateResponse{Text: reply.text, ModelVersion: "stub-001"}, nil
}

func (s *stubBackend) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func draftJSON(t *testing.T, hook, body, cta string, hashtags []string) string {
	t.Helper()
	raw := map[string]any{
		"hook":             hook,
		"body":             body,
		"cta":              cta,
		"hashtags":         hashtags,
		"visualSuggestion": "Et roligt billede af produktet",
	}
	data, err := json.Marshal(raw)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func testInput() agents.GenerationInput {
	return agents.GenerationInput{
		Brief: testBrief(),
		BrandProfile: models.BrandProfile{
			UserID:           "user-1",
			ToneLevel:        6,
			LengthPreference: 3,
			OpinionLevel:     4,
			PreferredWords:   []string{"workflow"},
			BannedWords:      []string{"synergi"},
		},
	}
}

func twitterRules(t *testing.T) models.PlatformRules {
	t.Helper()
	rules, ok := models.RulesFor(models.PlatformTwitter)
	if !ok {
		t.Fatal("missing twitter rules")
	}
	return rules
}

func TestGenerateReturnsValidatedDraft(t *testing.T) {
	backend := &stubBackend{replies: []stubReply{
		{text: draftJSON(t, "Nyt workflow", "Vi lancerer i dag", "Læs mere", []string{"#nyhed"})},
	}}
	generator := agents.NewDraftGenerator(backend, "stub-model", nil)

	output, err := generator.Generate(context.Background(), twitterRules(t), testInput())
	assert.NoError(t, err)
	assert.Equal(t, models.PlatformTwitter, output.Platform)
	assert.Equal(t, "Nyt workflow", output.Hook)
	assert.Equal(t, models.PostStatusDraft, output.Status)
	assert.Equal(t, 1, backend.callCount())
}

func TestGenerateNormalizesHashtagsBeforeValidation(t *testing.T) {
	backend := &stubBackend{replies: []stubReply{
		{text: draftJSON(t, "Hook", "Body", "CTA", []string{"##nyhed", " go lang ", "#nyhed", "", "#team", "#ekstra", "#femte"})},
	}}
	generator := agents.NewDraftGenerator(backend, "stub-model", nil)

	output, err := generator.Generate(context.Background(), twitterRules(t), testInput())
	assert.NoError(t, err)
	// Twitter caps at 4 after dedupe.
	assert.Equal(t, []string{"#nyhed", "#golang", "#team", "#ekstra"}, output.Hashtags)
}

func TestGenerateRetriesOnceOnValidationFailure(t *testing.T) {
	tooLongHook := strings.Repeat("x", 81)
	backend := &stubBackend{replies: []stubReply{
		{text: draftJSON(t, tooLongHook, "Body", "CTA", nil)},
		{text: draftJSON(t, "Kort hook", "Body", "CTA", nil)},
	}}
	generator := agents.NewDraftGenerator(backend, "stub-model", nil)

	output, err := generator.Generate(context.Background(), twitterRules(t), testInput())
	assert.NoError(t, err)
	assert.Equal(t, "Kort hook", output.Hook, "result must come from the retry attempt")
	assert.Equal(t, 2, backend.callCount())
}

func TestGenerateFailsAfterSecondValidationFailure(t *testing.T) {
	tooLongHook := strings.Repeat("x", 81)
	backend := &stubBackend{replies: []stubReply{
		{text: draftJSON(t, tooLongHook, "Body", "CTA", nil)},
		{text: draftJSON(t, tooLongHook, "Body", "CTA", nil)},
	}}
	generator := agents.NewDraftGenerator(backend, "stub-model", nil)

	_, err := generator.Generate(context.Background(), twitterRules(t), testInput())
	assert.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
	assert.Equal(t, 2, backend.callCount(), "no third attempt after the single retry")
}

func TestGenerateDoesNotRetryTransportErrors(t *testing.T) {
	transportErr := errors.New("backend unavailable")
	backend := &stubBackend{replies: []stubReply{{err: transportErr}}}
	generator := agents.NewDraftGenerator(backend, "stub-model", nil)

	_, err := generator.Generate(context.Background(), twitterRules(t), testInput())
	assert.ErrorIs(t, err, transportErr)
	assert.Equal(t, 1, backend.callCount())
}

func TestGenerateTreatsMalformedJSONAsValidationFailure(t *testing.T) {
	backend := &stubBackend{replies: []stubReply{
		{text: "not json at all"},
		{text: draftJSON(t, "Hook", "Body", "CTA", nil)},
	}}
	generator := agents.NewDraftGenerator(backend, "stub-model", nil)

	output, err := generator.Generate(context.Background(), twitterRules(t), testInput())
	assert.NoError(t, err)
	assert.Equal(t, "Hook", output.Hook)
	assert.Equal(t, 2, backend.callCount())
}

func TestGeneratePromptEmbedsPlatformLimits(t *testing.T) {
	backend := &stubBackend{replies: []stubReply{
		{text: draftJSON(t, "Hook", "Body", "CTA", nil)},
	}}
	generator := agents.NewDraftGenerator(backend, "stub-model", nil)

	_, err := generator.Generate(context.Background(), twitterRules(t), testInput())
	assert.NoError(t, err)

	prompt := backend.prompts[0]
	assert.Contains(t, prompt, "twitter-agent")
	assert.Contains(t, prompt, "Hook max: 80")
	assert.Contains(t, prompt, "Total (hook+body+cta) max: 280")
	assert.Contains(t, prompt, "\"bannedWords\"")
	assert.Contains(t, prompt, fmt.Sprintf("%q", "Vi lancerer et nyt workflow i dag"))
}

func TestGenerateRecordsCallLogs(t *testing.T) {
	backend := &stubBackend{replies: []stubReply{
		{text: draftJSON(t, "Hook", "Body", "CTA", nil)},
	}}
	var recorded []agents.CallLog
	recorder := func(_ context.Context, log agents.CallLog) {
		recorded = append(recorded, log)
	}
	generator := agents.NewDraftGenerator(backend, "stub-model", recorder)

	_, err := generator.Generate(context.Background(), twitterRules(t), testInput())
	assert.NoError(t, err)
	assert.Len(t, recorded, 1)
	assert.Equal(t, "stub-model", recorded[0].ModelName)
	assert.Equal(t, "stub-001", recorded[0].ModelVersion)
}
