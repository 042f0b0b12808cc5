package agents_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"dellerose/agents"
	"dellerose/models"
	"dellerose/validation"
)

// funcBackend dispatches on the request so each platform can be scripted
// independently. Safe for concurrent use.
type funcBackend struct {
	mu       sync.Mutex
	calls    int
	generate func(req agents.GenerateRequest) (*agents.GenerateResponse, error)
}

func (f *funcBackend) GenerateJSON(_ context.Context, req agents.GenerateRequest) (*agents.GenerateResponse, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.generate(req)
}

func validDraftBackend(t *testing.T) *funcBackend {
	t.Helper()
	return &funcBackend{generate: func(agents.GenerateRequest) (*agents.GenerateResponse, error) {
		return &agents.GenerateResponse{
			Text: draftJSON(t, "Nyt workflow", "Vi lancerer i dag", "Læs mere", []string{"#nyhed"}),
		}, nil
	}}
}

func TestGenerateAllProducesFiveDraftsInOrder(t *testing.T) {
	engine := agents.NewEngine(agents.NewDraftGenerator(validDraftBackend(t), "stub-model", nil))

	result, err := engine.GenerateAll(context.Background(), testInput())
	assert.NoError(t, err)
	assert.Len(t, result.Outputs, 5)
	assert.Empty(t, result.FallbackPlatforms)
	for i, platform := range models.PlatformOrder {
		assert.Equal(t, platform, result.Outputs[i].Platform)
		assert.Equal(t, models.PostStatusDraft, result.Outputs[i].Status)
	}
	assert.NoError(t, validation.ValidateDraftSet(result.Outputs))
}

func TestGenerateAllRejectsInvalidBrief(t *testing.T) {
	engine := agents.NewEngine(agents.NewDraftGenerator(validDraftBackend(t), "stub-model", nil))

	input := testInput()
	input.Brief.CoreMessage = "  "
	_, err := engine.GenerateAll(context.Background(), input)
	assert.True(t, validation.IsValidationError(err))
}

func TestGenerateAllIsolatesPlatformFailures(t *testing.T) {
	// The tiktok agent keeps producing an over-long hook so both attempts
	// fail validation; every other platform succeeds.
	backend := &funcBackend{}
	backend.generate = func(req agents.GenerateRequest) (*agents.GenerateResponse, error) {
		if strings.Contains(req.Prompt, "tiktok-agent") {
			return &agents.GenerateResponse{
				Text: draftJSON(t, strings.Repeat("x", 101), "Body", "CTA", nil),
			}, nil
		}
		return &agents.GenerateResponse{
			Text: draftJSON(t, "Hook", "Body", "CTA", []string{"#nyhed"}),
		}, nil
	}
	engine := agents.NewEngine(agents.NewDraftGenerator(backend, "stub-model", nil))

	result, err := engine.GenerateAll(context.Background(), testInput())
	assert.NoError(t, err)
	assert.Equal(t, []models.Platform{models.PlatformTikTok}, result.FallbackPlatforms)
	assert.NoError(t, validation.ValidateDraftSet(result.Outputs))

	tiktok := result.Outputs[1]
	assert.Equal(t, models.PlatformTikTok, tiktok.Platform)
	assert.Equal(t, "Vi lancerer et nyt workflow i dag", tiktok.Hook, "fallback derives the hook from the brief")
}

func TestGenerateAllFallsBackEverywhereWhenBackendIsDown(t *testing.T) {
	backend := &funcBackend{generate: func(agents.GenerateRequest) (*agents.GenerateResponse, error) {
		return nil, context.DeadlineExceeded
	}}
	engine := agents.NewEngine(agents.NewDraftGenerator(backend, "stub-model", nil))

	result, err := engine.GenerateAll(context.Background(), testInput())
	assert.NoError(t, err)
	assert.Equal(t, models.PlatformOrder, result.FallbackPlatforms)
	assert.NoError(t, validation.ValidateDraftSet(result.Outputs))

	twitter := result.Outputs[4]
	total := len([]rune(twitter.Hook)) + len([]rune(twitter.Body)) + len([]rune(twitter.CTA)) + 2
	assert.LessOrEqual(t, total, 280)
}

func TestRegenerateOneReturnsFreshDraft(t *testing.T) {
	engine := agents.NewEngine(agents.NewDraftGenerator(validDraftBackend(t), "stub-model", nil))

	output, usedFallback, err := engine.RegenerateOne(context.Background(), models.PlatformInstagram, testInput())
	assert.NoError(t, err)
	assert.False(t, usedFallback)
	assert.Equal(t, models.PlatformInstagram, output.Platform)
	assert.Equal(t, models.PostStatusDraft, output.Status)
}

func TestRegenerateOneFallsBackOnFailure(t *testing.T) {
	backend := &funcBackend{generate: func(agents.GenerateRequest) (*agents.GenerateResponse, error) {
		return nil, context.DeadlineExceeded
	}}
	engine := agents.NewEngine(agents.NewDraftGenerator(backend, "stub-model", nil))

	output, usedFallback, err := engine.RegenerateOne(context.Background(), models.PlatformFacebook, testInput())
	assert.NoError(t, err)
	assert.True(t, usedFallback)
	rules, _ := models.RulesFor(models.PlatformFacebook)
	assert.NoError(t, validation.ValidateDraft(output, rules))
}

func TestRegenerateOneRejectsUnknownPlatform(t *testing.T) {
	engine := agents.NewEngine(agents.NewDraftGenerator(validDraftBackend(t), "stub-model", nil))

	_, _, err := engine.RegenerateOne(context.Background(), models.Platform("myspace"), testInput())
	assert.Error(t, err)
}
