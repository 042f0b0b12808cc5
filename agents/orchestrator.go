package agents

import (
	"context"
	"fmt"
	"sync"

	"dellerose/models"
	"dellerose/validation"
)

// Engine fans a brief out to every platform agent concurrently. Each
// platform call is isolated: any failure, validation or transport, is
// absorbed by substituting the fallback synthesizer's output, so one
// platform can never block or poison the others.
type Engine struct {
	drafts *DraftGenerator
}

func NewEngine(drafts *DraftGenerator) *Engine {
	return &Engine{drafts: drafts}
}

// FanOutResult is a completed fan-out: exactly five drafts in platform
// order, plus the platforms that fell back to synthesized output.
type FanOutResult struct {
	Outputs           []models.AgentOutput
	FallbackPlatforms []models.Platform
}

// GenerateAll runs the five platform generators concurrently and waits for
// all of them to settle. The assembled set is validated as "exactly 5, each
// schema-valid" before it is returned.
func (e *Engine) GenerateAll(ctx context.Context, input GenerationInput) (FanOutResult, error) {
	if err := validation.ValidateBrief(input.Brief); err != nil {
		return FanOutResult{}, err
	}

	outputs := make([]models.AgentOutput, len(models.PlatformOrder))
	fellBack := make([]bool, len(models.PlatformOrder))

	var wg sync.WaitGroup
	for i, platform := range models.PlatformOrder {
		wg.Add(1)
		go func(slot int, platform models.Platform) {
			defer wg.Done()
			rules, _ := models.RulesFor(platform)
			output, err := e.drafts.Generate(ctx, rules, input)
			if err != nil {
				outputs[slot] = SynthesizeFallback(platform, input.Brief)
				fellBack[slot] = true
				return
			}
			outputs[slot] = output
		}(i, platform)
	}
	wg.Wait()

	if err := validation.ValidateDraftSet(outputs); err != nil {
		return FanOutResult{}, fmt.Errorf("assembled draft set invalid: %w", err)
	}

	var fallbackPlatforms []models.Platform
	for i, platform := range models.PlatformOrder {
		if fellBack[i] {
			fallbackPlatforms = append(fallbackPlatforms, platform)
		}
	}
	return FanOutResult{Outputs: outputs, FallbackPlatforms: fallbackPlatforms}, nil
}

// RegenerateOne repeats the single-platform contract for a user-triggered
// redo: generate, fall back on any failure, validate. The fresh output is
// always status draft.
func (e *Engine) RegenerateOne(ctx context.Context, platform models.Platform, input GenerationInput) (models.AgentOutput, bool, error) {
	if !models.ValidPlatform(platform) {
		return models.AgentOutput{}, false, fmt.Errorf("unknown platform %q", platform)
	}
	if err := validation.ValidateBrief(input.Brief); err != nil {
		return models.AgentOutput{}, false, err
	}

	rules, _ := models.RulesFor(platform)
	output, err := e.drafts.Generate(ctx, rules, input)
	usedFallback := false
	if err != nil {
		output = SynthesizeFallback(platform, input.Brief)
		usedFallback = true
	}

	if err := validation.ValidateDraft(output, rules); err != nil {
		return models.AgentOutput{}, usedFallback, fmt.Errorf("regenerated draft invalid: %w", err)
	}
	return output, usedFallback, nil
}
