package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"dellerose/agents"
	"dellerose/cmd/api/dto"
	"dellerose/contracts"
	"dellerose/eventbus"
	"dellerose/internal/logger"
	"dellerose/models"
	"dellerose/monitoring"
	"dellerose/observability"
	"dellerose/repositories"
	"dellerose/stylesample"
	"dellerose/validation"
)

// DraftService runs the platform fan-out and single-platform regeneration.
// The brand profile is a hard prerequisite for both.
type DraftService struct {
	engine      *agents.Engine
	profileRepo *repositories.ProfileRepository
	publisher   eventbus.Publisher
}

func NewDraftService(engine *agents.Engine, profileRepo *repositories.ProfileRepository, publisher eventbus.Publisher) *DraftService {
	return &DraftService{engine: engine, profileRepo: profileRepo, publisher: publisher}
}

// buildInput loads the caller's profile and optional style sample. A missing
// profile is the one prerequisite failure the client must resolve through
// onboarding.
func (s *DraftService) buildInput(ctx context.Context, userID string, brief models.ContentBrief) (agents.GenerationInput, *contracts.Failure) {
	profile, err := s.profileRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return agents.GenerationInput{}, &contracts.Failure{
				Code:    contracts.ErrMissingDependency,
				Message: "Din brandprofil mangler. Gennemfør onboarding først.",
			}
		}
		return agents.GenerationInput{}, &contracts.Failure{
			Code:      contracts.ErrDatabaseError,
			Message:   "Brandprofilen kunne ikke indlæses.",
			Retryable: true,
		}
	}

	input := agents.GenerationInput{Brief: brief, BrandProfile: *profile}
	if profile.VoiceSampleURL != "" {
		sample, err := stylesample.Extract(profile.VoiceSampleURL)
		if err != nil {
			// Style is a nice-to-have; generation proceeds without it.
			logger.Log.Warnf("voice sample extraction: %v", err)
		} else {
			input.StyleSample = sample
		}
	}
	return input, nil
}

// GenerateAll fans the brief out to every platform.
func (s *DraftService) GenerateAll(ctx context.Context, requestID, userID, workflowID string, brief models.ContentBrief) contracts.Result[dto.DraftSetDTO] {
	start := time.Now()

	// A malformed caller-supplied brief is bad input, not a failed
	// generation artifact.
	if err := validation.ValidateBrief(brief); err != nil {
		return contracts.Fail[dto.DraftSetDTO](requestID, contracts.ErrInvalidInput, "Briefet er ugyldigt.", false)
	}

	input, failure := s.buildInput(ctx, userID, brief)
	if failure != nil {
		return contracts.Fail[dto.DraftSetDTO](requestID, failure.Code, failure.Message, failure.Retryable)
	}

	result, err := s.engine.GenerateAll(ctx, input)
	if err != nil {
		code, retryable := classify(err)
		observability.Error(observability.ActionEvent{
			RequestID:  requestID,
			ActionName: "drafts.generate_all",
			Message:    "fan-out failed",
			UserID:     userID,
			WorkflowID: workflowID,
			LatencyMs:  time.Since(start).Milliseconds(),
			ErrorCode:  string(code),
			ErrorType:  errorType(code),
			Metadata:   map[string]any{"error": err},
		})
		return contracts.Fail[dto.DraftSetDTO](requestID, code, "Udkastene kunne ikke genereres.", retryable)
	}

	for _, platform := range result.FallbackPlatforms {
		monitoring.RecordFallback(platform)
	}

	event := eventbus.NewEvent(eventbus.DraftsGenerated, userID, workflowID)
	event.FallbackPlatforms = result.FallbackPlatforms
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Log.Warnf("publish drafts_generated event: %v", err)
	}

	fallbackNames := make([]string, 0, len(result.FallbackPlatforms))
	for _, platform := range result.FallbackPlatforms {
		fallbackNames = append(fallbackNames, string(platform))
	}
	actionEvent := observability.ActionEvent{
		RequestID:  requestID,
		ActionName: "drafts.generate_all",
		Message:    "fan-out completed",
		UserID:     userID,
		WorkflowID: workflowID,
		LatencyMs:  time.Since(start).Milliseconds(),
		Metadata: map[string]any{
			"fallback_count":     len(result.FallbackPlatforms),
			"fallback_platforms": fallbackNames,
		},
	}
	if len(result.FallbackPlatforms) > 0 {
		actionEvent.Message = "fan-out completed with fallbacks"
		observability.Warn(actionEvent)
	} else {
		observability.Info(actionEvent)
	}

	return contracts.Ok(requestID, dto.DraftSetDTO{
		Outputs:           result.Outputs,
		FallbackPlatforms: result.FallbackPlatforms,
	})
}

// Regenerate re-runs one platform against the same brief.
func (s *DraftService) Regenerate(ctx context.Context, requestID, userID, workflowID string, platform models.Platform, brief models.ContentBrief) contracts.Result[dto.RegeneratedDraftDTO] {
	start := time.Now()

	if !models.ValidPlatform(platform) {
		return contracts.Fail[dto.RegeneratedDraftDTO](requestID, contracts.ErrInvalidInput, "Ukendt platform.", false)
	}
	if err := validation.ValidateBrief(brief); err != nil {
		return contracts.Fail[dto.RegeneratedDraftDTO](requestID, contracts.ErrInvalidInput, "Briefet er ugyldigt.", false)
	}

	input, failure := s.buildInput(ctx, userID, brief)
	if failure != nil {
		return contracts.Fail[dto.RegeneratedDraftDTO](requestID, failure.Code, failure.Message, failure.Retryable)
	}

	output, usedFallback, err := s.engine.RegenerateOne(ctx, platform, input)
	if err != nil {
		code, retryable := classify(err)
		observability.Error(observability.ActionEvent{
			RequestID:  requestID,
			ActionName: "drafts.regenerate",
			Message:    "regeneration failed",
			UserID:     userID,
			WorkflowID: workflowID,
			Platform:   string(platform),
			LatencyMs:  time.Since(start).Milliseconds(),
			ErrorCode:  string(code),
			ErrorType:  errorType(code),
			Metadata:   map[string]any{"error": err},
		})
		return contracts.Fail[dto.RegeneratedDraftDTO](requestID, code, "Udkastet kunne ikke regenereres.", retryable)
	}

	if usedFallback {
		monitoring.RecordFallback(platform)
	}

	event := eventbus.NewEvent(eventbus.DraftRegenerated, userID, workflowID)
	event.Platform = platform
	event.UsedFallback = usedFallback
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Log.Warnf("publish draft_regenerated event: %v", err)
	}

	observability.Info(observability.ActionEvent{
		RequestID:  requestID,
		ActionName: "drafts.regenerate",
		Message:    "draft regenerated",
		UserID:     userID,
		WorkflowID: workflowID,
		Platform:   string(platform),
		LatencyMs:  time.Since(start).Milliseconds(),
		Metadata:   map[string]any{"used_fallback": usedFallback},
	})
	return contracts.Ok(requestID, dto.RegeneratedDraftDTO{Output: output, UsedFallback: usedFallback})
}
