package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"dellerose/cmd/api/dto"
	"dellerose/contracts"
	"dellerose/eventbus"
	"dellerose/internal/logger"
	"dellerose/models"
	"dellerose/observability"
	"dellerose/repositories"
	"dellerose/validation"
)

// PlanService persists approved drafts as scheduled posts. Approving the
// same platform twice upserts instead of duplicating.
type PlanService struct {
	briefRepo *repositories.BriefRepository
	postRepo  *repositories.PostRepository
	publisher eventbus.Publisher
}

func NewPlanService(briefRepo *repositories.BriefRepository, postRepo *repositories.PostRepository, publisher eventbus.Publisher) *PlanService {
	return &PlanService{briefRepo: briefRepo, postRepo: postRepo, publisher: publisher}
}

// Upsert approves one draft into the scheduler. The brief is persisted first
// so the post can reference it.
func (s *PlanService) Upsert(ctx context.Context, requestID, userID, workflowID string, req dto.UpsertPlanRequest) contracts.Result[dto.PlanDTO] {
	start := time.Now()

	if !models.ValidPlatform(req.Draft.Platform) {
		return contracts.Fail[dto.PlanDTO](requestID, contracts.ErrInvalidInput, "Ukendt platform.", false)
	}
	if err := validation.ValidateBrief(req.Brief); err != nil {
		return contracts.Fail[dto.PlanDTO](requestID, contracts.ErrInvalidInput, "Briefet er ugyldigt.", false)
	}

	brief := &models.Brief{
		UserID:           userID,
		WorkflowID:       workflowID,
		SourceTranscript: req.Transcript,
		Content:          req.Brief,
	}
	if _, err := s.briefRepo.UpsertByUserAndWorkflow(ctx, brief); err != nil {
		return s.failDatabase(requestID, userID, workflowID, "plans.upsert", start, err)
	}
	saved, err := s.briefRepo.FindByUserAndWorkflow(ctx, userID, workflowID)
	if err != nil {
		return s.failDatabase(requestID, userID, workflowID, "plans.upsert", start, err)
	}

	status := models.PostStatusApproved
	if req.ScheduledFor != nil {
		status = models.PostStatusScheduled
	}

	post := &models.Post{
		UserID:           userID,
		BriefID:          saved.ID,
		WorkflowID:       workflowID,
		Platform:         req.Draft.Platform,
		Hook:             req.Draft.Hook,
		Body:             req.Draft.Body,
		CTA:              req.Draft.CTA,
		Hashtags:         req.Draft.Hashtags,
		VisualSuggestion: req.Draft.VisualSuggestion,
		PublishMode:      models.PublishModeManualCopy,
		Status:           status,
		ScheduledFor:     req.ScheduledFor,
	}
	if _, err := s.postRepo.UpsertByWorkflowAndPlatform(ctx, post); err != nil {
		return s.failDatabase(requestID, userID, workflowID, "plans.upsert", start, err)
	}

	persisted, err := s.postRepo.FindByWorkflowAndPlatform(ctx, userID, workflowID, req.Draft.Platform)
	if err != nil {
		return s.failDatabase(requestID, userID, workflowID, "plans.upsert", start, err)
	}

	if status == models.PostStatusScheduled {
		event := eventbus.NewEvent(eventbus.PlanScheduled, userID, workflowID)
		event.Platform = req.Draft.Platform
		event.ScheduledFor = req.ScheduledFor
		if err := s.publisher.Publish(ctx, event); err != nil {
			logger.Log.Warnf("publish plan_scheduled event: %v", err)
		}
	}

	observability.Info(observability.ActionEvent{
		RequestID:  requestID,
		ActionName: "plans.upsert",
		Message:    "plan upserted",
		UserID:     userID,
		WorkflowID: workflowID,
		Platform:   string(req.Draft.Platform),
		LatencyMs:  time.Since(start).Milliseconds(),
		Metadata:   map[string]any{"status": string(status)},
	})
	return contracts.Ok(requestID, dto.NewPlanDTO(*persisted))
}

// UpdateStatus moves a persisted plan through its lifecycle. Scheduling
// requires a scheduledFor timestamp; posting stamps posted_at.
func (s *PlanService) UpdateStatus(ctx context.Context, requestID, userID, workflowID string, platform models.Platform, req dto.UpdatePlanStatusRequest) contracts.Result[dto.PlanDTO] {
	start := time.Now()

	if !models.ValidPlatform(platform) {
		return contracts.Fail[dto.PlanDTO](requestID, contracts.ErrInvalidInput, "Ukendt platform.", false)
	}

	switch req.Status {
	case models.PlanStatusPending, models.PlanStatusScheduled, models.PlanStatusPosted:
	default:
		return contracts.Fail[dto.PlanDTO](requestID, contracts.ErrInvalidInput, "Ukendt status.", false)
	}
	if req.Status == models.PlanStatusScheduled && req.ScheduledFor == nil {
		return contracts.Fail[dto.PlanDTO](requestID, contracts.ErrInvalidInput, "Planlægning kræver et tidspunkt.", false)
	}
	postStatus := models.PostStatusFromPlanStatus(req.Status)

	result, err := s.postRepo.UpdateStatus(ctx, userID, workflowID, platform, postStatus, req.ScheduledFor)
	if err != nil {
		return s.failDatabase(requestID, userID, workflowID, "plans.update_status", start, err)
	}
	if result.MatchedCount == 0 {
		return contracts.Fail[dto.PlanDTO](requestID, contracts.ErrNotFound, "Ingen plan fundet for platformen.", false)
	}

	persisted, err := s.postRepo.FindByWorkflowAndPlatform(ctx, userID, workflowID, platform)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return contracts.Fail[dto.PlanDTO](requestID, contracts.ErrNotFound, "Ingen plan fundet for platformen.", false)
		}
		return s.failDatabase(requestID, userID, workflowID, "plans.update_status", start, err)
	}

	var eventType eventbus.EventType
	switch postStatus {
	case models.PostStatusScheduled:
		eventType = eventbus.PlanScheduled
	case models.PostStatusPosted:
		eventType = eventbus.PlanPosted
	}
	if eventType != "" {
		event := eventbus.NewEvent(eventType, userID, workflowID)
		event.Platform = platform
		event.ScheduledFor = req.ScheduledFor
		if err := s.publisher.Publish(ctx, event); err != nil {
			logger.Log.Warnf("publish %s event: %v", eventType, err)
		}
	}

	observability.Info(observability.ActionEvent{
		RequestID:  requestID,
		ActionName: "plans.update_status",
		Message:    "plan status updated",
		UserID:     userID,
		WorkflowID: workflowID,
		Platform:   string(platform),
		LatencyMs:  time.Since(start).Milliseconds(),
		Metadata:   map[string]any{"status": string(req.Status)},
	})
	return contracts.Ok(requestID, dto.NewPlanDTO(*persisted))
}

// ListScheduled returns the caller's upcoming posts across workflows.
func (s *PlanService) ListScheduled(ctx context.Context, requestID, userID string) contracts.Result[[]dto.PlanDTO] {
	posts, err := s.postRepo.ListScheduledByUser(ctx, userID)
	if err != nil {
		return contracts.Fail[[]dto.PlanDTO](requestID, contracts.ErrDatabaseError, "Planerne kunne ikke indlæses.", true)
	}
	out := make([]dto.PlanDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, dto.NewPlanDTO(p))
	}
	return contracts.Ok(requestID, out)
}

func (s *PlanService) failDatabase(requestID, userID, workflowID, action string, start time.Time, err error) contracts.Result[dto.PlanDTO] {
	observability.Error(observability.ActionEvent{
		RequestID:  requestID,
		ActionName: action,
		Message:    "plan persistence failed",
		UserID:     userID,
		WorkflowID: workflowID,
		LatencyMs:  time.Since(start).Milliseconds(),
		ErrorCode:  string(contracts.ErrDatabaseError),
		ErrorType:  errorType(contracts.ErrDatabaseError),
		Metadata:   map[string]any{"error": err},
	})
	return contracts.Fail[dto.PlanDTO](requestID, contracts.ErrDatabaseError, "Planen kunne ikke gemmes.", true)
}
