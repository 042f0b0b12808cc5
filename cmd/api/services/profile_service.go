package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"dellerose/cmd/api/dto"
	"dellerose/contracts"
	"dellerose/models"
	"dellerose/observability"
	"dellerose/repositories"
)

// ProfileService manages the onboarding brand profile.
type ProfileService struct {
	repo *repositories.ProfileRepository
}

func NewProfileService(repo *repositories.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get returns the caller's profile, not_found when onboarding has not run.
func (s *ProfileService) Get(ctx context.Context, requestID, userID string) contracts.Result[dto.ProfileDTO] {
	profile, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return contracts.Fail[dto.ProfileDTO](requestID, contracts.ErrNotFound, "Ingen brandprofil fundet.", false)
		}
		return contracts.Fail[dto.ProfileDTO](requestID, contracts.ErrDatabaseError, "Brandprofilen kunne ikke indlæses.", true)
	}
	return contracts.Ok(requestID, dto.NewProfileDTO(*profile))
}

// Upsert validates and stores the profile.
func (s *ProfileService) Upsert(ctx context.Context, requestID, userID string, req dto.ProfileRequest) contracts.Result[dto.ProfileDTO] {
	start := time.Now()

	if req.ToneLevel < 1 || req.ToneLevel > 10 {
		return contracts.Fail[dto.ProfileDTO](requestID, contracts.ErrInvalidInput, "toneLevel skal være mellem 1 og 10.", false)
	}
	if req.LengthPreference < 1 || req.LengthPreference > 5 {
		return contracts.Fail[dto.ProfileDTO](requestID, contracts.ErrInvalidInput, "lengthPreference skal være mellem 1 og 5.", false)
	}
	if req.OpinionLevel < 1 || req.OpinionLevel > 10 {
		return contracts.Fail[dto.ProfileDTO](requestID, contracts.ErrInvalidInput, "opinionLevel skal være mellem 1 og 10.", false)
	}

	profile := &models.BrandProfile{
		UserID:           userID,
		ToneLevel:        req.ToneLevel,
		LengthPreference: req.LengthPreference,
		OpinionLevel:     req.OpinionLevel,
		PreferredWords:   req.PreferredWords,
		BannedWords:      req.BannedWords,
		VoiceSampleURL:   req.VoiceSampleURL,
	}
	if _, err := s.repo.UpsertByUser(ctx, profile); err != nil {
		observability.Error(observability.ActionEvent{
			RequestID:  requestID,
			ActionName: "profile.upsert",
			Message:    "profile persistence failed",
			UserID:     userID,
			LatencyMs:  time.Since(start).Milliseconds(),
			ErrorCode:  string(contracts.ErrDatabaseError),
			ErrorType:  errorType(contracts.ErrDatabaseError),
			Metadata:   map[string]any{"error": err},
		})
		return contracts.Fail[dto.ProfileDTO](requestID, contracts.ErrDatabaseError, "Brandprofilen kunne ikke gemmes.", true)
	}

	observability.Info(observability.ActionEvent{
		RequestID:  requestID,
		ActionName: "profile.upsert",
		Message:    "profile upserted",
		UserID:     userID,
		LatencyMs:  time.Since(start).Milliseconds(),
	})
	return contracts.Ok(requestID, dto.NewProfileDTO(*profile))
}
