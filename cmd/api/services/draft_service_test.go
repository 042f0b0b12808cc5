package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"dellerose/cmd/api/services"
	"dellerose/contracts"
	"dellerose/eventbus"
	"dellerose/models"
)

// A malformed caller-supplied brief must be rejected as bad input before any
// generation runs; validation_failed is reserved for generated artifacts.
func TestGenerateAllRejectsInvalidBriefAsBadInput(t *testing.T) {
	svc := services.NewDraftService(nil, nil, eventbus.NopPublisher{})

	result := svc.GenerateAll(context.Background(), "req-1", "user-1", "wf-1", models.ContentBrief{})

	assert.False(t, result.Success)
	if assert.NotNil(t, result.Failure) {
		assert.Equal(t, contracts.ErrInvalidInput, result.Failure.Code)
		assert.False(t, result.Failure.Retryable)
	}
}

func TestRegenerateRejectsInvalidBriefAsBadInput(t *testing.T) {
	svc := services.NewDraftService(nil, nil, eventbus.NopPublisher{})

	result := svc.Regenerate(context.Background(), "req-2", "user-1", "wf-1", models.PlatformLinkedIn, models.ContentBrief{})

	assert.False(t, result.Success)
	if assert.NotNil(t, result.Failure) {
		assert.Equal(t, contracts.ErrInvalidInput, result.Failure.Code)
	}
}

func TestRegenerateRejectsUnknownPlatform(t *testing.T) {
	svc := services.NewDraftService(nil, nil, eventbus.NopPublisher{})

	result := svc.Regenerate(context.Background(), "req-3", "user-1", "wf-1", models.Platform("myspace"), models.ContentBrief{})

	assert.False(t, result.Success)
	if assert.NotNil(t, result.Failure) {
		assert.Equal(t, contracts.ErrInvalidInput, result.Failure.Code)
	}
}
