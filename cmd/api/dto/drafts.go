package dto

import "dellerose/models"

// GenerateDraftsRequest triggers the fan-out for a workflow's brief.
type GenerateDraftsRequest struct {
	Brief models.ContentBrief `json:"brief" binding:"required"`
}

// DraftSetDTO is the completed fan-out: five drafts in platform order.
type DraftSetDTO struct {
	Outputs           []models.AgentOutput `json:"outputs"`
	FallbackPlatforms []models.Platform    `json:"fallbackPlatforms"`
}

// RegenerateRequest re-runs one platform against the same brief.
type RegenerateRequest struct {
	Brief models.ContentBrief `json:"brief" binding:"required"`
}

// RegeneratedDraftDTO is one fresh draft.
type RegeneratedDraftDTO struct {
	Output       models.AgentOutput `json:"output"`
	UsedFallback bool               `json:"usedFallback"`
}
