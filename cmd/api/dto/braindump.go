package dto

import "dellerose/models"

// TranscriptionDTO is the result of one voice-memo transcription.
type TranscriptionDTO struct {
	Transcript string `json:"transcript"`
	DurationMs int64  `json:"durationMs"`
}

// AnalyzeRequest carries the transcript to structure into a brief.
type AnalyzeRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

// BriefDTO is the structured brief returned to the client.
type BriefDTO struct {
	WorkflowID string              `json:"workflowId"`
	Brief      models.ContentBrief `json:"brief"`
}
