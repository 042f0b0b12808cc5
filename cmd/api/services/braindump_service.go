package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"dellerose/agents"
	"dellerose/cmd/api/dto"
	"dellerose/contracts"
	"dellerose/eventbus"
	"dellerose/internal/logger"
	"dellerose/models"
	"dellerose/observability"
	"dellerose/repositories"
	"dellerose/speech"
)

// BrainDumpService turns voice memos into transcripts and transcripts into
// content briefs.
type BrainDumpService struct {
	transcriber *speech.Transcriber
	briefs      *agents.BriefGenerator
	briefRepo   *repositories.BriefRepository
	publisher   eventbus.Publisher
}

func NewBrainDumpService(transcriber *speech.Transcriber, briefs *agents.BriefGenerator, briefRepo *repositories.BriefRepository, publisher eventbus.Publisher) *BrainDumpService {
	return &BrainDumpService{
		transcriber: transcriber,
		briefs:      briefs,
		briefRepo:   briefRepo,
		publisher:   publisher,
	}
}

// Transcribe converts one uploaded voice memo into text.
func (s *BrainDumpService) Transcribe(ctx context.Context, requestID, userID string, audio []byte, mimeType string) contracts.Result[dto.TranscriptionDTO] {
	start := time.Now()

	result, err := s.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		code, retryable := classify(err)
		var typeErr *speech.ErrUnsupportedMIMEType
		if errors.Is(err, speech.ErrEmptyAudio) || errors.Is(err, speech.ErrAudioTooLarge) || errors.As(err, &typeErr) {
			code, retryable = contracts.ErrInvalidInput, false
		} else if code == contracts.ErrInternalError {
			code, retryable = contracts.ErrExternalServiceError, true
		}
		observability.Error(observability.ActionEvent{
			RequestID:  requestID,
			ActionName: "brain_dump.transcribe",
			Message:    "transcription failed",
			UserID:     userID,
			LatencyMs:  time.Since(start).Milliseconds(),
			ErrorCode:  string(code),
			ErrorType:  errorType(code),
			Metadata:   map[string]any{"mime_type": mimeType, "audio_bytes": len(audio), "error": err},
		})
		return contracts.Fail[dto.TranscriptionDTO](requestID, code, "Lydfilen kunne ikke transskriberes.", retryable)
	}

	if strings.TrimSpace(result.Transcript) == "" {
		return contracts.Fail[dto.TranscriptionDTO](requestID, contracts.ErrInvalidInput, "Optagelsen indeholdt ingen tale.", false)
	}

	observability.Info(observability.ActionEvent{
		RequestID:  requestID,
		ActionName: "brain_dump.transcribe",
		Message:    "transcription completed",
		UserID:     userID,
		Model:      result.ModelVersion,
		LatencyMs:  time.Since(start).Milliseconds(),
		Metadata:   map[string]any{"transcript_chars": len([]rune(result.Transcript))},
	})
	return contracts.Ok(requestID, dto.TranscriptionDTO{
		Transcript: result.Transcript,
		DurationMs: result.DurationMs,
	})
}

// Analyze structures a transcript into a ContentBrief, persists it, and
// announces it on the event bus.
func (s *BrainDumpService) Analyze(ctx context.Context, requestID, userID, workflowID, transcript string) contracts.Result[dto.BriefDTO] {
	start := time.Now()

	brief, err := s.briefs.Generate(ctx, transcript)
	if err != nil {
		code, retryable := classify(err)
		if errors.Is(err, agents.ErrEmptyTranscript) {
			code, retryable = contracts.ErrInvalidInput, false
		}
		observability.Error(observability.ActionEvent{
			RequestID:  requestID,
			ActionName: "brain_dump.analyze",
			Message:    "brief generation failed",
			UserID:     userID,
			WorkflowID: workflowID,
			LatencyMs:  time.Since(start).Milliseconds(),
			ErrorCode:  string(code),
			ErrorType:  errorType(code),
			Metadata:   map[string]any{"error": err},
		})
		return contracts.Fail[dto.BriefDTO](requestID, code, "Transcriptet kunne ikke struktureres til et brief.", retryable)
	}

	if _, err := s.briefRepo.UpsertByUserAndWorkflow(ctx, &models.Brief{
		UserID:           userID,
		WorkflowID:       workflowID,
		SourceTranscript: transcript,
		Content:          brief,
	}); err != nil {
		observability.Error(observability.ActionEvent{
			RequestID:  requestID,
			ActionName: "brain_dump.analyze",
			Message:    "brief persistence failed",
			UserID:     userID,
			WorkflowID: workflowID,
			LatencyMs:  time.Since(start).Milliseconds(),
			ErrorCode:  string(contracts.ErrDatabaseError),
			ErrorType:  errorType(contracts.ErrDatabaseError),
			Metadata:   map[string]any{"error": err},
		})
		return contracts.Fail[dto.BriefDTO](requestID, contracts.ErrDatabaseError, "Briefet kunne ikke gemmes.", true)
	}

	if err := s.publisher.Publish(ctx, eventbus.NewEvent(eventbus.BriefGenerated, userID, workflowID)); err != nil {
		logger.Log.Warnf("publish brief_generated event: %v", err)
	}

	observability.Info(observability.ActionEvent{
		RequestID:  requestID,
		ActionName: "brain_dump.analyze",
		Message:    "brief generated",
		UserID:     userID,
		WorkflowID: workflowID,
		LatencyMs:  time.Since(start).Milliseconds(),
		Metadata:   map[string]any{"intent": string(brief.Intent)},
	})
	return contracts.Ok(requestID, dto.BriefDTO{WorkflowID: workflowID, Brief: brief})
}
