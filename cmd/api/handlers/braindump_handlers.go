package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"dellerose/cmd/api/dto"
	"dellerose/cmd/api/middleware"
	"dellerose/cmd/api/services"
	"dellerose/speech"
)

// TranscribeHandler godoc
// @Summary      Transcribe a voice memo
// @Description  Accepts an audio file (max 25MB) and returns the transcript
// @Tags         brain-dump
// @Accept       multipart/form-data
// @Param        audio  formData  file  true  "Audio file"
// @Produce      json
// @Success      200  {object}  dto.Envelope[dto.TranscriptionDTO]
// @Failure      400  {object}  dto.FailureDTO
// @Router       /brain-dump/transcribe [post]
func TranscribeHandler(svc *services.BrainDumpService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := requestID(c)

		fileHeader, err := c.FormFile("audio")
		if err != nil {
			badRequest(c, reqID, "Feltet 'audio' mangler.")
			return
		}
		if fileHeader.Size > speech.MaxAudioBytes {
			badRequest(c, reqID, "Lydfilen er for stor (max 25MB).")
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			badRequest(c, reqID, "Lydfilen kunne ikke læses.")
			return
		}
		defer file.Close()

		audio, err := io.ReadAll(io.LimitReader(file, speech.MaxAudioBytes+1))
		if err != nil {
			badRequest(c, reqID, "Lydfilen kunne ikke læses.")
			return
		}

		mimeType := fileHeader.Header.Get("Content-Type")
		respond(c, svc.Transcribe(c.Request.Context(), reqID, middleware.UserID(c), audio, mimeType))
	}
}

// AnalyzeHandler godoc
// @Summary      Structure a transcript into a content brief
// @Tags         brain-dump
// @Accept       json
// @Param        workflow_id  query  string  true  "Workflow id"
// @Param        request  body  dto.AnalyzeRequest  true  "Transcript"
// @Produce      json
// @Success      200  {object}  dto.Envelope[dto.BriefDTO]
// @Failure      400  {object}  dto.FailureDTO
// @Router       /brain-dump/analyze [post]
func AnalyzeHandler(svc *services.BrainDumpService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := requestID(c)

		workflowID := c.Query("workflow_id")
		if workflowID == "" {
			badRequest(c, reqID, "Parameteren 'workflow_id' mangler.")
			return
		}

		var req dto.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, reqID, "Feltet 'transcript' mangler.")
			return
		}

		respond(c, svc.Analyze(c.Request.Context(), reqID, middleware.UserID(c), workflowID, req.Transcript))
	}
}
