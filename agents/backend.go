package agents

import (
	"context"
	"time"

	"google.golang.org/genai"
)

// Backend is the structured-generation capability every agent talks to.
// Implementations must return raw JSON text matching the requested schema or
// an error; they never retry on their own.
type Backend interface {
	GenerateJSON(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// GenerateRequest is one structured-generation call.
type GenerateRequest struct {
	Model       string
	System      string
	Prompt      string
	Schema      *genai.Schema
	Temperature float32
}

// TokenUsage mirrors the backend's usage metadata.
type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

// GenerateResponse is the raw backend response before any domain validation.
type GenerateResponse struct {
	Text         string
	ModelVersion string
	Usage        TokenUsage
}

// CallLog captures one backend call for the ai_logs collection.
type CallLog struct {
	Prompt       string     `json:"prompt"`
	Response     string     `json:"response"`
	LatencyMs    int64      `json:"latency_ms"`
	TokenUsage   TokenUsage `json:"token_usage"`
	ModelName    string     `json:"model_name"`
	ModelVersion string     `json:"model_version"`
	ErrorMessage string     `json:"error_message,omitempty"`
	GeneratedAt  time.Time  `json:"generated_at"`
}

// CallRecorder receives a CallLog after every backend call, including failed
// ones. Recording must never block or fail generation.
type CallRecorder func(ctx context.Context, log CallLog)

// GeminiBackend implements Backend on the Gemini API.
type GeminiBackend struct {
	client *genai.Client
}

// NewGeminiBackend builds a backend from an API key.
func NewGeminiBackend(ctx context.Context, apiKey string) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiBackend{client: client}, nil
}

func (b *GeminiBackend) GenerateJSON(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	result, err := b.client.Models.GenerateContent(
		ctx,
		req.Model,
		genai.Text(req.Prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.System}}},
			Temperature:       genai.Ptr(req.Temperature),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    req.Schema,
		},
	)
	if err != nil {
		return nil, err
	}

	resp := &GenerateResponse{
		Text:         result.Text(),
		ModelVersion: result.ModelVersion,
	}
	if result.UsageMetadata != nil {
		resp.Usage = TokenUsage{
			InputTokens:  int64(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int64(result.UsageMetadata.TotalTokenCount),
		}
	}
	return resp, nil
}
