// Package speech turns uploaded voice memos into plain transcripts.
package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// MaxAudioBytes caps uploads at 25 MB, the inline-data ceiling for a single
// request.
const MaxAudioBytes = 25 * 1024 * 1024

var (
	ErrEmptyAudio    = errors.New("audio payload is empty")
	ErrAudioTooLarge = fmt.Errorf("audio payload exceeds %d bytes", MaxAudioBytes)
)

var supportedMIMETypes = map[string]struct{}{
	"audio/webm": {},
	"audio/mpeg": {},
	"audio/mp3":  {},
	"audio/mp4":  {},
	"audio/m4a":  {},
	"audio/wav":  {},
	"audio/ogg":  {},
	"audio/flac": {},
}

// ErrUnsupportedMIMEType wraps the rejected content type.
type ErrUnsupportedMIMEType struct {
	MIMEType string
}

func (e *ErrUnsupportedMIMEType) Error() string {
	return fmt.Sprintf("unsupported audio type %q", e.MIMEType)
}

// Result is one finished transcription.
type Result struct {
	Transcript   string
	ModelVersion string
	DurationMs   int64
}

// Transcriber sends audio to Gemini and returns the spoken text verbatim.
type Transcriber struct {
	client       *genai.Client
	model        string
	languageHint string
}

// NewTranscriber builds a transcriber. languageHint is a BCP 47 code such as
// "da"; the model still transcribes other languages when the hint is off.
func NewTranscriber(client *genai.Client, model, languageHint string) *Transcriber {
	return &Transcriber{client: client, model: model, languageHint: languageHint}
}

// Transcribe converts one audio payload to text. The payload is validated
// before any network call so oversized or empty uploads fail fast.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (Result, error) {
	if len(audio) == 0 {
		return Result{}, ErrEmptyAudio
	}
	if len(audio) > MaxAudioBytes {
		return Result{}, ErrAudioTooLarge
	}
	normalizedType := normalizeMIMEType(mimeType)
	if _, ok := supportedMIMETypes[normalizedType]; !ok {
		return Result{}, &ErrUnsupportedMIMEType{MIMEType: mimeType}
	}

	prompt := "Transskribér lydoptagelsen ordret til tekst. Returnér kun transskriptionen, ingen kommentarer."
	if t.languageHint != "" {
		prompt += fmt.Sprintf(" Forventet sprog: %s.", t.languageHint)
	}

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: prompt},
			{InlineData: &genai.Blob{MIMEType: normalizedType, Data: audio}},
		},
	}}

	startedAt := time.Now()
	result, err := t.client.Models.GenerateContent(ctx, t.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0)),
	})
	if err != nil {
		return Result{}, fmt.Errorf("transcribe audio: %w", err)
	}

	transcript := strings.TrimSpace(result.Text())
	return Result{
		Transcript:   transcript,
		ModelVersion: result.ModelVersion,
		DurationMs:   time.Since(startedAt).Milliseconds(),
	}, nil
}

// normalizeMIMEType lowercases the type and drops parameters such as
// ";codecs=opus" that browsers append to recorded blobs.
func normalizeMIMEType(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}
