// Package observability emits one structured log event per core operation.
// Metadata is sanitized before emission: keys matching a secret-name pattern
// are redacted, nesting is depth-bounded, and arrays are length-bounded.
package observability

import (
	"regexp"
	"time"

	"dellerose/internal/logger"
)

var secretFieldPattern = regexp.MustCompile(`(?i)(api[-_]?key|token|secret|password|authorization|cookie|set-cookie)`)

const (
	maxMetadataDepth      = 4
	maxMetadataArrayItems = 25

	redactedValue  = "[REDACTED]"
	truncatedValue = "[TRUNCATED]"
)

// TokenUsage mirrors the generation backend's usage report.
type TokenUsage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// ActionEvent describes one invocation of a core operation.
type ActionEvent struct {
	RequestID     string
	CorrelationID string
	ActionName    string
	Message       string
	UserID        string
	WorkflowID    string
	Platform      string
	Model         string
	LatencyMs     int64
	TokenUsage    *TokenUsage
	ErrorCode     string
	ErrorType     string
	Metadata      map[string]any
}

// Info emits the event at info level.
func Info(event ActionEvent) {
	logger.InfoWithFields(event.Message, toFields(event))
}

// Warn emits the event at warning level.
func Warn(event ActionEvent) {
	logger.WarnWithFields(event.Message, toFields(event))
}

// Error emits the event at error level.
func Error(event ActionEvent) {
	logger.ErrorWithFields(event.Message, toFields(event))
}

func toFields(event ActionEvent) logger.Fields {
	fields := logger.Fields{
		"request_id":     event.RequestID,
		"correlation_id": resolveCorrelationID(event),
		"action_name":    event.ActionName,
		"latency_ms":     event.LatencyMs,
	}
	if event.UserID != "" {
		fields["user_id"] = event.UserID
	}
	if event.WorkflowID != "" {
		fields["workflow_id"] = event.WorkflowID
	}
	if event.Platform != "" {
		fields["platform"] = event.Platform
	}
	if event.Model != "" {
		fields["model"] = event.Model
	}
	if event.TokenUsage != nil {
		fields["token_usage"] = map[string]any{
			"prompt_tokens":     event.TokenUsage.PromptTokens,
			"completion_tokens": event.TokenUsage.CompletionTokens,
			"total_tokens":      event.TokenUsage.TotalTokens,
		}
	}
	if event.ErrorCode != "" {
		fields["error_code"] = event.ErrorCode
	}
	if event.ErrorType != "" {
		fields["error_type"] = event.ErrorType
	}
	if event.Metadata != nil {
		fields["metadata"] = SanitizeMetadata(event.Metadata)
	}
	return fields
}

// The correlation id ties related operations together: an explicit value
// wins, then the workflow id, then the request id.
func resolveCorrelationID(event ActionEvent) string {
	if event.CorrelationID != "" {
		return event.CorrelationID
	}
	if event.WorkflowID != "" {
		return event.WorkflowID
	}
	return event.RequestID
}

// SanitizeMetadata redacts secret-named keys and bounds depth and array
// length on a metadata map.
func SanitizeMetadata(metadata map[string]any) map[string]any {
	sanitized, _ := sanitizeValue(metadata, 0).(map[string]any)
	return sanitized
}

func sanitizeValue(value any, depth int) any {
	switch typed := value.(type) {
	case nil:
		return nil
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return typed
	case time.Time:
		return typed.UTC().Format(time.RFC3339)
	}

	if depth >= maxMetadataDepth {
		return truncatedValue
	}

	switch typed := value.(type) {
	case []any:
		limit := len(typed)
		if limit > maxMetadataArrayItems {
			limit = maxMetadataArrayItems
		}
		out := make([]any, 0, limit)
		for _, item := range typed[:limit] {
			out = append(out, sanitizeValue(item, depth+1))
		}
		return out
	case []string:
		limit := len(typed)
		if limit > maxMetadataArrayItems {
			limit = maxMetadataArrayItems
		}
		out := make([]any, 0, limit)
		for _, item := range typed[:limit] {
			out = append(out, item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, nested := range typed {
			if secretFieldPattern.MatchString(key) {
				out[key] = redactedValue
				continue
			}
			out[key] = sanitizeValue(nested, depth+1)
		}
		return out
	default:
		return stringify(typed)
	}
}

func stringify(value any) string {
	type stringer interface{ String() string }
	if s, ok := value.(stringer); ok {
		return s.String()
	}
	if err, ok := value.(error); ok {
		return err.Error()
	}
	return "[UNSUPPORTED]"
}
