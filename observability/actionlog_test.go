package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeMetadataRedactsSecretKeys(t *testing.T) {
	sanitized := SanitizeMetadata(map[string]any{
		"apiKey":        "sk-123",
		"api_key":       "sk-456",
		"Authorization": "Bearer abc",
		"cookie":        "session=1",
		"refreshToken":  "tok",
		"workflowId":    "wf-1",
	})

	assert.Equal(t, "[REDACTED]", sanitized["apiKey"])
	assert.Equal(t, "[REDACTED]", sanitized["api_key"])
	assert.Equal(t, "[REDACTED]", sanitized["Authorization"])
	assert.Equal(t, "[REDACTED]", sanitized["cookie"])
	assert.Equal(t, "[REDACTED]", sanitized["refreshToken"])
	assert.Equal(t, "wf-1", sanitized["workflowId"])
}

func TestSanitizeMetadataRedactsNestedSecrets(t *testing.T) {
	sanitized := SanitizeMetadata(map[string]any{
		"outer": map[string]any{
			"password": "hunter2",
			"count":    3,
		},
	})

	outer := sanitized["outer"].(map[string]any)
	assert.Equal(t, "[REDACTED]", outer["password"])
	assert.Equal(t, 3, outer["count"])
}

func TestSanitizeMetadataBoundsDepth(t *testing.T) {
	deep := map[string]any{
		"l1": map[string]any{
			"l2": map[string]any{
				"l3": map[string]any{
					"l4": map[string]any{
						"l5": "too deep",
					},
				},
			},
		},
	}

	sanitized := SanitizeMetadata(deep)
	l1 := sanitized["l1"].(map[string]any)
	l2 := l1["l2"].(map[string]any)
	l3 := l2["l3"].(map[string]any)
	assert.Equal(t, "[TRUNCATED]", l3["l4"])
}

func TestSanitizeMetadataBoundsArrayLength(t *testing.T) {
	items := make([]any, 40)
	for i := range items {
		items[i] = i
	}

	sanitized := SanitizeMetadata(map[string]any{"items": items})
	bounded := sanitized["items"].([]any)
	assert.Len(t, bounded, 25)
}

func TestSanitizeMetadataKeepsStringSlices(t *testing.T) {
	sanitized := SanitizeMetadata(map[string]any{
		"fallback_platforms": []string{"tiktok", "twitter"},
	})

	assert.Equal(t, []any{"tiktok", "twitter"}, sanitized["fallback_platforms"])
}

func TestCorrelationIDResolution(t *testing.T) {
	event := ActionEvent{RequestID: "req-1"}
	assert.Equal(t, "req-1", resolveCorrelationID(event))

	event.WorkflowID = "wf-1"
	assert.Equal(t, "wf-1", resolveCorrelationID(event))

	event.CorrelationID = "corr-1"
	assert.Equal(t, "corr-1", resolveCorrelationID(event))
}
