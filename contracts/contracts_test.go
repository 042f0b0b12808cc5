package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOkCarriesPayloadAndRequestID(t *testing.T) {
	result := Ok("req-1", 42)
	assert.True(t, result.Success)
	assert.Equal(t, "req-1", result.RequestID)
	assert.Equal(t, 42, result.Payload)
	assert.Nil(t, result.Failure)
}

func TestFailCarriesTaxonomyAndRetryability(t *testing.T) {
	result := Fail[string]("req-2", ErrExternalServiceError, "backend unavailable", true)
	assert.False(t, result.Success)
	assert.NotNil(t, result.Failure)
	assert.Equal(t, ErrExternalServiceError, result.Failure.Code)
	assert.True(t, result.Failure.Retryable)
	assert.Equal(t, "req-2", result.Failure.RequestID)
}

func TestFormatUserMessageAppendsReference(t *testing.T) {
	failure := &Failure{Message: "Noget gik galt.", RequestID: "req-3"}
	assert.Equal(t, "Noget gik galt. (Ref: req-3)", failure.FormatUserMessage())

	noRef := &Failure{Message: "Noget gik galt."}
	assert.Equal(t, "Noget gik galt.", noRef.FormatUserMessage())
}

func TestNewRequestIDIsUnique(t *testing.T) {
	assert.NotEqual(t, NewRequestID(), NewRequestID())
}
