// Package contracts defines the uniform result envelope returned by every
// core operation. A result is either a success carrying a payload or a
// failure carrying an error code, a human-readable message, a retryability
// flag, and the request id for support correlation.
package contracts

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrorCode is the closed failure taxonomy.
type ErrorCode string

const (
	ErrInvalidInput         ErrorCode = "invalid_input"
	ErrMissingDependency    ErrorCode = "missing_dependency"
	ErrUnauthorized         ErrorCode = "unauthorized"
	ErrForbidden            ErrorCode = "forbidden"
	ErrNotFound             ErrorCode = "not_found"
	ErrValidationFailed     ErrorCode = "validation_failed"
	ErrDatabaseError        ErrorCode = "database_error"
	ErrExternalServiceError ErrorCode = "external_service_error"
	ErrInternalError        ErrorCode = "internal_error"
)

// Failure is the error half of an action result.
type Failure struct {
	Success   bool      `json:"success"` // always false
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
	RequestID string    `json:"requestId"`
}

// Result wraps either a payload or a failure. Exactly one of Payload and
// Failure is set.
type Result[T any] struct {
	Success   bool     `json:"success"`
	RequestID string   `json:"requestId"`
	Payload   T        `json:"-"`
	Failure   *Failure `json:"-"`
}

// NewRequestID returns a fresh request id.
func NewRequestID() string {
	return uuid.NewString()
}

// Ok builds a success result.
func Ok[T any](requestID string, payload T) Result[T] {
	return Result[T]{Success: true, RequestID: requestID, Payload: payload}
}

// Fail builds a failure result.
func Fail[T any](requestID string, code ErrorCode, message string, retryable bool) Result[T] {
	return Result[T]{
		Success:   false,
		RequestID: requestID,
		Failure: &Failure{
			Success:   false,
			Code:      code,
			Message:   message,
			Retryable: retryable,
			RequestID: requestID,
		},
	}
}

// FormatUserMessage appends the request id reference users quote to support.
func (f *Failure) FormatUserMessage() string {
	if f.RequestID == "" {
		return f.Message
	}
	return fmt.Sprintf("%s (Ref: %s)", f.Message, f.RequestID)
}
