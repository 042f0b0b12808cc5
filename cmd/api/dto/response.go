package dto

import "dellerose/contracts"

// Envelope is the uniform success response body.
type Envelope[T any] struct {
	Success   bool   `json:"success"`
	RequestID string `json:"requestId"`
	Data      T      `json:"data"`
}

// NewEnvelope wraps a payload for transport.
func NewEnvelope[T any](requestID string, data T) Envelope[T] {
	return Envelope[T]{Success: true, RequestID: requestID, Data: data}
}

// FailureDTO is the uniform error response body. It mirrors
// contracts.Failure so clients see one shape everywhere.
type FailureDTO struct {
	Success   bool   `json:"success" example:"false"`
	Code      string `json:"code" example:"validation_failed"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	RequestID string `json:"requestId"`
}

// NewFailureDTO converts a contracts failure for transport.
func NewFailureDTO(f *contracts.Failure) FailureDTO {
	return FailureDTO{
		Success:   false,
		Code:      string(f.Code),
		Message:   f.FormatUserMessage(),
		Retryable: f.Retryable,
		RequestID: f.RequestID,
	}
}
