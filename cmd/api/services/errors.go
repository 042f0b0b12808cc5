package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"dellerose/contracts"
	"dellerose/validation"
)

// classify maps an internal error onto the failure taxonomy and its
// retryability. Validation failures are deterministic, so retrying the same
// input cannot help; transport-shaped failures can.
func classify(err error) (contracts.ErrorCode, bool) {
	switch {
	case validation.IsValidationError(err):
		return contracts.ErrValidationFailed, false
	case errors.Is(err, mongo.ErrNoDocuments):
		return contracts.ErrNotFound, false
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return contracts.ErrExternalServiceError, true
	default:
		return contracts.ErrInternalError, false
	}
}

// errorType names the error's category for the action log.
func errorType(code contracts.ErrorCode) string {
	return string(code)
}
