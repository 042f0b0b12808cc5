// Package handlers binds the HTTP surface to the service layer. Every
// handler resolves the caller identity and request id, delegates to a
// service, and renders the uniform envelope.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dellerose/cmd/api/dto"
	"dellerose/cmd/api/trace"
	"dellerose/contracts"
)

// requestID returns the id planted by the trace middleware, minting one for
// requests that bypassed it.
func requestID(c *gin.Context) string {
	if id := trace.RequestIDFromContext(c.Request.Context()); id != "" {
		return id
	}
	return contracts.NewRequestID()
}

// respond renders a service result as the uniform envelope.
func respond[T any](c *gin.Context, result contracts.Result[T]) {
	if result.Success {
		c.JSON(http.StatusOK, dto.NewEnvelope(result.RequestID, result.Payload))
		return
	}
	c.JSON(statusForCode(result.Failure.Code), dto.NewFailureDTO(result.Failure))
}

func badRequest(c *gin.Context, reqID, message string) {
	failure := &contracts.Failure{
		Code:      contracts.ErrInvalidInput,
		Message:   message,
		RequestID: reqID,
	}
	c.JSON(http.StatusBadRequest, dto.NewFailureDTO(failure))
}

func statusForCode(code contracts.ErrorCode) int {
	switch code {
	case contracts.ErrInvalidInput:
		return http.StatusBadRequest
	case contracts.ErrUnauthorized:
		return http.StatusUnauthorized
	case contracts.ErrForbidden:
		return http.StatusForbidden
	case contracts.ErrNotFound:
		return http.StatusNotFound
	case contracts.ErrValidationFailed:
		return http.StatusUnprocessableEntity
	case contracts.ErrMissingDependency:
		return http.StatusPreconditionFailed
	case contracts.ErrExternalServiceError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
